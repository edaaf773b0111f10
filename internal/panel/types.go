package panel

import "time"

// Circuit is one branch circuit in the synthesized panel schedule.
// The synthesizer rebuilds the full set for an estimate on every run;
// circuits are never patched individually.
type Circuit struct {
	ID            string    `json:"id"`
	EstimateID    string    `json:"estimate_id"`
	CircuitNumber int       `json:"circuit_number"`
	Ampacity      int       `json:"ampacity"`
	Poles         int       `json:"poles"`
	Description   string    `json:"description"`
	Conductor     string    `json:"conductor"`
	GFCI          bool      `json:"gfci"`
	AFCI          bool      `json:"afci"`
	CreatedAt     time.Time `json:"created_at"`
}
