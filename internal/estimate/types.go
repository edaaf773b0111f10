package estimate

import (
	"time"

	"github.com/sparkplan/sparkplan-core/internal/cec"
)

// Estimate is the top-level record for one dwelling analysis. Line items
// and panel circuits hang off it by foreign key.
type Estimate struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	DwellingType      string    `json:"dwelling_type"`
	HasSecondarySuite bool      `json:"has_secondary_suite"`
	UnitLabel         string    `json:"unit_label,omitempty"`
	FinishTier        string    `json:"finish_tier"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Context builds the requirement-engine context from the estimate's
// dwelling fields.
func (e *Estimate) Context() *cec.DwellingContext {
	return &cec.DwellingContext{
		Category:          cec.DwellingCategory(e.DwellingType),
		HasSecondarySuite: e.HasSecondarySuite,
		UnitLabel:         e.UnitLabel,
		Tier:              cec.FinishTier(e.FinishTier),
	}
}

// LineItem is one editable row of an estimate: a device in a room with a
// quantity and the installation assembly matched for it. Seeded from the
// requirement engine and then owned by the user; the synthesizer and
// checker read it but never write it.
type LineItem struct {
	ID          string    `json:"id"`
	EstimateID  string    `json:"estimate_id"`
	RoomLabel   string    `json:"room_label"`
	DeviceType  string    `json:"device_type"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	Conductor   string    `json:"conductor"`
	LabourHours float64   `json:"labour_hours"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
