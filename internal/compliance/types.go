package compliance

// Status classifies the severity of a finding.
type Status string

const (
	// StatusPass indicates the rule is satisfied.
	StatusPass Status = "PASS"
	// StatusWarn indicates a likely problem the estimator should review.
	StatusWarn Status = "WARN"
	// StatusFail indicates a code violation that must be corrected.
	StatusFail Status = "FAIL"
	// StatusInfo is advisory output with no pass/fail weight.
	StatusInfo Status = "INFO"
)

// Finding is one output row of a compliance run: which rule fired, where,
// with what severity, and a plain-language explanation the estimator can
// show a client or inspector.
type Finding struct {
	Rule        string `json:"rule"`
	Location    string `json:"location"`
	Status      Status `json:"status"`
	Description string `json:"description"`
}

// Report is the full result of a compliance run. Findings are ordered by
// rule sequence; the summary counts findings per status. ScorePct is the
// share of pass/warn/fail findings that passed, as a percentage —
// informational findings carry no weight.
type Report struct {
	Findings []Finding      `json:"findings"`
	Summary  map[Status]int `json:"summary"`
	ScorePct float64        `json:"score_pct"`
}
