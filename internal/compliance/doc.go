// Package compliance cross-validates an estimate's line items against its
// synthesized panel circuits and reports code findings.
//
// A run evaluates a fixed, ordered rule sequence: wet-location GFCI
// coverage, habitable-room AFCI coverage, smoke and CO detection,
// kitchen counter circuits, panel service sizing, conductor gauge versus
// breaker ampacity, and rough-in checks for outdoor receptacles, exterior
// lighting, doorbell, thermostat, and luminaire switching.
//
// # Key Types
//
//   - Finding: one rule evaluation with a citation, location, status, and
//     explanation.
//   - Report: the finding list plus a per-status summary and a score that
//     ignores informational findings.
//
// Room matching is deliberately a substring heuristic: circuit
// descriptions are free text assembled from line items, so a rule that
// cannot find a room reports WARN, not FAIL. The checker is strictly
// read-only and recomputes every finding from scratch on each run.
package compliance
