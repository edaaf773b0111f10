// Package panel synthesizes a branch-circuit schedule from an estimate's
// line items.
//
// Line items describe devices room by room; the panel schedule describes
// how those devices land on breakers. Synthesis groups items by
// (room label, device type), derives breaker ampacity from the conductor
// gauge, and flags ground-fault and arc-fault protection from the room
// classification lists shared with the compliance checker.
//
// # Architecture
//
//	line items ──► Synthesize ──► []Circuit ──► Repository.ReplaceForEstimate
//	                   │
//	                   ├── group by (room, device)
//	                   ├── ampacity from conductor gauge
//	                   └── GFCI / AFCI from room + device markers
//
// # Key Types
//
//   - Circuit: one breaker position with ampacity, poles, and protection
//     flags.
//   - Repository: persistence for circuit schedules, replaced atomically
//     per estimate.
//
// Synthesis is deterministic: the same line items in the same order
// always produce the same schedule with the same contiguous numbering.
// Re-running synthesis replaces the stored schedule rather than patching
// it, so the panel always reflects the current line items.
package panel
