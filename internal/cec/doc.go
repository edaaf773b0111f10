// Package cec implements the CEC 2021 requirement engine for SparkPlan Core.
//
// Given a list of rooms detected from a floor plan (by an external
// analysis step), the package derives the electrical devices each room
// needs under the Canadian Electrical Code, plus the dwelling-wide
// devices that depend on the composition of the whole room list. The
// output seeds an editable line-item list; the panel and compliance
// packages consume that list downstream.
//
// # Architecture
//
//	┌────────────────────────────────────────────────────────────┐
//	│                 Requirement Engine (cec)                    │
//	│                                                             │
//	│  ┌───────────────┐   ┌────────────────┐   ┌─────────────┐  │
//	│  │   Catalogue   │   │    Spacing     │   │  Generator  │  │
//	│  │(catalogue.go) │──▶│  (spacing.go)  │──▶│(generate.go)│  │
//	│  │               │   │                │   │             │  │
//	│  │ • per-type    │   │ • perimeter    │   │ • room-type │  │
//	│  │   minimums    │   │   estimate     │   │   dispatch  │  │
//	│  │ • citations   │   │ • 70% usable   │   │ • bespoke   │  │
//	│  │ • safety flags│   │ • per-room cap │   │   branches  │  │
//	│  └───────────────┘   └────────────────┘   └─────────────┘  │
//	│                                                 │           │
//	│                      ┌────────────────┐         ▼           │
//	│                      │   Aggregator   │   GeneratedDevice   │
//	│                      │ (dwelling.go)  │──▶     list         │
//	│                      └────────────────┘                     │
//	└────────────────────────────────────────────────────────────┘
//
// # Key Types
//
//   - DetectedRoom: One room from the external plan reader (type, area,
//     floor level, plumbing hints, confidence)
//   - DwellingContext: Whole-dwelling attributes (category, secondary
//     suite, finish tier)
//   - RoomRequirement: The catalogue record for one room type
//   - GeneratedDevice: One required device with count and code citation
//
// # Determinism
//
// Every function in this package is pure: no I/O, no shared state, and
// identical inputs always produce identical output in identical order.
// Unrecognized room types degrade to a minimal generic device set
// rather than failing, so an unexpected classification upstream never
// aborts an analysis.
//
// # Usage
//
//	devices := cec.GenerateRoomDevices(room, ctx)
//	wholeHouse := cec.GenerateDwellingDevices(rooms, ctx)
//
// Finish tier (standard/premium/luxury) changes fixture counts and types
// for specific rooms but never relaxes a code-mandated minimum.
package cec
