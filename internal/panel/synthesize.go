package panel

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sparkplan/sparkplan-core/internal/estimate"
)

// wetLocationMarkers is the ordered list of substrings that classify a
// room label as a wet or hazard location needing ground-fault protection.
// Circuit descriptions and room labels are free text, so this is a
// deliberate substring heuristic, not structured matching.
var wetLocationMarkers = []string{"kitchen", "bath", "garage", "outdoor"}

// arcFaultMarkers classifies habitable rooms that require arc-fault
// protected circuits.
var arcFaultMarkers = []string{"bedroom", "living", "den", "dining"}

// groundFaultDeviceMarkers match device-type names that are themselves
// ground-fault devices regardless of room.
var groundFaultDeviceMarkers = []string{"gfci", "ground_fault"}

// gaugeAmpacity maps a conductor gauge prefix to its breaker ampacity.
var gaugeAmpacity = map[string]int{
	"14": 15,
	"12": 20,
	"10": 30,
	"8":  40,
	"6":  50,
}

// defaultAmpacity is used when the conductor gauge is missing or
// unrecognized.
const defaultAmpacity = 15

// IsWetLocation reports whether a room label matches the wet/hazard
// location list. The compliance checker uses the same derivation, so the
// two components never disagree about which rooms need GFCI.
func IsWetLocation(roomLabel string) bool {
	return matchesAny(roomLabel, wetLocationMarkers)
}

// IsArcFaultLocation reports whether a room label matches the
// habitable-room list requiring arc-fault protection.
func IsArcFaultLocation(roomLabel string) bool {
	return matchesAny(roomLabel, arcFaultMarkers)
}

// IsGroundFaultDevice reports whether a device-type name identifies a
// ground-fault protection device.
func IsGroundFaultDevice(deviceType string) bool {
	return matchesAny(deviceType, groundFaultDeviceMarkers)
}

func matchesAny(s string, markers []string) bool {
	s = strings.ToLower(s)
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// AmpacityForConductor derives the breaker ampacity from a conductor
// designation such as "14/2 NM-B". Unrecognized designations default to
// 15 A.
func AmpacityForConductor(conductor string) int {
	gauge, _, _ := strings.Cut(strings.TrimSpace(conductor), "/")
	if amps, ok := gaugeAmpacity[gauge]; ok {
		return amps
	}
	return defaultAmpacity
}

// MinimumConductorGauge returns the smallest conductor gauge permitted
// for a breaker ampacity, as the gauge prefix ("14", "12", ...). Used to
// cross-check recorded conductors against circuit ampacity.
func MinimumConductorGauge(ampacity int) string {
	switch {
	case ampacity <= 15:
		return "14"
	case ampacity <= 20:
		return "12"
	case ampacity <= 30:
		return "10"
	case ampacity <= 40:
		return "8"
	default:
		return "6"
	}
}

// Synthesize groups an estimate's line items into a panel circuit
// schedule. Items sharing (room label, device type) merge into one
// circuit with a concatenated description. Protection flags derive from
// the device name and the room classification lists; ampacity derives
// from the conductor gauge. Circuit numbers run contiguously from 1 in
// first-appearance order.
//
// This is a classification and numbering pass, not a load calculation:
// it does not balance phases or model panel fill. An empty item list
// yields an empty schedule.
func Synthesize(items []estimate.LineItem) []Circuit {
	type groupKey struct {
		room   string
		device string
	}

	var order []groupKey
	groups := make(map[groupKey][]estimate.LineItem)
	for _, item := range items {
		key := groupKey{
			room:   strings.ToLower(strings.TrimSpace(item.RoomLabel)),
			device: strings.ToLower(strings.TrimSpace(item.DeviceType)),
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], item)
	}

	circuits := make([]Circuit, 0, len(order))
	for i, key := range order {
		group := groups[key]
		first := group[0]

		parts := make([]string, 0, len(group))
		for _, item := range group {
			parts = append(parts, fmt.Sprintf("%s %s x%d", item.RoomLabel, item.DeviceType, item.Quantity))
		}

		ampacity := AmpacityForConductor(first.Conductor)
		poles := 1
		if ampacity > 20 {
			poles = 2
		}

		circuits = append(circuits, Circuit{
			ID:            uuid.NewString(),
			EstimateID:    first.EstimateID,
			CircuitNumber: i + 1,
			Ampacity:      ampacity,
			Poles:         poles,
			Description:   strings.Join(parts, "; "),
			Conductor:     first.Conductor,
			GFCI:          IsGroundFaultDevice(first.DeviceType) || IsWetLocation(first.RoomLabel),
			AFCI:          IsArcFaultLocation(first.RoomLabel),
		})
	}
	return circuits
}
