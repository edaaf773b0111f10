package compliance

import (
	"fmt"
	"strings"

	"github.com/sparkplan/sparkplan-core/internal/estimate"
	"github.com/sparkplan/sparkplan-core/internal/panel"
)

// Rule citation labels. Each finding carries one of these so the report
// reads as a checklist against the governing code sections.
const (
	ruleGFCI          = "CEC 26-700 GFCI protection"
	ruleAFCI          = "CEC 26-656 AFCI protection"
	ruleSmoke         = "NBC 9.10.19 smoke alarms"
	ruleCO            = "NBC 9.32.3.9 CO alarms"
	ruleKitchenSplit  = "CEC 26-712 kitchen counter circuits"
	rulePanelSizing   = "CEC 8-200 service sizing"
	ruleConductor     = "CEC Table 2 conductor sizing"
	ruleOutdoor       = "CEC 26-724 outdoor receptacle"
	ruleExteriorLight = "NBC 9.34.2 exterior lighting"
	ruleDoorbell      = "Doorbell rough-in"
	ruleThermostat    = "Thermostat rough-in"
	ruleSwitching     = "CEC 30-504 luminaire switching"
)

const dwellingLocation = "Dwelling"

// coMarkers identifies carbon-monoxide detection devices by name. Plain
// "co" would false-match too many device names, so only the combined and
// spelled-out forms count.
var coMarkers = []string{"co_combo", "co_detector", "carbon_monoxide"}

// roomGroup collects one room's line items under its first-seen display
// label.
type roomGroup struct {
	label string
	items []estimate.LineItem
}

// Check evaluates the full rule sequence against an estimate's line items
// and its synthesized circuit schedule. It is read-only and deterministic:
// the same inputs always produce the same report, and neither input slice
// is modified.
//
// Missing data is never an error. An empty estimate still produces the
// dwelling-scoped findings — the smoke/CO, outdoor-receptacle,
// exterior-lighting, doorbell, and thermostat rules report the absences,
// and panel sizing reports 0 A on a 100 A service.
func Check(items []estimate.LineItem, circuits []panel.Circuit) Report {
	var findings []Finding

	rooms := groupRooms(items)

	findings = append(findings, checkGroundFault(rooms)...)
	findings = append(findings, checkArcFault(rooms, circuits)...)
	findings = append(findings, checkSmokeAlarms(items))
	findings = append(findings, checkCOAlarms(items))
	findings = append(findings, checkKitchenSplits(rooms)...)
	findings = append(findings, checkPanelSizing(circuits))
	findings = append(findings, checkConductorSizing(circuits)...)
	findings = append(findings, checkOutdoorReceptacle(items))
	findings = append(findings, checkExteriorLighting(items))
	findings = append(findings, checkDoorbell(items))
	findings = append(findings, checkThermostat(items))
	findings = append(findings, checkSwitching(rooms)...)

	summary := make(map[Status]int)
	for _, f := range findings {
		summary[f.Status]++
	}

	return Report{
		Findings: findings,
		Summary:  summary,
		ScorePct: score(summary),
	}
}

// score is the percentage of weighted findings that passed. INFO findings
// are advisory and excluded; a report with nothing to weigh scores 100.
func score(summary map[Status]int) float64 {
	weighted := summary[StatusPass] + summary[StatusWarn] + summary[StatusFail]
	if weighted == 0 {
		return 100
	}
	return float64(summary[StatusPass]) / float64(weighted) * 100
}

// groupRooms buckets line items by case-insensitive room label, keeping
// first-seen order and the first occurrence's display form.
func groupRooms(items []estimate.LineItem) []roomGroup {
	var order []string
	byKey := make(map[string]*roomGroup)
	for _, item := range items {
		key := strings.ToLower(strings.TrimSpace(item.RoomLabel))
		g, ok := byKey[key]
		if !ok {
			g = &roomGroup{label: item.RoomLabel}
			byKey[key] = g
			order = append(order, key)
		}
		g.items = append(g.items, item)
	}

	groups := make([]roomGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, *byKey[key])
	}
	return groups
}

func checkGroundFault(rooms []roomGroup) []Finding {
	var findings []Finding
	for _, room := range rooms {
		if !panel.IsWetLocation(room.label) {
			continue
		}
		protected := false
		for _, item := range room.items {
			if panel.IsGroundFaultDevice(item.DeviceType) {
				protected = true
				break
			}
		}
		if protected {
			findings = append(findings, Finding{
				Rule:        ruleGFCI,
				Location:    room.label,
				Status:      StatusPass,
				Description: "Wet location has GFCI-protected receptacle(s)",
			})
		} else {
			findings = append(findings, Finding{
				Rule:        ruleGFCI,
				Location:    room.label,
				Status:      StatusFail,
				Description: "Wet location has no GFCI-protected receptacle",
			})
		}
	}
	return findings
}

// checkArcFault matches rooms against circuit descriptions by substring.
// Descriptions are free text concatenated from line items, so a miss is a
// WARN rather than a FAIL.
func checkArcFault(rooms []roomGroup, circuits []panel.Circuit) []Finding {
	var findings []Finding
	for _, room := range rooms {
		if !panel.IsArcFaultLocation(room.label) {
			continue
		}
		needle := strings.ToLower(room.label)
		protected := false
		for _, c := range circuits {
			if c.AFCI && strings.Contains(strings.ToLower(c.Description), needle) {
				protected = true
				break
			}
		}
		if protected {
			findings = append(findings, Finding{
				Rule:        ruleAFCI,
				Location:    room.label,
				Status:      StatusPass,
				Description: "Habitable room is served by an AFCI circuit",
			})
		} else {
			findings = append(findings, Finding{
				Rule:        ruleAFCI,
				Location:    room.label,
				Status:      StatusWarn,
				Description: "No AFCI circuit found mentioning this room; verify breaker selection",
			})
		}
	}
	return findings
}

func checkSmokeAlarms(items []estimate.LineItem) Finding {
	if anyDevice(items, "smoke") {
		return Finding{
			Rule:        ruleSmoke,
			Location:    dwellingLocation,
			Status:      StatusPass,
			Description: "Smoke detection devices present",
		}
	}
	return Finding{
		Rule:        ruleSmoke,
		Location:    dwellingLocation,
		Status:      StatusFail,
		Description: "No smoke detection devices in the estimate",
	}
}

func checkCOAlarms(items []estimate.LineItem) Finding {
	for _, marker := range coMarkers {
		if anyDevice(items, marker) {
			return Finding{
				Rule:        ruleCO,
				Location:    dwellingLocation,
				Status:      StatusPass,
				Description: "Carbon monoxide detection devices present",
			}
		}
	}
	return Finding{
		Rule:        ruleCO,
		Location:    dwellingLocation,
		Status:      StatusWarn,
		Description: "No carbon monoxide detection devices found; required near sleeping areas",
	}
}

func checkKitchenSplits(rooms []roomGroup) []Finding {
	var findings []Finding
	for _, room := range rooms {
		if !strings.Contains(strings.ToLower(room.label), "kitchen") {
			continue
		}
		if anyDevice(room.items, "split") {
			findings = append(findings, Finding{
				Rule:        ruleKitchenSplit,
				Location:    room.label,
				Status:      StatusPass,
				Description: "Split counter receptacles present",
			})
		} else {
			findings = append(findings, Finding{
				Rule:        ruleKitchenSplit,
				Location:    room.label,
				Status:      StatusInfo,
				Description: "No split counter receptacles; 20 A T-slot circuits may be in use instead",
			})
		}
	}
	return findings
}

func checkPanelSizing(circuits []panel.Circuit) Finding {
	total := 0
	for _, c := range circuits {
		total += c.Ampacity * c.Poles
	}

	service := 400
	switch {
	case total <= 100:
		service = 100
	case total <= 200:
		service = 200
	}

	return Finding{
		Rule:        rulePanelSizing,
		Location:    dwellingLocation,
		Status:      StatusInfo,
		Description: fmt.Sprintf("Connected breaker total %d A; suggested service size %d A (before demand factors)", total, service),
	}
}

func checkConductorSizing(circuits []panel.Circuit) []Finding {
	var findings []Finding
	for _, c := range circuits {
		if c.Conductor == "" {
			continue
		}
		gauge := panel.MinimumConductorGauge(c.Ampacity)
		if !strings.HasPrefix(strings.TrimSpace(c.Conductor), gauge) {
			findings = append(findings, Finding{
				Rule:        ruleConductor,
				Location:    fmt.Sprintf("Circuit %d", c.CircuitNumber),
				Status:      StatusWarn,
				Description: fmt.Sprintf("Conductor %q may be undersized for %d A; expected %s AWG or larger", c.Conductor, c.Ampacity, gauge),
			})
		}
	}
	return findings
}

func checkOutdoorReceptacle(items []estimate.LineItem) Finding {
	if anyDevice(items, "outdoor_receptacle") {
		return Finding{
			Rule:        ruleOutdoor,
			Location:    dwellingLocation,
			Status:      StatusPass,
			Description: "Outdoor receptacle present",
		}
	}
	return Finding{
		Rule:        ruleOutdoor,
		Location:    dwellingLocation,
		Status:      StatusFail,
		Description: "No outdoor receptacle; at least one weather-resistant GFCI receptacle is required",
	}
}

func checkExteriorLighting(items []estimate.LineItem) Finding {
	if anyDevice(items, "exterior_light") {
		return Finding{
			Rule:        ruleExteriorLight,
			Location:    dwellingLocation,
			Status:      StatusPass,
			Description: "Exterior lighting present",
		}
	}
	return Finding{
		Rule:        ruleExteriorLight,
		Location:    dwellingLocation,
		Status:      StatusWarn,
		Description: "No exterior lighting found; entrances require a controlled luminaire",
	}
}

func checkDoorbell(items []estimate.LineItem) Finding {
	if anyDevice(items, "doorbell") {
		return Finding{
			Rule:        ruleDoorbell,
			Location:    dwellingLocation,
			Status:      StatusPass,
			Description: "Doorbell rough-in present",
		}
	}
	return Finding{
		Rule:        ruleDoorbell,
		Location:    dwellingLocation,
		Status:      StatusInfo,
		Description: "No doorbell rough-in; customary but not code-mandated",
	}
}

func checkThermostat(items []estimate.LineItem) Finding {
	if anyDevice(items, "thermostat") {
		return Finding{
			Rule:        ruleThermostat,
			Location:    dwellingLocation,
			Status:      StatusPass,
			Description: "Thermostat rough-in present",
		}
	}
	return Finding{
		Rule:        ruleThermostat,
		Location:    dwellingLocation,
		Status:      StatusWarn,
		Description: "No thermostat rough-in found; heating control wiring is expected",
	}
}

// checkSwitching flags rooms with lighting but no switching. Dwelling-wide
// devices like exterior lights live under an aggregate label and are
// skipped since their switching is attributed to adjacent rooms.
func checkSwitching(rooms []roomGroup) []Finding {
	var findings []Finding
	for _, room := range rooms {
		if strings.Contains(strings.ToLower(room.label), "dwelling") {
			continue
		}
		lights := 0
		switches := 0
		for _, item := range room.items {
			name := strings.ToLower(item.DeviceType)
			if strings.Contains(name, "light") {
				lights += item.Quantity
			}
			if strings.Contains(name, "switch") {
				switches += item.Quantity
			}
		}
		if lights > 0 && switches == 0 {
			findings = append(findings, Finding{
				Rule:        ruleSwitching,
				Location:    room.label,
				Status:      StatusWarn,
				Description: "Room has luminaires but no wall switch",
			})
		}
	}
	return findings
}

func anyDevice(items []estimate.LineItem, marker string) bool {
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.DeviceType), marker) {
			return true
		}
	}
	return false
}
