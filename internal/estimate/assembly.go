package estimate

import (
	"fmt"
	"sort"
	"strings"
)

// Assembly describes the installation package for one device type: the
// rough-in description, the conductor it is wired with, and the labour
// allowance per device.
type Assembly struct {
	Device      string  `json:"device"`
	Description string  `json:"description"`
	Conductor   string  `json:"conductor"`
	LabourHours float64 `json:"labour_hours"`
}

// AssemblyMatch is one ranked candidate from MatchAssembly. Score is in
// (0, 1]; 1.0 means an exact device-type match.
type AssemblyMatch struct {
	Assembly Assembly `json:"assembly"`
	Score    float64  `json:"score"`
}

// assemblies is the installation catalogue, in display order. Conductors
// are NM-B designations sized for the typical circuit the device lands on;
// labour hours are rough-in plus trim per device.
var assemblies = []Assembly{
	{Device: "duplex_receptacle", Description: "15A duplex receptacle, box and plate", Conductor: "14/2 NM-B", LabourHours: 0.18},
	{Device: "gfci_receptacle", Description: "20A GFCI receptacle, box and plate", Conductor: "12/2 NM-B", LabourHours: 0.25},
	{Device: "split_receptacle", Description: "15A split receptacle on 3-wire circuit", Conductor: "14/3 NM-B", LabourHours: 0.30},
	{Device: "dedicated_receptacle", Description: "Dedicated appliance receptacle", Conductor: "12/2 NM-B", LabourHours: 0.30},
	{Device: "outdoor_receptacle", Description: "Weather-resistant GFCI receptacle, in-use cover", Conductor: "12/2 NM-B", LabourHours: 0.35},
	{Device: "dryer_outlet", Description: "30A dryer outlet, NEMA 14-30", Conductor: "10/3 NM-B", LabourHours: 0.50},
	{Device: "range_outlet", Description: "40A range outlet, NEMA 14-50", Conductor: "8/3 NM-B", LabourHours: 0.60},
	{Device: "single_pole_switch", Description: "Single-pole switch, box and plate", Conductor: "14/2 NM-B", LabourHours: 0.15},
	{Device: "three_way_switch", Description: "3-way switch, box and plate", Conductor: "14/3 NM-B", LabourHours: 0.25},
	{Device: "four_way_switch", Description: "4-way switch, box and plate", Conductor: "14/3 NM-B", LabourHours: 0.30},
	{Device: "dimmer_switch", Description: "Dimmer switch, box and plate", Conductor: "14/2 NM-B", LabourHours: 0.20},
	{Device: "recessed_light", Description: "Recessed LED luminaire", Conductor: "14/2 NM-B", LabourHours: 0.35},
	{Device: "surface_mount_light", Description: "Surface-mount luminaire", Conductor: "14/2 NM-B", LabourHours: 0.25},
	{Device: "pendant_light", Description: "Pendant luminaire", Conductor: "14/2 NM-B", LabourHours: 0.40},
	{Device: "fluorescent_light", Description: "Strip luminaire", Conductor: "14/2 NM-B", LabourHours: 0.30},
	{Device: "vapour_proof_light", Description: "Vapour-proof luminaire", Conductor: "14/2 NM-B", LabourHours: 0.30},
	{Device: "exterior_light", Description: "Exterior wall luminaire", Conductor: "14/2 NM-B", LabourHours: 0.35},
	{Device: "exhaust_fan", Description: "Exhaust fan, ducted", Conductor: "14/2 NM-B", LabourHours: 0.50},
	{Device: "range_hood_fan", Description: "Range hood, ducted", Conductor: "14/2 NM-B", LabourHours: 0.45},
	{Device: "radiant_floor_heat", Description: "In-floor heating cable with GFCI thermostat", Conductor: "12/2 NM-B", LabourHours: 1.50},
	{Device: "smoke_co_combo", Description: "Interconnected smoke/CO alarm", Conductor: "14/3 NM-B", LabourHours: 0.30},
	{Device: "doorbell", Description: "Door chime, transformer and button", Conductor: "18/2 LVT", LabourHours: 0.30},
	{Device: "thermostat", Description: "Low-voltage thermostat", Conductor: "18/5 LVT", LabourHours: 0.25},
	{Device: "data_outlet", Description: "Data outlet, home run to panel", Conductor: "Cat6", LabourHours: 0.25},
	{Device: "tv_outlet", Description: "Coaxial outlet, home run to panel", Conductor: "RG6", LabourHours: 0.25},
	{Device: "panel_board", Description: "Distribution panel, 40-circuit, installed and terminated", Conductor: "3/0 ACWU", LabourHours: 8.00},
	{Device: "subpanel", Description: "Sub-panel with feeder breaker", Conductor: "6/3 NM-B", LabourHours: 4.00},
}

// Assemblies returns the installation catalogue in display order.
func Assemblies() []Assembly {
	out := make([]Assembly, len(assemblies))
	copy(out, assemblies)
	return out
}

// MatchAssembly returns the ranked assembly candidates for a device type.
// An exact match scores 1.0 and is the only candidate returned. Otherwise
// candidates are partial name matches (either name contains the other),
// scored by the shared fraction of the longer name so callers can see how
// confident the match is instead of getting a silent first-match answer.
// Returns ErrNoAssemblyMatch when nothing matches at all.
func MatchAssembly(deviceType string) ([]AssemblyMatch, error) {
	key := strings.ToLower(strings.TrimSpace(deviceType))
	if key == "" {
		return nil, fmt.Errorf("%w: empty device type", ErrNoAssemblyMatch)
	}

	var matches []AssemblyMatch
	for _, a := range assemblies {
		if a.Device == key {
			return []AssemblyMatch{{Assembly: a, Score: 1.0}}, nil
		}
		if strings.Contains(a.Device, key) || strings.Contains(key, a.Device) {
			shorter, longer := len(a.Device), len(key)
			if shorter > longer {
				shorter, longer = longer, shorter
			}
			matches = append(matches, AssemblyMatch{
				Assembly: a,
				Score:    float64(shorter) / float64(longer),
			})
		}
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoAssemblyMatch, deviceType)
	}

	// Stable rank: best score first, catalogue order breaks ties.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches, nil
}
