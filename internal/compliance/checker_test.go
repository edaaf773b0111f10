package compliance

import (
	"reflect"
	"testing"

	"github.com/sparkplan/sparkplan-core/internal/estimate"
	"github.com/sparkplan/sparkplan-core/internal/panel"
)

func item(room, device string, qty int) estimate.LineItem {
	return estimate.LineItem{
		EstimateID: "est-1",
		RoomLabel:  room,
		DeviceType: device,
		Quantity:   qty,
		Conductor:  "14/2 NM-B",
	}
}

// compliantItems is a small estimate that satisfies every weighted rule.
func compliantItems() []estimate.LineItem {
	return []estimate.LineItem{
		item("Kitchen", "gfci_receptacle", 2),
		item("Kitchen", "split_receptacle", 2),
		item("Kitchen", "recessed_light", 4),
		item("Kitchen", "single_pole_switch", 2),
		item("Bedroom 1", "duplex_receptacle", 3),
		item("Bedroom 1", "surface_mount_light", 1),
		item("Bedroom 1", "single_pole_switch", 1),
		item("Whole Dwelling", "smoke_co_combo", 2),
		item("Whole Dwelling", "outdoor_receptacle", 1),
		item("Whole Dwelling", "exterior_light", 2),
		item("Whole Dwelling", "doorbell", 1),
		item("Whole Dwelling", "thermostat", 1),
	}
}

func findByRule(t *testing.T, report Report, rule string) []Finding {
	t.Helper()
	var out []Finding
	for _, f := range report.Findings {
		if f.Rule == rule {
			out = append(out, f)
		}
	}
	return out
}

func TestCheckCompliantEstimate(t *testing.T) {
	items := compliantItems()
	circuits := panel.Synthesize(items)

	report := Check(items, circuits)

	if report.Summary[StatusFail] != 0 {
		t.Errorf("expected no FAIL findings, got %d: %+v", report.Summary[StatusFail], report.Findings)
	}
	if report.Summary[StatusWarn] != 0 {
		t.Errorf("expected no WARN findings, got %d: %+v", report.Summary[StatusWarn], report.Findings)
	}
	if report.ScorePct != 100 {
		t.Errorf("expected score 100, got %v", report.ScorePct)
	}
}

func TestCheckMissingSmokeDetector(t *testing.T) {
	items := compliantItems()
	var withoutSmoke []estimate.LineItem
	for _, li := range items {
		if li.DeviceType == "smoke_co_combo" {
			continue
		}
		withoutSmoke = append(withoutSmoke, li)
	}
	circuits := panel.Synthesize(withoutSmoke)

	report := Check(withoutSmoke, circuits)

	smoke := findByRule(t, report, "NBC 9.10.19 smoke alarms")
	if len(smoke) != 1 || smoke[0].Status != StatusFail {
		t.Fatalf("expected one FAIL smoke finding, got %+v", smoke)
	}

	// Removing the combo also removes CO detection, which is WARN not FAIL.
	// The smoke rule must be the only FAIL in the report.
	for _, f := range report.Findings {
		if f.Status == StatusFail && f.Rule != "NBC 9.10.19 smoke alarms" {
			t.Errorf("unexpected FAIL finding: %+v", f)
		}
	}
}

func TestCheckGroundFaultMissing(t *testing.T) {
	items := []estimate.LineItem{
		item("Main Bathroom", "duplex_receptacle", 1),
	}

	report := Check(items, nil)

	gfci := findByRule(t, report, "CEC 26-700 GFCI protection")
	if len(gfci) != 1 {
		t.Fatalf("expected one GFCI finding, got %d", len(gfci))
	}
	if gfci[0].Status != StatusFail {
		t.Errorf("expected FAIL, got %s", gfci[0].Status)
	}
	if gfci[0].Location != "Main Bathroom" {
		t.Errorf("expected location %q, got %q", "Main Bathroom", gfci[0].Location)
	}
}

func TestCheckArcFaultWarnsWithoutCircuit(t *testing.T) {
	items := []estimate.LineItem{
		item("Bedroom 2", "duplex_receptacle", 3),
	}

	// No circuits synthesized yet: the AFCI check cannot find a matching
	// circuit and must WARN rather than FAIL.
	report := Check(items, nil)

	afci := findByRule(t, report, "CEC 26-656 AFCI protection")
	if len(afci) != 1 || afci[0].Status != StatusWarn {
		t.Fatalf("expected one WARN AFCI finding, got %+v", afci)
	}
}

func TestCheckConductorMismatch(t *testing.T) {
	circuits := []panel.Circuit{
		{CircuitNumber: 1, Ampacity: 30, Poles: 2, Conductor: "14/2 NM-B", Description: "Laundry dryer_outlet x1"},
		{CircuitNumber: 2, Ampacity: 15, Poles: 1, Conductor: "14/2 NM-B", Description: "Office duplex_receptacle x2"},
	}

	report := Check(nil, circuits)

	conductor := findByRule(t, report, "CEC Table 2 conductor sizing")
	if len(conductor) != 1 {
		t.Fatalf("expected one conductor finding, got %d: %+v", len(conductor), conductor)
	}
	if conductor[0].Status != StatusWarn || conductor[0].Location != "Circuit 1" {
		t.Errorf("expected WARN on Circuit 1, got %+v", conductor[0])
	}
}

func TestCheckPanelSizing(t *testing.T) {
	tests := []struct {
		name     string
		circuits []panel.Circuit
		want     string
	}{
		{"empty panel", nil, "Connected breaker total 0 A; suggested service size 100 A (before demand factors)"},
		{"mid panel", []panel.Circuit{
			{Ampacity: 40, Poles: 2},
			{Ampacity: 20, Poles: 1},
			{Ampacity: 15, Poles: 1},
		}, "Connected breaker total 115 A; suggested service size 200 A (before demand factors)"},
		{"large panel", []panel.Circuit{
			{Ampacity: 50, Poles: 2},
			{Ampacity: 40, Poles: 2},
			{Ampacity: 30, Poles: 2},
		}, "Connected breaker total 240 A; suggested service size 400 A (before demand factors)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Check(nil, tt.circuits)
			sizing := findByRule(t, report, "CEC 8-200 service sizing")
			if len(sizing) != 1 {
				t.Fatalf("expected one sizing finding, got %d", len(sizing))
			}
			if sizing[0].Status != StatusInfo {
				t.Errorf("panel sizing must be INFO, got %s", sizing[0].Status)
			}
			if sizing[0].Description != tt.want {
				t.Errorf("description:\n  got:  %q\n  want: %q", sizing[0].Description, tt.want)
			}
		})
	}
}

func TestCheckEmptyEstimate(t *testing.T) {
	report := Check(nil, nil)

	// No rooms means no room-scoped findings; the dwelling-wide rough-in
	// rules and the panel-sizing INFO still run.
	for _, f := range report.Findings {
		if f.Location != "Dwelling" {
			t.Errorf("unexpected room-scoped finding on empty input: %+v", f)
		}
	}
	sizing := findByRule(t, report, "CEC 8-200 service sizing")
	if len(sizing) != 1 {
		t.Fatalf("expected panel-sizing finding on empty input, got %d", len(sizing))
	}
}

func TestCheckReadOnly(t *testing.T) {
	items := compliantItems()
	circuits := panel.Synthesize(items)

	itemsBefore := make([]estimate.LineItem, len(items))
	copy(itemsBefore, items)
	circuitsBefore := make([]panel.Circuit, len(circuits))
	copy(circuitsBefore, circuits)

	Check(items, circuits)

	if !reflect.DeepEqual(items, itemsBefore) {
		t.Errorf("Check mutated line items")
	}
	if !reflect.DeepEqual(circuits, circuitsBefore) {
		t.Errorf("Check mutated circuits")
	}
}

func TestCheckDeterministic(t *testing.T) {
	items := compliantItems()
	circuits := panel.Synthesize(items)

	a := Check(items, circuits)
	b := Check(items, circuits)

	if !reflect.DeepEqual(a, b) {
		t.Errorf("Check is not deterministic")
	}
}

func TestCheckSwitchingWarn(t *testing.T) {
	items := []estimate.LineItem{
		item("Office", "recessed_light", 4),
	}

	report := Check(items, nil)

	switching := findByRule(t, report, "CEC 30-504 luminaire switching")
	if len(switching) != 1 || switching[0].Status != StatusWarn {
		t.Fatalf("expected one WARN switching finding, got %+v", switching)
	}
	if switching[0].Location != "Office" {
		t.Errorf("expected location Office, got %q", switching[0].Location)
	}
}

func TestScoreExcludesInfo(t *testing.T) {
	tests := []struct {
		name    string
		summary map[Status]int
		want    float64
	}{
		{"all pass", map[Status]int{StatusPass: 4, StatusInfo: 3}, 100},
		{"half pass", map[Status]int{StatusPass: 2, StatusFail: 1, StatusWarn: 1}, 50},
		{"only info", map[Status]int{StatusInfo: 2}, 100},
		{"empty", map[Status]int{}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := score(tt.summary); got != tt.want {
				t.Errorf("score(%v) = %v, want %v", tt.summary, got, tt.want)
			}
		})
	}
}
