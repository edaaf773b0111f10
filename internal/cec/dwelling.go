package cec

// GenerateDwellingDevices derives devices that belong to the dwelling as a
// whole rather than to any single room: service equipment, entry hardware,
// exterior lighting, and the smoke/CO alarm count scanned from the full
// room list. Call once per analysis; the output is dwelling-scoped and
// would double-count if invoked per room.
//
// Multi-unit dwellings (duplex/triplex/fourplex) get the base set per
// unit. A secondary suite adds one further parallel set of entry devices,
// since the suite needs its own doorbell, thermostat, and alarm coverage.
func GenerateDwellingDevices(rooms []DetectedRoom, ctx *DwellingContext) []GeneratedDevice {
	set := newDeviceSet()

	units := 1
	if ctx != nil {
		units = ctx.Category.Units()
	}

	hallways := 0
	hasBasement := false
	for _, r := range rooms {
		if r.Type == RoomHallway {
			hallways++
		}
		if r.Type == RoomBasementFinished || r.Type == RoomBasementUnfinished || isBasementLevel(r.FloorLevel) {
			hasBasement = true
		}
	}
	// One alarm per hallway (minimum one per storey grouping), plus one
	// for the basement level when present.
	smokeCount := max(hallways, 1)
	if hasBasement {
		smokeCount++
	}

	set.add(DevicePanelBoard, units, "Main distribution panel, minimum 100 A service (CEC 8-200, 26-600)")
	set.add(DeviceDoorbell, units, "Door chime with low-voltage transformer (CEC 16-200)")
	set.add(DeviceThermostat, units, "Heating system control (CEC 62-200)")
	set.add(DeviceExteriorLight, 2*units, "Luminaires at front and rear entrances (CEC 30-102)")
	set.add(DeviceOutdoorReceptacle, units, "Weather-resistant GFCI receptacle accessible at grade (CEC 26-724 f, 26-704 1)")
	set.add(DeviceSmokeCOCombo, smokeCount*units, "Interconnected smoke/CO alarms per storey and outside sleeping areas (CEC 32-200, NBC 9.10.19)")

	if ctx != nil && ctx.HasSecondarySuite {
		set.add(DeviceDoorbell, 1, "Secondary suite entry chime (CEC 16-200)")
		set.add(DeviceThermostat, 1, "Independent heating control for secondary suite (CEC 62-200)")
		set.add(DeviceExteriorLight, 1, "Luminaire at secondary suite entrance (CEC 30-102)")
		set.add(DeviceSmokeCOCombo, 1, "Smoke/CO alarm within secondary suite (CEC 32-200)")
	}

	// Finish tier adds low-voltage rough-in, never code minimums.
	if ctx.EffectiveTier() != TierStandard {
		set.add(DeviceDataOutlet, 2*units, "Structured cabling rough-in")
		set.add(DeviceTVOutlet, units, "Coaxial outlet rough-in")
	}

	return set.devices()
}
