package cec

import (
	"math"
	"strings"
)

// GenerateRoomDevices produces the required device list for a single room
// under CEC 2021. Room types with bespoke code rules (kitchens, bathrooms,
// garages, laundry, outdoor spaces, saunas) get dedicated branches; every
// other catalogued type goes through the generic spacing path; types the
// catalogue has never seen degrade to a minimal generic set so an
// unexpected classification from the plan reader never aborts a run.
//
// Pure function: no I/O, deterministic for identical inputs. The context
// may be nil, which is treated as a standard-tier single dwelling.
func GenerateRoomDevices(room DetectedRoom, ctx *DwellingContext) []GeneratedDevice {
	set := newDeviceSet()

	switch room.Type {
	case RoomKitchen:
		generateKitchen(set, room)
	case RoomBathroom, RoomEnsuite:
		generateBathroom(set, room, ctx)
	case RoomPowderRoom:
		generatePowderRoom(set)
	case RoomGarage:
		generateGarage(set, room)
	case RoomLaundryRoom:
		generateLaundry(set, room)
	case RoomCoveredDeck, RoomDeck, RoomPatio:
		generateOutdoor(set)
	case RoomSauna:
		generateSauna(set)
	default:
		req, ok := Lookup(room.Type)
		if !ok {
			generateUnrecognized(set)
		} else {
			generateFromCatalogue(set, room, req, ctx)
		}
	}

	// Secondary-suite feeder: keyed on the suite flag and the floor level,
	// not on room type, so a suite gets its sub-panel even when its rooms
	// are classified oddly.
	if ctx != nil && ctx.HasSecondarySuite && isBasementLevel(room.FloorLevel) {
		set.add(DeviceSubPanel, 1, "Secondary suite sub-panel with dedicated feeder (CEC 6-200, 8-200)")
	}

	return set.devices()
}

func isBasementLevel(floor string) bool {
	return strings.Contains(strings.ToLower(floor), "basement")
}

// areaScaledCount implements max(minimum, floor(area/divisor)) used for
// fixtures that scale with room size.
func areaScaledCount(areaSqFt float64, divisor float64, minimum int) int {
	n := int(areaSqFt / divisor)
	if n < minimum {
		return minimum
	}
	return n
}

// switchCountFor upgrades single-pole switching to 3-way for large open
// rooms, where the code expects control from more than one entry point.
func switchCountFor(room DetectedRoom, minimum int) (DeviceType, int) {
	if minimum >= 2 {
		return DeviceThreeWaySwitch, minimum
	}
	if minimum == 1 && room.AreaSqFt >= 250 {
		return DeviceThreeWaySwitch, 2
	}
	return DeviceSinglePoleSwitch, minimum
}

func generateKitchen(set *deviceSet, room DetectedRoom) {
	// Counter receptacles follow the 900 mm rule and must be split or
	// 20 A T-slot on dedicated circuits.
	counters, err := ReceptacleCountFromArea(room.AreaSqFt, 0.9, 2)
	if err != nil {
		counters = 2
	}
	set.add(DeviceSplitReceptacle, counters, "Counter receptacles, no point >900 mm from outlet, dedicated circuits (CEC 26-722 d, 26-656 d)")
	set.add(DeviceDedicatedReceptacle, 1, "Refrigerator on dedicated circuit (CEC 26-654 a)")
	set.add(DeviceRangeOutlet, 1, "Range 14-50 outlet on dedicated 40 A circuit (CEC 26-744 4)")
	set.add(DeviceDuplexReceptacle, 2, "General wall receptacles, 1.8 m rule (CEC 26-722 a)")
	set.add(DeviceGFCIReceptacle, 1, "Receptacle within 1.5 m of sink requires GFCI (CEC 26-704 1)")

	set.add(DeviceRecessedLight, areaScaledCount(room.AreaSqFt, 30, 4), "Task lighting over counters and island (CEC 30-506)")
	set.add(DeviceRangeHoodFan, 1, "Range hood exhaust on lighting or dedicated circuit (CEC 26-746)")
	set.add(DeviceSinglePoleSwitch, 2, "Lighting and hood control (CEC 26-658 1)")
}

func generateBathroom(set *deviceSet, room DetectedRoom, ctx *DwellingContext) {
	set.add(DeviceGFCIReceptacle, 1, "Receptacle within 1 m of wash basin, GFCI protected (CEC 26-720 f, 26-704 1)")
	set.add(DeviceExhaustFan, 1, "Exhaust fan for room with tub or shower (NBC 9.32, CEC 30-320)")
	set.add(DeviceVapourProofLight, 1, "Vapour-proof luminaire over tub/shower zone (CEC 30-320)")
	set.add(DeviceSurfaceMountLight, 1, "Vanity luminaire, wall switched (CEC 26-720 g)")
	set.add(DeviceSinglePoleSwitch, 2, "Separate switching for luminaire and fan (CEC 26-658 1)")

	// Finish tier adds comfort devices but never changes the safety set.
	if room.Type == RoomEnsuite && ctx.EffectiveTier() != TierStandard {
		set.add(DeviceRadiantFloorHeat, 1, "In-floor heating cable with GFCI breaker (CEC 62-300)")
	}
}

func generatePowderRoom(set *deviceSet) {
	set.add(DeviceGFCIReceptacle, 1, "Receptacle within 1 m of wash basin, GFCI protected (CEC 26-720 f, 26-704 1)")
	set.add(DeviceSurfaceMountLight, 1, "Vanity luminaire, wall switched (CEC 26-720 g)")
	set.add(DeviceExhaustFan, 1, "Exhaust fan for windowless washroom (NBC 9.32)")
	set.add(DeviceSinglePoleSwitch, 1, "Lighting control (CEC 26-658 1)")
}

func generateGarage(set *deviceSet, room DetectedRoom) {
	carSpaces := int(math.Max(1, math.Floor(room.AreaSqFt/250)))
	set.add(DeviceDuplexReceptacle, carSpaces, "One receptacle per car space, dedicated circuit (CEC 26-724 b, 26-656 h)")
	set.add(DeviceDuplexReceptacle, 1, "Garage door opener receptacle (CEC 26-724 c)")
	set.add(DeviceGFCIReceptacle, 1, "GFCI protection at grade-level use (CEC 26-704 1)")
	set.add(DeviceFluorescentLight, areaScaledCount(room.AreaSqFt, 200, 1), "General garage lighting (CEC 30-702)")
	set.add(DeviceThreeWaySwitch, 2, "3-way switching from house entry and garage door (CEC 26-658 1)")
}

func generateLaundry(set *deviceSet, room DetectedRoom) {
	set.add(DeviceDuplexReceptacle, 2, "Washer receptacle on dedicated circuit plus one additional (CEC 26-720 e, 26-654 b)")
	set.add(DeviceDryerOutlet, 1, "Dryer 14-30 outlet on dedicated 30 A circuit (CEC 26-744 2)")
	if room.HasSink {
		set.add(DeviceGFCIReceptacle, 1, "Receptacle within 1.5 m of laundry sink requires GFCI (CEC 26-704 1)")
	}
	set.add(DeviceSurfaceMountLight, 1, "General laundry lighting (CEC 30-200)")
	set.add(DeviceSinglePoleSwitch, 1, "Lighting control (CEC 26-658 1)")
}

func generateOutdoor(set *deviceSet) {
	set.add(DeviceOutdoorReceptacle, 1, "Weather-resistant GFCI receptacle (CEC 26-724 a, 26-704 1)")
	set.add(DeviceExteriorLight, 1, "Exterior luminaire at outdoor living space (CEC 30-102)")
	set.add(DeviceSinglePoleSwitch, 1, "Switched from inside the dwelling (CEC 26-658 1)")
}

func generateSauna(set *deviceSet) {
	set.add(DeviceVapourProofLight, 1, "Vapour-proof luminaire rated for sauna ambient (CEC 62-300, 30-320)")
	set.add(DeviceDedicatedReceptacle, 1, "Sauna heater connection on dedicated circuit, control outside room (CEC 62-300)")
	set.add(DeviceSinglePoleSwitch, 1, "Control outside the sauna room (CEC 62-300)")
}

// generateFromCatalogue is the generic path for catalogued types without a
// bespoke branch: spacing-derived receptacles, catalogue minimums for
// lighting and switching, and the safety flags the record carries.
func generateFromCatalogue(set *deviceSet, room DetectedRoom, req RoomRequirement, ctx *DwellingContext) {
	spacing := 0.0
	if req.UsesWallSpacing {
		spacing = req.WallSpacingM
	}
	receptacles, err := ReceptacleCountFromArea(room.AreaSqFt, spacing, req.MinReceptacles)
	if err != nil {
		receptacles = req.MinReceptacles
	}
	set.add(req.ReceptacleType, receptacles, citationNote("General receptacles", req))
	for _, extra := range req.ExtraReceptacles {
		set.add(extra.Type, extra.Count, extra.Note)
	}

	lights := req.MinLightingOutlets
	lightType := DeviceSurfaceMountLight
	switch room.Type {
	case RoomLivingRoom, RoomFamilyRoom, RoomGreatRoom:
		lights = areaScaledCount(room.AreaSqFt, 40, max(lights, 4))
		lightType = DeviceRecessedLight
	case RoomPrimaryBedroom:
		if ctx.EffectiveTier() != TierStandard {
			lights = areaScaledCount(room.AreaSqFt, 40, max(lights, 4))
			lightType = DeviceRecessedLight
		}
	case RoomBasementUnfinished:
		lights = areaScaledCount(room.AreaSqFt, 200, max(lights, 1))
		lightType = DeviceFluorescentLight
	}
	set.add(lightType, lights, citationNote("Lighting outlet", req))

	switchType, switches := switchCountFor(room, req.MinSwitches)
	set.add(switchType, switches, citationNote("Lighting control", req))

	if req.NeedsExhaustFan {
		set.add(DeviceExhaustFan, 1, citationNote("Exhaust fan", req))
	}
	if req.NeedsSmokeDetector || req.NeedsCODetector {
		set.add(DeviceSmokeCOCombo, 1, "Interconnected smoke/CO alarm (CEC 32-200, NBC 9.10.19)")
	}
}

// generateUnrecognized is the no-data fallback for room types the
// catalogue has never seen: one receptacle, one luminaire, one switch,
// each with a blanket citation.
func generateUnrecognized(set *deviceSet) {
	set.add(DeviceDuplexReceptacle, 1, "General receptacle for finished area (CEC 26-722 a)")
	set.add(DeviceSurfaceMountLight, 1, "General lighting outlet (CEC 30-200)")
	set.add(DeviceSinglePoleSwitch, 1, "Lighting control (CEC 26-658 1)")
}

func citationNote(prefix string, req RoomRequirement) string {
	if len(req.Citations) == 0 {
		return prefix
	}
	return prefix + " (CEC " + strings.Join(req.Citations, ", ") + ")"
}
