package cec

// RoomRequirement is the catalogue record for one room type: the baseline
// CEC 2021 minimums plus the flags other components consume. It is the
// single source of truth for the citations attached to generic devices;
// room-specific generator branches may cite more specific sub-rules.
type RoomRequirement struct {
	Type RoomType

	// Receptacles
	MinReceptacles  int
	ReceptacleType  DeviceType
	UsesWallSpacing bool
	// WallSpacingM is the maximum distance from any point along a usable
	// wall to a receptacle, in metres (1.8 for finished rooms, 4.5 for
	// hallways, 0.9 for kitchen counters). Zero when no spacing rule applies.
	WallSpacingM float64
	// ExtraReceptacles are fixed additions beyond the spacing calculation
	// (appliance outlets, door-opener receptacles).
	ExtraReceptacles []ExtraReceptacle

	// Lighting and switching
	MinLightingOutlets int
	MinSwitches        int

	// Safety flags
	NeedsGFCI          bool
	NeedsAFCI          bool
	NeedsExhaustFan    bool
	NeedsSmokeDetector bool
	NeedsCODetector    bool

	// DedicatedCircuits lists appliances that must be on their own circuit,
	// with the governing rule in parentheses.
	DedicatedCircuits []string

	// Citations are the governing CEC 2021 rule references.
	Citations []string

	Note string
}

// ExtraReceptacle is a fixed receptacle addition attached to a catalogue
// record, independent of the spacing calculation.
type ExtraReceptacle struct {
	Type  DeviceType
	Count int
	Note  string
}

// Lookup returns the catalogue record for a room type. The second return
// value is false for unrecognized types; callers fall back to the minimal
// generic device set in that case.
func Lookup(t RoomType) (RoomRequirement, bool) {
	req, ok := catalogue[t]
	return req, ok
}

// Hallways use a longer spacing distance than other rooms: no point may be
// further than 4.5 m from a receptacle measured along the shortest cord path.
const hallwaySpacingM = 4.5

// The standard finished-room wall spacing distance (CEC 26-722 a).
const standardSpacingM = 1.8

// catalogue maps every known room type to its baseline requirement.
// The set is fixed at build time and is not user-editable.
var catalogue = map[RoomType]RoomRequirement{
	RoomKitchen: {
		Type:            RoomKitchen,
		MinReceptacles:  2,
		ReceptacleType:  DeviceSplitReceptacle,
		UsesWallSpacing: true,
		WallSpacingM:    0.9,
		ExtraReceptacles: []ExtraReceptacle{
			{Type: DeviceDedicatedReceptacle, Count: 1, Note: "Refrigerator on dedicated circuit (CEC 26-654 a)"},
			{Type: DeviceDuplexReceptacle, Count: 2, Note: "General wall receptacles, 1.8 m rule (CEC 26-722 a)"},
		},
		MinLightingOutlets: 1,
		MinSwitches:        1,
		NeedsGFCI:          true,
		NeedsAFCI:          false, // counter receptacles are exempt from AFCI
		DedicatedCircuits:  []string{"Refrigerator (26-654 a)", "2x counter circuits (26-656 d)"},
		Citations:          []string{"26-722 d)", "26-654 a)", "26-656 d)", "26-704 1)"},
		Note:               "No point along a counter more than 900 mm from a receptacle; minimum two branch circuits for counters.",
	},
	RoomBathroom: {
		Type:               RoomBathroom,
		MinReceptacles:     1,
		ReceptacleType:     DeviceGFCIReceptacle,
		UsesWallSpacing:    false, // bathrooms are excluded from the 1.8 m rule
		WallSpacingM:       0,
		MinLightingOutlets: 1,
		MinSwitches:        1,
		NeedsGFCI:          true,
		NeedsAFCI:          true,
		NeedsExhaustFan:    true,
		Citations:          []string{"26-720 f)", "26-720 g)", "26-704 1)", "30-320"},
		Note:               "Receptacle within 1 m of the wash basin, minimum 500 mm from tub/shower. Wall switch for luminaire.",
	},
	RoomEnsuite: {
		Type:               RoomEnsuite,
		MinReceptacles:     1,
		ReceptacleType:     DeviceGFCIReceptacle,
		UsesWallSpacing:    false,
		MinLightingOutlets: 1,
		MinSwitches:        1,
		NeedsGFCI:          true,
		NeedsAFCI:          true,
		NeedsExhaustFan:    true,
		Citations:          []string{"26-720 f)", "26-720 g)", "26-704 1)", "30-320"},
		Note:               "Treated as a full bathroom. Receptacle within 1 m of the wash basin.",
	},
	RoomPowderRoom: {
		Type:               RoomPowderRoom,
		MinReceptacles:     1,
		ReceptacleType:     DeviceGFCIReceptacle,
		UsesWallSpacing:    false,
		MinLightingOutlets: 1,
		MinSwitches:        1,
		NeedsGFCI:          true,
		NeedsAFCI:          true,
		Citations:          []string{"26-720 f)", "26-704 1)", "30-320"},
		Note:               "Receptacle within 1 m of the wash basin. No tub or shower, so no exhaust fan minimum.",
	},
	RoomPrimaryBedroom: {
		Type:               RoomPrimaryBedroom,
		MinReceptacles:     4,
		ReceptacleType:     DeviceDuplexReceptacle,
		UsesWallSpacing:    true,
		WallSpacingM:       standardSpacingM,
		MinLightingOutlets: 1,
		MinSwitches:        1,
		NeedsAFCI:          true,
		NeedsSmokeDetector: true,
		Citations:          []string{"26-722 a)", "26-658 1)", "32-200"},
		Note:               "Smoke alarm required in sleeping rooms. AFCI protection required.",
	},
	RoomBedroom: {
		Type:               RoomBedroom,
		MinReceptacles:     3,
		ReceptacleType:     DeviceDuplexReceptacle,
		UsesWallSpacing:    true,
		WallSpacingM:       standardSpacingM,
		MinLightingOutlets: 1,
		MinSwitches:        1,
		NeedsAFCI:          true,
		NeedsSmokeDetector: true,
		Citations:          []string{"26-722 a)", "26-658 1)", "32-200"},
		Note:               "Smoke alarm required in sleeping rooms. AFCI protection required.",
	},
	RoomLivingRoom: {
		Type:               RoomLivingRoom,
		MinReceptacles:     4,
		ReceptacleType:     DeviceDuplexReceptacle,
		UsesWallSpacing:    true,
		WallSpacingM:       standardSpacingM,
		MinLightingOutlets: 1,
		MinSwitches:        1,
		NeedsAFCI:          true,
		NeedsSmokeDetector: true,
		Citations:          []string{"26-722 a)", "26-658 1)", "32-200"},
		Note:               "1.8 m wall spacing rule applies.",
	},
	RoomFamilyRoom: {
		Type:               RoomFamilyRoom,
		MinReceptacles:     4,
		ReceptacleType:     DeviceDuplexReceptacle,
		UsesWallSpacing:    true,
		WallSpacingM:       standardSpacingM,
		MinLightingOutlets: 1,
		MinSwitches:        1,
		NeedsAFCI:          true,
		NeedsSmokeDetector: true,
		Citations:          []string{"26-722 a)", "26-658 1)"},
		Note:               "1.8 m wall spacing rule applies.",
	},
	RoomGreatRoom: {
		Type:               RoomGreatRoom,
		MinReceptacles:     5,
		ReceptacleType:     DeviceDuplexReceptacle,
		UsesWallSpacing:    true,
		WallSpacingM:       standardSpacingM,
		MinLightingOutlets: 2,
		MinSwitches:        2,
		NeedsAFCI:          true,
		NeedsSmokeDetector: true,
		Citations:          []string{"26-722 a)", "26-658 1)"},
		Note:               "Large open-concept room; 1.8 m wall spacing rule and multi-location switching.",
	},
	RoomDiningRoom: {
		Type:               RoomDiningRoom,
		MinReceptacles:     3,
		ReceptacleType:     DeviceDuplexReceptacle,
		UsesWallSpacing:    true,
		WallSpacingM:       standardSpacingM,
		MinLightingOutlets: 1,
		MinSwitches:        1,
		NeedsAFCI:          true,
		Citations:          []string{"26-722 a)", "26-658 1)"},
		Note:               "1.8 m wall spacing rule. No face-up receptacles in work surfaces.",
	},
	RoomHallway: {
		Type:               RoomHallway,
		MinReceptacles:     1,
		ReceptacleType:     DeviceDuplexReceptacle,
		UsesWallSpacing:    true,
		WallSpacingM:       hallwaySpacingM,
		MinLightingOutlets: 1,
		MinSwitches:        2, // 3-way at each end
		NeedsAFCI:          true,
		NeedsSmokeDetector: true,
		NeedsCODetector:    true,
		Citations:          []string{"26-722 e)", "26-658 1)", "32-200"},
		Note:               "No point more than 4.5 m from a receptacle measured along the shortest cord path. Smoke/CO outside sleeping areas.",
	},
	RoomGarage: {
		Type:            RoomGarage,
		MinReceptacles:  1, // per car space, derived from area at generation time
		ReceptacleType:  DeviceDuplexReceptacle,
		UsesWallSpacing: false,
		ExtraReceptacles: []ExtraReceptacle{
			{Type: DeviceDuplexReceptacle, Count: 1, Note: "Garage door opener receptacle (CEC 26-724 c)"},
		},
		MinLightingOutlets: 1,
		MinSwitches:        2, // 3-way: house entry and garage door
		NeedsGFCI:          true,
		NeedsAFCI:          true,
		DedicatedCircuits:  []string{"Garage receptacles (26-656 h)"},
		Citations:          []string{"26-724 b)", "26-724 c)", "26-656 h)"},
		Note:               "One receptacle per car space on a dedicated circuit. 3-way switching from the house entry.",
	},
	RoomLaundryRoom: {
		Type:            RoomLaundryRoom,
		MinReceptacles:  2, // washer + one additional
		ReceptacleType:  DeviceDuplexReceptacle,
		UsesWallSpacing: false,
		ExtraReceptacles: []ExtraReceptacle{
			{Type: DeviceDryerOutlet, Count: 1, Note: "Dryer NEMA 14-30 on dedicated circuit (CEC 26-744 2)"},
		},
		MinLightingOutlets: 1,
		MinSwitches:        1,
		NeedsGFCI:          true, // sink is typical
		NeedsAFCI:          true,
		DedicatedCircuits:  []string{"Washer (26-654 b)", "Dryer (26-744 2)"},
		Citations:          []string{"26-720 e)", "26-654 b)", "26-744 2)", "26-704 1)"},
		Note:               "Washer receptacle on a dedicated circuit plus one additional. Dryer on its own 30 A circuit.",
	},
	RoomEntryFoyer: {
		Type:               RoomEntryFoyer,
		MinReceptacles:     1,
		ReceptacleType:     DeviceDuplexReceptacle,
		UsesWallSpacing:    true,
		WallSpacingM:       standardSpacingM,
		MinLightingOutlets: 1,
		MinSwitches:        2, // 3-way: inside and at the entry
		NeedsAFCI:          true,
		Citations:          []string{"26-722 a)", "26-722 b)", "26-658 1)"},
		Note:               "3-way switches at the entry. 1.8 m rule applies to finished entries.",
	},
	RoomMudroom: {
		Type:               RoomMudroom,
		MinReceptacles:     1,
		ReceptacleType:     DeviceDuplexReceptacle,
		UsesWallSpacing:    true,
		WallSpacingM:       standardSpacingM,
		MinLightingOutlets: 1,
		MinSwitches:        1,
		NeedsAFCI:          true,
		Citations:          []string{"26-722 a)"},
		Note:               "Treated as a finished entry room.",
	},
	RoomCoveredDeck: {
		Type:               RoomCoveredDeck,
		MinReceptacles:     1,
		ReceptacleType:     DeviceOutdoorReceptacle,
		UsesWallSpacing:    false,
		MinLightingOutlets: 1,
		MinSwitches:        1,
		NeedsGFCI:          true,
		Citations:          []string{"26-724 a)", "30-102"},
		Note:               "Weather-resistant GFCI receptacle and exterior luminaire switched from inside.",
	},
	RoomDeck: {
		Type:               RoomDeck,
		MinReceptacles:     1,
		ReceptacleType:     DeviceOutdoorReceptacle,
		UsesWallSpacing:    false,
		MinLightingOutlets: 1,
		MinSwitches:        1,
		NeedsGFCI:          true,
		Citations:          []string{"26-724 a)", "30-102"},
		Note:               "Weather-resistant GFCI receptacle accessible from the deck surface.",
	},
	RoomPatio: {
		Type:               RoomPatio,
		MinReceptacles:     1,
		ReceptacleType:     DeviceOutdoorReceptacle,
		UsesWallSpacing:    false,
		MinLightingOutlets: 1,
		MinSwitches:        1,
		NeedsGFCI:          true,
		Citations:          []string{"26-724 a)", "30-102"},
		Note:               "Weather-resistant GFCI receptacle and exterior luminaire.",
	},
	RoomUtilityRoom: {
		Type:               RoomUtilityRoom,
		MinReceptacles:     1,
		ReceptacleType:     DeviceDuplexReceptacle,
		UsesWallSpacing:    false,
		MinLightingOutlets: 1,
		MinSwitches:        1,
		NeedsGFCI:          true, // sink or water heater typically nearby
		NeedsAFCI:          true,
		NeedsCODetector:    true, // fuel-burning appliances
		Citations:          []string{"26-720 e)(iii)", "26-704 1)", "32-200"},
		Note:               "At least one duplex receptacle for servicing. GFCI where a sink is present.",
	},
	RoomClosetWalkIn: {
		Type:               RoomClosetWalkIn,
		MinReceptacles:     0, // no receptacle requirement
		ReceptacleType:     DeviceDuplexReceptacle,
		UsesWallSpacing:    false,
		MinLightingOutlets: 1,
		MinSwitches:        1,
		NeedsAFCI:          true,
		Citations:          []string{"30-204"},
		Note:               "Luminaire on the ceiling or above the door; no pendant or bare-lamp types.",
	},
	RoomClosetStandard: {
		Type:               RoomClosetStandard,
		MinReceptacles:     0,
		ReceptacleType:     DeviceDuplexReceptacle,
		UsesWallSpacing:    false,
		MinLightingOutlets: 1,
		MinSwitches:        1,
		NeedsAFCI:          true,
		Citations:          []string{"30-204"},
		Note:               "Luminaire on the ceiling or above the door; no pendant or bare-lamp types.",
	},
	RoomPantry: {
		Type:               RoomPantry,
		MinReceptacles:     0,
		ReceptacleType:     DeviceDuplexReceptacle,
		UsesWallSpacing:    false,
		MinLightingOutlets: 1,
		MinSwitches:        1,
		NeedsAFCI:          true,
		Citations:          []string{"30-204"},
		Note:               "Treated like a closet: luminaire on the ceiling or above the door.",
	},
	RoomOfficeDen: {
		Type:               RoomOfficeDen,
		MinReceptacles:     3,
		ReceptacleType:     DeviceDuplexReceptacle,
		UsesWallSpacing:    true,
		WallSpacingM:       standardSpacingM,
		MinLightingOutlets: 1,
		MinSwitches:        1,
		NeedsAFCI:          true,
		Citations:          []string{"26-722 a)", "26-658 1)"},
		Note:               "Standard finished room; 1.8 m wall spacing rule.",
	},
	RoomStairway: {
		Type:               RoomStairway,
		MinReceptacles:     0,
		ReceptacleType:     DeviceDuplexReceptacle,
		UsesWallSpacing:    false,
		MinLightingOutlets: 1,
		MinSwitches:        2, // 3-way at top and bottom
		NeedsAFCI:          true,
		Citations:          []string{"30-200"},
		Note:               "3-way switches at the top and bottom of the stairs.",
	},
	RoomOpenToBelow: {
		Type:               RoomOpenToBelow,
		MinReceptacles:     0,
		ReceptacleType:     DeviceDuplexReceptacle,
		UsesWallSpacing:    false,
		MinLightingOutlets: 0, // double-height void, lit from the room below
		MinSwitches:        0,
		Citations:          []string{"26-722 a)"},
		Note:               "Double-height space, not a habitable room; no device minimums of its own.",
	},
	RoomSauna: {
		Type:               RoomSauna,
		MinReceptacles:     0, // no receptacles permitted inside
		ReceptacleType:     DeviceDuplexReceptacle,
		UsesWallSpacing:    false,
		MinLightingOutlets: 1,
		MinSwitches:        1,
		DedicatedCircuits:  []string{"Sauna heater (62-300)"},
		Citations:          []string{"62-300", "30-320"},
		Note:               "Vapour-proof luminaire, heater on a dedicated circuit, control outside the room. No receptacles inside.",
	},
	RoomSunroom: {
		Type:               RoomSunroom,
		MinReceptacles:     3,
		ReceptacleType:     DeviceDuplexReceptacle,
		UsesWallSpacing:    true,
		WallSpacingM:       standardSpacingM,
		MinLightingOutlets: 1,
		MinSwitches:        1,
		NeedsAFCI:          true,
		Citations:          []string{"26-722 a)", "26-658 1)"},
		Note:               "Finished room; glazing leaves little usable wall, so the spacing count often lands on the minimum.",
	},
	RoomBasementFinished: {
		Type:               RoomBasementFinished,
		MinReceptacles:     3,
		ReceptacleType:     DeviceDuplexReceptacle,
		UsesWallSpacing:    true,
		WallSpacingM:       standardSpacingM,
		MinLightingOutlets: 1,
		MinSwitches:        1,
		NeedsAFCI:          true,
		NeedsSmokeDetector: true,
		Citations:          []string{"26-722 a)", "26-658 1)", "32-200"},
		Note:               "Treated as a finished room; 1.8 m wall spacing rule.",
	},
	RoomBasementUnfinished: {
		Type:               RoomBasementUnfinished,
		MinReceptacles:     1,
		ReceptacleType:     DeviceDuplexReceptacle,
		UsesWallSpacing:    false,
		MinLightingOutlets: 1,
		MinSwitches:        1,
		NeedsAFCI:          true,
		Citations:          []string{"26-720 e)(iv)", "26-658 1)"},
		Note:               "At least one duplex receptacle. Luminaires below 2 m must be guarded.",
	},
}
