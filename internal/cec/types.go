package cec

// RoomType is the standardized classification of a detected room.
// The set is closed: the vision step is prompted with exactly these keys,
// and anything else falls back to the generic device set (see GenerateRoomDevices).
type RoomType string

// Room type constants.
const (
	RoomKitchen            RoomType = "kitchen"
	RoomBathroom           RoomType = "bathroom"
	RoomEnsuite            RoomType = "ensuite"
	RoomPowderRoom         RoomType = "powder_room"
	RoomPrimaryBedroom     RoomType = "primary_bedroom"
	RoomBedroom            RoomType = "bedroom"
	RoomLivingRoom         RoomType = "living_room"
	RoomFamilyRoom         RoomType = "family_room"
	RoomGreatRoom          RoomType = "great_room"
	RoomDiningRoom         RoomType = "dining_room"
	RoomHallway            RoomType = "hallway"
	RoomGarage             RoomType = "garage"
	RoomLaundryRoom        RoomType = "laundry_room"
	RoomEntryFoyer         RoomType = "entry_foyer"
	RoomMudroom            RoomType = "mudroom"
	RoomCoveredDeck        RoomType = "covered_deck"
	RoomDeck               RoomType = "deck"
	RoomPatio              RoomType = "patio"
	RoomUtilityRoom        RoomType = "utility_room"
	RoomClosetWalkIn       RoomType = "closet_walkin"
	RoomClosetStandard     RoomType = "closet_standard"
	RoomPantry             RoomType = "pantry"
	RoomOfficeDen          RoomType = "office_den"
	RoomStairway           RoomType = "stairway"
	RoomOpenToBelow        RoomType = "open_to_below"
	RoomSauna              RoomType = "sauna"
	RoomSunroom            RoomType = "sunroom"
	RoomBasementFinished   RoomType = "basement_finished"
	RoomBasementUnfinished RoomType = "basement_unfinished"
)

// AllRoomTypes returns all valid room type values.
func AllRoomTypes() []RoomType {
	return []RoomType{
		RoomKitchen, RoomBathroom, RoomEnsuite, RoomPowderRoom,
		RoomPrimaryBedroom, RoomBedroom,
		RoomLivingRoom, RoomFamilyRoom, RoomGreatRoom, RoomDiningRoom,
		RoomHallway, RoomGarage, RoomLaundryRoom,
		RoomEntryFoyer, RoomMudroom,
		RoomCoveredDeck, RoomDeck, RoomPatio,
		RoomUtilityRoom, RoomClosetWalkIn, RoomClosetStandard, RoomPantry,
		RoomOfficeDen, RoomStairway, RoomOpenToBelow,
		RoomSauna, RoomSunroom,
		RoomBasementFinished, RoomBasementUnfinished,
	}
}

// DetectedRoom is one room identified by the external floor-plan analysis
// step. Instances are immutable once received: the engine never modifies
// them, it only derives device lists from them.
type DetectedRoom struct {
	// Classification
	Type RoomType `json:"room_type"`

	// Name is the label from the drawing (e.g. "Primary Bedroom", "Bath 2").
	Name string `json:"room_name"`

	// FloorLevel is the level label ("main", "upper", "basement", ...).
	FloorLevel string `json:"floor_level"`

	// AreaSqFt is the approximate area estimated from the drawing.
	AreaSqFt float64 `json:"approx_area_sqft"`

	// Plumbing hints from the drawing.
	HasSink          bool `json:"has_sink"`
	HasBathtubShower bool `json:"has_bathtub_shower"`

	// WallCount is the number of usable walls for receptacle spacing
	// (walls with large openings or full-height glazing excluded).
	WallCount int `json:"wall_count"`

	// Confidence is the detection confidence in [0,1].
	Confidence float64 `json:"confidence"`

	// SourcePage is an optional reference to the drawing page the room
	// was detected on (0 when unknown).
	SourcePage int `json:"source_page,omitempty"`
}

// DwellingCategory classifies the dwelling by unit count.
type DwellingCategory string

// Dwelling category constants.
const (
	DwellingSingle   DwellingCategory = "single"
	DwellingDuplex   DwellingCategory = "duplex"
	DwellingTriplex  DwellingCategory = "triplex"
	DwellingFourplex DwellingCategory = "fourplex"
)

// Units returns the number of dwelling units for the category.
// Unrecognized categories are treated as a single unit.
func (c DwellingCategory) Units() int {
	switch c {
	case DwellingDuplex:
		return 2
	case DwellingTriplex:
		return 3
	case DwellingFourplex:
		return 4
	default:
		return 1
	}
}

// FinishTier describes the finish quality level selected for the project.
// Tier affects fixture counts and types only; code-mandated minimums
// (safety devices, GFCI/AFCI presence) never vary by tier.
type FinishTier string

// Finish tier constants.
const (
	TierStandard FinishTier = "standard"
	TierPremium  FinishTier = "premium"
	TierLuxury   FinishTier = "luxury"
)

// DwellingContext carries whole-dwelling attributes supplied once per
// analysis. Immutable after construction.
type DwellingContext struct {
	Category          DwellingCategory `json:"dwelling_type"`
	HasSecondarySuite bool             `json:"has_secondary_suite"`
	UnitLabel         string           `json:"unit_label,omitempty"`
	Tier              FinishTier       `json:"finish_tier,omitempty"`
}

// EffectiveTier returns the finish tier, defaulting to standard when unset
// or when the context itself is nil.
func (c *DwellingContext) EffectiveTier() FinishTier {
	if c == nil || c.Tier == "" {
		return TierStandard
	}
	return c.Tier
}

// DeviceType identifies a kind of installable electrical device.
// The vocabulary matches the estimating assembly catalogue so generated
// devices can seed line items directly.
type DeviceType string

// Receptacle device types.
const (
	DeviceDuplexReceptacle    DeviceType = "duplex_receptacle"
	DeviceGFCIReceptacle      DeviceType = "gfci_receptacle"
	DeviceSplitReceptacle     DeviceType = "split_receptacle"
	DeviceDedicatedReceptacle DeviceType = "dedicated_receptacle"
	DeviceOutdoorReceptacle   DeviceType = "outdoor_receptacle"
	DeviceDryerOutlet         DeviceType = "dryer_outlet"
	DeviceRangeOutlet         DeviceType = "range_outlet"
)

// Switch device types.
const (
	DeviceSinglePoleSwitch DeviceType = "single_pole_switch"
	DeviceThreeWaySwitch   DeviceType = "three_way_switch"
	DeviceFourWaySwitch    DeviceType = "four_way_switch"
	DeviceDimmerSwitch     DeviceType = "dimmer_switch"
)

// Lighting device types.
const (
	DeviceRecessedLight     DeviceType = "recessed_light"
	DeviceSurfaceMountLight DeviceType = "surface_mount_light"
	DevicePendantLight      DeviceType = "pendant_light"
	DeviceFluorescentLight  DeviceType = "fluorescent_light"
	DeviceVapourProofLight  DeviceType = "vapour_proof_light"
	DeviceExteriorLight     DeviceType = "exterior_light"
)

// Fan, heat, and safety device types.
const (
	DeviceExhaustFan       DeviceType = "exhaust_fan"
	DeviceRangeHoodFan     DeviceType = "range_hood_fan"
	DeviceRadiantFloorHeat DeviceType = "radiant_floor_heat"
	DeviceSmokeCOCombo     DeviceType = "smoke_co_combo"
)

// Whole-dwelling device types.
const (
	DeviceDoorbell   DeviceType = "doorbell"
	DeviceThermostat DeviceType = "thermostat"
	DeviceDataOutlet DeviceType = "data_outlet"
	DeviceTVOutlet   DeviceType = "tv_outlet"
	DevicePanelBoard DeviceType = "panel_board"
	DeviceSubPanel   DeviceType = "subpanel"
)

// GeneratedDevice is one required device with its count and the code
// citation that mandates it. A device has no identity beyond its type
// within a room: repeated contributions of the same type are summed into a
// single entry, never appended as duplicates. Count is always >= 1; a
// zero-count device is omitted rather than emitted.
type GeneratedDevice struct {
	Type  DeviceType `json:"device_type"`
	Count int        `json:"count"`
	Note  string     `json:"note"`
}

// deviceSet accumulates generated devices, summing counts per device type
// while preserving first-insertion order. It replaces the shared mutable
// count maps the requirement tables would otherwise need to thread through
// the room dispatch.
type deviceSet struct {
	order   []DeviceType
	entries map[DeviceType]*GeneratedDevice
}

func newDeviceSet() *deviceSet {
	return &deviceSet{entries: make(map[DeviceType]*GeneratedDevice)}
}

// add merges count of the given device type into the set. Zero or negative
// counts are ignored. The note of the first contribution wins; later
// contributions only increase the count.
func (s *deviceSet) add(t DeviceType, count int, note string) {
	if count <= 0 {
		return
	}
	if e, ok := s.entries[t]; ok {
		e.Count += count
		return
	}
	s.entries[t] = &GeneratedDevice{Type: t, Count: count, Note: note}
	s.order = append(s.order, t)
}

// devices returns the accumulated devices in insertion order.
func (s *deviceSet) devices() []GeneratedDevice {
	out := make([]GeneratedDevice, 0, len(s.order))
	for _, t := range s.order {
		out = append(out, *s.entries[t])
	}
	return out
}
