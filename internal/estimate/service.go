package estimate

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sparkplan/sparkplan-core/internal/cec"
	"github.com/sparkplan/sparkplan-core/internal/infrastructure/logging"
)

// Service orchestrates the analysis pipeline: it runs the requirement
// engine over detected rooms, matches each generated device to an
// installation assembly, and persists the result as the estimate's
// editable line-item list.
type Service struct {
	repo Repository
	log  *logging.Logger
}

// NewService creates an estimate service.
func NewService(repo Repository, log *logging.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// roomDevices pairs a room label with its generated devices, preserving
// room order through seeding.
type roomDevices struct {
	label   string
	devices []cec.GeneratedDevice
}

// dwellingLabel is the room label used for devices that belong to the
// dwelling as a whole rather than to a single room.
const dwellingLabel = "Whole Dwelling"

// SeedFromRooms runs the requirement engine for every detected room plus
// the whole-dwelling aggregation, and replaces the estimate's line items
// with the result. Re-seeding an estimate discards prior items, including
// user edits; callers surface that to the user before invoking this.
func (s *Service) SeedFromRooms(ctx context.Context, estimateID string, rooms []cec.DetectedRoom) ([]LineItem, error) {
	est, err := s.repo.GetEstimate(ctx, estimateID)
	if err != nil {
		return nil, err
	}
	dwelling := est.Context()

	generated := make([]roomDevices, 0, len(rooms)+1)
	for _, room := range rooms {
		label := room.Name
		if label == "" {
			label = string(room.Type)
		}
		generated = append(generated, roomDevices{
			label:   label,
			devices: cec.GenerateRoomDevices(room, dwelling),
		})
	}
	generated = append(generated, roomDevices{
		label:   dwellingLabel,
		devices: cec.GenerateDwellingDevices(rooms, dwelling),
	})

	items := make([]LineItem, 0, len(rooms)*6)
	order := 0
	for _, rd := range generated {
		for _, d := range rd.devices {
			item := LineItem{
				ID:          uuid.NewString(),
				EstimateID:  estimateID,
				RoomLabel:   rd.label,
				DeviceType:  string(d.Type),
				Description: d.Note,
				Quantity:    d.Count,
				SortOrder:   order,
			}
			if matches, err := MatchAssembly(string(d.Type)); err == nil {
				item.Conductor = matches[0].Assembly.Conductor
				item.LabourHours = matches[0].Assembly.LabourHours
			} else {
				s.log.Warn("no assembly match for device",
					"estimate_id", estimateID,
					"device_type", d.Type)
			}
			items = append(items, item)
			order++
		}
	}

	if err := s.repo.ReplaceLineItems(ctx, estimateID, items); err != nil {
		return nil, fmt.Errorf("replacing line items: %w", err)
	}

	s.log.Info("estimate seeded from room analysis",
		"estimate_id", estimateID,
		"rooms", len(rooms),
		"line_items", len(items))
	return items, nil
}
