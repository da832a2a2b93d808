package health

import (
	"context"
	"fmt"

	"github.com/7sg56/health-tracker-sub001/internal/api"
)

// WaterService wraps the /api/water resource.
type WaterService struct {
	client *api.Client
}

// NewWaterService creates a water intake service over the shared transport.
func NewWaterService(client *api.Client) *WaterService {
	return &WaterService{client: client}
}

// List returns one page of water entries, newest first by default.
func (s *WaterService) List(ctx context.Context, req api.PageRequest) (api.Page[WaterIntake], error) {
	var page api.Page[WaterIntake]
	if err := s.client.Get(ctx, "/api/water", req.Query(), &page); err != nil {
		return api.Page[WaterIntake]{}, err
	}
	return page, nil
}

// Create logs a water entry and returns the server-confirmed record.
func (s *WaterService) Create(ctx context.Context, req CreateWaterRequest) (WaterIntake, error) {
	if err := checkPayload(req); err != nil {
		return WaterIntake{}, err
	}
	var entry WaterIntake
	if err := s.client.Post(ctx, "/api/water", req, &entry); err != nil {
		return WaterIntake{}, err
	}
	return entry, nil
}

// Delete removes a water entry by id.
func (s *WaterService) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/api/water/%d", id))
}
