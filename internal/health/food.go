package health

import (
	"context"
	"fmt"

	"github.com/7sg56/health-tracker-sub001/internal/api"
)

// FoodService wraps the /api/food resource.
type FoodService struct {
	client *api.Client
}

// NewFoodService creates a food intake service over the shared transport.
func NewFoodService(client *api.Client) *FoodService {
	return &FoodService{client: client}
}

// List returns one page of food entries.
func (s *FoodService) List(ctx context.Context, req api.PageRequest) (api.Page[FoodIntake], error) {
	var page api.Page[FoodIntake]
	if err := s.client.Get(ctx, "/api/food", req.Query(), &page); err != nil {
		return api.Page[FoodIntake]{}, err
	}
	return page, nil
}

// Create logs a food entry and returns the server-confirmed record.
func (s *FoodService) Create(ctx context.Context, req CreateFoodRequest) (FoodIntake, error) {
	if err := checkPayload(req); err != nil {
		return FoodIntake{}, err
	}
	var entry FoodIntake
	if err := s.client.Post(ctx, "/api/food", req, &entry); err != nil {
		return FoodIntake{}, err
	}
	return entry, nil
}

// Update edits an existing food entry and returns the updated record.
func (s *FoodService) Update(ctx context.Context, id int64, req UpdateFoodRequest) (FoodIntake, error) {
	if err := checkPayload(req); err != nil {
		return FoodIntake{}, err
	}
	var entry FoodIntake
	if err := s.client.Put(ctx, fmt.Sprintf("/api/food/%d", id), req, &entry); err != nil {
		return FoodIntake{}, err
	}
	return entry, nil
}

// Delete removes a food entry by id.
func (s *FoodService) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/api/food/%d", id))
}
