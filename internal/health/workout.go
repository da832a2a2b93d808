package health

import (
	"context"
	"fmt"

	"github.com/7sg56/health-tracker-sub001/internal/api"
)

// WorkoutService wraps the /api/workout resource.
type WorkoutService struct {
	client *api.Client
}

// NewWorkoutService creates a workout service over the shared transport.
func NewWorkoutService(client *api.Client) *WorkoutService {
	return &WorkoutService{client: client}
}

// List returns one page of workout entries.
func (s *WorkoutService) List(ctx context.Context, req api.PageRequest) (api.Page[Workout], error) {
	var page api.Page[Workout]
	if err := s.client.Get(ctx, "/api/workout", req.Query(), &page); err != nil {
		return api.Page[Workout]{}, err
	}
	return page, nil
}

// Create logs a workout and returns the server-confirmed record.
func (s *WorkoutService) Create(ctx context.Context, req CreateWorkoutRequest) (Workout, error) {
	if err := checkPayload(req); err != nil {
		return Workout{}, err
	}
	var entry Workout
	if err := s.client.Post(ctx, "/api/workout", req, &entry); err != nil {
		return Workout{}, err
	}
	return entry, nil
}

// Update edits an existing workout and returns the updated record.
func (s *WorkoutService) Update(ctx context.Context, id int64, req UpdateWorkoutRequest) (Workout, error) {
	if err := checkPayload(req); err != nil {
		return Workout{}, err
	}
	var entry Workout
	if err := s.client.Put(ctx, fmt.Sprintf("/api/workout/%d", id), req, &entry); err != nil {
		return Workout{}, err
	}
	return entry, nil
}

// Delete removes a workout by id.
func (s *WorkoutService) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/api/workout/%d", id))
}
