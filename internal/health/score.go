package health

import (
	"context"
	"fmt"

	"github.com/7sg56/health-tracker-sub001/internal/api"
)

// ScoreService wraps the /api/health-index endpoints. Score computation is
// backend-owned; the client only fetches and renders it.
type ScoreService struct {
	client *api.Client
}

// NewScoreService creates a health score service over the shared transport.
func NewScoreService(client *api.Client) *ScoreService {
	return &ScoreService{client: client}
}

// Current returns today's score.
func (s *ScoreService) Current(ctx context.Context) (Score, error) {
	var score Score
	if err := s.client.Get(ctx, "/api/health-index/current", nil, &score); err != nil {
		return Score{}, err
	}
	return score, nil
}

// ForDate returns the score for a specific day (YYYY-MM-DD).
func (s *ScoreService) ForDate(ctx context.Context, date string) (Score, error) {
	var score Score
	if err := s.client.Get(ctx, fmt.Sprintf("/api/health-index/date/%s", date), nil, &score); err != nil {
		return Score{}, err
	}
	return score, nil
}

// LastDays returns the trailing n days of scores, oldest first.
func (s *ScoreService) LastDays(ctx context.Context, n int) ([]Score, error) {
	var scores []Score
	if err := s.client.Get(ctx, fmt.Sprintf("/api/health-index/last-days/%d", n), nil, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}
