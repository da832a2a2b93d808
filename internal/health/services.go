package health

import "github.com/7sg56/health-tracker-sub001/internal/api"

// Services bundles the domain services over one shared transport, so the
// session cookie and CSRF state stay coherent across them.
type Services struct {
	Auth    *AuthService
	Water   *WaterService
	Food    *FoodService
	Workout *WorkoutService
	Score   *ScoreService

	Session *api.SessionState
}

// NewServices builds the full service bundle over a shared client.
func NewServices(client *api.Client) *Services {
	return &Services{
		Auth:    NewAuthService(client),
		Water:   NewWaterService(client),
		Food:    NewFoodService(client),
		Workout: NewWorkoutService(client),
		Score:   NewScoreService(client),
		Session: client.Session(),
	}
}
