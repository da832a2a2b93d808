// Package health contains the domain types and typed service wrappers for
// the health tracker backend resources: auth, water, food, workouts, and the
// computed health score.
package health

import "time"

// WaterIntake is a single logged water entry.
type WaterIntake struct {
	ID        int64     `json:"id"`
	AmountLtr float64   `json:"amountLtr"`
	CreatedAt time.Time `json:"createdAt"`
}

// Meal types accepted by the backend for food entries.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// MealTypes lists the accepted meal types in menu order.
var MealTypes = []string{MealBreakfast, MealLunch, MealDinner, MealSnack}

// FoodIntake is a single logged food entry.
type FoodIntake struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Calories  int       `json:"calories"`
	MealType  string    `json:"mealType"`
	CreatedAt time.Time `json:"createdAt"`
}

// Workout is a single logged workout entry.
type Workout struct {
	ID             int64     `json:"id"`
	Activity       string    `json:"activity"`
	DurationMin    int       `json:"durationMin"`
	CaloriesBurned int       `json:"caloriesBurned"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Score is the backend-computed health index for one day: a weighted
// average of the water, food, and workout components, each 0-100.
type Score struct {
	Date         string  `json:"date"` // YYYY-MM-DD
	Value        float64 `json:"score"`
	WaterScore   float64 `json:"waterScore"`
	FoodScore    float64 `json:"foodScore"`
	WorkoutScore float64 `json:"workoutScore"`
}

// Profile is the authenticated user's account info.
type Profile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// CreateWaterRequest is the payload for logging a water entry.
type CreateWaterRequest struct {
	AmountLtr float64 `json:"amountLtr" validate:"required,gt=0"`
}

// CreateFoodRequest is the payload for logging a food entry.
type CreateFoodRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Calories int    `json:"calories" validate:"required,gt=0"`
	MealType string `json:"mealType" validate:"required,oneof=breakfast lunch dinner snack"`
}

// UpdateFoodRequest is the payload for editing a food entry.
type UpdateFoodRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Calories int    `json:"calories" validate:"required,gt=0"`
	MealType string `json:"mealType" validate:"required,oneof=breakfast lunch dinner snack"`
}

// CreateWorkoutRequest is the payload for logging a workout.
type CreateWorkoutRequest struct {
	Activity       string `json:"activity" validate:"required,max=120"`
	DurationMin    int    `json:"durationMin" validate:"required,gt=0"`
	CaloriesBurned int    `json:"caloriesBurned" validate:"gte=0"`
}

// UpdateWorkoutRequest is the payload for editing a workout.
type UpdateWorkoutRequest struct {
	Activity       string `json:"activity" validate:"required,max=120"`
	DurationMin    int    `json:"durationMin" validate:"required,gt=0"`
	CaloriesBurned int    `json:"caloriesBurned" validate:"gte=0"`
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest is the payload for starting a session.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
