package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/7sg56/health-tracker-sub001/internal/collection"
	"github.com/7sg56/health-tracker-sub001/internal/core/config"
	"github.com/7sg56/health-tracker-sub001/internal/health"
	"github.com/7sg56/health-tracker-sub001/internal/tui/components/form"
	"github.com/7sg56/health-tracker-sub001/internal/tui/views/records"
)

func retrievalMode(mode string) collection.Mode {
	if mode == config.ModeScroll {
		return collection.ModeAccumulate
	}
	return collection.ModePaged
}

func formatWhen(ts time.Time) string {
	return ts.Local().Format("Jan 02 15:04")
}

// parseFloatValue converts a validated dialog value; the form's number
// validation guarantees it parses.
func parseFloatValue(v any) float64 {
	f, _ := strconv.ParseFloat(v.(string), 64)
	return f
}

func parseIntValue(v any) int {
	n, _ := strconv.Atoi(v.(string))
	return n
}

func newWaterView(cfg *config.Config, svc *health.WaterService) (*records.Model[health.WaterIntake], *collection.Controller[health.WaterIntake], error) {
	ctrl, err := collection.New(collection.Options[health.WaterIntake]{
		Fetch:    svc.List,
		ID:       func(w health.WaterIntake) int64 { return w.ID },
		PageSize: cfg.Tracker.PageSize,
		Mode:     retrievalMode(cfg.Tracker.WaterMode),
		Sort:     cfg.Tracker.Sort,
	})
	if err != nil {
		return nil, nil, err
	}

	view, err := records.New(records.Config[health.WaterIntake]{
		Title: "Water",
		Columns: []records.Column[health.WaterIntake]{
			{Title: "Amount", Width: 10, Cell: func(w health.WaterIntake) string {
				return fmt.Sprintf("%.2f L", w.AmountLtr)
			}},
			{Title: "Logged", Width: 14, Cell: func(w health.WaterIntake) string {
				return formatWhen(w.CreatedAt)
			}},
		},
		Filter: collection.FilterConfig[health.WaterIntake]{
			Date: func(w health.WaterIntake) time.Time { return w.CreatedAt },
			Sorts: []collection.SortField[health.WaterIntake]{
				{Key: "amount", Compare: func(a, b health.WaterIntake) int {
					switch {
					case a.AmountLtr < b.AmountLtr:
						return -1
					case a.AmountLtr > b.AmountLtr:
						return 1
					default:
						return 0
					}
				}},
				{Key: "logged", Compare: func(a, b health.WaterIntake) int {
					return a.CreatedAt.Compare(b.CreatedAt)
				}},
			},
		},
		ID: func(w health.WaterIntake) int64 { return w.ID },
		NewForm: func() *form.Dialog {
			return form.NewDialog("Log water", []form.Field{
				form.NewTextField("Amount (liters)", "0.25", "", form.FieldValidation{
					Required: true, Number: form.NumberFloat, Min: form.Bound(0.01), Max: form.Bound(10),
				}),
			}, []string{"amount"})
		},
		Submit: func(ctx context.Context, values map[string]any) (health.WaterIntake, error) {
			return svc.Create(ctx, health.CreateWaterRequest{AmountLtr: parseFloatValue(values["amount"])})
		},
		Delete: svc.Delete,
		Summary: func(items []health.WaterIntake) string {
			var total float64
			for _, w := range items {
				total += w.AmountLtr
			}
			return fmt.Sprintf("loaded total: %.2f L", total)
		},
	}, ctrl)
	if err != nil {
		return nil, nil, err
	}
	return view, ctrl, nil
}

func newFoodView(cfg *config.Config, svc *health.FoodService) (*records.Model[health.FoodIntake], *collection.Controller[health.FoodIntake], error) {
	ctrl, err := collection.New(collection.Options[health.FoodIntake]{
		Fetch:    svc.List,
		ID:       func(f health.FoodIntake) int64 { return f.ID },
		PageSize: cfg.Tracker.PageSize,
		Mode:     retrievalMode(cfg.Tracker.FoodMode),
		Sort:     cfg.Tracker.Sort,
	})
	if err != nil {
		return nil, nil, err
	}

	foodForm := func(name, calories, meal string) *form.Dialog {
		title := "Log food"
		if name != "" {
			title = "Edit food"
		}
		if meal == "" {
			meal = health.MealBreakfast
		}
		return form.NewDialog(title, []form.Field{
			form.NewTextField("Name", "e.g. oatmeal", name, form.FieldValidation{Required: true, MaxLength: 120}),
			form.NewTextField("Calories", "250", calories, form.FieldValidation{
				Required: true, Number: form.NumberInt, Min: form.Bound(1),
			}),
			form.NewSelectField("Meal", health.MealTypes, meal),
		}, []string{"name", "calories", "mealType"})
	}

	view, err := records.New(records.Config[health.FoodIntake]{
		Title: "Food",
		Columns: []records.Column[health.FoodIntake]{
			{Title: "Name", Width: 24, Cell: func(f health.FoodIntake) string { return f.Name }},
			{Title: "Calories", Width: 8, Cell: func(f health.FoodIntake) string { return strconv.Itoa(f.Calories) }},
			{Title: "Meal", Width: 10, Cell: func(f health.FoodIntake) string { return f.MealType }},
			{Title: "Logged", Width: 14, Cell: func(f health.FoodIntake) string { return formatWhen(f.CreatedAt) }},
		},
		Filter: collection.FilterConfig[health.FoodIntake]{
			Search: []func(health.FoodIntake) string{
				func(f health.FoodIntake) string { return f.Name },
			},
			Date: func(f health.FoodIntake) time.Time { return f.CreatedAt },
			Groups: []collection.FilterGroup[health.FoodIntake]{
				{
					Key:     "mealType",
					Extract: func(f health.FoodIntake) string { return f.MealType },
					Options: health.MealTypes,
				},
			},
			Sorts: []collection.SortField[health.FoodIntake]{
				{Key: "calories", Compare: func(a, b health.FoodIntake) int { return a.Calories - b.Calories }},
				{Key: "name", Compare: func(a, b health.FoodIntake) int {
					switch {
					case a.Name < b.Name:
						return -1
					case a.Name > b.Name:
						return 1
					default:
						return 0
					}
				}},
			},
		},
		ID:      func(f health.FoodIntake) int64 { return f.ID },
		NewForm: func() *form.Dialog { return foodForm("", "", "") },
		EditForm: func(f health.FoodIntake) *form.Dialog {
			return foodForm(f.Name, strconv.Itoa(f.Calories), f.MealType)
		},
		Submit: func(ctx context.Context, values map[string]any) (health.FoodIntake, error) {
			return svc.Create(ctx, health.CreateFoodRequest{
				Name:     values["name"].(string),
				Calories: parseIntValue(values["calories"]),
				MealType: values["mealType"].(string),
			})
		},
		Edit: func(ctx context.Context, id int64, values map[string]any) (health.FoodIntake, error) {
			return svc.Update(ctx, id, health.UpdateFoodRequest{
				Name:     values["name"].(string),
				Calories: parseIntValue(values["calories"]),
				MealType: values["mealType"].(string),
			})
		},
		Delete: svc.Delete,
		Summary: func(items []health.FoodIntake) string {
			total := 0
			for _, f := range items {
				total += f.Calories
			}
			return fmt.Sprintf("loaded total: %d kcal", total)
		},
	}, ctrl)
	if err != nil {
		return nil, nil, err
	}
	return view, ctrl, nil
}

func newWorkoutView(cfg *config.Config, svc *health.WorkoutService) (*records.Model[health.Workout], *collection.Controller[health.Workout], error) {
	ctrl, err := collection.New(collection.Options[health.Workout]{
		Fetch:    svc.List,
		ID:       func(w health.Workout) int64 { return w.ID },
		PageSize: cfg.Tracker.PageSize,
		Mode:     retrievalMode(cfg.Tracker.WorkoutMode),
		Sort:     cfg.Tracker.Sort,
	})
	if err != nil {
		return nil, nil, err
	}

	workoutForm := func(activity, duration, burned string) *form.Dialog {
		title := "Log workout"
		if activity != "" {
			title = "Edit workout"
		}
		return form.NewDialog(title, []form.Field{
			form.NewTextField("Activity", "e.g. running", activity, form.FieldValidation{Required: true, MaxLength: 120}),
			form.NewTextField("Duration (minutes)", "30", duration, form.FieldValidation{
				Required: true, Number: form.NumberInt, Min: form.Bound(1),
			}),
			form.NewTextField("Calories burned", "0", burned, form.FieldValidation{
				Number: form.NumberInt, Min: form.Bound(0),
			}),
		}, []string{"activity", "durationMin", "caloriesBurned"})
	}

	view, err := records.New(records.Config[health.Workout]{
		Title: "Workouts",
		Columns: []records.Column[health.Workout]{
			{Title: "Activity", Width: 24, Cell: func(w health.Workout) string { return w.Activity }},
			{Title: "Minutes", Width: 8, Cell: func(w health.Workout) string { return strconv.Itoa(w.DurationMin) }},
			{Title: "Burned", Width: 8, Cell: func(w health.Workout) string { return strconv.Itoa(w.CaloriesBurned) }},
			{Title: "Logged", Width: 14, Cell: func(w health.Workout) string { return formatWhen(w.CreatedAt) }},
		},
		Filter: collection.FilterConfig[health.Workout]{
			Search: []func(health.Workout) string{
				func(w health.Workout) string { return w.Activity },
			},
			Date: func(w health.Workout) time.Time { return w.CreatedAt },
			Sorts: []collection.SortField[health.Workout]{
				{Key: "duration", Compare: func(a, b health.Workout) int { return a.DurationMin - b.DurationMin }},
				{Key: "burned", Compare: func(a, b health.Workout) int { return a.CaloriesBurned - b.CaloriesBurned }},
			},
		},
		ID:      func(w health.Workout) int64 { return w.ID },
		NewForm: func() *form.Dialog { return workoutForm("", "", "") },
		EditForm: func(w health.Workout) *form.Dialog {
			return workoutForm(w.Activity, strconv.Itoa(w.DurationMin), strconv.Itoa(w.CaloriesBurned))
		},
		Submit: func(ctx context.Context, values map[string]any) (health.Workout, error) {
			return svc.Create(ctx, health.CreateWorkoutRequest{
				Activity:       values["activity"].(string),
				DurationMin:    parseIntValue(values["durationMin"]),
				CaloriesBurned: parseIntValue(values["caloriesBurned"]),
			})
		},
		Edit: func(ctx context.Context, id int64, values map[string]any) (health.Workout, error) {
			return svc.Update(ctx, id, health.UpdateWorkoutRequest{
				Activity:       values["activity"].(string),
				DurationMin:    parseIntValue(values["durationMin"]),
				CaloriesBurned: parseIntValue(values["caloriesBurned"]),
			})
		},
		Delete: svc.Delete,
		Summary: func(items []health.Workout) string {
			minutes := 0
			for _, w := range items {
				minutes += w.DurationMin
			}
			return fmt.Sprintf("loaded total: %d min", minutes)
		},
	}, ctrl)
	if err != nil {
		return nil, nil, err
	}
	return view, ctrl, nil
}
