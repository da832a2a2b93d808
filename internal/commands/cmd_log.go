package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/7sg56/health-tracker-sub001/internal/core/styles"
	"github.com/7sg56/health-tracker-sub001/internal/health"
	"github.com/7sg56/health-tracker-sub001/internal/printer"
)

type LogCmd struct {
	flags *Flags

	// water
	amount float64

	// food
	name     string
	calories int
	meal     string

	// workout
	activity string
	duration int
	burned   int
}

// NewLogCmd creates a new log command
func NewLogCmd(flags *Flags) *LogCmd {
	return &LogCmd{flags: flags}
}

// Register adds the log command with its resource subcommands.
func (cmd *LogCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "log",
		Usage:     "Log a health entry",
		UsageText: "healthtrack log <water|food|workout> [options]",
		Description: `Logs one entry against the signed-in account. Values not given as
flags are prompted interactively.`,
		Commands: []*cli.Command{
			{
				Name:      "water",
				Usage:     "Log water intake",
				UsageText: "healthtrack log water [--amount liters]",
				Flags: []cli.Flag{
					&cli.FloatFlag{
						Name:        "amount",
						Aliases:     []string{"a"},
						Usage:       "amount in liters",
						Destination: &cmd.amount,
					},
				},
				Action: cmd.runWater,
			},
			{
				Name:      "food",
				Usage:     "Log a food entry",
				UsageText: "healthtrack log food [--name n] [--calories kcal] [--meal type]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "name",
						Aliases:     []string{"n"},
						Usage:       "what was eaten",
						Destination: &cmd.name,
					},
					&cli.IntFlag{
						Name:        "calories",
						Aliases:     []string{"c"},
						Usage:       "calories (kcal)",
						Destination: &cmd.calories,
					},
					&cli.StringFlag{
						Name:        "meal",
						Aliases:     []string{"m"},
						Usage:       "meal type (breakfast, lunch, dinner, snack)",
						Destination: &cmd.meal,
					},
				},
				Action: cmd.runFood,
			},
			{
				Name:      "workout",
				Usage:     "Log a workout",
				UsageText: "healthtrack log workout [--activity a] [--duration min] [--burned kcal]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "activity",
						Aliases:     []string{"a"},
						Usage:       "activity name",
						Destination: &cmd.activity,
					},
					&cli.IntFlag{
						Name:        "duration",
						Aliases:     []string{"d"},
						Usage:       "duration in minutes",
						Destination: &cmd.duration,
					},
					&cli.IntFlag{
						Name:        "burned",
						Aliases:     []string{"b"},
						Usage:       "calories burned (optional)",
						Destination: &cmd.burned,
					},
				},
				Action: cmd.runWorkout,
			},
		},
	})

	return app
}

func (cmd *LogCmd) runWater(ctx context.Context, c *cli.Command) error {
	if cmd.amount == 0 {
		var raw string
		done, err := runPrompt(ctx, huh.NewInput().
			Title("Amount (liters)").
			Placeholder("0.25").
			Validate(validatePositiveFloat).
			Value(&raw))
		if err != nil || !done {
			return err
		}
		cmd.amount, _ = strconv.ParseFloat(raw, 64)
	}

	entry, err := cmd.flags.Services.Water.Create(ctx, health.CreateWaterRequest{AmountLtr: cmd.amount})
	if err != nil {
		return fmt.Errorf("log water: %w", err)
	}

	printer.New(os.Stdout).Success(
		fmt.Sprintf("Logged %.2f L of water", entry.AmountLtr),
		fmt.Sprintf("entry #%d", entry.ID),
	)
	return nil
}

func (cmd *LogCmd) runFood(ctx context.Context, c *cli.Command) error {
	var fields []huh.Field
	var rawCalories string

	if cmd.name == "" {
		fields = append(fields, huh.NewInput().
			Title("Name").
			Validate(requireValue("name")).
			Value(&cmd.name))
	}
	if cmd.calories == 0 {
		fields = append(fields, huh.NewInput().
			Title("Calories (kcal)").
			Validate(validatePositiveInt).
			Value(&rawCalories))
	}
	if cmd.meal == "" {
		fields = append(fields, huh.NewSelect[string]().
			Title("Meal").
			Options(huh.NewOptions(health.MealTypes...)...).
			Value(&cmd.meal))
	}

	if len(fields) > 0 {
		done, err := runPromptGroup(ctx, fields...)
		if err != nil || !done {
			return err
		}
		if rawCalories != "" {
			cmd.calories, _ = strconv.Atoi(rawCalories)
		}
	}

	entry, err := cmd.flags.Services.Food.Create(ctx, health.CreateFoodRequest{
		Name:     cmd.name,
		Calories: cmd.calories,
		MealType: cmd.meal,
	})
	if err != nil {
		return fmt.Errorf("log food: %w", err)
	}

	printer.New(os.Stdout).Success(
		fmt.Sprintf("Logged %s (%d kcal, %s)", entry.Name, entry.Calories, entry.MealType),
		fmt.Sprintf("entry #%d", entry.ID),
	)
	return nil
}

func (cmd *LogCmd) runWorkout(ctx context.Context, c *cli.Command) error {
	var fields []huh.Field
	var rawDuration string

	if cmd.activity == "" {
		fields = append(fields, huh.NewInput().
			Title("Activity").
			Validate(requireValue("activity")).
			Value(&cmd.activity))
	}
	if cmd.duration == 0 {
		fields = append(fields, huh.NewInput().
			Title("Duration (minutes)").
			Validate(validatePositiveInt).
			Value(&rawDuration))
	}

	if len(fields) > 0 {
		done, err := runPromptGroup(ctx, fields...)
		if err != nil || !done {
			return err
		}
		if rawDuration != "" {
			cmd.duration, _ = strconv.Atoi(rawDuration)
		}
	}

	entry, err := cmd.flags.Services.Workout.Create(ctx, health.CreateWorkoutRequest{
		Activity:       cmd.activity,
		DurationMin:    cmd.duration,
		CaloriesBurned: cmd.burned,
	})
	if err != nil {
		return fmt.Errorf("log workout: %w", err)
	}

	printer.New(os.Stdout).Success(
		fmt.Sprintf("Logged %s for %d min", entry.Activity, entry.DurationMin),
		fmt.Sprintf("entry #%d", entry.ID),
	)
	return nil
}

// runPrompt runs a single interactive field. The bool result is false when
// the user aborted, which is not an error.
func runPrompt(ctx context.Context, field huh.Field) (bool, error) {
	return runPromptGroup(ctx, field)
}

func runPromptGroup(ctx context.Context, fields ...huh.Field) (bool, error) {
	err := huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(styles.FormTheme()).
		RunWithContext(ctx)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("form: %w", err)
	}
	return true, nil
}

func validatePositiveFloat(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if f <= 0 {
		return fmt.Errorf("must be greater than zero")
	}
	return nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a whole number")
	}
	if n <= 0 {
		return fmt.Errorf("must be greater than zero")
	}
	return nil
}
