package commands

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/7sg56/health-tracker-sub001/internal/core/styles"
	"github.com/7sg56/health-tracker-sub001/internal/health"
	"github.com/7sg56/health-tracker-sub001/pkg/iojson"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type ScoreCmd struct {
	flags *Flags

	// flags
	date       string
	days       int
	jsonOutput bool
}

// NewScoreCmd creates a new score command
func NewScoreCmd(flags *Flags) *ScoreCmd {
	return &ScoreCmd{flags: flags}
}

// Register adds the score command to the application
func (cmd *ScoreCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "score",
		Usage:     "Show the computed health score",
		UsageText: "healthtrack score [--date YYYY-MM-DD | --days n] [--json]",
		Description: `Without flags, shows today's score with its water, food, and workout
components. --date shows one past day; --days shows a trailing trend.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "date",
				Usage:       "show the score for a specific day (YYYY-MM-DD)",
				Destination: &cmd.date,
			},
			&cli.IntFlag{
				Name:        "days",
				Usage:       "show the trailing n days",
				Destination: &cmd.days,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ScoreCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.date != "" && cmd.days > 0 {
		return fmt.Errorf("--date and --days are mutually exclusive")
	}

	if cmd.days > 0 {
		return cmd.runTrend(ctx)
	}
	return cmd.runSingle(ctx)
}

func (cmd *ScoreCmd) runSingle(ctx context.Context) error {
	var (
		score health.Score
		err   error
	)
	if cmd.date != "" {
		if !datePattern.MatchString(cmd.date) {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", cmd.date)
		}
		score, err = cmd.flags.Services.Score.ForDate(ctx, cmd.date)
	} else {
		score, err = cmd.flags.Services.Score.Current(ctx)
	}
	if err != nil {
		return fmt.Errorf("fetch score: %w", err)
	}

	if cmd.jsonOutput {
		return iojson.Write(score)
	}

	fmt.Printf("%s %s\n",
		styles.TitleStyle.Render(score.Date),
		styles.ScoreStyle(score.Value).Render(fmt.Sprintf("%.0f/100", score.Value)))
	fmt.Printf("  water   %s\n", styles.ScoreStyle(score.WaterScore).Render(fmt.Sprintf("%.0f", score.WaterScore)))
	fmt.Printf("  food    %s\n", styles.ScoreStyle(score.FoodScore).Render(fmt.Sprintf("%.0f", score.FoodScore)))
	fmt.Printf("  workout %s\n", styles.ScoreStyle(score.WorkoutScore).Render(fmt.Sprintf("%.0f", score.WorkoutScore)))
	return nil
}

func (cmd *ScoreCmd) runTrend(ctx context.Context) error {
	scores, err := cmd.flags.Services.Score.LastDays(ctx, cmd.days)
	if err != nil {
		return fmt.Errorf("fetch score trend: %w", err)
	}

	if cmd.jsonOutput {
		return iojson.Write(scores)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	// Plain cells: ANSI codes inside tabwriter cells skew the column widths.
	fmt.Fprintln(w, "DATE\tSCORE\tWATER\tFOOD\tWORKOUT")
	for _, s := range scores {
		fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%.0f\t%.0f\n",
			s.Date, s.Value, s.WaterScore, s.FoodScore, s.WorkoutScore)
	}
	return w.Flush()
}
