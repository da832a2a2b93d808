package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/7sg56/health-tracker-sub001/internal/health"
	"github.com/7sg56/health-tracker-sub001/internal/printer"
	"github.com/7sg56/health-tracker-sub001/pkg/iojson"
)

// importBatch is the JSON shape accepted by the import command. Every
// section is optional.
type importBatch struct {
	Water    []health.CreateWaterRequest   `json:"water"`
	Food     []health.CreateFoodRequest    `json:"food"`
	Workouts []health.CreateWorkoutRequest `json:"workouts"`
}

type ImportCmd struct {
	flags *Flags

	reader iojson.FileReader[importBatch]
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags) *ImportCmd {
	return &ImportCmd{flags: flags}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Bulk-log entries from a JSON file or stdin",
		UsageText: "healthtrack import [-f entries.json]",
		Description: `Reads a JSON document with "water", "food", and "workouts" arrays and
logs each entry in order. Entries that fail validation are reported and
skipped; the rest still go through.`,
		Flags: []cli.Flag{
			cmd.reader.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	batch, err := cmd.reader.Read()
	if err != nil {
		return err
	}

	p := printer.New(os.Stdout)
	logged, failed := 0, 0

	for _, req := range batch.Water {
		if _, err := cmd.flags.Services.Water.Create(ctx, req); err != nil {
			p.Error(fmt.Sprintf("water %.2f L: %v", req.AmountLtr, err))
			failed++
			continue
		}
		logged++
	}
	for _, req := range batch.Food {
		if _, err := cmd.flags.Services.Food.Create(ctx, req); err != nil {
			p.Error(fmt.Sprintf("food %q: %v", req.Name, err))
			failed++
			continue
		}
		logged++
	}
	for _, req := range batch.Workouts {
		if _, err := cmd.flags.Services.Workout.Create(ctx, req); err != nil {
			p.Error(fmt.Sprintf("workout %q: %v", req.Activity, err))
			failed++
			continue
		}
		logged++
	}

	if failed > 0 {
		p.Muted(fmt.Sprintf("%d logged, %d failed", logged, failed))
		return fmt.Errorf("%d entries failed", failed)
	}

	p.Success(fmt.Sprintf("Logged %d entries", logged))
	return nil
}
