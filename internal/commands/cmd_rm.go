package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/7sg56/health-tracker-sub001/internal/api"
	"github.com/7sg56/health-tracker-sub001/internal/printer"
)

type RmCmd struct {
	flags *Flags
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags) *RmCmd {
	return &RmCmd{flags: flags}
}

// Register adds the rm command with its resource subcommands.
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "rm",
		Usage:     "Delete a logged entry by id",
		UsageText: "healthtrack rm <water|food|workout> <id>",
		Commands: []*cli.Command{
			{
				Name:      "water",
				Usage:     "Delete a water entry",
				UsageText: "healthtrack rm water <id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					return cmd.remove(ctx, c, "water", cmd.flags.Services.Water.Delete)
				},
			},
			{
				Name:      "food",
				Usage:     "Delete a food entry",
				UsageText: "healthtrack rm food <id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					return cmd.remove(ctx, c, "food", cmd.flags.Services.Food.Delete)
				},
			},
			{
				Name:      "workout",
				Usage:     "Delete a workout",
				UsageText: "healthtrack rm workout <id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					return cmd.remove(ctx, c, "workout", cmd.flags.Services.Workout.Delete)
				},
			},
		},
	})

	return app
}

func (cmd *RmCmd) remove(ctx context.Context, c *cli.Command, resource string, del func(context.Context, int64) error) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one id argument")
	}
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", c.Args().First())
	}

	if err := del(ctx, id); err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("no %s entry with id %d", resource, id)
		}
		return fmt.Errorf("delete %s entry: %w", resource, err)
	}

	printer.New(os.Stdout).Success(fmt.Sprintf("Deleted %s entry #%d", resource, id))
	return nil
}
