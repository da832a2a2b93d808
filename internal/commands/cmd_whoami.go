package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/7sg56/health-tracker-sub001/internal/api"
	"github.com/7sg56/health-tracker-sub001/internal/printer"
	"github.com/7sg56/health-tracker-sub001/pkg/iojson"
)

type WhoamiCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewWhoamiCmd creates a new whoami command
func NewWhoamiCmd(flags *Flags) *WhoamiCmd {
	return &WhoamiCmd{flags: flags}
}

// Register adds the whoami command to the application
func (cmd *WhoamiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "whoami",
		Usage:     "Show the signed-in account",
		UsageText: "healthtrack whoami [--json]",
		Flags: []cli.Flag{
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

func (cmd *WhoamiCmd) run(ctx context.Context, c *cli.Command) error {
	profile, err := cmd.flags.Services.Auth.Profile(ctx)
	if err != nil {
		if api.IsAuth(err) {
			return fmt.Errorf("not signed in. Run 'healthtrack login' first")
		}
		return fmt.Errorf("fetch profile: %w", err)
	}

	if cmd.jsonOutput {
		return iojson.Write(profile)
	}

	p := printer.New(os.Stdout)
	p.Info(fmt.Sprintf("%s <%s>", profile.Username, profile.Email))
	return nil
}
