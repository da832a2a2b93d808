package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/7sg56/health-tracker-sub001/internal/printer"
)

type LogoutCmd struct {
	flags *Flags
}

// NewLogoutCmd creates a new logout command
func NewLogoutCmd(flags *Flags) *LogoutCmd {
	return &LogoutCmd{flags: flags}
}

// Register adds the logout command to the application
func (cmd *LogoutCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "logout",
		Usage:     "End the backend session",
		UsageText: "healthtrack logout",
		Action:    cmd.run,
	})

	return app
}

func (cmd *LogoutCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.New(os.Stdout)

	if err := cmd.flags.Services.Auth.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	p.Success("Signed out")
	return nil
}
