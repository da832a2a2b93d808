package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/7sg56/health-tracker-sub001/internal/tui"
)

type TuiCmd struct {
	flags   *Flags
	version string
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, version string) *TuiCmd {
	return &TuiCmd{flags: flags, version: version}
}

// Register adds the tui command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tui",
		Usage:     "Open the interactive tracker",
		UsageText: "healthtrack tui",
		Action:    cmd.Run,
	})

	return app
}

// Run executes the TUI. Exported for use as the default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	model, err := tui.NewModel(cmd.flags.Config, cmd.flags.Services, cmd.version, log.Logger)
	if err != nil {
		return fmt.Errorf("build tui: %w", err)
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
