package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/7sg56/health-tracker-sub001/internal/core/styles"
	"github.com/7sg56/health-tracker-sub001/internal/health"
	"github.com/7sg56/health-tracker-sub001/internal/printer"
)

type LoginCmd struct {
	flags *Flags

	// Command-specific flags
	username string
	password string
}

// NewLoginCmd creates a new login command
func NewLoginCmd(flags *Flags) *LoginCmd {
	return &LoginCmd{flags: flags}
}

// Register adds the login command to the application
func (cmd *LoginCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "login",
		Usage:     "Sign in and store the session cookie for this run",
		UsageText: "healthtrack login [--username name]",
		Description: `Starts a backend session. The password is always prompted interactively;
it is never accepted as a flag so it cannot leak into shell history.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "username",
				Aliases:     []string{"u"},
				Usage:       "account username",
				Destination: &cmd.username,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LoginCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.New(os.Stdout)

	var fields []huh.Field
	if cmd.username == "" {
		fields = append(fields, huh.NewInput().
			Title("Username").
			Validate(requireValue("username")).
			Value(&cmd.username))
	}
	fields = append(fields, huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Validate(requireValue("password")).
		Value(&cmd.password))

	err := huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(styles.FormTheme()).
		RunWithContext(ctx)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return fmt.Errorf("form: %w", err)
	}

	profile, err := cmd.flags.Services.Auth.Login(ctx, health.LoginRequest{
		Username: cmd.username,
		Password: cmd.password,
	})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	p.Success("Signed in", fmt.Sprintf("%s <%s>", profile.Username, profile.Email))
	return nil
}

func requireValue(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}
