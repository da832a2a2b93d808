package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/7sg56/health-tracker-sub001/internal/api"
	"github.com/7sg56/health-tracker-sub001/internal/core/styles"
	"github.com/7sg56/health-tracker-sub001/internal/health"
	"github.com/7sg56/health-tracker-sub001/internal/printer"
)

type RegisterCmd struct {
	flags *Flags

	// Command-specific flags
	username string
	email    string
	password string
}

// NewRegisterCmd creates a new register command
func NewRegisterCmd(flags *Flags) *RegisterCmd {
	return &RegisterCmd{flags: flags}
}

// Register adds the register command to the application
func (cmd *RegisterCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "register",
		Usage:     "Create a new account",
		UsageText: "healthtrack register [--username name] [--email addr]",
		Description: `Creates an account on the backend. Registration does not start a
session; run 'healthtrack login' afterwards.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "username",
				Aliases:     []string{"u"},
				Usage:       "account username",
				Destination: &cmd.username,
			},
			&cli.StringFlag{
				Name:        "email",
				Usage:       "account email",
				Destination: &cmd.email,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RegisterCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.New(os.Stdout)

	var fields []huh.Field
	if cmd.username == "" {
		fields = append(fields, huh.NewInput().
			Title("Username").
			Validate(requireValue("username")).
			Value(&cmd.username))
	}
	if cmd.email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Validate(validateEmail).
			Value(&cmd.email))
	}
	fields = append(fields, huh.NewInput().
		Title("Password").
		Description("at least 8 characters").
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

	profile, err := cmd.flags.Services.Auth.Register(ctx, health.RegisterRequest{
		Username: cmd.username,
		Email:    cmd.email,
		Password: cmd.password,
	})
	if err != nil {
		if api.IsConflict(err) {
			return fmt.Errorf("username or email already taken")
		}
		return fmt.Errorf("register: %w", err)
	}

	p.Success("Account created", fmt.Sprintf("%s <%s>", profile.Username, profile.Email))
	p.Muted("run 'healthtrack login' to sign in")
	return nil
}

func validateEmail(s string) error {
	if !strings.Contains(s, "@") {
		return fmt.Errorf("email address is required")
	}
	return nil
}
