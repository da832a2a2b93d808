package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/7sg56/health-tracker-sub001/internal/api"
	"github.com/7sg56/health-tracker-sub001/internal/commands"
	"github.com/7sg56/health-tracker-sub001/internal/core/config"
	"github.com/7sg56/health-tracker-sub001/internal/core/styles"
	"github.com/7sg56/health-tracker-sub001/internal/health"
	"github.com/7sg56/health-tracker-sub001/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		apiClient *api.Client
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "healthtrack",
		Usage:     "Track water, food, and workouts against a health tracker backend",
		UsageText: "healthtrack [global options] command [command options]",
		Description: `Healthtrack is a terminal client for a health tracker server. It logs
water, food, and workout entries, browses them with search and filters,
and shows the backend-computed daily health score.

Run 'healthtrack' with no arguments to open the interactive tracker.
Run 'healthtrack login' first to start a session.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("HEALTHTRACK_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file",
				Sources:     cli.EnvVars("HEALTHTRACK_LOG_FILE"),
				Value:       commands.DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("HEALTHTRACK_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "server",
				Usage:       "backend base URL (overrides config)",
				Sources:     cli.EnvVars("HEALTHTRACK_SERVER"),
				Destination: &flags.Server,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if flags.Server != "" {
				cfg.Server.BaseURL = flags.Server
			}
			flags.Config = cfg

			// Apply configured theme (validation ensures the name is valid)
			palette, _ := styles.GetPalette(cfg.TUI.Theme)
			styles.SetTheme(palette)

			client, err := api.New(api.Options{
				BaseURL:    cfg.Server.BaseURL,
				Timeout:    cfg.Server.Timeout,
				CSRFCookie: cfg.Server.CSRFCookie,
				CSRFHeader: cfg.Server.CSRFHeader,
				Debug:      cfg.Server.Debug,
			}, api.NewSessionState(), logutils.Component("api"))
			if err != nil {
				return ctx, fmt.Errorf("build api client: %w", err)
			}
			apiClient = client

			// Resume the session established by a previous invocation.
			flags.SessionFile = commands.DefaultSessionFile()
			client.LoadCookies(flags.SessionFile)

			flags.Services = health.NewServices(client)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if apiClient != nil {
				if err := apiClient.SaveCookies(flags.SessionFile); err != nil {
					log.Debug().Err(err).Msg("save session file")
				}
			}
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, version)

	app = commands.NewLoginCmd(flags).Register(app)
	app = commands.NewRegisterCmd(flags).Register(app)
	app = commands.NewLogoutCmd(flags).Register(app)
	app = commands.NewWhoamiCmd(flags).Register(app)
	app = commands.NewLogCmd(flags).Register(app)
	app = commands.NewLsCmd(flags).Register(app)
	app = commands.NewRmCmd(flags).Register(app)
	app = commands.NewScoreCmd(flags).Register(app)
	app = commands.NewImportCmd(flags).Register(app)
	app = tuiCmd.Register(app)

	// Open the TUI when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'healthtrack --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
