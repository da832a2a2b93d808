package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/7sg56/health-tracker-sub001/internal/api"
	"github.com/7sg56/health-tracker-sub001/internal/core/styles"
	"github.com/7sg56/health-tracker-sub001/pkg/iojson"
)

type LsCmd struct {
	flags *Flags

	// flags
	page       int
	size       int
	sort       string
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command with its resource subcommands.
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	listFlags := []cli.Flag{
		&cli.IntFlag{
			Name:        "page",
			Usage:       "zero-based page number",
			Destination: &cmd.page,
		},
		&cli.IntFlag{
			Name:        "size",
			Usage:       "page size (defaults to the configured size)",
			Destination: &cmd.size,
		},
		&cli.StringFlag{
			Name:        "sort",
			Usage:       "server sort directive, e.g. createdAt,desc",
			Destination: &cmd.sort,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "output the page envelope as JSON",
			Destination: &cmd.jsonOutput,
		},
	}

	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List logged entries",
		UsageText: "healthtrack ls <water|food|workout> [--page n] [--size n] [--sort s] [--json]",
		Commands: []*cli.Command{
			{
				Name:   "water",
				Usage:  "List water entries",
				Flags:  listFlags,
				Action: cmd.runWater,
			},
			{
				Name:   "food",
				Usage:  "List food entries",
				Flags:  listFlags,
				Action: cmd.runFood,
			},
			{
				Name:   "workout",
				Usage:  "List workouts",
				Flags:  listFlags,
				Action: cmd.runWorkout,
			},
		},
	})

	return app
}

func (cmd *LsCmd) pageRequest() api.PageRequest {
	size := cmd.size
	if size <= 0 {
		size = cmd.flags.Config.Tracker.PageSize
	}
	sort := cmd.sort
	if sort == "" {
		sort = cmd.flags.Config.Tracker.Sort
	}
	return api.PageRequest{Page: cmd.page, Size: size, Sort: sort}
}

func (cmd *LsCmd) runWater(ctx context.Context, c *cli.Command) error {
	page, err := cmd.flags.Services.Water.List(ctx, cmd.pageRequest())
	if err != nil {
		return fmt.Errorf("list water: %w", err)
	}
	if cmd.jsonOutput {
		return iojson.Write(page)
	}

	w := newListWriter()
	fmt.Fprintln(w, "ID\tAMOUNT\tLOGGED")
	for _, e := range page.Content {
		fmt.Fprintf(w, "%d\t%.2f L\t%s\n", e.ID, e.AmountLtr, formatEntryTime(e.CreatedAt))
	}
	return finishListWriter(w, page.Page)
}

func (cmd *LsCmd) runFood(ctx context.Context, c *cli.Command) error {
	page, err := cmd.flags.Services.Food.List(ctx, cmd.pageRequest())
	if err != nil {
		return fmt.Errorf("list food: %w", err)
	}
	if cmd.jsonOutput {
		return iojson.Write(page)
	}

	w := newListWriter()
	fmt.Fprintln(w, "ID\tNAME\tKCAL\tMEAL\tLOGGED")
	for _, e := range page.Content {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", e.ID, e.Name, e.Calories, e.MealType, formatEntryTime(e.CreatedAt))
	}
	return finishListWriter(w, page.Page)
}

func (cmd *LsCmd) runWorkout(ctx context.Context, c *cli.Command) error {
	page, err := cmd.flags.Services.Workout.List(ctx, cmd.pageRequest())
	if err != nil {
		return fmt.Errorf("list workouts: %w", err)
	}
	if cmd.jsonOutput {
		return iojson.Write(page)
	}

	w := newListWriter()
	fmt.Fprintln(w, "ID\tACTIVITY\tMIN\tBURNED\tLOGGED")
	for _, e := range page.Content {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\n", e.ID, e.Activity, e.DurationMin, e.CaloriesBurned, formatEntryTime(e.CreatedAt))
	}
	return finishListWriter(w, page.Page)
}

func newListWriter() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func finishListWriter(w *tabwriter.Writer, meta api.PageMeta) error {
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println(styles.TextMutedStyle.Render(
		fmt.Sprintf("page %d/%d, %d total", meta.Number+1, max(meta.TotalPages, 1), meta.TotalElements)))
	return nil
}

func formatEntryTime(ts time.Time) string {
	return ts.Local().Format("2006-01-02 15:04")
}
