// Package printer writes styled human-facing CLI output. Log output goes to
// the log file; this is for the user's terminal.
package printer

import (
	"fmt"
	"io"

	"github.com/7sg56/health-tracker-sub001/internal/core/styles"
)

// Printer writes styled status lines to a terminal stream.
type Printer struct {
	w io.Writer
}

// New creates a printer over w, typically os.Stdout.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Success prints a check-marked line, with an optional dimmed detail.
func (p *Printer) Success(msg string, details ...string) {
	fmt.Fprintln(p.w, styles.TextSuccessStyle.Render("✓ "+msg))
	p.details(details)
}

// Error prints a cross-marked line, with an optional dimmed detail.
func (p *Printer) Error(msg string, details ...string) {
	fmt.Fprintln(p.w, styles.TextErrorStyle.Render("✗ "+msg))
	p.details(details)
}

// Info prints a plain informational line.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.w, styles.TextForegroundStyle.Render(msg))
}

// Muted prints a dimmed line.
func (p *Printer) Muted(msg string) {
	fmt.Fprintln(p.w, styles.TextMutedStyle.Render(msg))
}

func (p *Printer) details(details []string) {
	for _, d := range details {
		fmt.Fprintln(p.w, styles.TextMutedStyle.Render("  "+d))
	}
}
