// Package dashboard implements the health score view: today's composite
// score with its water, food, and workout components, plus a trailing trend.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/7sg56/health-tracker-sub001/internal/core/styles"
	"github.com/7sg56/health-tracker-sub001/internal/health"
)

// trendGlyphs maps score buckets to bar heights, low to high.
var trendGlyphs = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// LoadedMsg carries the fetched score data back into the model.
type LoadedMsg struct {
	Score Score
	Err   error
}

// Score bundles today's score with the trailing trend.
type Score struct {
	Today health.Score
	Trend []health.Score
}

// Model is the dashboard view state.
type Model struct {
	service   *health.ScoreService
	trendDays int

	score   Score
	loaded  bool
	loading bool
	errMsg  string

	width  int
	height int
}

// New builds a dashboard over the score service. trendDays is how many
// trailing days the trend strip covers.
func New(service *health.ScoreService, trendDays int) *Model {
	if trendDays <= 0 {
		trendDays = 7
	}
	return &Model{service: service, trendDays: trendDays}
}

// Init fetches the initial score data.
func (m *Model) Init() tea.Cmd {
	return m.Refresh()
}

// Refresh re-fetches today's score and the trend in the background.
func (m *Model) Refresh() tea.Cmd {
	m.loading = true
	service := m.service
	days := m.trendDays
	return func() tea.Msg {
		ctx := context.Background()
		today, err := service.Current(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		trend, err := service.LastDays(ctx, days)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		return LoadedMsg{Score: Score{Today: today, Trend: trend}}
	}
}

// SetSize records the available render area.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update consumes score load results and the refresh key.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.score = msg.Score
		m.loaded = true
	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, m.Refresh()
		}
	}
	return m, nil
}

// View renders the score breakdown and trend.
func (m *Model) View() string {
	if !m.loaded {
		if m.errMsg != "" {
			return styles.TextErrorStyle.Render(m.errMsg)
		}
		return styles.TextMutedStyle.Render("loading score…")
	}

	today := m.score.Today
	sections := []string{
		m.renderToday(today),
		"",
		m.renderComponents(today),
	}

	if len(m.score.Trend) > 0 {
		sections = append(sections, "", m.renderTrend())
	}
	if m.errMsg != "" {
		sections = append(sections, "", styles.TextErrorStyle.Render(m.errMsg))
	}
	if m.loading {
		sections = append(sections, "", styles.TextMutedStyle.Render("refreshing…"))
	}
	sections = append(sections, "", styles.HelpStyle.Render("r: refresh"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderToday(s health.Score) string {
	value := styles.ScoreStyle(s.Value).Render(fmt.Sprintf("%.0f", s.Value))
	return lipgloss.JoinHorizontal(lipgloss.Center,
		styles.TitleStyle.Render("Health score "),
		value,
		styles.TextMutedStyle.Render(" / 100  "),
		styles.TextMutedStyle.Render(s.Date),
	)
}

func (m *Model) renderComponents(s health.Score) string {
	rows := []string{
		componentRow("Water", s.WaterScore),
		componentRow("Food", s.FoodScore),
		componentRow("Workout", s.WorkoutScore),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func componentRow(label string, value float64) string {
	const barWidth = 20
	filled := int(value / 100 * barWidth)
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return fmt.Sprintf("%-8s %s %s",
		label,
		styles.ScoreStyle(value).Render(bar),
		styles.TextMutedStyle.Render(fmt.Sprintf("%3.0f", value)),
	)
}

func (m *Model) renderTrend() string {
	glyphs := make([]string, 0, len(m.score.Trend))
	for _, s := range m.score.Trend {
		glyphs = append(glyphs, styles.ScoreStyle(s.Value).Render(string(trendGlyph(s.Value))))
	}
	title := styles.TextMutedStyle.Render(fmt.Sprintf("last %d days ", len(m.score.Trend)))
	return title + strings.Join(glyphs, "")
}

// trendGlyph maps a 0-100 score onto the glyph ramp.
func trendGlyph(value float64) rune {
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	idx := int(value / 100 * float64(len(trendGlyphs)-1))
	return trendGlyphs[idx]
}
