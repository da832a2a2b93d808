package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/7sg56/health-tracker-sub001/internal/api"
	"github.com/7sg56/health-tracker-sub001/internal/core/config"
	"github.com/7sg56/health-tracker-sub001/internal/core/styles"
	"github.com/7sg56/health-tracker-sub001/internal/health"
	"github.com/7sg56/health-tracker-sub001/internal/tui/views/dashboard"
	"github.com/7sg56/health-tracker-sub001/internal/tui/views/login"
	"github.com/7sg56/health-tracker-sub001/internal/tui/views/records"
	"github.com/7sg56/health-tracker-sub001/internal/updatecheck"
)

// sessionCheckedMsg reports the result of the startup session probe.
type sessionCheckedMsg struct {
	ok      bool
	profile health.Profile
}

// loggedOutMsg reports logout completion.
type loggedOutMsg struct{}

// updateAvailableMsg carries a newer released version, when one exists.
type updateAvailableMsg struct {
	latest string
}

// Model is the root Bubble Tea model: the login gate, the tab bar, the four
// views, and the toast stack.
type Model struct {
	services *health.Services
	cfg      *config.Config
	version  string
	log      zerolog.Logger

	authed  bool
	checked bool
	profile health.Profile

	active  ViewType
	login   *login.Model
	dash    *dashboard.Model
	water   *records.Model[health.WaterIntake]
	food    *records.Model[health.FoodIntake]
	workout *records.Model[health.Workout]

	toasts    *ToastController
	toastView *ToastView

	updateNotice string

	width  int
	height int
}

// NewModel wires the root model and all views from configuration.
func NewModel(cfg *config.Config, services *health.Services, version string, log zerolog.Logger) (*Model, error) {
	water, _, err := newWaterView(cfg, services.Water)
	if err != nil {
		return nil, fmt.Errorf("water view: %w", err)
	}
	food, _, err := newFoodView(cfg, services.Food)
	if err != nil {
		return nil, fmt.Errorf("food view: %w", err)
	}
	workout, _, err := newWorkoutView(cfg, services.Workout)
	if err != nil {
		return nil, fmt.Errorf("workout view: %w", err)
	}

	toasts := NewToastController()
	return &Model{
		services:  services,
		cfg:       cfg,
		version:   version,
		log:       log,
		active:    ViewDashboard,
		login:     login.New(services.Auth),
		dash:      dashboard.New(services.Score, cfg.Tracker.TrendDays),
		water:     water,
		food:      food,
		workout:   workout,
		toasts:    toasts,
		toastView: NewToastView(toasts),
	}, nil
}

// Init probes the existing session and kicks off the release check.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.checkSessionCmd(), m.updateCheckCmd())
}

func (m *Model) checkSessionCmd() tea.Cmd {
	auth := m.services.Auth
	return func() tea.Msg {
		ctx := context.Background()
		if !auth.RefreshSession(ctx) {
			return sessionCheckedMsg{}
		}
		profile, err := auth.Profile(ctx)
		if err != nil {
			return sessionCheckedMsg{}
		}
		return sessionCheckedMsg{ok: true, profile: profile}
	}
}

func (m *Model) updateCheckCmd() tea.Cmd {
	version := m.version
	log := m.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		result, err := updatecheck.Check(ctx, version)
		if err != nil {
			log.Debug().Err(err).Msg("release check failed")
			return nil
		}
		if result == nil {
			return nil
		}
		return updateAvailableMsg{latest: result.Latest}
	}
}

func (m *Model) logoutCmd() tea.Cmd {
	auth := m.services.Auth
	return func() tea.Msg {
		_ = auth.Logout(context.Background())
		return loggedOutMsg{}
	}
}

// enterApp switches from the gate to the tabs and loads every view.
func (m *Model) enterApp(profile health.Profile) tea.Cmd {
	m.authed = true
	m.profile = profile
	m.active = ViewDashboard
	return tea.Batch(
		m.dash.Init(),
		m.water.Init(),
		m.food.Init(),
		m.workout.Init(),
		scheduleRefreshTick(m.cfg.Tracker.AutoRefresh),
	)
}

func (m *Model) pushToast(n Notice) tea.Cmd {
	m.toasts.Push(n)
	if m.toasts.Ticking() {
		return nil
	}
	m.toasts.SetTicking(true)
	return scheduleToastTick()
}

// Update is the root message loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.dash.SetSize(msg.Width, msg.Height)
		m.water.SetSize(msg.Width, msg.Height)
		m.food.SetSize(msg.Width, msg.Height)
		m.workout.SetSize(msg.Width, msg.Height)
		return m, nil

	case sessionCheckedMsg:
		m.checked = true
		if msg.ok {
			return m, m.enterApp(msg.profile)
		}
		return m, nil

	case login.DoneMsg:
		cmd := m.enterApp(msg.Profile)
		return m, tea.Batch(cmd, m.pushToast(SuccessNotice("signed in as "+msg.Profile.Username)))

	case loggedOutMsg:
		m.authed = false
		m.login = login.New(m.services.Auth)
		return m, m.pushToast(InfoNotice("signed out"))

	case updateAvailableMsg:
		m.updateNotice = msg.latest
		return m, m.pushToast(InfoNotice("update available: " + msg.latest))

	case toastTickMsg:
		m.toasts.Tick(toastTickInterval)
		if m.toasts.HasToasts() {
			return m, scheduleToastTick()
		}
		m.toasts.SetTicking(false)
		return m, nil

	case refreshTickMsg:
		cmds := []tea.Cmd{scheduleRefreshTick(m.cfg.Tracker.AutoRefresh)}
		if m.authed {
			cmds = append(cmds, m.refreshActive())
		}
		return m, tea.Batch(cmds...)

	case records.LoadedMsg:
		return m.handleLoaded(msg)

	case records.OpDoneMsg:
		return m.handleOpDone(msg)

	case dashboard.LoadedMsg:
		if msg.Err != nil && api.IsAuth(msg.Err) {
			return m, m.sessionExpired()
		}
		var cmd tea.Cmd
		m.dash, cmd = m.dash.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// The gate runs its auth calls as commands whose result messages are
	// private to the login package; hand anything unmatched to it while it
	// is showing so those results are not dropped.
	if m.checked && !m.authed {
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleLoaded(msg records.LoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil && api.IsAuth(msg.Err) {
		return m, m.sessionExpired()
	}
	var cmd tea.Cmd
	switch msg.View {
	case m.water.Title():
		m.water, cmd = m.water.Update(msg)
	case m.food.Title():
		m.food, cmd = m.food.Update(msg)
	case m.workout.Title():
		m.workout, cmd = m.workout.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleOpDone(msg records.OpDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if api.IsAuth(msg.Err) {
			return m, m.sessionExpired()
		}
		return m, m.pushToast(ErrorNotice(errorText(msg.Err)))
	}

	var cmd tea.Cmd
	switch msg.View {
	case m.water.Title():
		m.water, cmd = m.water.Update(msg)
	case m.food.Title():
		m.food, cmd = m.food.Update(msg)
	case m.workout.Title():
		m.workout, cmd = m.workout.Update(msg)
	}

	// Logging or deleting entries moves the day's score.
	return m, tea.Batch(cmd, m.dash.Refresh(), m.pushToast(SuccessNotice(msg.Info)))
}

// errorText renders a failure for a toast: field messages are appended on
// validation errors, and transient failures get a retry hint.
func errorText(err error) string {
	apiErr := api.AsError(err)
	text := apiErr.Message
	if apiErr.Kind() == api.KindValidation && len(apiErr.Fields) > 0 {
		fields := make([]string, 0, len(apiErr.Fields))
		for field, msg := range apiErr.Fields {
			fields = append(fields, field+": "+msg)
		}
		sort.Strings(fields)
		text += " (" + strings.Join(fields, "; ") + ")"
	}
	if apiErr.Retryable() {
		text += "; press r to retry"
	}
	return text
}

// sessionExpired drops back to the gate after the backend rejected the
// session cookie.
func (m *Model) sessionExpired() tea.Cmd {
	if !m.authed {
		return nil
	}
	m.authed = false
	m.login = login.New(m.services.Auth)
	return m.pushToast(WarningNotice("session expired, sign in again"))
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if !m.authed {
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		return m, cmd
	}

	// Global keys apply only while no dialog, confirmation, or search box
	// is capturing input.
	if !m.activeBusy() {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "tab":
			m.active = m.active.Next()
			return m, nil
		case "shift+tab":
			m.active = m.active.Prev()
			return m, nil
		case "ctrl+l":
			return m, m.logoutCmd()
		}
	}

	return m.updateActive(msg)
}

func (m *Model) activeBusy() bool {
	switch m.active {
	case ViewWater:
		return m.water.Busy()
	case ViewFood:
		return m.food.Busy()
	case ViewWorkout:
		return m.workout.Busy()
	default:
		return false
	}
}

func (m *Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.active {
	case ViewDashboard:
		m.dash, cmd = m.dash.Update(msg)
	case ViewWater:
		m.water, cmd = m.water.Update(msg)
	case ViewFood:
		m.food, cmd = m.food.Update(msg)
	case ViewWorkout:
		m.workout, cmd = m.workout.Update(msg)
	}
	return m, cmd
}

func (m *Model) refreshActive() tea.Cmd {
	switch m.active {
	case ViewDashboard:
		return m.dash.Refresh()
	case ViewWater:
		return m.water.Refresh()
	case ViewFood:
		return m.food.Refresh()
	case ViewWorkout:
		return m.workout.Refresh()
	default:
		return nil
	}
}

// View renders the gate or the tabbed layout, with toasts on top.
func (m *Model) View() string {
	if !m.checked {
		return styles.TextMutedStyle.Render("checking session…")
	}

	var body string
	if !m.authed {
		body = m.login.View()
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.renderTabs(),
			"",
			m.renderActive(),
			"",
			m.renderStatusBar(),
		)
	}

	return m.toastView.Overlay(body, m.width)
}

func (m *Model) renderTabs() string {
	tabs := make([]string, 0, len(viewOrder))
	for _, v := range viewOrder {
		if v == m.active {
			tabs = append(tabs, styles.TabSelectedStyle.Render(v.Title()))
		} else {
			tabs = append(tabs, styles.TabNormalStyle.Render(v.Title()))
		}
	}
	return strings.Join(tabs, "  ")
}

func (m *Model) renderActive() string {
	switch m.active {
	case ViewDashboard:
		return m.dash.View()
	case ViewWater:
		return m.water.View()
	case ViewFood:
		return m.food.View()
	case ViewWorkout:
		return m.workout.View()
	default:
		return ""
	}
}

func (m *Model) renderStatusBar() string {
	parts := []string{m.profile.Username}
	if m.updateNotice != "" {
		parts = append(parts, "update: "+m.updateNotice)
	}
	parts = append(parts, "tab: switch  ctrl+l: sign out  q: quit")
	return styles.StatusBarStyle.Render(strings.Join(parts, "  •  "))
}
