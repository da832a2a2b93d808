// Package login implements the authentication gate shown before the main
// tabs: a login form that can flip to registration.
package login

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/7sg56/health-tracker-sub001/internal/core/styles"
	"github.com/7sg56/health-tracker-sub001/internal/health"
	"github.com/7sg56/health-tracker-sub001/internal/tui/components/form"
)

// Mode selects which form is shown.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// DoneMsg signals a completed sign-in. The root model switches to the main
// tabs when it sees one.
type DoneMsg struct {
	Profile health.Profile
}

// resultMsg is the internal outcome of an auth call.
type resultMsg struct {
	profile    health.Profile
	registered bool
	err        error
}

// Model is the login view state.
type Model struct {
	auth *health.AuthService

	mode    Mode
	dialog  *form.Dialog
	busy    bool
	errMsg  string
	infoMsg string
}

// New builds the login view in login mode.
func New(auth *health.AuthService) *Model {
	m := &Model{auth: auth}
	m.dialog = m.buildDialog()
	return m
}

func (m *Model) buildDialog() *form.Dialog {
	if m.mode == ModeRegister {
		return form.NewDialog("Create account", []form.Field{
			form.NewTextField("Username", "", "", form.FieldValidation{Required: true, MaxLength: 50}),
			form.NewTextField("Email", "you@example.com", "", form.FieldValidation{Required: true, MaxLength: 254}),
			form.NewPasswordField("Password", form.FieldValidation{Required: true}),
		}, []string{"username", "email", "password"})
	}
	return form.NewDialog("Sign in", []form.Field{
		form.NewTextField("Username", "", "", form.FieldValidation{Required: true}),
		form.NewPasswordField("Password", form.FieldValidation{Required: true}),
	}, []string{"username", "password"})
}

// Update drives the active form and runs the auth call on submit. ctrl+t
// flips between sign-in and registration.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			m.dialog = m.buildDialog()
			return m, nil
		}
		if msg.registered {
			// Registration does not start a session; drop back to sign-in.
			m.mode = ModeLogin
			m.infoMsg = "account created, sign in to continue"
			m.errMsg = ""
			m.dialog = m.buildDialog()
			return m, nil
		}
		return m, func() tea.Msg { return DoneMsg{Profile: msg.profile} }

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		if msg.String() == "ctrl+t" {
			m.toggleMode()
			return m, nil
		}

		var cmd tea.Cmd
		m.dialog, cmd = m.dialog.Update(msg)
		switch {
		case m.dialog.Cancelled():
			// There is nothing behind the gate to fall back to.
			m.dialog = m.buildDialog()
		case m.dialog.Submitted():
			values := m.dialog.FormValues()
			m.busy = true
			m.errMsg = ""
			m.infoMsg = ""
			m.dialog = m.buildDialog()
			return m, m.authCmd(values)
		}
		return m, cmd
	}
	return m, nil
}

func (m *Model) toggleMode() {
	if m.mode == ModeLogin {
		m.mode = ModeRegister
	} else {
		m.mode = ModeLogin
	}
	m.errMsg = ""
	m.infoMsg = ""
	m.dialog = m.buildDialog()
}

func (m *Model) authCmd(values map[string]any) tea.Cmd {
	mode := m.mode
	auth := m.auth
	return func() tea.Msg {
		ctx := context.Background()
		if mode == ModeRegister {
			_, err := auth.Register(ctx, health.RegisterRequest{
				Username: values["username"].(string),
				Email:    values["email"].(string),
				Password: values["password"].(string),
			})
			return resultMsg{registered: true, err: err}
		}
		profile, err := auth.Login(ctx, health.LoginRequest{
			Username: values["username"].(string),
			Password: values["password"].(string),
		})
		return resultMsg{profile: profile, err: err}
	}
}

// View renders the gate form with mode hint and any error.
func (m *Model) View() string {
	sections := []string{styles.ModalStyle.Render(m.dialog.View())}

	if m.busy {
		sections = append(sections, styles.TextMutedStyle.Render("contacting server…"))
	}
	if m.infoMsg != "" {
		sections = append(sections, styles.TextSuccessStyle.Render(m.infoMsg))
	}
	if m.errMsg != "" {
		sections = append(sections, styles.TextErrorStyle.Render(m.errMsg))
	}

	hint := "ctrl+t: create account"
	if m.mode == ModeRegister {
		hint = "ctrl+t: back to sign in"
	}
	sections = append(sections, styles.HelpStyle.Render(hint))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
