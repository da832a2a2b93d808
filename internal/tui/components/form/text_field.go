package form

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/7sg56/health-tracker-sub001/internal/core/styles"
)

// TextField is a single-line text input form field.
type TextField struct {
	input      textinput.Model
	label      string
	validation FieldValidation
	errMsg     string
	focused    bool
}

// NewTextField creates a new single-line text input field.
func NewTextField(label, placeholder, defaultVal string, validation FieldValidation) *TextField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.Width = 40
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(styles.ColorMuted)

	if defaultVal != "" {
		ti.SetValue(defaultVal)
	}

	return &TextField{
		input:      ti,
		label:      label,
		validation: validation,
	}
}

// NewPasswordField creates a text field with masked echo.
func NewPasswordField(label string, validation FieldValidation) *TextField {
	f := NewTextField(label, "", "", validation)
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = '•'
	return f
}

func (f *TextField) Update(msg tea.Msg) (Field, tea.Cmd) {
	if !f.focused {
		return f, nil
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if f.errMsg != "" {
		// Re-check as the user types so stale errors don't linger.
		f.errMsg = f.validation.ValidateText(f.input.Value())
	}
	return f, cmd
}

func (f *TextField) View() string {
	titleStyle := styles.FormTitleBlurredStyle
	if f.focused {
		titleStyle = styles.FormTitleStyle
	}
	title := titleStyle.Render(f.label)

	parts := []string{title, f.input.View()}
	if f.errMsg != "" {
		parts = append(parts, styles.FormErrorStyle.Render(f.errMsg))
	}
	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	borderStyle := styles.FormFieldStyle
	if f.focused {
		borderStyle = styles.FormFieldFocusedStyle
	}

	return borderStyle.Render(content)
}

func (f *TextField) Focus() tea.Cmd {
	f.focused = true
	return f.input.Focus()
}

func (f *TextField) Blur() {
	f.focused = false
	f.input.Blur()
}

// Validate runs the field's rules, stores the message for rendering, and
// returns it ("" = valid).
func (f *TextField) Validate() string {
	f.errMsg = f.validation.ValidateText(f.input.Value())
	return f.errMsg
}

func (f *TextField) Focused() bool { return f.focused }
func (f *TextField) Value() any    { return f.input.Value() }
func (f *TextField) Label() string { return f.label }
