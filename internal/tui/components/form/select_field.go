package form

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/7sg56/health-tracker-sub001/internal/core/styles"
)

// SelectField is a single-select form field over a static option list.
type SelectField struct {
	options []string
	index   int
	label   string
	focused bool
}

// NewSelectField creates a single-select field. defaultVal pre-selects the
// matching option if found.
func NewSelectField(label string, options []string, defaultVal string) *SelectField {
	index := 0
	for i, opt := range options {
		if opt == defaultVal {
			index = i
			break
		}
	}
	return &SelectField{
		options: options,
		index:   index,
		label:   label,
	}
}

func (f *SelectField) Update(msg tea.Msg) (Field, tea.Cmd) {
	if !f.focused {
		return f, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if f.index > 0 {
			f.index--
		}
	case "down", "j":
		if f.index < len(f.options)-1 {
			f.index++
		}
	}
	return f, nil
}

func (f *SelectField) View() string {
	titleStyle := styles.FormTitleBlurredStyle
	if f.focused {
		titleStyle = styles.FormTitleStyle
	}
	parts := []string{titleStyle.Render(f.label)}

	for i, opt := range f.options {
		cursor := "  "
		style := styles.TextMutedStyle
		if i == f.index {
			cursor = "> "
			style = styles.TextForegroundStyle
			if f.focused {
				style = styles.TextPrimaryStyle
			}
		}
		parts = append(parts, cursor+style.Render(opt))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	borderStyle := styles.FormFieldStyle
	if f.focused {
		borderStyle = styles.FormFieldFocusedStyle
	}
	return borderStyle.Render(content)
}

func (f *SelectField) Focus() tea.Cmd {
	f.focused = true
	return nil
}

func (f *SelectField) Blur() {
	f.focused = false
}

// Validate always passes: a select field cannot hold an invalid value.
func (f *SelectField) Validate() string { return "" }

func (f *SelectField) Focused() bool { return f.focused }
func (f *SelectField) Label() string { return f.label }

func (f *SelectField) Value() any {
	if len(f.options) == 0 {
		return ""
	}
	return f.options[f.index]
}
