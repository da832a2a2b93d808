package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/7sg56/health-tracker-sub001/internal/core/styles"
)

// ToastView renders the active toast stack.
type ToastView struct {
	controller *ToastController
}

func NewToastView(controller *ToastController) *ToastView {
	return &ToastView{controller: controller}
}

// View renders the toast stack as a single string with toasts stacked
// vertically (oldest at top, newest at bottom).
func (v *ToastView) View() string {
	toasts := v.controller.Toasts()
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, renderToast(t))
	}

	return strings.Join(rendered, "\n")
}

func renderToast(t toast) string {
	var icon string
	var style lipgloss.Style

	switch t.notice.Level {
	case LevelError:
		icon = "✗"
		style = styles.ToastErrorStyle
	case LevelWarning:
		icon = "!"
		style = styles.ToastWarningStyle
	case LevelSuccess:
		icon = "✓"
		style = styles.ToastSuccessStyle
	default:
		icon = "i"
		style = styles.ToastInfoStyle
	}

	content := icon + " " + t.notice.Message
	return style.Width(toastWidth).Render(content)
}

// Overlay appends the toast stack right-aligned beneath background.
func (v *ToastView) Overlay(background string, width int) string {
	toastContent := v.View()
	if toastContent == "" {
		return background
	}
	placed := lipgloss.PlaceHorizontal(width, lipgloss.Right, toastContent)
	return lipgloss.JoinVertical(lipgloss.Left, background, placed)
}
