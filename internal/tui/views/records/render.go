package records

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/7sg56/health-tracker-sub001/internal/collection"
	"github.com/7sg56/health-tracker-sub001/internal/core/styles"
)

// View renders the record table, or the active dialog / confirmation modal
// in its place.
func (m *Model[T]) View() string {
	if m.dialog != nil {
		return styles.ModalStyle.Render(m.dialog.View())
	}
	if m.confirmID != nil {
		return m.renderConfirm()
	}

	snap := m.ctrl.Snapshot()
	items := collection.Apply(m.cfg.Filter, m.filter, snap.Items)

	sections := []string{
		m.renderHeader(snap, len(items)),
		m.renderTable(items),
		m.renderFooter(snap),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model[T]) renderConfirm() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Delete entry?"),
		"",
		styles.TextMutedStyle.Render("This cannot be undone."),
		"",
		styles.HelpStyle.Render("y: delete  n: keep"),
	)
	return styles.ModalStyle.Render(content)
}

func (m *Model[T]) renderHeader(snap collection.State[T], visible int) string {
	parts := []string{}

	if m.searching || m.filter.Query != "" {
		parts = append(parts, m.search.View())
	}

	if n := m.filter.ActiveCount(); n > 0 {
		parts = append(parts, styles.BadgeStyle.Render(fmt.Sprintf("%d filters", n)))
	}
	if m.preset != dateAll {
		parts = append(parts, styles.BadgeStyle.Render(m.preset.label()))
	}
	if m.filter.Sort != nil {
		dir := "asc"
		if m.filter.Sort.Desc {
			dir = "desc"
		}
		parts = append(parts, styles.BadgeStyle.Render(m.filter.Sort.Key+" "+dir))
	}
	for _, g := range m.cfg.Filter.Groups {
		for _, opt := range g.Options {
			if m.filter.IsSelected(g.Key, opt) {
				parts = append(parts, styles.BadgeStyle.Render(opt))
			}
		}
	}

	parts = append(parts, styles.TextMutedStyle.Render(
		fmt.Sprintf("%d of %d", visible, snap.TotalElements)))

	if len(parts) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, interleave(parts, " ")...)
}

func (m *Model[T]) renderTable(items []T) string {
	header := make([]string, 0, len(m.cfg.Columns))
	for _, col := range m.cfg.Columns {
		header = append(header, pad(col.Title, col.Width))
	}
	rows := []string{styles.TableHeaderStyle.Render(strings.Join(header, "  "))}

	if len(items) == 0 {
		rows = append(rows, styles.TextMutedStyle.Render("no entries"))
	}

	for i, item := range items {
		cells := make([]string, 0, len(m.cfg.Columns))
		for _, col := range m.cfg.Columns {
			cells = append(cells, pad(col.Cell(item), col.Width))
		}
		row := strings.Join(cells, "  ")
		if i == m.cursor {
			rows = append(rows, styles.RowSelectedStyle.Render(row))
		} else {
			rows = append(rows, styles.TableRowStyle.Render(row))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model[T]) renderFooter(snap collection.State[T]) string {
	lines := []string{}

	if m.cfg.Summary != nil {
		if summary := m.cfg.Summary(snap.Items); summary != "" {
			lines = append(lines, styles.TextPrimaryStyle.Render(summary))
		}
	}

	status := []string{}
	if m.ctrl.Mode() == collection.ModePaged {
		status = append(status, fmt.Sprintf("page %d/%d", snap.CurrentPage+1, max(snap.TotalPages, 1)))
	} else if snap.HasMore {
		status = append(status, "more available (m)")
	}
	status = append(status, fmt.Sprintf("size %d", snap.PageSize))
	if snap.IsLoading {
		status = append(status, "loading…")
	}
	lines = append(lines, styles.StatusBarStyle.Render(strings.Join(status, "  ")))

	if snap.Error != "" {
		lines = append(lines, styles.TextErrorStyle.Render(snap.Error))
	}

	lines = append(lines, styles.HelpStyle.Render(m.helpLine()))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model[T]) helpLine() string {
	keys := []string{"/: search", "s: sort", "d: dates", "c: clear", "a: add"}
	if m.cfg.EditForm != nil {
		keys = append(keys, "e: edit")
	}
	keys = append(keys, "x: delete", "r: refresh")
	if m.ctrl.Mode() == collection.ModePaged {
		keys = append(keys, "n/p: page")
	} else {
		keys = append(keys, "m: more")
	}
	if len(m.options) > 0 {
		keys = append(keys, "1-9: filters")
	}
	return strings.Join(keys, "  ")
}

func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		if width <= 1 {
			return string(runes[:width])
		}
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}

func interleave(parts []string, sep string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, p)
	}
	return out
}
