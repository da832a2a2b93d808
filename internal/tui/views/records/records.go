// Package records implements the generic record-list view used by the
// water, food, and workout tabs: a table over a collection controller with
// live search, filtering, sorting, pagination, and add/edit/delete dialogs.
package records

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/7sg56/health-tracker-sub001/internal/collection"
	"github.com/7sg56/health-tracker-sub001/internal/tui/components/form"
)

// pageSizes are the page sizes cycled through with +/-.
var pageSizes = []int{5, 10, 20, 50}

// Column describes one table column for a record type.
type Column[T any] struct {
	Title string
	Width int
	Cell  func(T) string
}

// Config wires a record type into the generic view. Submit and Delete call
// the domain service; the view applies the confirmed result to the
// controller optimistically, without a refetch.
type Config[T any] struct {
	Title   string
	Columns []Column[T]
	Filter  collection.FilterConfig[T]
	ID      func(T) int64

	NewForm  func() *form.Dialog
	EditForm func(T) *form.Dialog // nil disables editing
	Submit   func(ctx context.Context, values map[string]any) (T, error)
	Edit     func(ctx context.Context, id int64, values map[string]any) (T, error)
	Delete   func(ctx context.Context, id int64) error

	Summary func(items []T) string // optional footer aggregate, e.g. total liters
}

// OpDoneMsg reports the outcome of a background service call started by a
// records view. The view's data is read back from the controller, so the
// message only carries what the toast needs.
type OpDoneMsg struct {
	View string
	Err  error
	Info string
}

// LoadedMsg signals that a fetch finished and the view should re-read its
// controller snapshot.
type LoadedMsg struct {
	View string
	Err  error
}

// datePreset is one step of the date-range cycle bound to the d key.
type datePreset int

const (
	dateAll datePreset = iota
	dateToday
	dateWeek
	dateMonth
)

func (p datePreset) label() string {
	switch p {
	case dateToday:
		return "today"
	case dateWeek:
		return "7d"
	case dateMonth:
		return "30d"
	default:
		return "all"
	}
}

func (p datePreset) rangeFrom(now time.Time) *collection.DateRange {
	// Midnight in the user's zone; Truncate would cut at UTC boundaries.
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch p {
	case dateToday:
		return &collection.DateRange{From: day, To: now}
	case dateWeek:
		return &collection.DateRange{From: day.AddDate(0, 0, -6), To: now}
	case dateMonth:
		return &collection.DateRange{From: day.AddDate(0, 0, -29), To: now}
	default:
		return nil
	}
}

// groupOption is one toggleable categorical value, flattened across groups
// so digit keys can address them.
type groupOption struct {
	group string
	value string
}

// Model is the record-list view state. All record data lives in the
// controller; the model holds only view inputs (filter state, cursor,
// dialogs).
type Model[T any] struct {
	cfg  Config[T]
	ctrl *collection.Controller[T]

	filter    collection.FilterState
	search    textinput.Model
	searching bool
	sortIdx   int // 0 = server order, then 2 entries per sort field (asc, desc)
	preset    datePreset
	options   []groupOption

	dialog    *form.Dialog
	editingID *int64
	confirmID *int64

	cursor int
	width  int
	height int
}

// New builds a record view. The filter config is validated here, at
// construction, so a bad declaration fails fast instead of surfacing as a
// broken menu at runtime.
func New[T any](cfg Config[T], ctrl *collection.Controller[T]) (*Model[T], error) {
	if err := cfg.Filter.Validate(); err != nil {
		return nil, fmt.Errorf("records %q: %w", cfg.Title, err)
	}

	search := textinput.New()
	search.Placeholder = "search"
	search.Prompt = "/ "
	search.Width = 30

	var options []groupOption
	for _, g := range cfg.Filter.Groups {
		for _, opt := range g.Options {
			options = append(options, groupOption{group: g.Key, value: opt})
		}
	}

	return &Model[T]{
		cfg:     cfg,
		ctrl:    ctrl,
		search:  search,
		options: options,
	}, nil
}

// Title returns the view's tab title.
func (m *Model[T]) Title() string { return m.cfg.Title }

// Init loads the first page.
func (m *Model[T]) Init() tea.Cmd {
	return m.loadCmd(func(ctx context.Context) error {
		return m.ctrl.LoadPage(ctx, 0)
	})
}

// Refresh reloads the view's data in the background.
func (m *Model[T]) Refresh() tea.Cmd {
	return m.loadCmd(m.ctrl.Refresh)
}

// SetSize records the available render area.
func (m *Model[T]) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Busy reports whether a dialog or confirmation is capturing input, so the
// parent model suppresses global keybindings.
func (m *Model[T]) Busy() bool {
	return m.dialog != nil || m.confirmID != nil || m.searching
}

// Update handles input. Dialogs, delete confirmation, and search capture
// keys before list navigation.
func (m *Model[T]) Update(msg tea.Msg) (*Model[T], tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg, OpDoneMsg:
		m.clampCursor()
		return m, nil
	case tea.KeyMsg:
		if m.dialog != nil {
			return m.updateDialog(msg)
		}
		if m.confirmID != nil {
			return m.updateConfirm(msg)
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *Model[T]) updateDialog(msg tea.Msg) (*Model[T], tea.Cmd) {
	var cmd tea.Cmd
	m.dialog, cmd = m.dialog.Update(msg)

	switch {
	case m.dialog.Cancelled():
		m.dialog = nil
		m.editingID = nil
	case m.dialog.Submitted():
		values := m.dialog.FormValues()
		editing := m.editingID
		m.dialog = nil
		m.editingID = nil
		if editing != nil {
			return m, m.editCmd(*editing, values)
		}
		return m, m.submitCmd(values)
	}
	return m, cmd
}

func (m *Model[T]) updateConfirm(msg tea.KeyMsg) (*Model[T], tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		id := *m.confirmID
		m.confirmID = nil
		return m, m.deleteCmd(id)
	case "n", "esc":
		m.confirmID = nil
	}
	return m, nil
}

func (m *Model[T]) updateSearch(msg tea.KeyMsg) (*Model[T], tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.filter.Query = m.search.Value()
	m.clampCursor()
	return m, cmd
}

func (m *Model[T]) updateList(msg tea.KeyMsg) (*Model[T], tea.Cmd) {
	key := msg.String()

	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		visible := len(m.visibleItems())
		if m.cursor < visible-1 {
			m.cursor++
		}
		// Nearing the bottom in scroll mode pulls the next page in.
		if m.ctrl.Mode() == collection.ModeAccumulate && m.cursor >= visible-2 {
			return m, m.loadCmd(m.ctrl.LoadMore)
		}
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case "s":
		m.cycleSort()
		m.clampCursor()
	case "d":
		m.cycleDatePreset()
		m.clampCursor()
	case "c":
		m.filter.Reset()
		m.search.SetValue("")
		m.preset = dateAll
		m.sortIdx = 0
		m.clampCursor()
	case "a":
		if m.cfg.NewForm != nil {
			m.dialog = m.cfg.NewForm()
		}
	case "e":
		if m.cfg.EditForm != nil {
			if item, ok := m.selected(); ok {
				id := m.cfg.ID(item)
				m.editingID = &id
				m.dialog = m.cfg.EditForm(item)
			}
		}
	case "x":
		if item, ok := m.selected(); ok {
			id := m.cfg.ID(item)
			m.confirmID = &id
		}
	case "r":
		return m, m.Refresh()
	case "n":
		if m.ctrl.Mode() == collection.ModePaged {
			snap := m.ctrl.Snapshot()
			if snap.HasMore {
				return m, m.loadPageCmd(snap.CurrentPage + 1)
			}
		}
	case "p":
		if m.ctrl.Mode() == collection.ModePaged {
			snap := m.ctrl.Snapshot()
			if snap.CurrentPage > 0 {
				return m, m.loadPageCmd(snap.CurrentPage - 1)
			}
		}
	case "m":
		if m.ctrl.Mode() == collection.ModeAccumulate {
			return m, m.loadCmd(m.ctrl.LoadMore)
		}
	case "+", "=":
		return m, m.cyclePageSize(1)
	case "-":
		return m, m.cyclePageSize(-1)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			idx := int(key[0] - '1')
			if idx < len(m.options) {
				opt := m.options[idx]
				m.filter.Toggle(opt.group, opt.value)
				m.clampCursor()
			}
		}
	}
	return m, nil
}

// cycleSort steps through server order, then each declared sort field
// ascending and descending.
func (m *Model[T]) cycleSort() {
	total := 1 + len(m.cfg.Filter.Sorts)*2
	m.sortIdx = (m.sortIdx + 1) % total
	if m.sortIdx == 0 {
		m.filter.Sort = nil
		return
	}
	field := m.cfg.Filter.Sorts[(m.sortIdx-1)/2]
	m.filter.Sort = &collection.SortSpec{Key: field.Key, Desc: (m.sortIdx-1)%2 == 1}
}

func (m *Model[T]) cycleDatePreset() {
	m.preset = (m.preset + 1) % 4
	m.filter.Range = m.preset.rangeFrom(time.Now())
}

func (m *Model[T]) cyclePageSize(dir int) tea.Cmd {
	snap := m.ctrl.Snapshot()
	idx := 0
	for i, n := range pageSizes {
		if n == snap.PageSize {
			idx = i
			break
		}
	}
	idx += dir
	if idx < 0 || idx >= len(pageSizes) {
		return nil
	}
	m.ctrl.SetPageSize(pageSizes[idx])
	m.cursor = 0
	return m.loadPageCmd(0)
}

// visibleItems derives the filtered, sorted rows from the controller's
// current snapshot.
func (m *Model[T]) visibleItems() []T {
	snap := m.ctrl.Snapshot()
	return collection.Apply(m.cfg.Filter, m.filter, snap.Items)
}

func (m *Model[T]) selected() (T, bool) {
	items := m.visibleItems()
	if m.cursor < 0 || m.cursor >= len(items) {
		var zero T
		return zero, false
	}
	return items[m.cursor], true
}

func (m *Model[T]) clampCursor() {
	visible := len(m.visibleItems())
	if visible == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= visible {
		m.cursor = visible - 1
	}
}

func (m *Model[T]) loadCmd(load func(ctx context.Context) error) tea.Cmd {
	view := m.cfg.Title
	return func() tea.Msg {
		err := load(context.Background())
		return LoadedMsg{View: view, Err: err}
	}
}

func (m *Model[T]) loadPageCmd(n int) tea.Cmd {
	return m.loadCmd(func(ctx context.Context) error {
		return m.ctrl.LoadPage(ctx, n)
	})
}

func (m *Model[T]) submitCmd(values map[string]any) tea.Cmd {
	view := m.cfg.Title
	return func() tea.Msg {
		item, err := m.cfg.Submit(context.Background(), values)
		if err != nil {
			return OpDoneMsg{View: view, Err: err}
		}
		m.ctrl.AddItem(item)
		return OpDoneMsg{View: view, Info: "entry added"}
	}
}

func (m *Model[T]) editCmd(id int64, values map[string]any) tea.Cmd {
	view := m.cfg.Title
	return func() tea.Msg {
		item, err := m.cfg.Edit(context.Background(), id, values)
		if err != nil {
			return OpDoneMsg{View: view, Err: err}
		}
		m.ctrl.UpdateItem(id, func(T) T { return item })
		return OpDoneMsg{View: view, Info: "entry updated"}
	}
}

func (m *Model[T]) deleteCmd(id int64) tea.Cmd {
	view := m.cfg.Title
	return func() tea.Msg {
		if err := m.cfg.Delete(context.Background(), id); err != nil {
			return OpDoneMsg{View: view, Err: err}
		}
		m.ctrl.RemoveItem(id)
		return OpDoneMsg{View: view, Info: "entry deleted"}
	}
}
