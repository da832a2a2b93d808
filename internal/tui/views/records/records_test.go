package records

import (
	"context"
	"strconv"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7sg56/health-tracker-sub001/internal/api"
	"github.com/7sg56/health-tracker-sub001/internal/collection"
	"github.com/7sg56/health-tracker-sub001/internal/tui/components/form"
)

type entry struct {
	ID   int64
	Name string
	Meal string
	Cal  int
	At   time.Time
}

func testConfig(submit func(ctx context.Context, values map[string]any) (entry, error), del func(ctx context.Context, id int64) error) Config[entry] {
	return Config[entry]{
		Title: "Food",
		Columns: []Column[entry]{
			{Title: "Name", Width: 20, Cell: func(e entry) string { return e.Name }},
			{Title: "Calories", Width: 8, Cell: func(e entry) string { return strconv.Itoa(e.Cal) }},
		},
		Filter: collection.FilterConfig[entry]{
			Search: []func(entry) string{func(e entry) string { return e.Name }},
			Date:   func(e entry) time.Time { return e.At },
			Groups: []collection.FilterGroup[entry]{
				{Key: "meal", Extract: func(e entry) string { return e.Meal }, Options: []string{"breakfast", "lunch"}},
			},
			Sorts: []collection.SortField[entry]{
				{Key: "calories", Compare: func(a, b entry) int { return a.Cal - b.Cal }},
			},
		},
		ID: func(e entry) int64 { return e.ID },
		NewForm: func() *form.Dialog {
			return form.NewDialog("Log food", []form.Field{
				form.NewTextField("Name", "", "", form.FieldValidation{Required: true}),
			}, []string{"name"})
		},
		Submit: submit,
		Delete: del,
	}
}

func testController(t *testing.T, items []entry) *collection.Controller[entry] {
	t.Helper()
	ctrl, err := collection.New(collection.Options[entry]{
		Fetch: func(ctx context.Context, req api.PageRequest) (api.Page[entry], error) {
			return api.Page[entry]{
				Content: items,
				Page: api.PageMeta{
					Number:        0,
					Size:          req.Size,
					TotalElements: len(items),
					TotalPages:    1,
				},
			}, nil
		},
		ID:       func(e entry) int64 { return e.ID },
		PageSize: 10,
	})
	require.NoError(t, err)
	require.NoError(t, ctrl.LoadPage(context.Background(), 0))
	return ctrl
}

func fixtures() []entry {
	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	return []entry{
		{ID: 1, Name: "Oats", Meal: "breakfast", Cal: 300, At: base},
		{ID: 2, Name: "Salad", Meal: "lunch", Cal: 450, At: base.Add(4 * time.Hour)},
		{ID: 3, Name: "Toast", Meal: "breakfast", Cal: 250, At: base.Add(time.Hour)},
	}
}

func press(m *Model[entry], keys ...string) *Model[entry] {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m
}

// Preset windows start at midnight in the user's zone, not at a UTC day
// boundary: an entry logged at 00:15 local time is part of "today" even
// when UTC still says yesterday.
func TestDatePreset_LocalMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	now := time.Date(2026, 3, 10, 1, 30, 0, 0, loc)

	today := dateToday.rangeFrom(now)
	require.NotNil(t, today)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, loc), today.From)
	assert.True(t, today.Contains(time.Date(2026, 3, 10, 0, 15, 0, 0, loc)))
	assert.False(t, today.Contains(time.Date(2026, 3, 9, 23, 45, 0, 0, loc)))

	week := dateWeek.rangeFrom(now)
	require.NotNil(t, week)
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, loc), week.From)

	assert.Nil(t, dateAll.rangeFrom(now))
}

func TestModel_New(t *testing.T) {
	t.Run("rejects invalid filter config", func(t *testing.T) {
		cfg := testConfig(nil, nil)
		cfg.Filter.Groups[0].Key = ""
		_, err := New(cfg, testController(t, fixtures()))
		assert.Error(t, err)
	})

	t.Run("builds with valid config", func(t *testing.T) {
		m, err := New(testConfig(nil, nil), testController(t, fixtures()))
		require.NoError(t, err)
		assert.Equal(t, "Food", m.Title())
		assert.False(t, m.Busy())
	})
}

func TestModel_Navigation(t *testing.T) {
	m, err := New(testConfig(nil, nil), testController(t, fixtures()))
	require.NoError(t, err)

	m = press(m, "j", "j")
	assert.Equal(t, 2, m.cursor)

	// Cursor stops at the last row.
	m = press(m, "j")
	assert.Equal(t, 2, m.cursor)

	m = press(m, "k")
	assert.Equal(t, 1, m.cursor)
}

func TestModel_Search(t *testing.T) {
	m, err := New(testConfig(nil, nil), testController(t, fixtures()))
	require.NoError(t, err)

	m = press(m, "/")
	assert.True(t, m.Busy())

	m = press(m, "o", "a")
	// "oa" matches Oats and Toast but not Salad.
	assert.Len(t, m.visibleItems(), 2)

	m = press(m, "enter")
	assert.False(t, m.Busy())
	assert.Equal(t, "oa", m.filter.Query)
}

func TestModel_GroupToggle(t *testing.T) {
	m, err := New(testConfig(nil, nil), testController(t, fixtures()))
	require.NoError(t, err)

	// Key 1 toggles the first flattened option: meal=breakfast.
	m = press(m, "1")
	assert.Len(t, m.visibleItems(), 2)

	m = press(m, "1")
	assert.Len(t, m.visibleItems(), 3)
}

func TestModel_SortCycle(t *testing.T) {
	m, err := New(testConfig(nil, nil), testController(t, fixtures()))
	require.NoError(t, err)

	m = press(m, "s")
	require.NotNil(t, m.filter.Sort)
	assert.Equal(t, "calories", m.filter.Sort.Key)
	assert.False(t, m.filter.Sort.Desc)
	assert.Equal(t, int64(3), m.visibleItems()[0].ID) // 250 cal first

	m = press(m, "s")
	assert.True(t, m.filter.Sort.Desc)
	assert.Equal(t, int64(2), m.visibleItems()[0].ID) // 450 cal first

	m = press(m, "s")
	assert.Nil(t, m.filter.Sort)
}

func TestModel_ClearFilters(t *testing.T) {
	m, err := New(testConfig(nil, nil), testController(t, fixtures()))
	require.NoError(t, err)

	m = press(m, "1", "s", "d")
	assert.NotZero(t, m.filter.ActiveCount())

	m = press(m, "c")
	assert.Zero(t, m.filter.ActiveCount())
	assert.Len(t, m.visibleItems(), 3)
}

func TestModel_DeleteFlow(t *testing.T) {
	t.Run("confirm runs delete and removes the row", func(t *testing.T) {
		var deleted int64
		cfg := testConfig(nil, func(ctx context.Context, id int64) error {
			deleted = id
			return nil
		})
		ctrl := testController(t, fixtures())
		m, err := New(cfg, ctrl)
		require.NoError(t, err)

		m = press(m, "j", "x")
		require.True(t, m.Busy())

		var cmd tea.Cmd
		m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
		require.NotNil(t, cmd)

		msg := cmd()
		done, ok := msg.(OpDoneMsg)
		require.True(t, ok)
		assert.NoError(t, done.Err)
		assert.Equal(t, int64(2), deleted)
		assert.Len(t, ctrl.Snapshot().Items, 2)
	})

	t.Run("declining keeps the row", func(t *testing.T) {
		ctrl := testController(t, fixtures())
		m, err := New(testConfig(nil, nil), ctrl)
		require.NoError(t, err)

		m = press(m, "x", "n")
		assert.False(t, m.Busy())
		assert.Len(t, ctrl.Snapshot().Items, 3)
	})
}

func TestModel_SubmitFlow(t *testing.T) {
	created := entry{ID: 9, Name: "Rice", Meal: "lunch", Cal: 500, At: time.Now()}
	cfg := testConfig(func(ctx context.Context, values map[string]any) (entry, error) {
		assert.Equal(t, "Rice", values["name"])
		return created, nil
	}, nil)
	ctrl := testController(t, fixtures())
	m, err := New(cfg, ctrl)
	require.NoError(t, err)

	m = press(m, "a")
	require.True(t, m.Busy())

	m = press(m, "R", "i", "c", "e")
	var cmd tea.Cmd
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	done, ok := msg.(OpDoneMsg)
	require.True(t, ok)
	assert.NoError(t, done.Err)

	snap := ctrl.Snapshot()
	require.Len(t, snap.Items, 4)
	assert.Equal(t, int64(9), snap.Items[0].ID)
	assert.Equal(t, 4, snap.TotalElements)
}

func TestModel_EscCancelsDialog(t *testing.T) {
	m, err := New(testConfig(nil, nil), testController(t, fixtures()))
	require.NoError(t, err)

	m = press(m, "a")
	require.True(t, m.Busy())
	m = press(m, "esc")
	assert.False(t, m.Busy())
}
