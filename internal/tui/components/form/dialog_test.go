package form

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyTab() tea.Msg   { return tea.KeyMsg{Type: tea.KeyTab} }
func keyEnter() tea.Msg { return tea.KeyMsg{Type: tea.KeyEnter} }
func keyEsc() tea.Msg   { return tea.KeyMsg{Type: tea.KeyEsc} }
func keyShiftTab() tea.Msg {
	return tea.KeyMsg{Type: tea.KeyShiftTab}
}

func typeText(d *Dialog, s string) *Dialog {
	for _, r := range s {
		d, _ = d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return d
}

func newTestDialog() *Dialog {
	return NewDialog("Log water", []Field{
		NewTextField("Amount (liters)", "0.25", "", FieldValidation{Required: true, Number: NumberFloat, Min: Bound(0.01)}),
		NewSelectField("Meal", []string{"breakfast", "lunch"}, "lunch"),
	}, []string{"amount", "meal"})
}

func TestDialog_FocusCycling(t *testing.T) {
	t.Run("first field focused on construction", func(t *testing.T) {
		d := newTestDialog()
		assert.True(t, d.fields[0].Focused())
		assert.False(t, d.fields[1].Focused())
	})

	t.Run("tab advances when the field is valid", func(t *testing.T) {
		d := newTestDialog()
		d = typeText(d, "0.5")
		d, _ = d.Update(keyTab())

		assert.False(t, d.fields[0].Focused())
		assert.True(t, d.fields[1].Focused())
	})

	t.Run("invalid field traps focus", func(t *testing.T) {
		d := newTestDialog()
		d, _ = d.Update(keyTab())

		assert.True(t, d.fields[0].Focused())
		assert.False(t, d.Submitted())
	})

	t.Run("shift+tab retreats", func(t *testing.T) {
		d := newTestDialog()
		d = typeText(d, "0.5")
		d, _ = d.Update(keyTab())
		d, _ = d.Update(keyShiftTab())

		assert.True(t, d.fields[0].Focused())
	})
}

func TestDialog_Submit(t *testing.T) {
	t.Run("enter past the last field submits valid values", func(t *testing.T) {
		d := newTestDialog()
		d = typeText(d, "0.5")
		d, _ = d.Update(keyEnter())
		d, _ = d.Update(tea.KeyMsg{Type: tea.KeyUp})
		d, _ = d.Update(keyEnter())

		require.True(t, d.Submitted())
		values := d.FormValues()
		assert.Equal(t, "0.5", values["amount"])
		assert.Equal(t, "breakfast", values["meal"])
	})

	t.Run("submit blocked while any field is invalid", func(t *testing.T) {
		d := newTestDialog()
		d = typeText(d, "-3")
		d, _ = d.Update(keyEnter())

		assert.False(t, d.Submitted())
	})
}

func TestDialog_Cancel(t *testing.T) {
	d := newTestDialog()
	d, _ = d.Update(keyEsc())

	assert.True(t, d.Cancelled())
	assert.False(t, d.Submitted())
}

func TestSelectField(t *testing.T) {
	t.Run("default value preselected", func(t *testing.T) {
		f := NewSelectField("Meal", []string{"a", "b", "c"}, "b")
		assert.Equal(t, "b", f.Value())
	})

	t.Run("ignores input while blurred", func(t *testing.T) {
		f := NewSelectField("Meal", []string{"a", "b"}, "a")
		updated, _ := f.Update(tea.KeyMsg{Type: tea.KeyDown})
		assert.Equal(t, "a", updated.Value())
	})

	t.Run("moves within bounds while focused", func(t *testing.T) {
		f := NewSelectField("Meal", []string{"a", "b"}, "a")
		f.Focus()

		up, _ := f.Update(tea.KeyMsg{Type: tea.KeyUp})
		assert.Equal(t, "a", up.Value())

		down, _ := up.Update(tea.KeyMsg{Type: tea.KeyDown})
		assert.Equal(t, "b", down.Value())

		past, _ := down.Update(tea.KeyMsg{Type: tea.KeyDown})
		assert.Equal(t, "b", past.Value())
	})
}
