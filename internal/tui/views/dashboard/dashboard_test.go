package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/7sg56/health-tracker-sub001/internal/health"
)

func TestTrendGlyph(t *testing.T) {
	assert.Equal(t, '▁', trendGlyph(0))
	assert.Equal(t, '█', trendGlyph(100))
	assert.Equal(t, '▁', trendGlyph(-5))
	assert.Equal(t, '█', trendGlyph(150))

	// Midpoint lands in the middle of the ramp, not at either end.
	mid := trendGlyph(50)
	assert.NotEqual(t, '▁', mid)
	assert.NotEqual(t, '█', mid)
}

func TestUpdate_Loaded(t *testing.T) {
	t.Run("stores score and clears error", func(t *testing.T) {
		m := New(nil, 7)
		m.errMsg = "stale"

		m, _ = m.Update(LoadedMsg{Score: Score{
			Today: health.Score{Date: "2026-03-10", Value: 72},
		}})

		assert.True(t, m.loaded)
		assert.Empty(t, m.errMsg)
		assert.Equal(t, 72.0, m.score.Today.Value)
	})

	t.Run("keeps last score on error", func(t *testing.T) {
		m := New(nil, 7)
		m, _ = m.Update(LoadedMsg{Score: Score{Today: health.Score{Value: 60}}})
		m, _ = m.Update(LoadedMsg{Err: assert.AnError})

		assert.True(t, m.loaded)
		assert.NotEmpty(t, m.errMsg)
		assert.Equal(t, 60.0, m.score.Today.Value)
	})
}

func TestView_States(t *testing.T) {
	t.Run("loading before first fetch", func(t *testing.T) {
		m := New(nil, 7)
		assert.Contains(t, m.View(), "loading")
	})

	t.Run("renders components after load", func(t *testing.T) {
		m := New(nil, 7)
		m, _ = m.Update(LoadedMsg{Score: Score{
			Today: health.Score{Date: "2026-03-10", Value: 72, WaterScore: 80, FoodScore: 65, WorkoutScore: 70},
			Trend: []health.Score{{Value: 50}, {Value: 72}},
		}})

		out := m.View()
		assert.Contains(t, out, "Health score")
		assert.Contains(t, out, "Water")
		assert.Contains(t, out, "Workout")
		assert.Contains(t, out, "last 2 days")
	})
}
