package collection

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7sg56/health-tracker-sub001/internal/api"
)

type record struct {
	ID   int64
	Name string
}

// fakeFetch serves pages out of a fixed dataset, mimicking the backend's
// envelope math.
func fakeFetch(data []record) FetchFunc[record] {
	return func(_ context.Context, req api.PageRequest) (api.Page[record], error) {
		start := req.Page * req.Size
		end := min(start+req.Size, len(data))
		var content []record
		if start < len(data) {
			content = data[start:end]
		}
		totalPages := (len(data) + req.Size - 1) / req.Size
		return api.Page[record]{
			Content: content,
			Page: api.PageMeta{
				Number:        req.Page,
				Size:          req.Size,
				TotalElements: len(data),
				TotalPages:    totalPages,
			},
		}, nil
	}
}

func dataset(n int) []record {
	out := make([]record, n)
	for i := range out {
		out[i] = record{ID: int64(i + 1), Name: fmt.Sprintf("record-%d", i+1)}
	}
	return out
}

func newController(t *testing.T, opts Options[record]) *Controller[record] {
	t.Helper()
	if opts.ID == nil {
		opts.ID = func(r record) int64 { return r.ID }
	}
	c, err := New(opts)
	require.NoError(t, err)
	return c
}

func TestNew_Validation(t *testing.T) {
	t.Run("requires fetch", func(t *testing.T) {
		_, err := New(Options[record]{ID: func(r record) int64 { return r.ID }, PageSize: 10})
		require.Error(t, err)
	})

	t.Run("requires identity extractor", func(t *testing.T) {
		_, err := New(Options[record]{Fetch: fakeFetch(nil), PageSize: 10})
		require.Error(t, err)
	})

	t.Run("requires positive page size", func(t *testing.T) {
		_, err := New(Options[record]{Fetch: fakeFetch(nil), ID: func(r record) int64 { return r.ID }})
		require.Error(t, err)
	})
}

func TestController_LoadPage(t *testing.T) {
	ctx := context.Background()

	t.Run("single page", func(t *testing.T) {
		c := newController(t, Options[record]{Fetch: fakeFetch(dataset(1)), PageSize: 10})

		require.NoError(t, c.LoadPage(ctx, 0))

		st := c.Snapshot()
		assert.Len(t, st.Items, 1)
		assert.Equal(t, 1, st.TotalPages)
		assert.Equal(t, 1, st.TotalElements)
		assert.False(t, st.HasMore)
	})

	t.Run("paged mode replaces items", func(t *testing.T) {
		c := newController(t, Options[record]{Fetch: fakeFetch(dataset(5)), PageSize: 2, Mode: ModePaged})

		require.NoError(t, c.LoadPage(ctx, 0))
		require.NoError(t, c.LoadPage(ctx, 1))

		st := c.Snapshot()
		require.Len(t, st.Items, 2)
		assert.Equal(t, int64(3), st.Items[0].ID)
		assert.Equal(t, int64(4), st.Items[1].ID)
		assert.Equal(t, 1, st.CurrentPage)
	})

	t.Run("accumulate mode concatenates in call order", func(t *testing.T) {
		c := newController(t, Options[record]{Fetch: fakeFetch(dataset(5)), PageSize: 2, Mode: ModeAccumulate})

		require.NoError(t, c.LoadPage(ctx, 0))
		require.NoError(t, c.LoadPage(ctx, 1))

		st := c.Snapshot()
		require.Len(t, st.Items, 4)
		for i, item := range st.Items {
			assert.Equal(t, int64(i+1), item.ID)
		}
	})

	t.Run("hasMore tracks current page against total pages", func(t *testing.T) {
		c := newController(t, Options[record]{Fetch: fakeFetch(dataset(5)), PageSize: 2, Mode: ModePaged})

		require.NoError(t, c.LoadPage(ctx, 0))
		assert.True(t, c.Snapshot().HasMore)

		require.NoError(t, c.LoadPage(ctx, 2))
		assert.False(t, c.Snapshot().HasMore)
	})

	t.Run("failure preserves items and page, records error", func(t *testing.T) {
		fail := false
		fetch := func(ctx context.Context, req api.PageRequest) (api.Page[record], error) {
			if fail {
				return api.Page[record]{}, &api.Error{Status: 500, Message: "boom"}
			}
			return fakeFetch(dataset(5))(ctx, req)
		}
		c := newController(t, Options[record]{Fetch: fetch, PageSize: 2, Mode: ModePaged})

		require.NoError(t, c.LoadPage(ctx, 0))
		fail = true
		require.Error(t, c.LoadPage(ctx, 1))

		st := c.Snapshot()
		assert.Len(t, st.Items, 2)
		assert.Equal(t, 0, st.CurrentPage)
		assert.NotEmpty(t, st.Error)
		assert.False(t, st.IsLoading)
	})

	t.Run("success clears a previous error", func(t *testing.T) {
		fail := true
		fetch := func(ctx context.Context, req api.PageRequest) (api.Page[record], error) {
			if fail {
				return api.Page[record]{}, &api.Error{Status: 0, Message: "offline"}
			}
			return fakeFetch(dataset(2))(ctx, req)
		}
		c := newController(t, Options[record]{Fetch: fetch, PageSize: 10})

		require.Error(t, c.LoadPage(ctx, 0))
		fail = false
		require.NoError(t, c.LoadPage(ctx, 0))

		assert.Empty(t, c.Snapshot().Error)
	})

	t.Run("stale response is discarded", func(t *testing.T) {
		release := make(chan struct{})
		started := make(chan struct{})
		data := dataset(5)
		fetch := func(ctx context.Context, req api.PageRequest) (api.Page[record], error) {
			if req.Page == 0 {
				close(started)
				<-release
			}
			return fakeFetch(data)(ctx, req)
		}
		c := newController(t, Options[record]{Fetch: fetch, PageSize: 2, Mode: ModePaged})

		done := make(chan error)
		go func() { done <- c.LoadPage(ctx, 0) }()
		<-started

		// A newer load finishes while the first is still in flight.
		require.NoError(t, c.LoadPage(ctx, 1))
		close(release)
		require.NoError(t, <-done)

		st := c.Snapshot()
		assert.Equal(t, 1, st.CurrentPage)
		require.Len(t, st.Items, 2)
		assert.Equal(t, int64(3), st.Items[0].ID)
	})
}

func TestController_LoadMore(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches the next page", func(t *testing.T) {
		c := newController(t, Options[record]{Fetch: fakeFetch(dataset(5)), PageSize: 2, Mode: ModeAccumulate})

		require.NoError(t, c.LoadPage(ctx, 0))
		require.NoError(t, c.LoadMore(ctx))

		st := c.Snapshot()
		assert.Len(t, st.Items, 4)
		assert.Equal(t, 1, st.CurrentPage)
	})

	t.Run("no-op on the last page", func(t *testing.T) {
		calls := 0
		fetch := func(ctx context.Context, req api.PageRequest) (api.Page[record], error) {
			calls++
			return fakeFetch(dataset(2))(ctx, req)
		}
		c := newController(t, Options[record]{Fetch: fetch, PageSize: 10, Mode: ModeAccumulate})

		require.NoError(t, c.LoadPage(ctx, 0))
		require.NoError(t, c.LoadMore(ctx))

		assert.Equal(t, 1, calls)
	})
}

func TestController_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("accumulate mode resets to a fresh page 0", func(t *testing.T) {
		c := newController(t, Options[record]{Fetch: fakeFetch(dataset(6)), PageSize: 2, Mode: ModeAccumulate})

		require.NoError(t, c.LoadPage(ctx, 0))
		require.NoError(t, c.LoadMore(ctx))
		require.Len(t, c.Snapshot().Items, 4)

		require.NoError(t, c.Refresh(ctx))

		st := c.Snapshot()
		assert.Len(t, st.Items, 2)
		assert.Equal(t, 0, st.CurrentPage)
	})

	t.Run("paged mode reloads the current page in place", func(t *testing.T) {
		c := newController(t, Options[record]{Fetch: fakeFetch(dataset(6)), PageSize: 2, Mode: ModePaged})

		require.NoError(t, c.LoadPage(ctx, 2))
		require.NoError(t, c.Refresh(ctx))

		st := c.Snapshot()
		assert.Equal(t, 2, st.CurrentPage)
		require.Len(t, st.Items, 2)
		assert.Equal(t, int64(5), st.Items[0].ID)
	})
}

func TestController_SetPageSize(t *testing.T) {
	ctx := context.Background()

	t.Run("paged mode retains items until the next load", func(t *testing.T) {
		c := newController(t, Options[record]{Fetch: fakeFetch(dataset(6)), PageSize: 2, Mode: ModePaged})

		require.NoError(t, c.LoadPage(ctx, 1))
		c.SetPageSize(3)

		st := c.Snapshot()
		assert.Len(t, st.Items, 2)
		assert.Equal(t, 0, st.CurrentPage)
		assert.Equal(t, 3, st.PageSize)

		require.NoError(t, c.LoadPage(ctx, 0))
		assert.Len(t, c.Snapshot().Items, 3)
	})

	t.Run("accumulate mode clears items", func(t *testing.T) {
		c := newController(t, Options[record]{Fetch: fakeFetch(dataset(6)), PageSize: 2, Mode: ModeAccumulate})

		require.NoError(t, c.LoadPage(ctx, 0))
		c.SetPageSize(3)

		assert.Empty(t, c.Snapshot().Items)
	})

	t.Run("ignores non-positive sizes", func(t *testing.T) {
		c := newController(t, Options[record]{Fetch: fakeFetch(dataset(6)), PageSize: 2})
		c.SetPageSize(0)
		assert.Equal(t, 2, c.Snapshot().PageSize)
	})
}

func TestController_OptimisticMutations(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) *Controller[record] {
		calls := 0
		fetch := func(c context.Context, req api.PageRequest) (api.Page[record], error) {
			calls++
			if calls > 1 {
				t.Fatal("optimistic mutation must not trigger a fetch")
			}
			return fakeFetch(dataset(3))(c, req)
		}
		c := newController(t, Options[record]{Fetch: fetch, PageSize: 10})
		require.NoError(t, c.LoadPage(ctx, 0))
		return c
	}

	t.Run("add prepends and bumps total", func(t *testing.T) {
		c := setup(t)
		c.AddItem(record{ID: 99, Name: "fresh"})

		st := c.Snapshot()
		require.Len(t, st.Items, 4)
		assert.Equal(t, int64(99), st.Items[0].ID)
		assert.Equal(t, 4, st.TotalElements)
	})

	t.Run("update replaces the matching record", func(t *testing.T) {
		c := setup(t)
		c.UpdateItem(2, func(r record) record {
			r.Name = "renamed"
			return r
		})

		st := c.Snapshot()
		assert.Equal(t, "renamed", st.Items[1].Name)
	})

	t.Run("update is a no-op for unknown ids", func(t *testing.T) {
		c := setup(t)
		c.UpdateItem(42, func(r record) record {
			r.Name = "should not appear"
			return r
		})

		for _, item := range c.Snapshot().Items {
			assert.NotEqual(t, "should not appear", item.Name)
		}
	})

	t.Run("remove drops the record and decrements total", func(t *testing.T) {
		c := setup(t)
		c.RemoveItem(2)

		st := c.Snapshot()
		assert.Len(t, st.Items, 2)
		assert.Equal(t, 2, st.TotalElements)
	})

	t.Run("remove of an unknown id changes nothing", func(t *testing.T) {
		c := setup(t)
		c.RemoveItem(42)

		st := c.Snapshot()
		assert.Len(t, st.Items, 3)
		assert.Equal(t, 3, st.TotalElements)
	})
}

func TestController_ClearError(t *testing.T) {
	ctx := context.Background()
	fetch := func(context.Context, api.PageRequest) (api.Page[record], error) {
		return api.Page[record]{}, &api.Error{Status: 503, Message: "unavailable"}
	}
	c := newController(t, Options[record]{Fetch: fetch, PageSize: 10})

	require.Error(t, c.LoadPage(ctx, 0))
	require.NotEmpty(t, c.Snapshot().Error)

	c.ClearError()
	assert.Empty(t, c.Snapshot().Error)
}

func TestController_AutoRefresh(t *testing.T) {
	calls := make(chan struct{}, 16)
	fetch := func(ctx context.Context, req api.PageRequest) (api.Page[record], error) {
		calls <- struct{}{}
		return fakeFetch(dataset(2))(ctx, req)
	}
	c := newController(t, Options[record]{
		Fetch:        fetch,
		PageSize:     10,
		RefreshEvery: 10 * time.Millisecond,
	})

	stop := c.StartAutoRefresh(context.Background())
	defer stop()

	select {
	case <-calls:
	case <-time.After(time.Second):
		t.Fatal("auto-refresh never fired")
	}
}
