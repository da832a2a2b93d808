// Package collection provides the client-side state machine behind every
// record list in the app: a generic paginated controller over a backend
// collection resource, plus an in-memory search/sort/filter engine that
// derives views from the controller's items.
package collection

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/7sg56/health-tracker-sub001/internal/api"
)

// Mode selects how fetched pages combine with already-held items.
type Mode int

const (
	// ModePaged replaces items wholesale on every load.
	ModePaged Mode = iota
	// ModeAccumulate appends pages after page 0, for infinite scroll or
	// manual load-more retrieval.
	ModeAccumulate
)

// FetchFunc retrieves one page of records from a domain service.
type FetchFunc[T any] func(ctx context.Context, req api.PageRequest) (api.Page[T], error)

// Options configures a Controller.
type Options[T any] struct {
	Fetch        FetchFunc[T]
	ID           func(T) int64 // identity extractor; mutations match by id
	PageSize     int
	Mode         Mode
	Sort         string        // server sort directive, e.g. "createdAt,desc"
	RefreshEvery time.Duration // 0 disables auto-refresh
}

// State is a consistent snapshot of a controller for rendering. Items is a
// copy; mutating it does not affect the controller.
type State[T any] struct {
	Items         []T
	CurrentPage   int
	TotalPages    int
	TotalElements int
	PageSize      int
	IsLoading     bool
	Error         string // last fetch error verbatim; empty when none
	HasMore       bool   // CurrentPage < TotalPages-1
}

// Controller owns a collection of domain records and mediates between the
// backend resource and the UI. It never panics on fetch failure: every
// error is recorded on the state and returned to the caller.
//
// Methods are safe for concurrent use; loads triggered from Bubble Tea
// command goroutines and the auto-refresh ticker may overlap. Each load
// takes a generation number, and a response whose generation is no longer
// the newest is discarded, so the state always reflects the most recently
// started request that completed.
type Controller[T any] struct {
	opts Options[T]

	mu            sync.Mutex
	items         []T
	currentPage   int
	totalPages    int
	totalElements int
	pageSize      int
	inflight      int
	gen           uint64
	lastErr       string
}

// New validates the options and builds a controller with empty items.
func New[T any](opts Options[T]) (*Controller[T], error) {
	if opts.Fetch == nil {
		return nil, fmt.Errorf("collection: fetch function is required")
	}
	if opts.ID == nil {
		return nil, fmt.Errorf("collection: identity extractor is required")
	}
	if opts.PageSize <= 0 {
		return nil, fmt.Errorf("collection: page size must be positive, got %d", opts.PageSize)
	}
	return &Controller[T]{
		opts:     opts,
		pageSize: opts.PageSize,
	}, nil
}

// Mode returns the retrieval mode the controller was built with.
func (c *Controller[T]) Mode() Mode {
	return c.opts.Mode
}

// Snapshot returns a copy of the current state.
func (c *Controller[T]) Snapshot() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	return State[T]{
		Items:         items,
		CurrentPage:   c.currentPage,
		TotalPages:    c.totalPages,
		TotalElements: c.totalElements,
		PageSize:      c.pageSize,
		IsLoading:     c.inflight > 0,
		Error:         c.lastErr,
		HasMore:       c.hasMoreLocked(),
	}
}

// LoadPage fetches page n with the current page size. In accumulate mode a
// page after page 0 appends to the held items; every other load replaces
// them. Pagination metadata always comes from the response envelope. On
// failure the held items and current page are preserved and the error is
// recorded. A response that lost the race to a newer load is dropped.
func (c *Controller[T]) LoadPage(ctx context.Context, n int) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.inflight++
	req := api.PageRequest{Page: n, Size: c.pageSize, Sort: c.opts.Sort}
	c.mu.Unlock()

	page, err := c.opts.Fetch(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--

	if gen != c.gen {
		// A newer load started while this one was in flight; its outcome
		// supersedes ours no matter which response arrived first.
		return nil
	}

	if err != nil {
		c.lastErr = err.Error()
		return err
	}

	if c.opts.Mode == ModeAccumulate && n > 0 {
		c.items = append(c.items, page.Content...)
	} else {
		c.items = page.Content
	}
	c.currentPage = page.Page.Number
	c.totalPages = page.Page.TotalPages
	c.totalElements = page.Page.TotalElements
	c.lastErr = ""
	return nil
}

// LoadMore fetches the next page. It is a no-op when there is nothing more
// to fetch or a load is already in flight.
func (c *Controller[T]) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if !c.hasMoreLocked() || c.inflight > 0 {
		c.mu.Unlock()
		return nil
	}
	next := c.currentPage + 1
	c.mu.Unlock()

	return c.LoadPage(ctx, next)
}

// Refresh re-fetches. In accumulate mode the held items are cleared and
// retrieval restarts from page 0 (infinite scroll has no stable position to
// preserve). In paged mode the current page is reloaded in place, keeping
// the user's position. The asymmetry is intentional.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	var n int
	if c.opts.Mode == ModeAccumulate {
		c.items = nil
		n = 0
	} else {
		n = c.currentPage
	}
	c.mu.Unlock()

	return c.LoadPage(ctx, n)
}

// SetPageSize changes the page size and resets to the first page. Held
// items are cleared in accumulate mode, since they are the history of
// size-specific fetches, but retained in paged mode until the next load
// resolves so the view does not flash empty. The caller triggers the load.
func (c *Controller[T]) SetPageSize(n int) {
	if n <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pageSize = n
	c.currentPage = 0
	if c.opts.Mode == ModeAccumulate {
		c.items = nil
	}
}

// AddItem prepends a server-confirmed record and bumps the total count. No
// fetch happens; callers invoke this only after a successful create call.
func (c *Controller[T]) AddItem(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]T{item}, c.items...)
	c.totalElements++
}

// UpdateItem replaces the record whose id matches with updater's result.
// Unknown ids are a no-op.
func (c *Controller[T]) UpdateItem(id int64, updater func(T) T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.opts.ID(c.items[i]) == id {
			c.items[i] = updater(c.items[i])
			return
		}
	}
}

// RemoveItem drops the record whose id matches and decrements the total
// count, floored at zero. Unknown ids leave the state untouched.
func (c *Controller[T]) RemoveItem(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.opts.ID(c.items[i]) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			if c.totalElements > 0 {
				c.totalElements--
			}
			return
		}
	}
}

// ClearError resets the recorded fetch error without touching data.
func (c *Controller[T]) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = ""
}

// StartAutoRefresh begins periodic Refresh calls when the controller was
// configured with a refresh interval. The returned stop function cancels
// the ticker; it is also cancelled when ctx is done.
func (c *Controller[T]) StartAutoRefresh(ctx context.Context) (stop func()) {
	if c.opts.RefreshEvery <= 0 {
		return func() {}
	}

	ctx, cancel := context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(c.opts.RefreshEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = c.Refresh(ctx)
			}
		}
	}()
	return cancel
}

func (c *Controller[T]) hasMoreLocked() bool {
	return c.currentPage < c.totalPages-1
}
