package collection

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// FilterGroup is one categorical filter: selections within a group are
// OR-ed, groups are AND-ed against each other.
type FilterGroup[T any] struct {
	Key     string         // stable identifier, e.g. "mealType"
	Extract func(T) string // field value the selection is matched against
	Options []string       // selectable values, in menu order
}

// SortField pairs a sort key with its comparator. Compare returns a
// negative, zero, or positive value in the usual cmp convention.
type SortField[T any] struct {
	Key     string
	Compare func(a, b T) int
}

// FilterConfig statically declares how a domain type is searched, filtered,
// and sorted. One config is built per record type at startup and validated
// then, rather than shape-matching at runtime.
type FilterConfig[T any] struct {
	Search []func(T) string  // string fields matched by the free-text query
	Date   func(T) time.Time // timestamp matched by the date range
	Groups []FilterGroup[T]
	Sorts  []SortField[T]
}

// Validate checks the config for empty or duplicate keys. Called once when
// the owning view is constructed.
func (c FilterConfig[T]) Validate() error {
	seen := map[string]bool{}
	for i, g := range c.Groups {
		if g.Key == "" {
			return fmt.Errorf("filter group %d: key is required", i)
		}
		if seen[g.Key] {
			return fmt.Errorf("filter group %q: duplicate key", g.Key)
		}
		seen[g.Key] = true
		if g.Extract == nil {
			return fmt.Errorf("filter group %q: extractor is required", g.Key)
		}
		if len(g.Options) == 0 {
			return fmt.Errorf("filter group %q: options are required", g.Key)
		}
	}

	sortSeen := map[string]bool{}
	for i, s := range c.Sorts {
		if s.Key == "" {
			return fmt.Errorf("sort field %d: key is required", i)
		}
		if sortSeen[s.Key] {
			return fmt.Errorf("sort field %q: duplicate key", s.Key)
		}
		sortSeen[s.Key] = true
		if s.Compare == nil {
			return fmt.Errorf("sort field %q: comparator is required", s.Key)
		}
	}

	return nil
}

// DateRange is an inclusive timestamp window.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether ts falls within the range, bounds included.
func (r DateRange) Contains(ts time.Time) bool {
	return !ts.Before(r.From) && !ts.After(r.To)
}

// SortSpec selects a sort field and direction.
type SortSpec struct {
	Key  string
	Desc bool
}

// FilterState is the user's current view inputs. It is pure client-side
// state, applied in memory over already-fetched items and never sent
// upstream.
type FilterState struct {
	Query    string
	Range    *DateRange
	Selected map[string][]string // group key -> selected values
	Sort     *SortSpec
}

// Toggle flips membership of value in the group's selection.
func (s *FilterState) Toggle(group, value string) {
	if s.Selected == nil {
		s.Selected = map[string][]string{}
	}
	current := s.Selected[group]
	for i, v := range current {
		if v == value {
			s.Selected[group] = append(current[:i], current[i+1:]...)
			return
		}
	}
	s.Selected[group] = append(current, value)
}

// IsSelected reports whether value is selected in the group.
func (s *FilterState) IsSelected(group, value string) bool {
	for _, v := range s.Selected[group] {
		if v == value {
			return true
		}
	}
	return false
}

// Reset clears every input, returning the unfiltered view.
func (s *FilterState) Reset() {
	s.Query = ""
	s.Range = nil
	s.Selected = nil
	s.Sort = nil
}

// ActiveCount is the number of active filter inputs, for the "N filters"
// badge: one for a non-empty query, one for a set date range, and one per
// group with at least one selection.
func (s *FilterState) ActiveCount() int {
	count := 0
	if strings.TrimSpace(s.Query) != "" {
		count++
	}
	if s.Range != nil {
		count++
	}
	for _, values := range s.Selected {
		if len(values) > 0 {
			count++
		}
	}
	return count
}

// Apply derives the filtered, sorted view of items. Stages run in a fixed
// order: free-text query, date range, categorical groups, then a stable
// sort. The input slice is never mutated and the result is always a fresh
// slice; identical inputs yield an identical output order.
func Apply[T any](cfg FilterConfig[T], state FilterState, items []T) []T {
	out := make([]T, 0, len(items))

	query := strings.ToLower(strings.TrimSpace(state.Query))

	for _, item := range items {
		if query != "" && !matchesQuery(cfg, item, query) {
			continue
		}
		if state.Range != nil && cfg.Date != nil && !state.Range.Contains(cfg.Date(item)) {
			continue
		}
		if !matchesGroups(cfg, state, item) {
			continue
		}
		out = append(out, item)
	}

	if state.Sort != nil {
		if field, ok := findSort(cfg, state.Sort.Key); ok {
			desc := state.Sort.Desc
			sort.SliceStable(out, func(i, j int) bool {
				cmp := field.Compare(out[i], out[j])
				if desc {
					return cmp > 0
				}
				return cmp < 0
			})
		}
	}

	return out
}

// matchesQuery keeps the item when any searchable field contains the
// query as a case-insensitive substring.
func matchesQuery[T any](cfg FilterConfig[T], item T, query string) bool {
	for _, field := range cfg.Search {
		if strings.Contains(strings.ToLower(field(item)), query) {
			return true
		}
	}
	return false
}

func matchesGroups[T any](cfg FilterConfig[T], state FilterState, item T) bool {
	for _, group := range cfg.Groups {
		selected := state.Selected[group.Key]
		if len(selected) == 0 {
			continue
		}
		value := group.Extract(item)
		member := false
		for _, v := range selected {
			if v == value {
				member = true
				break
			}
		}
		if !member {
			return false
		}
	}
	return true
}

func findSort[T any](cfg FilterConfig[T], key string) (SortField[T], bool) {
	for _, s := range cfg.Sorts {
		if s.Key == key {
			return s, true
		}
	}
	return SortField[T]{}, false
}
