package api

import "strconv"

// PageMeta is the pagination block returned alongside list content.
type PageMeta struct {
	Number        int `json:"number"` // 0-based
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
}

// Page is the server envelope for list endpoints.
type Page[T any] struct {
	Content []T      `json:"content"`
	Page    PageMeta `json:"page"`
}

// PageRequest describes which page to fetch and how the server should sort it.
type PageRequest struct {
	Page int    // 0-based page index
	Size int    // page size
	Sort string // "field,asc" or "field,desc"; empty = server default
}

// Query renders the request as the backend's pagination query parameters.
func (r PageRequest) Query() map[string]string {
	q := map[string]string{
		"page": strconv.Itoa(r.Page),
		"size": strconv.Itoa(r.Size),
	}
	if r.Sort != "" {
		q["sort"] = r.Sort
	}
	return q
}
