package pagination

import (
	"math"
	"net/http"
	"strconv"
)

// DefaultPerPage is the catalog page size used when the caller does not
// specify one.
const DefaultPerPage = 12

// MaxPerPage caps the page size accepted from query strings.
const MaxPerPage = 100

// Params holds pagination parameters extracted from query strings.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Offset  int `json:"-"`
}

// DefaultParams returns sensible pagination defaults.
func DefaultParams() Params {
	return Params{
		Page:    1,
		PerPage: DefaultPerPage,
		Offset:  0,
	}
}

// FromRequest extracts pagination parameters from an HTTP request.
// Out-of-range values are clamped to the defaults rather than rejected.
func FromRequest(r *http.Request) Params {
	p := DefaultParams()

	if page := r.URL.Query().Get("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 0 {
			p.Page = v
		}
	}

	if perPage := r.URL.Query().Get("per_page"); perPage != "" {
		if v, err := strconv.Atoi(perPage); err == nil && v > 0 && v <= MaxPerPage {
			p.PerPage = v
		}
	}

	// Cap the page so the offset computation cannot overflow.
	if p.Page-1 > math.MaxInt/p.PerPage {
		p.Page = math.MaxInt/p.PerPage + 1
	}
	p.Offset = (p.Page - 1) * p.PerPage
	return p
}

// Window returns the [start, end) slice bounds for the given total count,
// plus whether further pages exist after this one. Out-of-range offsets,
// including ones that would overflow the end computation, yield an empty
// window.
func (p Params) Window(total int) (start, end int, hasMore bool) {
	start = p.Offset
	if start < 0 || start > total {
		start = total
	}
	end = start + p.PerPage
	if end < start || end > total {
		end = total
	}
	return start, end, end < total
}

// Result wraps a paginated response.
type Result[T any] struct {
	Data    []T  `json:"data"`
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	PerPage int  `json:"per_page"`
	HasMore bool `json:"has_more"`
}

// NewResult creates a paginated result. A nil data slice is normalized to an
// empty one so the JSON encoding is always an array.
func NewResult[T any](data []T, total int, params Params) Result[T] {
	if data == nil {
		data = []T{}
	}
	_, _, hasMore := params.Window(total)
	return Result[T]{
		Data:    data,
		Total:   total,
		Page:    params.Page,
		PerPage: params.PerPage,
		HasMore: hasMore,
	}
}
