package shared

import "math"

// Request layer paging defaults. PageNumber is handed to the query engine
// as-is, and the engine counts pages from zero, so a request that relies on
// the defaults is served the second page.
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
)

// PageRequest selects a window of a filtered, id-ordered result.
// PageNumber is zero-based. PageSize 0 selects every matching row.
type PageRequest struct {
	PageNumber int
	PageSize   int
}

// DefaultPageRequest returns a page request with the request layer defaults
func DefaultPageRequest() PageRequest {
	return PageRequest{
		PageNumber: DefaultPageNumber,
		PageSize:   DefaultPageSize,
	}
}

// Normalize clamps negative values to zero
func (p PageRequest) Normalize() PageRequest {
	if p.PageNumber < 0 {
		p.PageNumber = 0
	}
	if p.PageSize < 0 {
		p.PageSize = 0
	}
	return p
}

// Offset returns the number of rows skipped before the page starts.
// It saturates at math.MaxInt instead of wrapping.
func (p PageRequest) Offset() int {
	p = p.Normalize()
	if p.PageSize > 0 && p.PageNumber > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return p.PageNumber * p.PageSize
}

// Page represents one page of a paged query
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
	PageNumber int   `json:"page_number"`
	PageSize   int   `json:"page_size"`
}

// NewPage creates a new page. The total page count is derived from the
// total row count of the filtered query, not from the rows on this page.
func NewPage[T any](items []T, totalCount int64, req PageRequest) Page[T] {
	req = req.Normalize()
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		TotalCount: totalCount,
		TotalPages: TotalPages(totalCount, req.PageSize),
		PageNumber: req.PageNumber,
		PageSize:   req.PageSize,
	}
}

// TotalPages returns ceil(totalCount/pageSize). A zero page size means
// "everything on one page" and always yields 1.
func TotalPages(totalCount int64, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := totalCount / int64(pageSize)
	if totalCount%int64(pageSize) > 0 {
		pages++
	}
	return int(pages)
}

// MapPage converts the items of a page while keeping its totals
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, fn(item))
	}
	return Page[U]{
		Items:      items,
		TotalCount: p.TotalCount,
		TotalPages: p.TotalPages,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}
}
