// Package pagination implements the offset/limit paging contract shared by
// every listing endpoint: page sizes clamp to [1, 100], pages start at 1.
package pagination

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Params struct {
	Page     int
	PageSize int
}

// Normalize clamps the parameters into their valid ranges. A zero page size
// means the caller sent nothing and gets the default.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize < 1 {
		p.PageSize = 1
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset is the number of items before the requested page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type Meta struct {
	Page            int  `json:"page"`
	PageSize        int  `json:"page_size"`
	TotalCount      int  `json:"total_count"`
	TotalPages      int  `json:"total_pages"`
	HasPreviousPage bool `json:"has_previous_page"`
	HasNextPage     bool `json:"has_next_page"`
}

// MetaFor derives paging metadata for a result set of the given total size.
func MetaFor(total int, p Params) Meta {
	p = p.Normalize()
	if total < 0 {
		total = 0
	}
	pages := total / p.PageSize
	if total%p.PageSize != 0 {
		pages++
	}
	return Meta{
		Page:            p.Page,
		PageSize:        p.PageSize,
		TotalCount:      total,
		TotalPages:      pages,
		HasPreviousPage: p.Page > 1,
		HasNextPage:     p.Page < pages,
	}
}

// Slice pages an already-ordered in-memory sequence.
func Slice[T any](items []T, p Params) ([]T, Meta) {
	p = p.Normalize()
	meta := MetaFor(len(items), p)

	start := p.Offset()
	if start >= len(items) {
		return []T{}, meta
	}
	end := start + p.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], meta
}
