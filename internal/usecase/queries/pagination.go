package queries

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Pagination is 1-based: page 1 is the first page.
type Pagination struct {
	Page  int
	Limit int
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	p.Limit = ValidateLimit(p.Limit)
	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

type PageInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func NewPageInfo(p Pagination, total int64) PageInfo {
	pages := 0
	if total > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return PageInfo{Page: p.Page, Limit: p.Limit, Total: total, TotalPages: pages}
}

// pageOf slices an in-memory result set.
func pageOf[T any](items []T, p Pagination) []T {
	start := min(p.Offset(), len(items))
	end := min(start+p.Limit, len(items))
	return items[start:end]
}
