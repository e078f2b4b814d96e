package catalog

// MaxLimit caps the page size.
const MaxLimit = 100

// Page is a 1-based pagination window.
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func NormalizePage(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	limit = min(limit, MaxLimit)
	return Page{Page: page, Limit: limit}
}

func (p Page) Skip() int {
	return (p.Page - 1) * p.Limit
}

// Paginate returns the items inside the window and the total count. Windows
// past the end, including ones whose offset overflows, are empty.
func Paginate[T any](items []T, p Page) ([]T, int) {
	total := len(items)
	if p.Page < 1 || p.Limit < 1 || p.Page-1 > total/p.Limit {
		return []T{}, total
	}
	start := p.Skip()
	if start >= total {
		return []T{}, total
	}
	end := min(start+p.Limit, total)
	return items[start:end], total
}
