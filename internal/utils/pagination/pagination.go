package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

type Pagination struct {
	Page   int   `json:"page"`
	Limit  int   `json:"limit"`
	Offset int   `json:"-"`
	Total  int64 `json:"total"`
}

// ParseFromRequest reads page and limit from the query string. It reports
// false when neither is present, in which case callers return everything.
func ParseFromRequest(c *fiber.Ctx) (Pagination, bool) {
	if c.Query("page") == "" && c.Query("limit") == "" {
		return Pagination{}, false
	}

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}, true
}

// TotalPages returns the number of pages needed for p.Total items.
func (p Pagination) TotalPages() int64 {
	pages := p.Total / int64(p.Limit)
	if p.Total%int64(p.Limit) > 0 {
		pages++
	}
	return pages
}

// Slice returns the page of items selected by p and records the total on p.
func Slice[T any](items []T, p *Pagination) []T {
	p.Total = int64(len(items))
	if p.Offset >= len(items) {
		return items[:0]
	}
	end := p.Offset + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}

// Meta is the pagination block added next to a paged list.
func Meta(p Pagination) fiber.Map {
	return fiber.Map{
		"current_page": p.Page,
		"per_page":     p.Limit,
		"total_items":  p.Total,
		"total_pages":  p.TotalPages(),
	}
}
