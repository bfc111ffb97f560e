package dto

import "strconv"

// MaxPage bounds the page number so (page-1)*limit cannot overflow.
const MaxPage = 1_000_000

type Page struct {
	Page  int
	Limit int
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// ParsePage reads page/limit query values. Missing or non-positive values
// fall back to page 1 and defLimit; page is capped at MaxPage and limit at
// maxLimit.
func ParsePage(pageStr, limitStr string, defLimit, maxLimit int) Page {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page <= 0 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = defLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return Page{Page: page, Limit: limit}
}

func NewPagination(p Page, total int64) Pagination {
	var pages int64
	if p.Limit > 0 {
		pages = (total + int64(p.Limit) - 1) / int64(p.Limit)
	}
	return Pagination{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: pages,
	}
}
