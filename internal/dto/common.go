package dto

import "time"

// DateLayout is the calendar-date wire format used for schedule fields.
// Survey windows are day-granular, so no time component is carried.
const DateLayout = "2006-01-02"

// FormatDate renders a nullable schedule date in the wire format.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(DateLayout)
	return &formatted
}

// PaginationMeta describes the page window of a list response.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginationMeta computes pagination metadata from totals.
func NewPaginationMeta(page, pageSize int, totalItems int64) PaginationMeta {
	meta := PaginationMeta{Page: page, PageSize: pageSize, TotalItems: totalItems}
	if pageSize > 0 {
		meta.TotalPages = int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	}
	return meta
}
