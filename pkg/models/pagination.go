package models

// PaginationInfo is the pager block describing the position of one page
// inside a multi-page result set. Page is 1-indexed.
type PaginationInfo struct {
	Page    FlexInt `json:"page"`
	PerPage FlexInt `json:"per_page"`
	Total   FlexInt `json:"total"`
}

// TotalPages returns ceil(total / per_page), or 0 when per_page is unknown.
func (p PaginationInfo) TotalPages() int {
	if p.PerPage <= 0 {
		return 0
	}
	return (p.Total.Int() + p.PerPage.Int() - 1) / p.PerPage.Int()
}

// HasNext reports whether a page follows the current one.
func (p PaginationInfo) HasNext() bool {
	return p.Page.Int() < p.TotalPages()
}

// HasPrev reports whether a page precedes the current one.
func (p PaginationInfo) HasPrev() bool {
	return p.Page > 1
}

// Page is one decoded page of results together with its pager block.
// Pager is nil for endpoints that do not paginate.
type Page[T any] struct {
	Results []T
	Pager   *PaginationInfo
}

// Count returns the number of results on this page.
func (p *Page[T]) Count() int {
	return len(p.Results)
}
