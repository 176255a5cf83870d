package explorer

import (
	"fmt"

	"jude-explorer/internal/models"
)

// PageSize is the number of images shown per panel page
const PageSize = 16

// Pager walks an ordered record sequence one page at a time. Pager is a
// value: the navigation methods return a new Pager.
type Pager struct {
	records []models.Subject
	page    int
	size    int
}

// NewPager starts at the first page of records
func NewPager(records []models.Subject) Pager {
	return Pager{records: records, size: PageSize}
}

// Len is the number of records behind the pager
func (p Pager) Len() int { return len(p.records) }

// Records returns every record, across all pages
func (p Pager) Records() []models.Subject { return p.records }

// Page returns the zero-based current page
func (p Pager) Page() int { return p.page }

// PageCount is ceil(len/size)
func (p Pager) PageCount() int {
	size := p.pageSize()
	return (len(p.records) + size - 1) / size
}

// Goto moves to page, clamped to the valid range
func (p Pager) Goto(page int) Pager {
	last := p.PageCount() - 1
	if page > last {
		page = last
	}
	if page < 0 {
		page = 0
	}
	p.page = page
	return p
}

// Next advances one page; it does nothing on the last page
func (p Pager) Next() Pager {
	if p.page < p.PageCount()-1 {
		p.page++
	}
	return p
}

// Prev goes back one page; it does nothing on the first page
func (p Pager) Prev() Pager {
	if p.page > 0 {
		p.page--
	}
	return p
}

// Items returns the records of the current page
func (p Pager) Items() []models.Subject {
	size := p.pageSize()
	start := p.page * size
	if start >= len(p.records) {
		return nil
	}
	end := start + size
	if end > len(p.records) {
		end = len(p.records)
	}
	return p.records[start:end]
}

// Offset is the index of the first record of the current page
func (p Pager) Offset() int { return p.page * p.pageSize() }

// Label renders the page indicator, e.g. "1/2". An empty sequence
// reads "1/0".
func (p Pager) Label() string {
	return fmt.Sprintf("%d/%d", p.page+1, p.PageCount())
}

func (p Pager) pageSize() int {
	if p.size <= 0 {
		return PageSize
	}
	return p.size
}
