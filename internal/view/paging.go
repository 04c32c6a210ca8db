// Package view renders the portal's display fragments: the paginated signal
// table, the strategy comparison cards, and the message panel. Rendering is
// wholesale — each call regenerates its fragment from current state, so equal
// state always yields equal output.
package view

import (
	"github.com/bobmcallan/signal-portal/internal/models"
)

// DefaultRowsPerPage matches the signal table's fixed page size.
const DefaultRowsPerPage = 5

// Pager owns the current page over an ordered signal dataset. The invariant
// 1 <= currentPage <= totalPages holds after every mutation.
type Pager struct {
	rows        []models.SignalRow
	currentPage int
	rowsPerPage int
	totalPages  int
}

// NewPager creates a pager with an empty dataset. A rowsPerPage of zero or
// less falls back to DefaultRowsPerPage.
func NewPager(rowsPerPage int) *Pager {
	if rowsPerPage <= 0 {
		rowsPerPage = DefaultRowsPerPage
	}
	return &Pager{
		currentPage: 1,
		rowsPerPage: rowsPerPage,
		totalPages:  1,
	}
}

// SetDataset replaces the dataset and recomputes totalPages. The current page
// is kept unless it falls outside [1, totalPages], in which case it is
// clamped.
func (p *Pager) SetDataset(rows []models.SignalRow) {
	p.rows = rows
	p.totalPages = (len(rows) + p.rowsPerPage - 1) / p.rowsPerPage
	if p.totalPages < 1 {
		p.totalPages = 1
	}
	if p.currentPage > p.totalPages {
		p.currentPage = p.totalPages
	}
	if p.currentPage < 1 {
		p.currentPage = 1
	}
}

// Reset clears the dataset and returns to page 1.
func (p *Pager) Reset() {
	p.rows = nil
	p.currentPage = 1
	p.totalPages = 1
}

// Next advances one page. No-op on the last page.
func (p *Pager) Next() {
	if p.currentPage < p.totalPages {
		p.currentPage++
	}
}

// Prev moves back one page. No-op on the first page.
func (p *Pager) Prev() {
	if p.currentPage > 1 {
		p.currentPage--
	}
}

// CurrentSlice returns the rows of the current page, clipped to dataset
// bounds.
func (p *Pager) CurrentSlice() []models.SignalRow {
	start := (p.currentPage - 1) * p.rowsPerPage
	if start >= len(p.rows) {
		return nil
	}
	end := start + p.rowsPerPage
	if end > len(p.rows) {
		end = len(p.rows)
	}
	return p.rows[start:end]
}

// Rows returns the full dataset.
func (p *Pager) Rows() []models.SignalRow { return p.rows }

// Len returns the dataset length.
func (p *Pager) Len() int { return len(p.rows) }

// CurrentPage returns the 1-based current page.
func (p *Pager) CurrentPage() int { return p.currentPage }

// TotalPages returns the page count (minimum 1, even when empty).
func (p *Pager) TotalPages() int { return p.totalPages }

// IsFirstPage reports whether Prev would be a no-op.
func (p *Pager) IsFirstPage() bool { return p.currentPage == 1 }

// IsLastPage reports whether Next would be a no-op.
func (p *Pager) IsLastPage() bool { return p.currentPage == p.totalPages }
