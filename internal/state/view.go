package state

import (
	"github.com/five82/pokesearch/internal/search"
)

// View is the state the presentation layer renders.
type View struct {
	SearchTerm string
	InputValue string
	Items      []search.Record
	Loading    bool
	Error      string
	Page       int
	Limit      int
	Count      int
}

// Mode reports browse or term mode from the committed search term.
func (v View) Mode() search.Mode {
	return search.ModeOf(v.SearchTerm)
}

// LastPage is ceil(Count/Limit), zero when there is nothing to page through.
func (v View) LastPage() int {
	if v.Limit <= 0 || v.Count <= 0 {
		return 0
	}
	return (v.Count + v.Limit - 1) / v.Limit
}

// TotalPages is the page total shown to the user; never below one.
func (v View) TotalPages() int {
	return max(1, v.LastPage())
}

// CanPrev reports whether previous-page navigation would move.
func (v View) CanPrev() bool {
	return v.Page > 1
}

// CanNext reports whether next-page navigation would move.
func (v View) CanNext() bool {
	return v.Page < v.LastPage()
}

// ShowPagination reports whether pagination controls belong on screen.
func (v View) ShowPagination() bool {
	return v.SearchTerm == "" && !v.Loading && v.Error == ""
}

func (v View) clone() View {
	dup := v
	dup.Items = cloneItems(v.Items)
	return dup
}

func cloneItems(items []search.Record) []search.Record {
	if len(items) == 0 {
		return nil
	}
	dup := make([]search.Record, len(items))
	copy(dup, items)
	return dup
}
