// Package boardview computes what a board page shows for a given view state.
// Everything here is pure: functions take the board view-model and the
// viewer's state and return derived data, leaving rendering to the page.
package boardview

import (
	"strings"

	"board-view-api/internal/models"
)

// DefaultPageSize is the number of cards shown per column page.
const DefaultPageSize = 10

// FilterState holds the active badge filters and the free-text search term.
// At most one priority and one status are active at a time. Tag is the
// server-side tag filter the page was opened with (?tag=); it only changes
// on a page load.
type FilterState struct {
	Priority *models.Priority `json:"priority"`
	Status   *models.Status   `json:"status"`
	Search   string           `json:"search"`
	Tag      models.ID        `json:"tag,omitempty"`
}

// Active reports whether any filter narrows the board.
func (f FilterState) Active() bool {
	return f.Priority != nil || f.Status != nil || strings.TrimSpace(f.Search) != "" || f.Tag != ""
}

// ViewState is everything a viewer has changed on a board page since it loaded.
type ViewState struct {
	Filter FilterState    `json:"filter"`
	Pages  map[string]int `json:"pages"`
}

// NewViewState returns the state of a freshly loaded page.
func NewViewState() *ViewState {
	return &ViewState{Pages: map[string]int{}}
}

// Page returns the current 1-based page of a column.
func (s *ViewState) Page(listID string) int {
	if p, ok := s.Pages[listID]; ok && p >= 1 {
		return p
	}
	return 1
}

// TogglePriority selects p, or clears the priority filter when p is already active.
func (s *ViewState) TogglePriority(p models.Priority) {
	if s.Filter.Priority != nil && *s.Filter.Priority == p {
		s.Filter.Priority = nil
	} else {
		s.Filter.Priority = &p
	}
	s.resetPages()
}

// ToggleStatus selects st, or clears the status filter when st is already active.
func (s *ViewState) ToggleStatus(st models.Status) {
	if s.Filter.Status != nil && *s.Filter.Status == st {
		s.Filter.Status = nil
	} else {
		s.Filter.Status = &st
	}
	s.resetPages()
}

// SetSearch replaces the search term.
func (s *ViewState) SetSearch(term string) {
	s.Filter.Search = term
	s.resetPages()
}

// SetPage requests a page for a column. The value is clamped on the next Compute.
func (s *ViewState) SetPage(listID string, page int) {
	if s.Pages == nil {
		s.Pages = map[string]int{}
	}
	s.Pages[listID] = page
}

// StepPage moves a column's page by delta (prev/next buttons).
func (s *ViewState) StepPage(listID string, delta int) {
	s.SetPage(listID, s.Page(listID)+delta)
}

// Filters changing always send every column back to its first page.
func (s *ViewState) resetPages() {
	s.Pages = map[string]int{}
}

// KeyActivates reports whether a keyboard key activates a badge like a click.
func KeyActivates(key string) bool {
	switch key {
	case "", "Enter", " ", "Space", "Spacebar":
		return true
	}
	return false
}
