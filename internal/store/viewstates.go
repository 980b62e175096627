package store

import (
	"time"

	"board-view-api/internal/boardview"
	"board-view-api/internal/cache"
)

// ViewStates keeps each viewer's filter and pagination state per board.
type ViewStates struct {
	cache cache.Cache[boardview.ViewState]
	ttl   time.Duration
}

// NewViewStates creates a view-state store on top of c.
func NewViewStates(c cache.Cache[boardview.ViewState], ttl time.Duration) *ViewStates {
	return &ViewStates{cache: c, ttl: ttl}
}

func viewKey(viewerID, boardID string) string {
	return viewerID + ":" + boardID
}

// Load returns the viewer's state, or a fresh one for a first visit.
func (s *ViewStates) Load(viewerID, boardID string) *boardview.ViewState {
	st, ok := s.cache.Get(viewKey(viewerID, boardID))
	if !ok {
		return boardview.NewViewState()
	}
	pages := make(map[string]int, len(st.Pages))
	for k, v := range st.Pages {
		pages[k] = v
	}
	st.Pages = pages
	return &st
}

// Save stores the viewer's state.
func (s *ViewStates) Save(viewerID, boardID string, st *boardview.ViewState) {
	s.cache.Set(viewKey(viewerID, boardID), *st, s.ttl)
}

// Reset forgets the viewer's state, as a page reload does.
func (s *ViewStates) Reset(viewerID, boardID string) {
	s.cache.Delete(viewKey(viewerID, boardID))
}
