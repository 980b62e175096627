// Package store keeps board snapshots and per-viewer view states between
// requests.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"board-view-api/internal/cache"
	"board-view-api/internal/models"
	"board-view-api/internal/upstream"
)

// ErrBoardNotFound is returned when a board was never hydrated and cannot be fetched.
var ErrBoardNotFound = errors.New("board not found")

// Fetcher loads a board's view-model from the board backend.
type Fetcher interface {
	FetchBoard(ctx context.Context, creds upstream.Credentials, boardID string) (*models.Board, error)
}

// Boards caches hydrated board snapshots. Callers always receive copies;
// mutations go through Update, which serializes writers per board.
type Boards struct {
	cache cache.Cache[*models.Board]
	fetch Fetcher
	ttl   time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
	// tagged remembers which tag-filtered snapshots exist per board.
	tagged map[string]map[models.ID]struct{}
}

// NewBoards creates a snapshot store. fetch may be nil, in which case boards
// are only known once hydrated.
func NewBoards(c cache.Cache[*models.Board], fetch Fetcher, ttl time.Duration) *Boards {
	return &Boards{
		cache:  c,
		fetch:  fetch,
		ttl:    ttl,
		locks:  make(map[string]*sync.Mutex),
		tagged: make(map[string]map[models.ID]struct{}),
	}
}

func (s *Boards) lock(boardID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[boardID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[boardID] = l
	}
	return l
}

// Hydrate stores the view-model the board page was rendered with.
func (s *Boards) Hydrate(b *models.Board) {
	l := s.lock(string(b.ID))
	l.Lock()
	defer l.Unlock()

	b.Normalize()
	s.cache.Set(string(b.ID), b.Clone(), s.ttl)
}

func taggedKey(boardID string, tagID models.ID) string {
	return boardID + "#tag=" + string(tagID)
}

// HydrateTagged stores the view-model of a page opened with a tag filter.
// It only holds the tagged cards, so it is kept apart from the board's
// snapshot and never replaces it.
func (s *Boards) HydrateTagged(b *models.Board, tagID models.ID) {
	boardID := string(b.ID)
	l := s.lock(boardID)
	l.Lock()
	defer l.Unlock()

	b.Normalize()
	s.cache.Set(taggedKey(boardID, tagID), b.Clone(), s.ttl)

	s.mu.Lock()
	if s.tagged[boardID] == nil {
		s.tagged[boardID] = make(map[models.ID]struct{})
	}
	s.tagged[boardID][tagID] = struct{}{}
	s.mu.Unlock()
}

// GetForTag returns what a viewer filtering on tagID reads from. The full
// snapshot is preferred since it carries later moves; a tag-filtered
// snapshot is used when the full one is unknown, and the backend is asked
// last. An empty tag is the same as Get.
func (s *Boards) GetForTag(ctx context.Context, boardID string, tagID models.ID, creds upstream.Credentials) (*models.Board, error) {
	if tagID == "" {
		return s.Get(ctx, boardID, creds)
	}
	l := s.lock(boardID)
	l.Lock()
	defer l.Unlock()

	if b, ok := s.cache.Get(boardID); ok {
		return b.Clone(), nil
	}
	if b, ok := s.cache.Get(taggedKey(boardID, tagID)); ok {
		return b.Clone(), nil
	}
	b, err := s.load(ctx, boardID, creds)
	if err != nil {
		return nil, err
	}
	return b.Clone(), nil
}

// Get returns a copy of the board, fetching it from the backend on a miss.
func (s *Boards) Get(ctx context.Context, boardID string, creds upstream.Credentials) (*models.Board, error) {
	l := s.lock(boardID)
	l.Lock()
	defer l.Unlock()

	b, err := s.load(ctx, boardID, creds)
	if err != nil {
		return nil, err
	}
	return b.Clone(), nil
}

// Update applies fn to the board under the board's lock and stores the
// result when fn succeeds. It returns a copy of the updated board.
func (s *Boards) Update(ctx context.Context, boardID string, creds upstream.Credentials, fn func(*models.Board) error) (*models.Board, error) {
	l := s.lock(boardID)
	l.Lock()
	defer l.Unlock()

	cur, err := s.load(ctx, boardID, creds)
	if err != nil {
		return nil, err
	}
	next := cur.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	s.cache.Set(boardID, next, s.ttl)
	return next.Clone(), nil
}

// Invalidate drops the board's snapshots so the next read resyncs with the backend.
func (s *Boards) Invalidate(boardID string) {
	l := s.lock(boardID)
	l.Lock()
	defer l.Unlock()
	s.cache.Delete(boardID)

	s.mu.Lock()
	tags := s.tagged[boardID]
	delete(s.tagged, boardID)
	s.mu.Unlock()
	for tagID := range tags {
		s.cache.Delete(taggedKey(boardID, tagID))
	}
}

// load must be called with the board lock held.
func (s *Boards) load(ctx context.Context, boardID string, creds upstream.Credentials) (*models.Board, error) {
	if b, ok := s.cache.Get(boardID); ok {
		return b, nil
	}
	if s.fetch == nil {
		return nil, fmt.Errorf("board %q: %w", boardID, ErrBoardNotFound)
	}
	b, err := s.fetch.FetchBoard(ctx, creds, boardID)
	if err != nil {
		var se *upstream.StatusError
		if errors.As(err, &se) && se.Code == 404 {
			return nil, fmt.Errorf("board %q: %w", boardID, ErrBoardNotFound)
		}
		return nil, fmt.Errorf("fetch board %q: %w", boardID, err)
	}
	s.cache.Set(boardID, b.Clone(), s.ttl)
	return b, nil
}
