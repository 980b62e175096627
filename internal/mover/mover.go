// Package mover persists drag-and-drop moves optimistically: the card moves
// in the board snapshot at once, the backend is told afterwards, and the move
// is rolled back when the backend keeps refusing it.
package mover

import (
	"context"
	"errors"
	"fmt"
	"time"

	"board-view-api/internal/boardview"
	"board-view-api/internal/models"
	"board-view-api/internal/realtime"
	"board-view-api/internal/upstream"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrDragDisabled is returned when the viewer's board is filtered.
	ErrDragDisabled = errors.New("drag and drop is disabled while filters are active")
	// ErrMoveFailed is returned when the backend rejected the move on every attempt.
	ErrMoveFailed = errors.New("move could not be saved")
)

// Persister saves a card's new list on the board backend.
type Persister interface {
	MoveTask(ctx context.Context, creds upstream.Credentials, taskID, newListID string) error
}

// Boards is the snapshot store the mover updates.
type Boards interface {
	Get(ctx context.Context, boardID string, creds upstream.Credentials) (*models.Board, error)
	Update(ctx context.Context, boardID string, creds upstream.Credentials, fn func(*models.Board) error) (*models.Board, error)
	Invalidate(boardID string)
}

// Publisher pushes dashboard events to the board's live viewers.
type Publisher interface {
	Publish(evt realtime.Event)
}

// Options tunes retries.
type Options struct {
	// Retries is the number of extra attempts after a failed save.
	Retries int
	// Backoff is the pause between attempts.
	Backoff time.Duration
}

// Mover applies and persists moves.
type Mover struct {
	boards  Boards
	backend Persister
	pub     Publisher
	opts    Options
	logger  log.FieldLogger
}

// New creates a Mover. pub may be nil.
func New(boards Boards, backend Persister, pub Publisher, opts Options, logger log.FieldLogger) *Mover {
	if logger == nil {
		logger = log.StandardLogger()
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	return &Mover{boards: boards, backend: backend, pub: pub, opts: opts, logger: logger}
}

// Request describes one drop.
type Request struct {
	BoardID   string
	TaskID    string
	NewListID string
	// Index is the card's position in the destination list; -1 appends.
	Index int
	State *boardview.ViewState
	Creds upstream.Credentials
}

// Result is what the page needs after a drop.
type Result struct {
	MoveID    string              `json:"move_id"`
	Placement boardview.Placement `json:"placement"`
	Attempts  int                 `json:"attempts"`
	Summary   boardview.Summary   `json:"summary"`
}

// Move applies the move locally, then persists it. The local move never
// waits on the backend; on final failure it is reverted and the snapshot is
// dropped so the next read resyncs with the backend.
func (m *Mover) Move(ctx context.Context, req Request) (Result, error) {
	state := req.State
	if state == nil {
		state = boardview.NewViewState()
	}
	res := Result{MoveID: uuid.NewString()}
	logger := m.logger.WithFields(log.Fields{
		"move":  res.MoveID,
		"board": req.BoardID,
		"task":  req.TaskID,
		"list":  req.NewListID,
	})

	if !boardview.DragEnabled(state.Filter) {
		return res, ErrDragDisabled
	}

	_, err := m.boards.Update(ctx, req.BoardID, req.Creds, func(b *models.Board) error {
		p, err := boardview.MoveCard(b, req.TaskID, req.NewListID, req.Index)
		if err != nil {
			return err
		}
		res.Placement = p
		return nil
	})
	if err != nil {
		return res, err
	}

	res.Attempts, err = m.persist(ctx, req)
	if err != nil {
		logger.WithError(err).WithField("attempts", res.Attempts).Warn("move rejected by backend, rolling back")
		m.rollback(ctx, req, res.Placement, logger)
		return res, fmt.Errorf("%w: %v", ErrMoveFailed, err)
	}

	// Summaries are recomputed from the latest snapshot; later moves may
	// already have landed.
	board, err := m.boards.Get(ctx, req.BoardID, req.Creds)
	if err != nil {
		logger.WithError(err).Warn("reload board after move")
		return res, nil
	}
	res.Summary = boardview.Compute(board, state, boardview.DefaultPageSize).Summary
	logger.WithField("attempts", res.Attempts).Info("task moved")

	if m.pub != nil {
		m.pub.Publish(realtime.Event{
			Type:    realtime.EventTaskMoved,
			BoardID: req.BoardID,
			TaskID:  req.TaskID,
			ListID:  req.NewListID,
			Payload: map[string]any{
				"progress":        res.Summary.Progress,
				"priority_totals": res.Summary.PriorityTotals,
			},
		})
	}
	return res, nil
}

func (m *Mover) persist(ctx context.Context, req Request) (int, error) {
	var err error
	attempts := 0
	for attempt := 0; attempt <= m.opts.Retries; attempt++ {
		if attempt > 0 && m.opts.Backoff > 0 {
			select {
			case <-ctx.Done():
				return attempts, errors.Join(err, ctx.Err())
			case <-time.After(m.opts.Backoff):
			}
		}
		attempts++
		if err = m.backend.MoveTask(ctx, req.Creds, req.TaskID, req.NewListID); err == nil {
			return attempts, nil
		}
		if ctx.Err() != nil {
			return attempts, err
		}
	}
	return attempts, err
}

func (m *Mover) rollback(ctx context.Context, req Request, p boardview.Placement, logger log.FieldLogger) {
	// The revert must run even when the request context is gone.
	ctx = context.WithoutCancel(ctx)
	if _, err := m.boards.Update(ctx, req.BoardID, req.Creds, func(b *models.Board) error {
		return boardview.Revert(b, req.TaskID, p)
	}); err != nil {
		logger.WithError(err).Warn("revert move")
	}
	m.boards.Invalidate(req.BoardID)
}
