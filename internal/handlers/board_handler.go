package handlers

import (
	"net/http"

	"board-view-api/internal/boardview"
	"board-view-api/internal/middleware"
	"board-view-api/internal/models"
	"board-view-api/internal/realtime"

	"github.com/gin-gonic/gin"
)

// ToggleRequest is sent when a filter badge is clicked or activated by key.
type ToggleRequest struct {
	Priority models.Priority `json:"priority"`
	Status   models.Status   `json:"status"`
	// Key is the keyboard key that activated the badge; empty for clicks.
	Key string `json:"key"`
}

// SearchRequest carries the search box content.
type SearchRequest struct {
	Term string `json:"term"`
}

// PageRequest sets a column page directly or steps it with prev/next.
type PageRequest struct {
	Page  *int `json:"page"`
	Delta *int `json:"delta"`
}

// SnapshotRequest is the view-model a board page was rendered with.
// ActiveTagID is set when the page was opened with ?tag=, in which case the
// board only holds the tagged cards.
type SnapshotRequest struct {
	models.Board
	ActiveTagID models.ID `json:"active_tag"`
}

// render computes the view, stores the clamped state and answers with it.
func (h *Handlers) render(c *gin.Context, board *models.Board, state *boardview.ViewState) {
	view := boardview.Compute(board, state, h.pageSize())
	state.Sync(view)
	h.Views.Save(middleware.ViewerID(c), c.Param("id"), state)
	c.JSON(http.StatusOK, view)
}

// loadView returns the viewer's state and the board it reads from.
func (h *Handlers) loadView(c *gin.Context) (*models.Board, *boardview.ViewState, bool) {
	boardID := c.Param("id")
	state := h.Views.Load(middleware.ViewerID(c), boardID)
	board, err := h.Boards.GetForTag(c.Request.Context(), boardID, state.Filter.Tag, middleware.Credentials(c))
	if err != nil {
		h.abortWithBoardError(c, err)
		return nil, nil, false
	}
	return board, state, true
}

// PutSnapshot handles PUT /boards/:id/snapshot
// Hydrates the board view-model the page was rendered with. A page load
// also starts the viewer from a clean filter state. A tag-filtered page
// only sets the tag for this viewer; its partial board is stored apart
// from the one other viewers read.
func (h *Handlers) PutSnapshot(c *gin.Context) {
	var req SnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	board := req.Board
	board.ID = models.ID(c.Param("id"))
	if req.ActiveTagID == "" {
		h.Boards.Hydrate(&board)
	} else {
		h.Boards.HydrateTagged(&board, req.ActiveTagID)
	}

	state := boardview.NewViewState()
	state.Filter.Tag = req.ActiveTagID
	view := boardview.Compute(&board, state, h.pageSize())
	h.Views.Save(middleware.ViewerID(c), string(board.ID), state)

	if h.Hub != nil && req.ActiveTagID == "" {
		h.Hub.Publish(realtime.Event{
			Type:    realtime.EventBoardHydrated,
			BoardID: string(board.ID),
			Payload: map[string]any{
				"progress":        view.Summary.Progress,
				"priority_totals": view.Summary.PriorityTotals,
			},
		})
	}
	h.logger(c).WithField("cards", board.CardCount()).Info("board hydrated")
	c.JSON(http.StatusOK, view)
}

// GetView handles GET /boards/:id/view
// Returns the board as the viewer currently sees it. ?fresh=1 resets the
// viewer's filters, as reloading the page does; ?tag= then sets the page's
// tag filter.
func (h *Handlers) GetView(c *gin.Context) {
	if c.Query("fresh") == "1" {
		viewer, boardID := middleware.ViewerID(c), c.Param("id")
		h.Views.Reset(viewer, boardID)
		if tag := c.Query("tag"); tag != "" {
			state := boardview.NewViewState()
			state.Filter.Tag = models.ID(tag)
			h.Views.Save(viewer, boardID, state)
		}
	}
	board, state, ok := h.loadView(c)
	if !ok {
		return
	}
	h.render(c, board, state)
}

// TogglePriority handles POST /boards/:id/filters/priority
func (h *Handlers) TogglePriority(c *gin.Context) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Priority.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid priority is required"})
		return
	}
	board, state, ok := h.loadView(c)
	if !ok {
		return
	}
	if boardview.KeyActivates(req.Key) {
		state.TogglePriority(req.Priority)
	}
	h.render(c, board, state)
}

// ToggleStatus handles POST /boards/:id/filters/status
func (h *Handlers) ToggleStatus(c *gin.Context) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid status is required"})
		return
	}
	board, state, ok := h.loadView(c)
	if !ok {
		return
	}
	if boardview.KeyActivates(req.Key) {
		state.ToggleStatus(req.Status)
	}
	h.render(c, board, state)
}

// Search handles POST /boards/:id/search
func (h *Handlers) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	board, state, ok := h.loadView(c)
	if !ok {
		return
	}
	state.SetSearch(req.Term)
	h.render(c, board, state)
}

// SetPage handles POST /boards/:id/lists/:listId/page
func (h *Handlers) SetPage(c *gin.Context) {
	var req PageRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Page == nil && req.Delta == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page or delta is required"})
		return
	}
	board, state, ok := h.loadView(c)
	if !ok {
		return
	}
	listID := c.Param("listId")
	if _, found := board.Column(listID); !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "List not found"})
		return
	}

	if req.Page != nil {
		state.SetPage(listID, *req.Page)
	} else {
		state.StepPage(listID, *req.Delta)
	}
	h.render(c, board, state)
}

// OpenModal handles GET /boards/:id/modal
// Returns how the shared task form must be filled for the trigger.
func (h *Handlers) OpenModal(c *gin.Context) {
	var trigger boardview.Trigger
	if err := c.ShouldBindQuery(&trigger); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if trigger.ListID == "" && trigger.TaskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "list_id or task_id is required"})
		return
	}
	board, _, ok := h.loadView(c)
	if !ok {
		return
	}
	form, err := boardview.PopulateForm(board, trigger)
	if err != nil {
		h.abortWithBoardError(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}
