package handlers

import (
	"net/http"

	"board-view-api/internal/middleware"
	"board-view-api/internal/mover"
	"board-view-api/internal/models"

	"github.com/gin-gonic/gin"
)

// MoveTaskRequest is sent when a drag ends.
type MoveTaskRequest struct {
	TaskID    models.ID `json:"task_id" binding:"required"`
	NewListID models.ID `json:"new_list_id" binding:"required"`
	// NewIndex is the card's position in the destination list; omitted appends.
	NewIndex *int `json:"new_index"`
}

// MoveTask handles POST /boards/:id/task/move/
// The card moves in the snapshot at once; the backend call is retried once
// and a final failure tells the page to reload.
func (h *Handlers) MoveTask(c *gin.Context) {
	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	creds := middleware.Credentials(c)
	if creds.CSRFToken == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "CSRF token is required"})
		return
	}

	boardID := c.Param("id")
	index := -1
	if req.NewIndex != nil {
		index = *req.NewIndex
	}

	res, err := h.Mover.Move(c.Request.Context(), mover.Request{
		BoardID:   boardID,
		TaskID:    string(req.TaskID),
		NewListID: string(req.NewListID),
		Index:     index,
		State:     h.Views.Load(middleware.ViewerID(c), boardID),
		Creds:     creds,
	})
	if err != nil {
		h.abortWithBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"move_id":   res.MoveID,
		"placement": res.Placement,
		"attempts":  res.Attempts,
		"summary":   res.Summary,
	})
}
