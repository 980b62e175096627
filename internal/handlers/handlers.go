package handlers

import (
	"errors"
	"net/http"

	"board-view-api/internal/boardview"
	"board-view-api/internal/consent"
	"board-view-api/internal/middleware"
	"board-view-api/internal/mover"
	"board-view-api/internal/realtime"
	"board-view-api/internal/store"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Handlers serves the board page's requests.
type Handlers struct {
	Boards   *store.Boards
	Views    *store.ViewStates
	Mover    *mover.Mover
	Consent  *consent.Service
	Hub      *realtime.Hub
	PageSize int
	Logger   log.FieldLogger
}

func (h *Handlers) logger(c *gin.Context) log.FieldLogger {
	l := h.Logger
	if l == nil {
		l = log.StandardLogger()
	}
	return l.WithFields(log.Fields{
		"viewer": middleware.ViewerID(c),
		"path":   c.FullPath(),
	})
}

func (h *Handlers) pageSize() int {
	if h.PageSize <= 0 {
		return boardview.DefaultPageSize
	}
	return h.PageSize
}

// abortWithBoardError maps service errors to HTTP answers.
func (h *Handlers) abortWithBoardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrBoardNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
	case errors.Is(err, boardview.ErrCardNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	case errors.Is(err, boardview.ErrColumnNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "List not found"})
	case errors.Is(err, boardview.ErrTriggerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, mover.ErrDragDisabled):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, mover.ErrMoveFailed):
		// The page alerts and reloads to resync with the backend.
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to move task", "reload": true})
	default:
		h.logger(c).WithError(err).Error("board request failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Board backend unavailable"})
	}
}
