package realtime

import (
	"encoding/json"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Client represents a single websocket client connection.
// The network conn itself is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Event is a live dashboard update pushed to every viewer of a board.
type Event struct {
	Type    string `json:"type"`
	BoardID string `json:"boardId"`
	TaskID  string `json:"taskId,omitempty"`
	ListID  string `json:"listId,omitempty"`
	Payload any    `json:"payload,omitempty"`
	Version int    `json:"version"`
}

// Event types.
const (
	EventTaskMoved     = "task_moved"
	EventBoardHydrated = "board_hydrated"
)

// Hub keeps the open connections of each board page and fans events out to them.
type Hub struct {
	mu     sync.RWMutex
	boards map[string]map[Client]struct{}
	logger log.FieldLogger
}

// NewHub creates an empty hub.
func NewHub(logger log.FieldLogger) *Hub {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Hub{boards: make(map[string]map[Client]struct{}), logger: logger}
}

// Register adds a client watching a board.
func (h *Hub) Register(boardID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.boards[boardID]; !ok {
		h.boards[boardID] = make(map[Client]struct{})
	}
	h.boards[boardID][client] = struct{}{}
}

// Unregister removes a client; the board entry goes away with its last client.
func (h *Hub) Unregister(boardID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.boards[boardID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.boards, boardID)
		}
	}
}

// Watchers returns the number of clients registered on a board.
func (h *Hub) Watchers(boardID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.boards[boardID])
}

// Broadcast sends a raw message to all clients of a board. Failed writes are
// left to the ws handler, which unregisters on its side. Sends happen
// outside the lock so a slow socket never blocks Register or Unregister.
func (h *Hub) Broadcast(boardID string, message []byte) int {
	h.mu.RLock()
	clients := make([]Client, 0, len(h.boards[boardID]))
	for c := range h.boards[boardID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	sent := 0
	for _, c := range clients {
		if c.Send(message) {
			sent++
		}
	}
	return sent
}

// Publish encodes and broadcasts an event.
func (h *Hub) Publish(evt Event) {
	if evt.Version == 0 {
		evt.Version = 1
	}
	data, err := json.Marshal(evt)
	if err != nil {
		h.logger.WithError(err).WithField("type", evt.Type).Error("encode dashboard event")
		return
	}
	n := h.Broadcast(evt.BoardID, data)
	h.logger.WithFields(log.Fields{"type": evt.Type, "board": evt.BoardID, "sent": n}).Debug("dashboard event published")
}
