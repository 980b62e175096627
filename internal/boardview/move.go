package boardview

import (
	"errors"
	"fmt"

	"board-view-api/internal/models"
)

var (
	ErrCardNotFound   = errors.New("card not found")
	ErrColumnNotFound = errors.New("column not found")
)

// Placement records where a card sat before a move.
type Placement struct {
	FromListID models.ID `json:"from_list_id"`
	FromIndex  int       `json:"from_index"`
	ToListID   models.ID `json:"to_list_id"`
	ToIndex    int       `json:"to_index"`
}

// MoveCard moves a card into toListID at index, mutating board in place.
// An index outside the column (or negative) appends the card.
func MoveCard(board *models.Board, taskID, toListID string, index int) (Placement, error) {
	card, from, fromIdx, ok := board.FindCard(taskID)
	if !ok {
		return Placement{}, fmt.Errorf("task %q: %w", taskID, ErrCardNotFound)
	}
	to, ok := board.Column(toListID)
	if !ok {
		return Placement{}, fmt.Errorf("list %q: %w", toListID, ErrColumnNotFound)
	}

	moved := *card
	p := Placement{FromListID: from.ListID, FromIndex: fromIdx, ToListID: models.ID(toListID)}
	from.Cards = append(from.Cards[:fromIdx], from.Cards[fromIdx+1:]...)
	p.ToIndex = insertAt(to, moved, index)
	return p, nil
}

// Revert puts a moved card back where the placement says it came from. It is
// a no-op when the card has since left the destination column.
func Revert(board *models.Board, taskID string, p Placement) error {
	card, col, idx, ok := board.FindCard(taskID)
	if !ok {
		return fmt.Errorf("task %q: %w", taskID, ErrCardNotFound)
	}
	if col.ListID != p.ToListID {
		return nil
	}
	moved := *card
	col.Cards = append(col.Cards[:idx], col.Cards[idx+1:]...)

	from, ok := board.Column(string(p.FromListID))
	if !ok {
		return fmt.Errorf("list %q: %w", p.FromListID, ErrColumnNotFound)
	}
	insertAt(from, moved, p.FromIndex)
	return nil
}

func insertAt(col *models.Column, card models.Card, index int) int {
	if index < 0 || index >= len(col.Cards) {
		col.Cards = append(col.Cards, card)
		return len(col.Cards) - 1
	}
	col.Cards = append(col.Cards, models.Card{})
	copy(col.Cards[index+1:], col.Cards[index:])
	col.Cards[index] = card
	return index
}
