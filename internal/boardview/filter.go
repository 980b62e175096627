package boardview

import (
	"math"
	"strings"

	"board-view-api/internal/models"
)

// MatchesSearch reports whether the card's title and description contain term,
// ignoring case. An empty term matches every card.
func MatchesSearch(card models.Card, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	haystack := strings.ToLower(card.Title + " " + card.Description)
	return strings.Contains(haystack, term)
}

// MatchesPriority reports whether the card's priority contains the active
// priority, ignoring case. A nil priority matches every card.
func MatchesPriority(card models.Card, prio *models.Priority) bool {
	if prio == nil {
		return true
	}
	return strings.Contains(strings.ToLower(card.Priority), strings.ToLower(string(*prio)))
}

// MatchesStatus reports whether a column passes the status filter.
func MatchesStatus(col models.Column, status *models.Status) bool {
	return status == nil || col.Status == *status
}

// ScopeToTag returns the board as a page opened with ?tag= renders it: only
// cards carrying tagID remain. The input board is left untouched. An empty
// tag returns board itself.
func ScopeToTag(board *models.Board, tagID models.ID) *models.Board {
	if tagID == "" {
		return board
	}
	scoped := *board
	scoped.Columns = make([]models.Column, len(board.Columns))
	for i, col := range board.Columns {
		cards := make([]models.Card, 0, len(col.Cards))
		for _, c := range col.Cards {
			if c.Tags.Contains(string(tagID)) {
				cards = append(cards, c)
			}
		}
		col.Cards = cards
		scoped.Columns[i] = col
	}
	return &scoped
}

// PageCount returns the number of pages needed for n cards, never less than one.
func PageCount(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if n <= 0 {
		return 1
	}
	return int(math.Ceil(float64(n) / float64(size)))
}

// ClampPage keeps page within [1, count].
func ClampPage(page, count int) int {
	if count < 1 {
		count = 1
	}
	if page < 1 {
		return 1
	}
	if page > count {
		return count
	}
	return page
}

// PageWindow returns the [start, end) indexes of a page.
func PageWindow(page, size, n int) (int, int) {
	start := (page - 1) * size
	if start > n {
		start = n
	}
	end := start + size
	if end > n {
		end = n
	}
	return start, end
}
