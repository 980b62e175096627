package boardview

import (
	"fmt"

	"board-view-api/internal/models"
)

func cards(prefix string, n int, prio string) []models.Card {
	out := make([]models.Card, n)
	for i := range out {
		out[i] = models.Card{
			ID:       models.ID(fmt.Sprintf("%s-%d", prefix, i+1)),
			Title:    fmt.Sprintf("%s task %d", prefix, i+1),
			Priority: prio,
		}
	}
	return out
}

func testBoard() *models.Board {
	b := &models.Board{
		ID: "1",
		Columns: []models.Column{
			{ListID: "10", Title: "Por hacer", Cards: []models.Card{
				{ID: "1", Title: "Write docs", Description: "API reference", Priority: "high", Tags: models.IDList{"2", "5"}, Assigned: models.IDList{"7"}},
				{ID: "2", Title: "Fix login", Description: "Session bug", Priority: "medium"},
			}},
			{ListID: "20", Title: "En proceso", Cards: []models.Card{
				{ID: "3", Title: "Deploy", Description: "Staging", Priority: "HIGH"},
			}},
			{ListID: "30", Title: "Hecho", Cards: []models.Card{
				{ID: "4", Title: "Kickoff", Priority: "low"},
			}},
		},
		Tags:  []models.Tag{{ID: "2", Name: "backend"}, {ID: "5", Name: "docs"}, {ID: "9", Name: "unused"}},
		Users: []models.User{{ID: "7", Username: "ana"}, {ID: "8", Username: "luis"}},
	}
	b.Normalize()
	return b
}
