package boardview

import (
	"math"

	"board-view-api/internal/models"
)

// Progress is the share of the board's cards sitting in done columns.
type Progress struct {
	Done    int `json:"done"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

// Summary holds the counters recomputed after every view change.
type Summary struct {
	// PriorityTotals counts all cards, ignoring filters.
	PriorityTotals map[models.Priority]int `json:"priority_totals"`
	// VisibleByStatus counts filter-visible cards per column status.
	VisibleByStatus map[models.Status]int `json:"visible_by_status"`
	Progress        Progress              `json:"progress"`
}

// ComputeProgress returns round(100*done/total), or 0 for an empty board.
func ComputeProgress(board *models.Board) Progress {
	p := Progress{}
	for _, col := range board.Columns {
		p.Total += len(col.Cards)
		if col.Done() {
			p.Done += len(col.Cards)
		}
	}
	p.Percent = Percent(p.Done, p.Total)
	return p
}

// Percent returns round(100*done/total), 0 when total is 0.
func Percent(done, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(done) / float64(total)))
}

// PriorityTotals counts every card on the board per priority.
func PriorityTotals(board *models.Board) map[models.Priority]int {
	totals := make(map[models.Priority]int, len(models.Priorities))
	for _, p := range models.Priorities {
		totals[p] = 0
	}
	for _, col := range board.Columns {
		for _, card := range col.Cards {
			for _, p := range models.Priorities {
				if MatchesPriority(card, &p) {
					totals[p]++
				}
			}
		}
	}
	return totals
}

// Summarize builds the summary counters from the board and its computed columns.
func Summarize(board *models.Board, cols []ColumnView) Summary {
	byStatus := make(map[models.Status]int, len(models.Statuses))
	for _, s := range models.Statuses {
		byStatus[s] = 0
	}
	for _, cv := range cols {
		if cv.Hidden {
			continue
		}
		byStatus[cv.Status] += cv.FilteredCount
	}
	return Summary{
		PriorityTotals:  PriorityTotals(board),
		VisibleByStatus: byStatus,
		Progress:        ComputeProgress(board),
	}
}

// SummarizeTags counts cards per board tag, skipping tags no card uses.
func SummarizeTags(board *models.Board) []TagSummary {
	out := []TagSummary{}
	for _, tag := range board.Tags {
		n := 0
		for _, col := range board.Columns {
			for _, card := range col.Cards {
				if card.Tags.Contains(string(tag.ID)) {
					n++
				}
			}
		}
		if n > 0 {
			out = append(out, TagSummary{ID: tag.ID, Name: tag.Name, Color: tag.Color, Count: n})
		}
	}
	return out
}
