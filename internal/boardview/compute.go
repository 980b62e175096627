package boardview

import (
	"fmt"

	"board-view-api/internal/models"
)

// CardState tells the page how to render one card.
type CardState struct {
	TaskID models.ID `json:"taskid"`
	// Visible is false when the card fails the search or priority filter.
	Visible bool `json:"visible"`
	// PageHidden marks a filter-visible card outside the current page window.
	PageHidden bool `json:"page_hidden"`
}

// ColumnView is the derived state of one column.
type ColumnView struct {
	ListID        models.ID     `json:"list_id"`
	Title         string        `json:"title"`
	Label         string        `json:"label"`
	Status        models.Status `json:"status"`
	IsDone        bool          `json:"is_done"`
	Hidden        bool          `json:"hidden"`
	TotalCount    int           `json:"total_count"`
	FilteredCount int           `json:"filtered_count"`
	Page          int           `json:"page"`
	PageCount     int           `json:"page_count"`
	PageLabel     string        `json:"page_label"`
	ShowPager     bool          `json:"show_pager"`
	PrevDisabled  bool          `json:"prev_disabled"`
	NextDisabled  bool          `json:"next_disabled"`
	Cards         []CardState   `json:"cards"`
}

// TagSummary counts the cards carrying a tag across the whole board.
type TagSummary struct {
	ID    models.ID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
	Count int       `json:"count"`
}

// View is everything the page needs to render a board for one viewer.
type View struct {
	BoardID     models.ID    `json:"board_id"`
	Filter      FilterState  `json:"filter"`
	Columns     []ColumnView `json:"columns"`
	Summary     Summary      `json:"summary"`
	Tags        []TagSummary `json:"tags"`
	DragEnabled bool         `json:"drag_enabled"`
}

// Compute derives the view of board under state. It never mutates its inputs;
// use ViewState.Sync to store the clamped pages back.
func Compute(board *models.Board, state *ViewState, pageSize int) View {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if state == nil {
		state = NewViewState()
	}

	v := View{
		BoardID:     board.ID,
		Filter:      state.Filter,
		Columns:     make([]ColumnView, 0, len(board.Columns)),
		DragEnabled: DragEnabled(state.Filter),
	}

	// A tag-filtered page only holds the tagged cards; the tag chips still
	// count the whole board.
	page := ScopeToTag(board, state.Filter.Tag)
	for _, col := range page.Columns {
		v.Columns = append(v.Columns, computeColumn(col, state, pageSize))
	}
	v.Summary = Summarize(page, v.Columns)
	v.Tags = SummarizeTags(board)
	return v
}

func computeColumn(col models.Column, state *ViewState, pageSize int) ColumnView {
	cv := ColumnView{
		ListID:     col.ListID,
		Title:      col.Title,
		Label:      models.StatusLabel(col.Status, col.Title),
		Status:     col.Status,
		IsDone:     col.Done(),
		TotalCount: len(col.Cards),
		Page:       1,
		PageCount:  1,
		Cards:      make([]CardState, len(col.Cards)),
	}

	if !MatchesStatus(col, state.Filter.Status) {
		cv.Hidden = true
		for i, card := range col.Cards {
			cv.Cards[i] = CardState{TaskID: card.ID}
		}
		cv.PageLabel = "1/1"
		cv.PrevDisabled, cv.NextDisabled = true, true
		return cv
	}

	visible := 0
	for i, card := range col.Cards {
		ok := MatchesSearch(card, state.Filter.Search) && MatchesPriority(card, state.Filter.Priority)
		cv.Cards[i] = CardState{TaskID: card.ID, Visible: ok}
		if ok {
			visible++
		}
	}
	cv.FilteredCount = visible
	cv.PageCount = PageCount(visible, pageSize)
	cv.Page = ClampPage(state.Page(string(col.ListID)), cv.PageCount)

	start, end := PageWindow(cv.Page, pageSize, visible)
	idx := 0
	for i := range cv.Cards {
		if !cv.Cards[i].Visible {
			continue
		}
		cv.Cards[i].PageHidden = idx < start || idx >= end
		idx++
	}

	cv.ShowPager = visible > pageSize
	cv.PrevDisabled = cv.Page <= 1
	cv.NextDisabled = cv.Page >= cv.PageCount
	cv.PageLabel = fmt.Sprintf("%d/%d", cv.Page, cv.PageCount)
	return cv
}

// Sync stores the pages a Compute clamped, keeping 1 <= page <= pageCount.
func (s *ViewState) Sync(v View) {
	pages := make(map[string]int, len(v.Columns))
	for _, col := range v.Columns {
		if col.Page > 1 {
			pages[string(col.ListID)] = col.Page
		}
	}
	s.Pages = pages
}

// DragEnabled reports whether cards may be dragged. A filtered view does not
// show the true list order, so any active filter disables dragging.
func DragEnabled(f FilterState) bool {
	return !f.Active()
}
