package boardview

import (
	"testing"

	"board-view-api/internal/models"

	"github.com/stretchr/testify/require"
)

func TestCompute_NoFilters(t *testing.T) {
	b := testBoard()
	v := Compute(b, NewViewState(), 0)

	require.Len(t, v.Columns, 3)
	require.True(t, v.DragEnabled)
	for _, col := range v.Columns {
		require.False(t, col.Hidden)
		require.False(t, col.ShowPager)
		for _, c := range col.Cards {
			require.True(t, c.Visible)
			require.False(t, c.PageHidden)
		}
	}
	require.Equal(t, Progress{Done: 1, Total: 4, Percent: 25}, v.Summary.Progress)
	require.Equal(t, 2, v.Summary.PriorityTotals[models.PriorityHigh])
	require.Equal(t, 2, v.Summary.VisibleByStatus[models.StatusTodo])
	require.Equal(t, "Por hacer", v.Columns[0].Label)
}

func TestCompute_TogglePriorityTwiceRestoresVisibility(t *testing.T) {
	b := testBoard()
	s := NewViewState()

	s.TogglePriority(models.PriorityHigh)
	v := Compute(b, s, 10)
	require.False(t, v.DragEnabled)
	require.Equal(t, 1, v.Columns[0].FilteredCount)
	require.Equal(t, 1, v.Columns[1].FilteredCount)
	require.Equal(t, 0, v.Columns[2].FilteredCount)
	// Totals ignore filters.
	require.Equal(t, 1, v.Summary.PriorityTotals[models.PriorityLow])
	require.Equal(t, 0, v.Summary.VisibleByStatus[models.StatusDone])

	s.TogglePriority(models.PriorityHigh)
	v = Compute(b, s, 10)
	require.True(t, v.DragEnabled)
	require.Equal(t, 2, v.Columns[0].FilteredCount)
	require.Equal(t, 1, v.Columns[2].FilteredCount)
}

func TestCompute_StatusFilterHidesColumns(t *testing.T) {
	b := testBoard()
	s := NewViewState()
	s.ToggleStatus(models.StatusDoing)

	v := Compute(b, s, 10)
	require.True(t, v.Columns[0].Hidden)
	require.False(t, v.Columns[1].Hidden)
	require.True(t, v.Columns[2].Hidden)
	require.Equal(t, 0, v.Summary.VisibleByStatus[models.StatusTodo])
	require.Equal(t, 1, v.Summary.VisibleByStatus[models.StatusDoing])
	// Progress always covers the whole board.
	require.Equal(t, 25, v.Summary.Progress.Percent)
}

func TestCompute_SearchCombinesWithPriority(t *testing.T) {
	b := testBoard()
	s := NewViewState()
	s.SetSearch("DOCS")
	s.TogglePriority(models.PriorityHigh)

	v := Compute(b, s, 10)
	require.True(t, v.Columns[0].Cards[0].Visible)
	require.False(t, v.Columns[0].Cards[1].Visible)
	require.False(t, v.Columns[1].Cards[0].Visible)
}

func TestCompute_PaginatesAndClamps(t *testing.T) {
	b := &models.Board{ID: "1", Columns: []models.Column{
		{ListID: "10", Title: "To do", Cards: cards("a", 23, "low")},
	}}
	b.Normalize()

	s := NewViewState()
	s.SetPage("10", 5)
	v := Compute(b, s, 10)
	col := v.Columns[0]
	require.Equal(t, 3, col.PageCount)
	require.Equal(t, 3, col.Page)
	require.Equal(t, "3/3", col.PageLabel)
	require.True(t, col.ShowPager)
	require.False(t, col.PrevDisabled)
	require.True(t, col.NextDisabled)

	shown := 0
	for _, c := range col.Cards {
		if !c.PageHidden {
			shown++
		}
	}
	require.Equal(t, 3, shown)

	s.Sync(v)
	require.Equal(t, 3, s.Page("10"))

	s.SetPage("10", 0)
	v = Compute(b, s, 10)
	require.Equal(t, 1, v.Columns[0].Page)
	require.True(t, v.Columns[0].PrevDisabled)
	require.False(t, v.Columns[0].Cards[0].PageHidden)
	require.True(t, v.Columns[0].Cards[10].PageHidden)
}

func TestCompute_FilterChangeResetsPage(t *testing.T) {
	b := &models.Board{ID: "1", Columns: []models.Column{
		{ListID: "10", Title: "To do", Cards: cards("a", 30, "medium")},
	}}
	b.Normalize()
	s := NewViewState()
	s.StepPage("10", 1)
	s.StepPage("10", 1)
	require.Equal(t, 3, s.Page("10"))

	s.SetSearch("task")
	require.Equal(t, 1, Compute(b, s, 10).Columns[0].Page)
}

func TestCompute_TagFilterScopesViewerOnly(t *testing.T) {
	b := testBoard()
	s := NewViewState()
	s.Filter.Tag = "2"

	v := Compute(b, s, 10)
	require.False(t, v.DragEnabled)
	require.Equal(t, 1, v.Columns[0].TotalCount)
	require.Equal(t, models.ID("1"), v.Columns[0].Cards[0].TaskID)
	require.Equal(t, 0, v.Columns[1].TotalCount)
	require.Equal(t, Progress{Done: 0, Total: 1, Percent: 0}, v.Summary.Progress)
	require.Len(t, v.Tags, 2)

	// The board itself keeps every card.
	require.Equal(t, 4, b.CardCount())
	full := Compute(b, NewViewState(), 10)
	require.True(t, full.DragEnabled)
	require.Equal(t, 4, full.Summary.Progress.Total)
}

func TestTogglesKeepTagFilter(t *testing.T) {
	s := NewViewState()
	s.Filter.Tag = "2"
	s.TogglePriority(models.PriorityHigh)
	s.TogglePriority(models.PriorityHigh)
	s.SetSearch("")
	require.Equal(t, models.ID("2"), s.Filter.Tag)
	require.True(t, s.Filter.Active())
}

func TestProgress(t *testing.T) {
	require.Equal(t, 75, Percent(3, 4))
	require.Equal(t, 0, Percent(0, 0))
	require.Equal(t, 67, Percent(2, 3))
	require.Equal(t, 100, Percent(5, 5))
}

func TestSummarizeTags(t *testing.T) {
	tags := SummarizeTags(testBoard())
	require.Len(t, tags, 2)
	require.Equal(t, "backend", tags[0].Name)
	require.Equal(t, 1, tags[0].Count)
}
