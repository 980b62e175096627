package boardview

import (
	"testing"

	"board-view-api/internal/models"

	"github.com/stretchr/testify/require"
)

func ids(col models.Column) []string {
	out := make([]string, len(col.Cards))
	for i, c := range col.Cards {
		out[i] = string(c.ID)
	}
	return out
}

func TestMoveCard_AcrossColumns(t *testing.T) {
	b := testBoard()

	p, err := MoveCard(b, "1", "20", 0)
	require.NoError(t, err)
	require.Equal(t, models.ID("10"), p.FromListID)
	require.Equal(t, 0, p.FromIndex)
	require.Equal(t, []string{"2"}, ids(b.Columns[0]))
	require.Equal(t, []string{"1", "3"}, ids(b.Columns[1]))

	require.NoError(t, Revert(b, "1", p))
	require.Equal(t, []string{"1", "2"}, ids(b.Columns[0]))
	require.Equal(t, []string{"3"}, ids(b.Columns[1]))
}

func TestMoveCard_WithinColumnAndAppend(t *testing.T) {
	b := testBoard()

	p, err := MoveCard(b, "1", "10", -1)
	require.NoError(t, err)
	require.Equal(t, 1, p.ToIndex)
	require.Equal(t, []string{"2", "1"}, ids(b.Columns[0]))

	_, err = MoveCard(b, "4", "20", 99)
	require.NoError(t, err)
	require.Equal(t, []string{"3", "4"}, ids(b.Columns[1]))
	require.Empty(t, b.Columns[2].Cards)
}

func TestMoveCard_Errors(t *testing.T) {
	b := testBoard()
	_, err := MoveCard(b, "nope", "10", 0)
	require.ErrorIs(t, err, ErrCardNotFound)
	_, err = MoveCard(b, "1", "nope", 0)
	require.ErrorIs(t, err, ErrColumnNotFound)
}

func TestRevert_SkipsWhenCardMovedAgain(t *testing.T) {
	b := testBoard()
	p, err := MoveCard(b, "1", "20", 0)
	require.NoError(t, err)
	_, err = MoveCard(b, "1", "30", 0)
	require.NoError(t, err)

	require.NoError(t, Revert(b, "1", p))
	require.Equal(t, []string{"1", "4"}, ids(b.Columns[2]))
}
