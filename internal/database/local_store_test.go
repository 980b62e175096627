package database_test

import (
	"testing"

	"board-view-api/internal/database"
	"board-view-api/internal/testutil"

	"github.com/stretchr/testify/require"
)

func TestLocalStore_SetGetOverwrite(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	s := database.NewLocalStore(db)

	_, ok, err := s.Get("v1", "k")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set("v1", "k", "one"))
	require.NoError(t, s.Set("v1", "k", "two"))
	require.NoError(t, s.Set("v2", "k", "other"))

	val, ok, err := s.Get("v1", "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "two", val)

	_, ok, err = s.Get("v3", "k")
	require.NoError(t, err)
	require.False(t, ok)

	val, _, err = s.Get("v2", "k")
	require.NoError(t, err)
	require.Equal(t, "other", val)
}
