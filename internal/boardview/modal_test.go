package boardview

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPopulateForm_Create(t *testing.T) {
	b := testBoard()
	b.Columns[0].ListID = "7"

	form, err := PopulateForm(b, Trigger{ListID: "7"})
	require.NoError(t, err)
	require.Equal(t, FormCreate, form.Mode)
	require.Equal(t, "/boards/list/7/add-task/", form.Action)
	require.Empty(t, form.TaskID)
	for _, c := range append(form.Tags, form.Assignees...) {
		require.False(t, c.Checked)
	}
}

func TestPopulateForm_Edit(t *testing.T) {
	b := testBoard()

	form, err := PopulateForm(b, Trigger{TaskID: "1", Edit: true})
	require.NoError(t, err)
	require.Equal(t, FormEdit, form.Mode)
	require.Equal(t, "/boards/task/1/edit/", form.Action)
	require.Empty(t, form.ListID)
	require.Equal(t, "Write docs", form.Title)
	require.Equal(t, "high", form.Priority)

	checked := []string{}
	for _, c := range form.Tags {
		if c.Checked {
			checked = append(checked, string(c.Value))
		}
	}
	require.Equal(t, []string{"2", "5"}, checked)
	require.True(t, form.Assignees[0].Checked)
	require.False(t, form.Assignees[1].Checked)
}

func TestPopulateForm_ResetsBetweenOpens(t *testing.T) {
	b := testBoard()
	_, err := PopulateForm(b, Trigger{TaskID: "1"})
	require.NoError(t, err)

	form, err := PopulateForm(b, Trigger{ListID: "20"})
	require.NoError(t, err)
	require.Equal(t, "/boards/list/20/add-task/", form.Action)
	require.Empty(t, form.Title)
	for _, c := range form.Tags {
		require.False(t, c.Checked)
	}
}

func TestPopulateForm_UnknownIDsSkipped(t *testing.T) {
	b := testBoard()
	b.Columns[0].Cards[0].Tags = append(b.Columns[0].Cards[0].Tags, "404")

	form, err := PopulateForm(b, Trigger{TaskID: "1"})
	require.NoError(t, err)
	require.Len(t, form.Tags, 3)

	_, err = PopulateForm(b, Trigger{TaskID: "999"})
	require.ErrorIs(t, err, ErrTriggerNotFound)
	_, err = PopulateForm(b, Trigger{ListID: "999"})
	require.ErrorIs(t, err, ErrTriggerNotFound)
}
