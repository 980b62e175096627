package boardview

import (
	"errors"
	"fmt"

	"board-view-api/internal/models"
)

// ErrTriggerNotFound is returned when a modal trigger names a list or task
// that is not on the board.
var ErrTriggerNotFound = errors.New("trigger target not found")

// FormMode distinguishes the two uses of the shared task form.
type FormMode string

const (
	FormCreate FormMode = "create"
	FormEdit   FormMode = "edit"
)

// Trigger describes the element that opened the task modal: an "add task"
// button carrying a list id, or a card (or its edit button) carrying a task id.
type Trigger struct {
	ListID string `form:"list_id" json:"list_id"`
	TaskID string `form:"task_id" json:"task_id"`
	Edit   bool   `form:"edit" json:"edit"`
}

// IsEdit reports whether the trigger opens the form in edit mode.
func (t Trigger) IsEdit() bool {
	return t.Edit || t.TaskID != ""
}

// Checkbox is one tag or assignee option on the form.
type Checkbox struct {
	Value   models.ID `json:"value"`
	Label   string    `json:"label"`
	Checked bool      `json:"checked"`
}

// TaskForm is the state the shared task form must show when opened.
type TaskForm struct {
	Mode        FormMode   `json:"mode"`
	Action      string     `json:"action"`
	TaskID      models.ID  `json:"task_id,omitempty"`
	ListID      models.ID  `json:"list_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     string     `json:"due_date"`
	Tags        []Checkbox `json:"tags"`
	Assignees   []Checkbox `json:"assignees"`
}

// CreateAction is the submission target for a new task in a list.
func CreateAction(listID string) string {
	return fmt.Sprintf("/boards/list/%s/add-task/", listID)
}

// EditAction is the submission target for editing a task.
func EditAction(taskID string) string {
	return fmt.Sprintf("/boards/task/%s/edit/", taskID)
}

// PopulateForm configures the task form for a trigger. The form is rebuilt
// from scratch on every call, so nothing from a previous open leaks through.
func PopulateForm(board *models.Board, t Trigger) (TaskForm, error) {
	form := resetForm(board)

	if t.IsEdit() {
		card, _, _, ok := board.FindCard(t.TaskID)
		if !ok {
			return TaskForm{}, fmt.Errorf("task %q: %w", t.TaskID, ErrTriggerNotFound)
		}
		form.Mode = FormEdit
		form.TaskID = card.ID
		form.Action = EditAction(string(card.ID))
		form.Title = card.Title
		form.Description = card.Description
		form.Priority = card.Priority
		form.DueDate = card.DueDate
		// Ids without a matching checkbox are ignored.
		check(form.Tags, card.Tags)
		check(form.Assignees, card.Assigned)
		return form, nil
	}

	if _, ok := board.Column(t.ListID); !ok {
		return TaskForm{}, fmt.Errorf("list %q: %w", t.ListID, ErrTriggerNotFound)
	}
	form.Mode = FormCreate
	form.ListID = models.ID(t.ListID)
	form.Action = CreateAction(t.ListID)
	return form, nil
}

func resetForm(board *models.Board) TaskForm {
	form := TaskForm{
		Tags:      make([]Checkbox, 0, len(board.Tags)),
		Assignees: make([]Checkbox, 0, len(board.Users)),
	}
	for _, tag := range board.Tags {
		form.Tags = append(form.Tags, Checkbox{Value: tag.ID, Label: tag.Name})
	}
	for _, u := range board.Users {
		form.Assignees = append(form.Assignees, Checkbox{Value: u.ID, Label: u.Username})
	}
	return form
}

func check(boxes []Checkbox, ids models.IDList) {
	for i := range boxes {
		boxes[i].Checked = ids.Contains(string(boxes[i].Value))
	}
}
