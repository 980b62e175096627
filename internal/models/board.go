package models

import (
	"encoding/json"
	"strings"
)

// Priority represents the priority of a card
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists every priority in badge order.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Status represents the status category of a column
type Status string

const (
	StatusTodo  Status = "todo"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
	StatusOther Status = "other"
)

// Statuses lists every status in board order.
var Statuses = []Status{StatusTodo, StatusDoing, StatusDone, StatusOther}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone, StatusOther:
		return true
	}
	return false
}

// ID accepts both JSON strings and numbers so ids rendered by the board
// backend can be hydrated as-is.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// IDList is a set of ids carried as a comma-separated string ("2,5"), the
// format used by the data-tags and data-assigned attributes. A JSON array is
// accepted too.
type IDList []string

// ParseIDList splits a comma-separated id list, trimming blanks.
func ParseIDList(raw string) IDList {
	out := IDList{}
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Contains reports whether id is in the list.
func (l IDList) Contains(id string) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// String renders the list in its comma-separated attribute form.
func (l IDList) String() string {
	return strings.Join(l, ",")
}

func (l IDList) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *IDList) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*l = ParseIDList(raw)
		return nil
	}
	var ids []ID
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	out := make(IDList, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, string(id))
		}
	}
	*l = out
	return nil
}

// Card is the view-model of one task on the board. Field names on the wire
// follow the data-* attributes the board page renders.
type Card struct {
	ID          ID     `json:"taskid"`
	Title       string `json:"title"`
	Description string `json:"desc"`
	Priority    string `json:"prio"`
	DueDate     string `json:"date"`
	Assigned    IDList `json:"assigned"`
	Tags        IDList `json:"tags"`
	CreatedBy   ID     `json:"created_by"`
}

// Column is an ordered list of cards sharing a status category.
type Column struct {
	ListID ID     `json:"list_id"`
	Title  string `json:"title"`
	Status Status `json:"status"`
	IsDone *bool  `json:"is_done,omitempty"`
	Cards  []Card `json:"cards"`
}

// Done reports whether the column counts towards board progress.
func (c Column) Done() bool {
	if c.IsDone != nil {
		return *c.IsDone
	}
	return c.Status == StatusDone
}

// Tag is a label that can be attached to cards.
type Tag struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// User is a possible assignee.
type User struct {
	ID       ID     `json:"id"`
	Username string `json:"username"`
}

// Board is the typed view-model of one board, shared by all its viewers.
type Board struct {
	ID      ID       `json:"id"`
	Title   string   `json:"title"`
	Columns []Column `json:"columns"`
	Tags    []Tag    `json:"tags"`
	Users   []User   `json:"users"`
}

// Normalize fills derived column fields the backend may omit.
func (b *Board) Normalize() {
	for i := range b.Columns {
		col := &b.Columns[i]
		if !col.Status.Valid() {
			col.Status = StatusForTitle(col.Title)
		}
		if col.Cards == nil {
			col.Cards = []Card{}
		}
	}
}

// Clone returns a deep copy so callers can mutate it without sharing slices.
func (b *Board) Clone() *Board {
	out := *b
	out.Columns = make([]Column, len(b.Columns))
	for i, col := range b.Columns {
		c := col
		if col.IsDone != nil {
			done := *col.IsDone
			c.IsDone = &done
		}
		c.Cards = make([]Card, len(col.Cards))
		for j, card := range col.Cards {
			cc := card
			cc.Assigned = append(IDList(nil), card.Assigned...)
			cc.Tags = append(IDList(nil), card.Tags...)
			c.Cards[j] = cc
		}
		out.Columns[i] = c
	}
	out.Tags = append([]Tag(nil), b.Tags...)
	out.Users = append([]User(nil), b.Users...)
	return &out
}

// Column returns the column with the given list id.
func (b *Board) Column(listID string) (*Column, bool) {
	for i := range b.Columns {
		if string(b.Columns[i].ListID) == listID {
			return &b.Columns[i], true
		}
	}
	return nil, false
}

// FindCard locates a card by task id.
func (b *Board) FindCard(taskID string) (card *Card, col *Column, index int, ok bool) {
	for i := range b.Columns {
		c := &b.Columns[i]
		for j := range c.Cards {
			if string(c.Cards[j].ID) == taskID {
				return &c.Cards[j], c, j, true
			}
		}
	}
	return nil, nil, -1, false
}

// CardCount returns the number of cards across all columns.
func (b *Board) CardCount() int {
	n := 0
	for _, col := range b.Columns {
		n += len(col.Cards)
	}
	return n
}
