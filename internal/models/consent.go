package models

import (
	"time"

	"gorm.io/gorm"
)

// ConsentChoice is the viewer's answer to the cookie banner
type ConsentChoice string

const (
	ConsentAll       ConsentChoice = "all"
	ConsentEssential ConsentChoice = "essential"
	ConsentReject    ConsentChoice = "reject"
)

// Valid reports whether c is a choice the banner offers.
func (c ConsentChoice) Valid() bool {
	switch c {
	case ConsentAll, ConsentEssential, ConsentReject:
		return true
	}
	return false
}

// ConsentRecord is the value remembered for a consent choice.
type ConsentRecord struct {
	Choice ConsentChoice `json:"choice"`
	At     time.Time     `json:"at"`
}

// LocalEntry is a per-viewer key/value pair, the server-side counterpart of
// the browser's local storage.
type LocalEntry struct {
	ViewerID string `gorm:"column:viewer_id;not null;uniqueIndex:idx_local_entry_viewer_key"`
	Key      string `gorm:"column:entry_key;not null;uniqueIndex:idx_local_entry_viewer_key"`
	Value    string `gorm:"type:text"`
	gorm.Model
}

// TableName specifies the table name for LocalEntry Model
func (LocalEntry) TableName() string {
	return "local_entries"
}
