package database

import (
	"errors"

	"board-view-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LocalStore keeps small per-viewer values, the way a browser's local
// storage would, keyed by the viewer id cookie.
type LocalStore struct {
	db *gorm.DB
}

// NewLocalStore wraps db. A nil db falls back to the package connection.
func NewLocalStore(db *gorm.DB) *LocalStore {
	if db == nil {
		db = GetDB()
	}
	return &LocalStore{db: db}
}

// Get returns the stored value and whether it exists.
func (s *LocalStore) Get(viewerID, key string) (string, bool, error) {
	var e models.LocalEntry
	err := s.db.Where("viewer_id = ? AND entry_key = ?", viewerID, key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

// Set stores value, overwriting any previous one.
func (s *LocalStore) Set(viewerID, key, value string) error {
	e := models.LocalEntry{ViewerID: viewerID, Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "viewer_id"}, {Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}
