// Package storage is the local key-value snapshot layer the state stores sit
// on. Each key holds an entire collection serialized as JSON and every
// mutation rewrites the value wholesale, so the last writer wins. That
// mirrors the single-user persistence contract this app was built around;
// transactions only make each individual operation atomic, they do not add
// cross-session merging.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Persisted keys. Shapes under these keys are the durable schema.
const (
	KeyUsers       = "users"       // []models.User, passwords included
	KeySession     = "user"        // models.SessionUser, password stripped
	KeyCourses     = "courses"     // []models.Course
	KeyEnrollments = "enrollments" // []models.Enrollment
)

// ErrNoSnapshot is returned by Load when the key has never been written.
var ErrNoSnapshot = errors.New("storage: no snapshot for key")

// Snapshot is one persisted collection.
type Snapshot struct {
	Key       string         `gorm:"primaryKey;size:64"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the snapshot table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Snapshot{})
}

// Load unmarshals the snapshot for key into dest. dest is left untouched
// when the key is absent.
func (s *Store) Load(key string, dest interface{}) error {
	var snap Snapshot
	if err := s.db.First(&snap, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoSnapshot
		}
		return fmt.Errorf("storage: load %q: %w", key, err)
	}
	if err := json.Unmarshal(snap.Value, dest); err != nil {
		return fmt.Errorf("storage: decode %q: %w", key, err)
	}
	return nil
}

// Save replaces the snapshot for key with value.
func (s *Store) Save(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage: encode %q: %w", key, err)
	}

	snap := Snapshot{Key: key, Value: datatypes.JSON(raw), UpdatedAt: time.Now().UTC()}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&snap).Error
	if err != nil {
		return fmt.Errorf("storage: save %q: %w", key, err)
	}
	return nil
}

// Delete removes the snapshot for key. Deleting an absent key is not an
// error.
func (s *Store) Delete(key string) error {
	if err := s.db.Delete(&Snapshot{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("storage: delete %q: %w", key, err)
	}
	return nil
}

// Update runs fn inside a transaction so multi-key rewrites commit or roll
// back together. Callers never observe a half-applied cascade.
func (s *Store) Update(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}
