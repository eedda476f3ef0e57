package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkoutTag is a deduplicated label attached to workouts and routine days.
// Names are stored normalized (lower-case, trimmed); the unique index backs
// the resolver's find-or-create.
type WorkoutTag struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name;not null;uniqueIndex"`
}

func (t *WorkoutTag) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// MovementTag is the movement-side label record.
type MovementTag struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name;not null;uniqueIndex"`
}

func (t *MovementTag) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
