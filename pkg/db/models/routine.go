package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Routine is a user's current weekly plan. A user owns at most one live
// routine; submitting a new one replaces the old routine and its days.
type Routine struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (r *Routine) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RoutineDay is one slot in a routine. The persisted shape is flat; the
// domain layer exposes it through the DayState variant so "tagged" and
// "fixed" stay mutually exclusive.
type RoutineDay struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RoutineID   uuid.UUID  `gorm:"column:routine_id;type:uuid;not null;index"`
	Day         int        `gorm:"column:day;not null"`
	Empty       bool       `gorm:"column:empty;not null;default:false"`
	Initialized *string    `gorm:"column:initialized"`
	WorkoutID   *uuid.UUID `gorm:"column:workout_id;type:uuid"`
}

func (d *RoutineDay) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
