package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Workout is a named, timed collection of movements with a creator reference.
type Workout struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	CreatorID   uuid.UUID `gorm:"column:creator_id;type:uuid;not null;index"`
	Time        int       `gorm:"column:time;not null"`
	Description *string   `gorm:"column:description"`
	Image       bool      `gorm:"column:image;not null;default:false"`
	Rating      int       `gorm:"column:rating;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (w *Workout) BeforeCreate(*gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
