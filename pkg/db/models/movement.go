package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Movement is a single exercise definition.
type Movement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Reps        int       `gorm:"column:reps;not null"`
	Sets        int       `gorm:"column:sets;not null"`
	RestTime    int       `gorm:"column:rest_time;not null"`
	Description *string   `gorm:"column:description"`
	Image       bool      `gorm:"column:image;not null;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (m *Movement) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
