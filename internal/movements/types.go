package movements

import (
	"time"

	"github.com/google/uuid"
)

// MovementDTO is the public projection of a movement with its tag names.
type MovementDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Reps        int       `json:"reps"`
	Sets        int       `json:"sets"`
	RestTime    int       `json:"rest_time"`
	Description *string   `json:"description,omitempty"`
	Image       bool      `json:"image"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateMovementInput carries the fields accepted when creating a movement.
type CreateMovementInput struct {
	Name        string
	Reps        int
	Sets        int
	RestTime    int
	Description *string
	Image       bool
	Tags        []string
}

// UpdateMovementInput carries the mutable movement fields.
type UpdateMovementInput struct {
	Name        *string
	Reps        *int
	Sets        *int
	RestTime    *int
	Description *string
	Image       *bool
}
