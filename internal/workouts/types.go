package workouts

import (
	"time"

	"github.com/benkovy/fyp-api/internal/movements"
	"github.com/google/uuid"
)

// WorkoutDTO is the fully assembled workout view: the workout row plus its
// movements, tag names, and the creator's display name.
type WorkoutDTO struct {
	ID          uuid.UUID                 `json:"id"`
	Name        string                    `json:"name"`
	CreatorID   uuid.UUID                 `json:"creator_id"`
	CreatorName string                    `json:"creator_name"`
	Time        int                       `json:"time"`
	Description *string                   `json:"description,omitempty"`
	Image       bool                      `json:"image"`
	Rating      int                       `json:"rating"`
	Movements   []movements.MovementDTO   `json:"movements"`
	Tags        []string                  `json:"tags"`
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

// CreateWorkoutInput carries the fields accepted when creating a workout.
type CreateWorkoutInput struct {
	Name        string
	CreatorID   uuid.UUID
	Time        int
	Description *string
	Image       bool
	Rating      int
	MovementIDs []uuid.UUID
	Movements   []movements.CreateMovementInput
	Tags        []string
}

// UpdateWorkoutInput carries partial workout updates. A non-nil Tags slice
// replaces the workout's tag set.
type UpdateWorkoutInput struct {
	Name        *string
	Time        *int
	Description *string
	Image       *bool
	Rating      *int
	Tags        *[]string
}

// WorkoutsPageDTO returns a cursor-paginated workout list.
type WorkoutsPageDTO struct {
	Items      []WorkoutDTO `json:"items"`
	NextCursor string       `json:"next_cursor,omitempty"`
}
