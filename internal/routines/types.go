package routines

import (
	"time"

	"github.com/benkovy/fyp-api/internal/workouts"
	"github.com/google/uuid"
)

// DayState is the classification of a routine day. The persisted row keeps
// two nullable columns; this union keeps "tagged" and "fixed" mutually
// exclusive in the domain layer. Precedence when both columns are somehow
// set: the workout reference wins.
type DayState interface {
	isDayState()
}

// EmptyDay is a slot with nothing scheduled.
type EmptyDay struct{}

// TaggedDay is a slot initialized with tag names but no concrete workout.
type TaggedDay struct {
	Tags []string
}

// FixedDay is a slot pinned to a specific workout.
type FixedDay struct {
	WorkoutID uuid.UUID
}

func (EmptyDay) isDayState()  {}
func (TaggedDay) isDayState() {}
func (FixedDay) isDayState()  {}

// DayView is the composed projection of one routine day. Finalized holds the
// concrete workout content for the day: a single assembled workout for a
// fixed day, up to the configured match limit for a tagged day, and is
// omitted entirely for an empty day.
type DayView struct {
	ID          uuid.UUID             `json:"id"`
	Day         int                   `json:"day"`
	Empty       bool                  `json:"empty"`
	Initialized []string              `json:"initialized,omitempty"`
	WorkoutID   *uuid.UUID            `json:"workout_id,omitempty"`
	Finalized   []workouts.WorkoutDTO `json:"finalized,omitempty"`
}

// RoutineView is the composed projection of a routine and all its days.
type RoutineView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Days      []DayView `json:"days"`
}

// DayRowDTO is the raw persisted shape of a day, without composition.
type DayRowDTO struct {
	ID          uuid.UUID  `json:"id"`
	RoutineID   uuid.UUID  `json:"routine_id"`
	Day         int        `json:"day"`
	Empty       bool       `json:"empty"`
	Initialized *string    `json:"initialized"`
	WorkoutID   *uuid.UUID `json:"workout_id"`
}

// DaySpec is one day slot in a submitted routine. Tags and WorkoutID are
// mutually exclusive; setting both is rejected before any write.
type DaySpec struct {
	Day       int        `json:"day"`
	Empty     bool       `json:"empty"`
	Tags      []string   `json:"tags,omitempty"`
	WorkoutID *uuid.UUID `json:"workout_id,omitempty"`
}

// SubmitRoutineInput is the replacement-protocol payload: the new routine
// that supersedes whatever the user currently has.
type SubmitRoutineInput struct {
	Name   string
	UserID uuid.UUID
	Days   []DaySpec
}
