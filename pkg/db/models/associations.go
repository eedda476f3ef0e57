package models

import "github.com/google/uuid"

// Join records for the many-to-many relationships. They are explicit models
// (rather than GORM's implicit many2many tables) so repositories can address
// the rows directly during cascade deletes.

// WorkoutMovement links a workout to one of its movements.
type WorkoutMovement struct {
	WorkoutID  uuid.UUID `gorm:"column:workout_id;type:uuid;primaryKey"`
	MovementID uuid.UUID `gorm:"column:movement_id;type:uuid;primaryKey"`
}

func (WorkoutMovement) TableName() string { return "workout_movements" }

// WorkoutWorkoutTag links a workout to a tag.
type WorkoutWorkoutTag struct {
	WorkoutID uuid.UUID `gorm:"column:workout_id;type:uuid;primaryKey"`
	TagID     uuid.UUID `gorm:"column:tag_id;type:uuid;primaryKey"`
}

func (WorkoutWorkoutTag) TableName() string { return "workout_workout_tags" }

// MovementMovementTag links a movement to a tag.
type MovementMovementTag struct {
	MovementID uuid.UUID `gorm:"column:movement_id;type:uuid;primaryKey"`
	TagID      uuid.UUID `gorm:"column:tag_id;type:uuid;primaryKey"`
}

func (MovementMovementTag) TableName() string { return "movement_movement_tags" }

// UserWorkout records workout membership (creator and participants alike).
type UserWorkout struct {
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	WorkoutID uuid.UUID `gorm:"column:workout_id;type:uuid;primaryKey"`
}

func (UserWorkout) TableName() string { return "user_workouts" }

// RoutineDayWorkoutTag links a tag-initialized routine day to its tags.
type RoutineDayWorkoutTag struct {
	DayID uuid.UUID `gorm:"column:day_id;type:uuid;primaryKey"`
	TagID uuid.UUID `gorm:"column:tag_id;type:uuid;primaryKey"`
}

func (RoutineDayWorkoutTag) TableName() string { return "routine_day_workout_tags" }
