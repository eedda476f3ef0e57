package tags

import (
	"context"
	"errors"

	pkgdb "github.com/benkovy/fyp-api/pkg/db"
	"github.com/benkovy/fyp-api/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository encapsulates tag persistence for workouts and movements.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a tag repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindWorkoutTagByName returns the workout tag with the given normalized name.
func (r *Repository) FindWorkoutTagByName(ctx context.Context, name string) (*models.WorkoutTag, error) {
	var tag models.WorkoutTag
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// CreateWorkoutTag inserts a new workout tag row.
func (r *Repository) CreateWorkoutTag(ctx context.Context, tag *models.WorkoutTag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

// FindMovementTagByName returns the movement tag with the given normalized name.
func (r *Repository) FindMovementTagByName(ctx context.Context, name string) (*models.MovementTag, error) {
	var tag models.MovementTag
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// CreateMovementTag inserts a new movement tag row.
func (r *Repository) CreateMovementTag(ctx context.Context, tag *models.MovementTag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

// NamesForWorkout returns the tag names attached to a workout.
func (r *Repository) NamesForWorkout(ctx context.Context, workoutID uuid.UUID) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Table("workout_tags t").
		Select("t.name").
		Joins("JOIN workout_workout_tags wwt ON wwt.tag_id = t.id").
		Where("wwt.workout_id = ?", workoutID).
		Order("t.name ASC").
		Scan(&names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// NamesForMovement returns the tag names attached to a movement.
func (r *Repository) NamesForMovement(ctx context.Context, movementID uuid.UUID) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Table("movement_tags t").
		Select("t.name").
		Joins("JOIN movement_movement_tags mmt ON mmt.tag_id = t.id").
		Where("mmt.movement_id = ?", movementID).
		Order("t.name ASC").
		Scan(&names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// AttachToWorkout links a tag to a workout, ignoring duplicates.
func (r *Repository) AttachToWorkout(ctx context.Context, workoutID, tagID uuid.UUID) error {
	if workoutID == uuid.Nil || tagID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	link := models.WorkoutWorkoutTag{WorkoutID: workoutID, TagID: tagID}
	err := r.db.WithContext(ctx).Create(&link).Error
	if err != nil && isDuplicateLink(err) {
		return nil
	}
	return err
}

// AttachToMovement links a tag to a movement, ignoring duplicates.
func (r *Repository) AttachToMovement(ctx context.Context, movementID, tagID uuid.UUID) error {
	if movementID == uuid.Nil || tagID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	link := models.MovementMovementTag{MovementID: movementID, TagID: tagID}
	err := r.db.WithContext(ctx).Create(&link).Error
	if err != nil && isDuplicateLink(err) {
		return nil
	}
	return err
}

// DetachAllFromWorkout removes every tag link for a workout. The tag rows
// themselves are never deleted.
func (r *Repository) DetachAllFromWorkout(ctx context.Context, workoutID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("workout_id = ?", workoutID).
		Delete(&models.WorkoutWorkoutTag{}).Error
}

// WorkoutsByTagNames returns workouts carrying at least one of the given tag
// names, oldest first, capped at limit.
func (r *Repository) WorkoutsByTagNames(ctx context.Context, names []string, limit int) ([]models.Workout, error) {
	if len(names) == 0 {
		return []models.Workout{}, nil
	}

	var workouts []models.Workout
	query := r.db.WithContext(ctx).
		Table("workouts w").
		Select("DISTINCT w.*").
		Joins("JOIN workout_workout_tags wwt ON wwt.workout_id = w.id").
		Joins("JOIN workout_tags t ON t.id = wwt.tag_id").
		Where("t.name IN ?", names).
		Order("w.created_at ASC").
		Order("w.id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(&workouts).Error; err != nil {
		return nil, err
	}
	return workouts, nil
}

func isDuplicateLink(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || pkgdb.IsUniqueViolation(err, "")
}
