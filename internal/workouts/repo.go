package workouts

import (
	"context"
	"strings"

	"github.com/benkovy/fyp-api/pkg/db/models"
	"github.com/benkovy/fyp-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository encapsulates workout persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a workout repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a workout row.
func (r *Repository) Create(ctx context.Context, workout *models.Workout) error {
	return r.db.WithContext(ctx).Create(workout).Error
}

// FindByID loads a workout by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	var workout models.Workout
	if err := r.db.WithContext(ctx).First(&workout, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &workout, nil
}

// AttachMovement links a movement to a workout, ignoring duplicates.
func (r *Repository) AttachMovement(ctx context.Context, workoutID, movementID uuid.UUID) error {
	if workoutID == uuid.Nil || movementID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	link := models.WorkoutMovement{WorkoutID: workoutID, MovementID: movementID}
	err := r.db.WithContext(ctx).Create(&link).Error
	if err != nil && isDuplicateLink(err) {
		return nil
	}
	return err
}

// Update persists the full workout row.
func (r *Repository) Update(ctx context.Context, workout *models.Workout) error {
	return r.db.WithContext(ctx).Save(workout).Error
}

// Delete removes a workout and its association rows.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("workout_id = ?", id).
		Delete(&models.WorkoutMovement{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).
		Where("workout_id = ?", id).
		Delete(&models.WorkoutWorkoutTag{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).
		Where("workout_id = ?", id).
		Delete(&models.UserWorkout{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&models.Workout{}, "id = ?", id).Error
}

// List returns a page of workouts, newest first, using cursor pagination.
func (r *Repository) List(ctx context.Context, cursor string, limit int) ([]models.Workout, string, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	limitWithBuffer := pagination.LimitWithBuffer(limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).Model(&models.Workout{})
	if decodedCursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}
	query = query.Order("created_at DESC").Order("id DESC").Limit(limitWithBuffer)

	var rows []models.Workout
	if err := query.Find(&rows).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(rows) > normalizedLimit {
		rows = rows[:normalizedLimit]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return rows, nextCursor, nil
}

// FindByIDs loads workouts for the given primary keys.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Workout, error) {
	if len(ids) == 0 {
		return []models.Workout{}, nil
	}
	var rows []models.Workout
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func isDuplicateLink(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
