package movements

import (
	"context"

	"github.com/benkovy/fyp-api/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository encapsulates movement persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a movement repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a movement row.
func (r *Repository) Create(ctx context.Context, movement *models.Movement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// FindByID loads a movement by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Movement, error) {
	var movement models.Movement
	if err := r.db.WithContext(ctx).First(&movement, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &movement, nil
}

// FindByIDs loads movements for the given primary keys.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Movement, error) {
	if len(ids) == 0 {
		return []models.Movement{}, nil
	}
	var rows []models.Movement
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ForWorkout returns the movements linked to a workout.
func (r *Repository) ForWorkout(ctx context.Context, workoutID uuid.UUID) ([]models.Movement, error) {
	var rows []models.Movement
	err := r.db.WithContext(ctx).
		Table("movements m").
		Select("m.*").
		Joins("JOIN workout_movements wm ON wm.movement_id = m.id").
		Where("wm.workout_id = ?", workoutID).
		Order("m.created_at ASC").
		Order("m.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Update persists the given movement fields.
func (r *Repository) Update(ctx context.Context, movement *models.Movement) error {
	return r.db.WithContext(ctx).Save(movement).Error
}

// Delete removes a movement and its tag links.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("movement_id = ?", id).
		Delete(&models.MovementMovementTag{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).
		Where("movement_id = ?", id).
		Delete(&models.WorkoutMovement{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&models.Movement{}, "id = ?", id).Error
}

// List returns movements ordered by creation time.
func (r *Repository) List(ctx context.Context, limit int) ([]models.Movement, error) {
	var rows []models.Movement
	query := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
