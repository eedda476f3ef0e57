package users

import (
	"context"
	"strings"

	"github.com/benkovy/fyp-api/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository encapsulates user persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a user repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a user row.
func (r *Repository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID loads a user by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail loads a user by normalized email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", NormalizeEmail(email)).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailExists reports whether a user already holds the given email.
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", NormalizeEmail(email)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update persists the given user fields.
func (r *Repository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// AddWorkout records workout membership for a user, ignoring duplicates.
func (r *Repository) AddWorkout(ctx context.Context, userID, workoutID uuid.UUID) error {
	if userID == uuid.Nil || workoutID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	link := models.UserWorkout{UserID: userID, WorkoutID: workoutID}
	err := r.db.WithContext(ctx).Create(&link).Error
	if err != nil && isDuplicateLink(err) {
		return nil
	}
	return err
}

// WorkoutIDs returns the workout IDs a user is linked to.
func (r *Repository) WorkoutIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.UserWorkout{}).
		Select("workout_id").
		Where("user_id = ?", userID).
		Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// NormalizeEmail maps an email onto its canonical stored form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isDuplicateLink(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
