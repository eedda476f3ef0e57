package routines

import (
	"context"
	"errors"

	"github.com/benkovy/fyp-api/internal/repo"
	pkgdb "github.com/benkovy/fyp-api/pkg/db"
	"github.com/benkovy/fyp-api/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository encapsulates routine and routine-day persistence.
type Repository struct {
	repo.Base
}

// NewRepository constructs a routine repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithDB returns a repository bound to a different handle, typically an open
// transaction. The receiver is left untouched.
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	return &Repository{Base: r.WithConn(db)}
}

// FindByUser returns the user's current routine.
func (r *Repository) FindByUser(ctx context.Context, userID uuid.UUID) (*models.Routine, error) {
	var routine models.Routine
	err := r.DB(ctx).Where("user_id = ?", userID).First(&routine).Error
	if err != nil {
		return nil, err
	}
	return &routine, nil
}

// FindByID returns a routine by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Routine, error) {
	var routine models.Routine
	err := r.DB(ctx).Where("id = ?", id).First(&routine).Error
	if err != nil {
		return nil, err
	}
	return &routine, nil
}

// Create inserts a routine row.
func (r *Repository) Create(ctx context.Context, routine *models.Routine) error {
	return r.DB(ctx).Create(routine).Error
}

// CreateDay inserts a routine day row.
func (r *Repository) CreateDay(ctx context.Context, day *models.RoutineDay) error {
	return r.DB(ctx).Create(day).Error
}

// Days returns a routine's day rows ordered by day number.
func (r *Repository) Days(ctx context.Context, routineID uuid.UUID) ([]models.RoutineDay, error) {
	var days []models.RoutineDay
	err := r.DB(ctx).
		Where("routine_id = ?", routineID).
		Order("day ASC").
		Find(&days).Error
	if err != nil {
		return nil, err
	}
	return days, nil
}

// AttachDayTag links a tag to a day, ignoring duplicates.
func (r *Repository) AttachDayTag(ctx context.Context, dayID, tagID uuid.UUID) error {
	if dayID == uuid.Nil || tagID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	link := models.RoutineDayWorkoutTag{DayID: dayID, TagID: tagID}
	err := r.DB(ctx).Create(&link).Error
	if err != nil && isDuplicateLink(err) {
		return nil
	}
	return err
}

// DayTagNames returns the tag names attached to a day, sorted by name.
func (r *Repository) DayTagNames(ctx context.Context, dayID uuid.UUID) ([]string, error) {
	var names []string
	err := r.DB(ctx).
		Table("workout_tags t").
		Select("t.name").
		Joins("JOIN routine_day_workout_tags rdt ON rdt.tag_id = t.id").
		Where("rdt.day_id = ?", dayID).
		Order("t.name ASC").
		Scan(&names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// DeleteCascade removes a routine together with its days and day-tag links.
// Callers that need atomicity run it on a transaction handle via WithDB.
func (r *Repository) DeleteCascade(ctx context.Context, routineID uuid.UUID) error {
	db := r.DB(ctx)

	dayIDs := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.RoutineDay{}).
		Select("id").
		Where("routine_id = ?", routineID)
	if err := db.Where("day_id IN (?)", dayIDs).Delete(&models.RoutineDayWorkoutTag{}).Error; err != nil {
		return err
	}
	if err := db.Where("routine_id = ?", routineID).Delete(&models.RoutineDay{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", routineID).Delete(&models.Routine{}).Error
}

func isDuplicateLink(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || pkgdb.IsUniqueViolation(err, "")
}
