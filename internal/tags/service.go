package tags

import (
	"context"
	"errors"
	"strings"

	pkgdb "github.com/benkovy/fyp-api/pkg/db"
	"github.com/benkovy/fyp-api/pkg/db/models"
	pkgerrors "github.com/benkovy/fyp-api/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceParams groups dependencies for the tag resolver.
type ServiceParams struct {
	TagRepo *Repository
}

// Service resolves client-supplied tag names to deduplicated tag rows and
// answers tag-based workout lookups.
type Service interface {
	ResolveWorkoutTags(ctx context.Context, names []string) ([]models.WorkoutTag, error)
	ResolveMovementTags(ctx context.Context, names []string) ([]models.MovementTag, error)
	FindWorkouts(ctx context.Context, names []string, limit int) ([]models.Workout, error)
	WorkoutTagNames(ctx context.Context, workoutID uuid.UUID) ([]string, error)
}

type service struct {
	tagRepo *Repository
}

// NewService builds the tag resolver.
func NewService(params ServiceParams) (Service, error) {
	if params.TagRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tag repo is required")
	}
	return &service{tagRepo: params.TagRepo}, nil
}

// Normalize maps a client-supplied tag name onto its canonical stored form.
// Two names that normalize identically refer to the same tag.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeAll normalizes every name, dropping empties and duplicates while
// preserving first-seen order.
func NormalizeAll(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		normalized := Normalize(name)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}

// ResolveWorkoutTags finds or creates a workout tag per distinct normalized
// name. Resolving the same names twice yields the same rows.
func (s *service) ResolveWorkoutTags(ctx context.Context, names []string) ([]models.WorkoutTag, error) {
	normalized := NormalizeAll(names)
	resolved := make([]models.WorkoutTag, 0, len(normalized))
	for _, name := range normalized {
		tag, err := s.resolveWorkoutTag(ctx, name)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, *tag)
	}
	return resolved, nil
}

func (s *service) resolveWorkoutTag(ctx context.Context, name string) (*models.WorkoutTag, error) {
	tag, err := s.tagRepo.FindWorkoutTagByName(ctx, name)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find tag")
	}

	created := &models.WorkoutTag{Name: name}
	if createErr := s.tagRepo.CreateWorkoutTag(ctx, created); createErr != nil {
		// A concurrent resolver may have inserted the same name first; the
		// unique index makes that a lost race, not an error.
		if pkgdb.IsUniqueViolation(createErr, "") {
			return s.tagRepo.FindWorkoutTagByName(ctx, name)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, createErr, "create tag")
	}
	return created, nil
}

// ResolveMovementTags is the movement-side counterpart of ResolveWorkoutTags.
func (s *service) ResolveMovementTags(ctx context.Context, names []string) ([]models.MovementTag, error) {
	normalized := NormalizeAll(names)
	resolved := make([]models.MovementTag, 0, len(normalized))
	for _, name := range normalized {
		tag, err := s.resolveMovementTag(ctx, name)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, *tag)
	}
	return resolved, nil
}

func (s *service) resolveMovementTag(ctx context.Context, name string) (*models.MovementTag, error) {
	tag, err := s.tagRepo.FindMovementTagByName(ctx, name)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find tag")
	}

	created := &models.MovementTag{Name: name}
	if createErr := s.tagRepo.CreateMovementTag(ctx, created); createErr != nil {
		if pkgdb.IsUniqueViolation(createErr, "") {
			return s.tagRepo.FindMovementTagByName(ctx, name)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, createErr, "create tag")
	}
	return created, nil
}

// FindWorkouts returns workouts matching ANY of the supplied tag names,
// oldest first. Names no workout carries simply contribute nothing.
func (s *service) FindWorkouts(ctx context.Context, names []string, limit int) ([]models.Workout, error) {
	normalized := NormalizeAll(names)
	if len(normalized) == 0 {
		return []models.Workout{}, nil
	}
	workouts, err := s.tagRepo.WorkoutsByTagNames(ctx, normalized, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find workouts by tags")
	}
	return workouts, nil
}

// WorkoutTagNames lists the tag names attached to a workout.
func (s *service) WorkoutTagNames(ctx context.Context, workoutID uuid.UUID) ([]string, error) {
	if workoutID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "workout id is required")
	}
	names, err := s.tagRepo.NamesForWorkout(ctx, workoutID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load workout tags")
	}
	return names, nil
}
