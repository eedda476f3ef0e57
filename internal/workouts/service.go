package workouts

import (
	"context"
	"errors"
	"strings"

	"github.com/benkovy/fyp-api/internal/movements"
	"github.com/benkovy/fyp-api/internal/tags"
	"github.com/benkovy/fyp-api/internal/users"
	"github.com/benkovy/fyp-api/pkg/db/models"
	pkgerrors "github.com/benkovy/fyp-api/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceParams groups dependencies for the workout service.
type ServiceParams struct {
	WorkoutRepo  *Repository
	MovementRepo *movements.Repository
	MovementSvc  movements.Service
	UserRepo     *users.Repository
	TagRepo      *tags.Repository
	TagResolver  tags.Service
}

// Service assembles workout views and manages workout lifecycle.
type Service interface {
	Create(ctx context.Context, input CreateWorkoutInput) (WorkoutDTO, error)
	Get(ctx context.Context, id uuid.UUID) (WorkoutDTO, error)
	List(ctx context.Context, cursor string, limit int) (WorkoutsPageDTO, error)
	FindByTags(ctx context.Context, names []string, limit int) ([]WorkoutDTO, error)
	ForUser(ctx context.Context, userID uuid.UUID) ([]WorkoutDTO, error)
	Update(ctx context.Context, id, requesterID uuid.UUID, input UpdateWorkoutInput) (WorkoutDTO, error)
	Delete(ctx context.Context, id, requesterID uuid.UUID) error
}

type service struct {
	workoutRepo  *Repository
	movementRepo *movements.Repository
	movementSvc  movements.Service
	userRepo     *users.Repository
	tagRepo      *tags.Repository
	tagResolver  tags.Service
}

// NewService builds a workout service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.WorkoutRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "workout repo is required")
	}
	if params.MovementRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "movement repo is required")
	}
	if params.MovementSvc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "movement service is required")
	}
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	if params.TagRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tag repo is required")
	}
	if params.TagResolver == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tag resolver is required")
	}
	return &service{
		workoutRepo:  params.WorkoutRepo,
		movementRepo: params.MovementRepo,
		movementSvc:  params.MovementSvc,
		userRepo:     params.UserRepo,
		tagRepo:      params.TagRepo,
		tagResolver:  params.TagResolver,
	}, nil
}

// Create validates and persists a workout with its movements and tags, and
// records the creator's membership.
func (s *service) Create(ctx context.Context, input CreateWorkoutInput) (WorkoutDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return WorkoutDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "workout name is required")
	}
	if input.CreatorID == uuid.Nil {
		return WorkoutDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "creator id is required")
	}
	if input.Time < 0 {
		return WorkoutDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "workout time must not be negative")
	}

	if _, err := s.userRepo.FindByID(ctx, input.CreatorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WorkoutDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "creator not found")
		}
		return WorkoutDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load creator")
	}

	existing, err := s.movementRepo.FindByIDs(ctx, input.MovementIDs)
	if err != nil {
		return WorkoutDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load movements")
	}
	if len(existing) != len(input.MovementIDs) {
		return WorkoutDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "movement not found")
	}

	workout := &models.Workout{
		Name:        name,
		CreatorID:   input.CreatorID,
		Time:        input.Time,
		Description: input.Description,
		Image:       input.Image,
		Rating:      input.Rating,
	}
	if err := s.workoutRepo.Create(ctx, workout); err != nil {
		return WorkoutDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create workout")
	}

	for _, movementID := range input.MovementIDs {
		if err := s.workoutRepo.AttachMovement(ctx, workout.ID, movementID); err != nil {
			return WorkoutDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attach movement")
		}
	}
	for _, movementInput := range input.Movements {
		created, err := s.movementSvc.Create(ctx, movementInput)
		if err != nil {
			return WorkoutDTO{}, err
		}
		if err := s.workoutRepo.AttachMovement(ctx, workout.ID, created.ID); err != nil {
			return WorkoutDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attach movement")
		}
	}

	resolved, err := s.tagResolver.ResolveWorkoutTags(ctx, input.Tags)
	if err != nil {
		return WorkoutDTO{}, err
	}
	for _, tag := range resolved {
		if err := s.tagRepo.AttachToWorkout(ctx, workout.ID, tag.ID); err != nil {
			return WorkoutDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attach workout tag")
		}
	}

	if err := s.userRepo.AddWorkout(ctx, input.CreatorID, workout.ID); err != nil {
		return WorkoutDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record membership")
	}

	return s.assemble(ctx, workout)
}

// Get returns the assembled workout view.
func (s *service) Get(ctx context.Context, id uuid.UUID) (WorkoutDTO, error) {
	if id == uuid.Nil {
		return WorkoutDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "workout id is required")
	}
	workout, err := s.workoutRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WorkoutDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "workout not found")
		}
		return WorkoutDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load workout")
	}
	return s.assemble(ctx, workout)
}

// List returns a page of assembled workouts, newest first.
func (s *service) List(ctx context.Context, cursor string, limit int) (WorkoutsPageDTO, error) {
	rows, nextCursor, err := s.workoutRepo.List(ctx, cursor, limit)
	if err != nil {
		return WorkoutsPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list workouts")
	}
	items := make([]WorkoutDTO, 0, len(rows))
	for i := range rows {
		dto, err := s.assemble(ctx, &rows[i])
		if err != nil {
			return WorkoutsPageDTO{}, err
		}
		items = append(items, dto)
	}
	return WorkoutsPageDTO{Items: items, NextCursor: nextCursor}, nil
}

// FindByTags returns assembled workouts matching any of the tag names.
func (s *service) FindByTags(ctx context.Context, names []string, limit int) ([]WorkoutDTO, error) {
	rows, err := s.tagResolver.FindWorkouts(ctx, names, limit)
	if err != nil {
		return nil, err
	}
	items := make([]WorkoutDTO, 0, len(rows))
	for i := range rows {
		dto, err := s.assemble(ctx, &rows[i])
		if err != nil {
			return nil, err
		}
		items = append(items, dto)
	}
	return items, nil
}

// ForUser returns the assembled workouts the user is a member of.
func (s *service) ForUser(ctx context.Context, userID uuid.UUID) ([]WorkoutDTO, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	ids, err := s.userRepo.WorkoutIDs(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load workout membership")
	}
	rows, err := s.workoutRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load workouts")
	}
	items := make([]WorkoutDTO, 0, len(rows))
	for i := range rows {
		dto, err := s.assemble(ctx, &rows[i])
		if err != nil {
			return nil, err
		}
		items = append(items, dto)
	}
	return items, nil
}

// Update applies partial changes to a workout. Only the creator may edit it.
// A non-nil Tags slice replaces the tag set wholesale.
func (s *service) Update(ctx context.Context, id, requesterID uuid.UUID, input UpdateWorkoutInput) (WorkoutDTO, error) {
	workout, err := s.workoutRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WorkoutDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "workout not found")
		}
		return WorkoutDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load workout")
	}
	if workout.CreatorID != requesterID {
		return WorkoutDTO{}, pkgerrors.New(pkgerrors.CodeForbidden, "only the creator can edit a workout")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return WorkoutDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "workout name must not be blank")
		}
		workout.Name = name
	}
	if input.Time != nil {
		if *input.Time < 0 {
			return WorkoutDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "workout time must not be negative")
		}
		workout.Time = *input.Time
	}
	if input.Description != nil {
		workout.Description = input.Description
	}
	if input.Image != nil {
		workout.Image = *input.Image
	}
	if input.Rating != nil {
		workout.Rating = *input.Rating
	}

	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		return WorkoutDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update workout")
	}

	if input.Tags != nil {
		resolved, err := s.tagResolver.ResolveWorkoutTags(ctx, *input.Tags)
		if err != nil {
			return WorkoutDTO{}, err
		}
		if err := s.tagRepo.DetachAllFromWorkout(ctx, workout.ID); err != nil {
			return WorkoutDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "detach workout tags")
		}
		for _, tag := range resolved {
			if err := s.tagRepo.AttachToWorkout(ctx, workout.ID, tag.ID); err != nil {
				return WorkoutDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attach workout tag")
			}
		}
	}

	return s.assemble(ctx, workout)
}

// Delete removes a workout. Only the creator may delete it.
func (s *service) Delete(ctx context.Context, id, requesterID uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "workout id is required")
	}
	workout, err := s.workoutRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "workout not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load workout")
	}
	if workout.CreatorID != requesterID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the creator can delete a workout")
	}
	if err := s.workoutRepo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete workout")
	}
	return nil
}

// assemble builds the full workout view: movements with their tags, workout
// tag names, and the creator's display name. A dangling creator reference is
// a NotFound, matching the lookup surface this view backs.
func (s *service) assemble(ctx context.Context, workout *models.Workout) (WorkoutDTO, error) {
	creator, err := s.userRepo.FindByID(ctx, workout.CreatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WorkoutDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "workout creator not found")
		}
		return WorkoutDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load creator")
	}

	movementRows, err := s.movementRepo.ForWorkout(ctx, workout.ID)
	if err != nil {
		return WorkoutDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load workout movements")
	}
	movementDTOs := make([]movements.MovementDTO, 0, len(movementRows))
	for i := range movementRows {
		names, err := s.tagRepo.NamesForMovement(ctx, movementRows[i].ID)
		if err != nil {
			return WorkoutDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load movement tags")
		}
		if names == nil {
			names = []string{}
		}
		movementDTOs = append(movementDTOs, movements.MovementDTO{
			ID:          movementRows[i].ID,
			Name:        movementRows[i].Name,
			Reps:        movementRows[i].Reps,
			Sets:        movementRows[i].Sets,
			RestTime:    movementRows[i].RestTime,
			Description: movementRows[i].Description,
			Image:       movementRows[i].Image,
			Tags:        names,
			CreatedAt:   movementRows[i].CreatedAt,
			UpdatedAt:   movementRows[i].UpdatedAt,
		})
	}

	tagNames, err := s.tagRepo.NamesForWorkout(ctx, workout.ID)
	if err != nil {
		return WorkoutDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load workout tags")
	}
	if tagNames == nil {
		tagNames = []string{}
	}

	return WorkoutDTO{
		ID:          workout.ID,
		Name:        workout.Name,
		CreatorID:   workout.CreatorID,
		CreatorName: creator.FirstName + " " + creator.LastName,
		Time:        workout.Time,
		Description: workout.Description,
		Image:       workout.Image,
		Rating:      workout.Rating,
		Movements:   movementDTOs,
		Tags:        tagNames,
		CreatedAt:   workout.CreatedAt,
		UpdatedAt:   workout.UpdatedAt,
	}, nil
}
