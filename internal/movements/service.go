package movements

import (
	"context"
	"errors"
	"strings"

	"github.com/benkovy/fyp-api/internal/tags"
	"github.com/benkovy/fyp-api/pkg/db/models"
	pkgerrors "github.com/benkovy/fyp-api/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceParams groups dependencies for the movement service.
type ServiceParams struct {
	MovementRepo *Repository
	TagRepo      *tags.Repository
	TagResolver  tags.Service
}

// Service exposes business rules for movement management.
type Service interface {
	Create(ctx context.Context, input CreateMovementInput) (MovementDTO, error)
	Get(ctx context.Context, id uuid.UUID) (MovementDTO, error)
	List(ctx context.Context, limit int) ([]MovementDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateMovementInput) (MovementDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	movementRepo *Repository
	tagRepo      *tags.Repository
	tagResolver  tags.Service
}

// NewService builds a movement service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.MovementRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "movement repo is required")
	}
	if params.TagRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tag repo is required")
	}
	if params.TagResolver == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tag resolver is required")
	}
	return &service{
		movementRepo: params.MovementRepo,
		tagRepo:      params.TagRepo,
		tagResolver:  params.TagResolver,
	}, nil
}

// Create validates and persists a movement along with its tags.
func (s *service) Create(ctx context.Context, input CreateMovementInput) (MovementDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return MovementDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "movement name is required")
	}
	if input.Reps < 0 || input.Sets < 0 || input.RestTime < 0 {
		return MovementDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "reps, sets, and rest time must not be negative")
	}

	movement := &models.Movement{
		Name:        name,
		Reps:        input.Reps,
		Sets:        input.Sets,
		RestTime:    input.RestTime,
		Description: input.Description,
		Image:       input.Image,
	}
	if err := s.movementRepo.Create(ctx, movement); err != nil {
		return MovementDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create movement")
	}

	resolved, err := s.tagResolver.ResolveMovementTags(ctx, input.Tags)
	if err != nil {
		return MovementDTO{}, err
	}
	for _, tag := range resolved {
		if err := s.tagRepo.AttachToMovement(ctx, movement.ID, tag.ID); err != nil {
			return MovementDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attach movement tag")
		}
	}

	return s.toDTO(ctx, movement)
}

// Get loads a movement with its tag names.
func (s *service) Get(ctx context.Context, id uuid.UUID) (MovementDTO, error) {
	movement, err := s.findMovement(ctx, id)
	if err != nil {
		return MovementDTO{}, err
	}
	return s.toDTO(ctx, movement)
}

// List returns movements with their tag names.
func (s *service) List(ctx context.Context, limit int) ([]MovementDTO, error) {
	rows, err := s.movementRepo.List(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list movements")
	}
	out := make([]MovementDTO, 0, len(rows))
	for i := range rows {
		dto, err := s.toDTO(ctx, &rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}

// Update applies the provided field changes.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateMovementInput) (MovementDTO, error) {
	movement, err := s.findMovement(ctx, id)
	if err != nil {
		return MovementDTO{}, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return MovementDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "movement name is required")
		}
		movement.Name = name
	}
	if input.Reps != nil {
		if *input.Reps < 0 {
			return MovementDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "reps must not be negative")
		}
		movement.Reps = *input.Reps
	}
	if input.Sets != nil {
		if *input.Sets < 0 {
			return MovementDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "sets must not be negative")
		}
		movement.Sets = *input.Sets
	}
	if input.RestTime != nil {
		if *input.RestTime < 0 {
			return MovementDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "rest time must not be negative")
		}
		movement.RestTime = *input.RestTime
	}
	if input.Description != nil {
		movement.Description = input.Description
	}
	if input.Image != nil {
		movement.Image = *input.Image
	}

	if err := s.movementRepo.Update(ctx, movement); err != nil {
		return MovementDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update movement")
	}
	return s.toDTO(ctx, movement)
}

// Delete removes a movement and its associations.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findMovement(ctx, id); err != nil {
		return err
	}
	if err := s.movementRepo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete movement")
	}
	return nil
}

func (s *service) findMovement(ctx context.Context, id uuid.UUID) (*models.Movement, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "movement id is required")
	}
	movement, err := s.movementRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "movement not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load movement")
	}
	return movement, nil
}

func (s *service) toDTO(ctx context.Context, movement *models.Movement) (MovementDTO, error) {
	names, err := s.tagRepo.NamesForMovement(ctx, movement.ID)
	if err != nil {
		return MovementDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load movement tags")
	}
	if names == nil {
		names = []string{}
	}
	return MovementDTO{
		ID:          movement.ID,
		Name:        movement.Name,
		Reps:        movement.Reps,
		Sets:        movement.Sets,
		RestTime:    movement.RestTime,
		Description: movement.Description,
		Image:       movement.Image,
		Tags:        names,
		CreatedAt:   movement.CreatedAt,
		UpdatedAt:   movement.UpdatedAt,
	}, nil
}
