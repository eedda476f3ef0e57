package users

import (
	"context"
	"errors"
	"strings"

	"github.com/benkovy/fyp-api/pkg/db/models"
	pkgerrors "github.com/benkovy/fyp-api/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceParams groups dependencies for the user service.
type ServiceParams struct {
	UserRepo *Repository
}

// Service exposes profile management and email availability checks.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (UserDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (UserDTO, error)
	CheckEmailAvailability(ctx context.Context, email string) (EmailAvailabilityDTO, error)
}

type service struct {
	userRepo *Repository
}

// NewService builds a user service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	return &service{userRepo: params.UserRepo}, nil
}

// GetProfile loads the public profile for a user.
func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (UserDTO, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return UserDTO{}, err
	}
	return FromModel(user), nil
}

// UpdateProfile applies the provided field changes.
func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (UserDTO, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return UserDTO{}, err
	}

	if input.FirstName != nil {
		name := strings.TrimSpace(*input.FirstName)
		if name == "" {
			return UserDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "first name is required")
		}
		user.FirstName = name
	}
	if input.LastName != nil {
		name := strings.TrimSpace(*input.LastName)
		if name == "" {
			return UserDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "last name is required")
		}
		user.LastName = name
	}
	if input.Description != nil {
		user.Description = strings.TrimSpace(*input.Description)
	}
	if input.DateOfBirth != nil {
		user.DateOfBirth = *input.DateOfBirth
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return FromModel(user), nil
}

// CheckEmailAvailability reports whether the email can still be registered.
func (s *service) CheckEmailAvailability(ctx context.Context, email string) (EmailAvailabilityDTO, error) {
	if NormalizeEmail(email) == "" {
		return EmailAvailabilityDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return EmailAvailabilityDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check email")
	}
	return EmailAvailabilityDTO{Available: !exists}, nil
}

func (s *service) findUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}

// FromModel maps a persisted user onto the public profile projection.
func FromModel(user *models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Description: user.Description,
		DateOfBirth: user.DateOfBirth,
		UserType:    user.UserType,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}
