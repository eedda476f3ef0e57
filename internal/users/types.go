package users

import (
	"time"

	"github.com/benkovy/fyp-api/pkg/enums"
	"github.com/google/uuid"
)

// UserDTO is the public profile projection. The password hash never leaves
// the service layer.
type UserDTO struct {
	ID          uuid.UUID      `json:"id"`
	Email       string         `json:"email"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	Description string         `json:"description"`
	DateOfBirth time.Time      `json:"date_of_birth"`
	UserType    enums.UserType `json:"user_type"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// UpdateProfileInput carries the mutable profile fields.
type UpdateProfileInput struct {
	FirstName   *string
	LastName    *string
	Description *string
	DateOfBirth *time.Time
}

// EmailAvailabilityDTO reports whether an email can still be registered.
type EmailAvailabilityDTO struct {
	Available bool `json:"available"`
}
