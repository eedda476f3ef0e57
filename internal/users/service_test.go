package users

import (
	"context"
	"testing"

	"github.com/benkovy/fyp-api/pkg/db/models"
	"github.com/benkovy/fyp-api/pkg/enums"
	pkgerrors "github.com/benkovy/fyp-api/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}, &models.UserWorkout{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repo := NewRepository(conn)
	svc, err := NewService(ServiceParams{UserRepo: repo})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo
}

func seedUser(t *testing.T, repo *Repository, email string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        NormalizeEmail(email),
		PasswordHash: "hash",
		FirstName:    "Ben",
		LastName:     "Kovacs",
		UserType:     enums.UserTypeStandard,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestGetProfileReturnsUser(t *testing.T) {
	svc, repo := newTestService(t)
	user := seedUser(t, repo, "ben@example.com")

	got, err := svc.GetProfile(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if got.Email != "ben@example.com" || got.FirstName != "Ben" {
		t.Fatalf("unexpected profile %+v", got)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetProfile(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateProfileAppliesPartialChanges(t *testing.T) {
	svc, repo := newTestService(t)
	user := seedUser(t, repo, "ben@example.com")

	desc := "  lifting since 2019  "
	updated, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileInput{Description: &desc})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Description != "lifting since 2019" {
		t.Fatalf("expected trimmed description, got %q", updated.Description)
	}
	if updated.FirstName != "Ben" {
		t.Fatalf("expected untouched fields preserved, got %+v", updated)
	}

	blank := "   "
	if _, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileInput{FirstName: &blank}); err == nil {
		t.Fatal("expected error for blank first name")
	}
}

func TestCheckEmailAvailability(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, "taken@example.com")

	got, err := svc.CheckEmailAvailability(context.Background(), "TAKEN@example.com ")
	if err != nil {
		t.Fatalf("check email: %v", err)
	}
	if got.Available {
		t.Fatal("expected taken email to be unavailable")
	}

	got, err = svc.CheckEmailAvailability(context.Background(), "free@example.com")
	if err != nil {
		t.Fatalf("check email: %v", err)
	}
	if !got.Available {
		t.Fatal("expected free email to be available")
	}

	if _, err := svc.CheckEmailAvailability(context.Background(), "  "); err == nil {
		t.Fatal("expected error for blank email")
	}
}

func TestAddWorkoutIgnoresDuplicates(t *testing.T) {
	_, repo := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, repo, "ben@example.com")
	workoutID := uuid.New()

	if err := repo.AddWorkout(ctx, user.ID, workoutID); err != nil {
		t.Fatalf("add workout: %v", err)
	}
	if err := repo.AddWorkout(ctx, user.ID, workoutID); err != nil {
		t.Fatalf("re-add workout: %v", err)
	}

	ids, err := repo.WorkoutIDs(ctx, user.ID)
	if err != nil {
		t.Fatalf("workout ids: %v", err)
	}
	if len(ids) != 1 || ids[0] != workoutID {
		t.Fatalf("unexpected ids %v", ids)
	}
}
