package tags

import (
	"context"
	"testing"
	"time"

	"github.com/benkovy/fyp-api/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(
		&models.WorkoutTag{},
		&models.MovementTag{},
		&models.Workout{},
		&models.WorkoutWorkoutTag{},
		&models.MovementMovementTag{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	db := newTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(ServiceParams{TagRepo: repo})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo
}

func TestResolveWorkoutTagsIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.ResolveWorkoutTags(ctx, []string{"Legs", "cardio"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(first))
	}
	if first[0].Name != "legs" || first[1].Name != "cardio" {
		t.Fatalf("expected normalized names, got %q %q", first[0].Name, first[1].Name)
	}

	second, err := svc.ResolveWorkoutTags(ctx, []string{" LEGS ", "cardio"})
	if err != nil {
		t.Fatalf("resolve again: %v", err)
	}
	if second[0].ID != first[0].ID || second[1].ID != first[1].ID {
		t.Fatal("expected resolving the same names to return the same rows")
	}
}

func TestResolveWorkoutTagsDropsEmptyAndDuplicateNames(t *testing.T) {
	svc, _ := newTestService(t)

	resolved, err := svc.ResolveWorkoutTags(context.Background(), []string{"", "  ", "push", "Push", "push"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(resolved) != 1 {
		t.Fatalf("expected 1 tag, got %d", len(resolved))
	}
	if resolved[0].Name != "push" {
		t.Fatalf("unexpected name %q", resolved[0].Name)
	}
}

func TestFindWorkoutsMatchesTagUnionOldestFirst(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	tagRows, err := svc.ResolveWorkoutTags(ctx, []string{"legs", "cardio", "arms"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	creator := uuid.New()
	mkWorkout := func(name string, offset time.Duration, tagIdx ...int) models.Workout {
		w := models.Workout{
			ID:        uuid.New(),
			Name:      name,
			CreatorID: creator,
			Time:      30,
			CreatedAt: base.Add(offset),
		}
		if err := repo.db.Create(&w).Error; err != nil {
			t.Fatalf("create workout: %v", err)
		}
		for _, idx := range tagIdx {
			if err := repo.AttachToWorkout(ctx, w.ID, tagRows[idx].ID); err != nil {
				t.Fatalf("attach tag: %v", err)
			}
		}
		return w
	}

	older := mkWorkout("leg day", 0, 0)
	newer := mkWorkout("sprint intervals", time.Hour, 1)
	both := mkWorkout("full body", 2*time.Hour, 0, 1)
	mkWorkout("curls only", 3*time.Hour, 2)

	found, err := svc.FindWorkouts(ctx, []string{"LEGS", "Cardio"}, 10)
	if err != nil {
		t.Fatalf("find workouts: %v", err)
	}
	if len(found) != 3 {
		t.Fatalf("expected 3 workouts, got %d", len(found))
	}
	if found[0].ID != older.ID || found[1].ID != newer.ID || found[2].ID != both.ID {
		t.Fatalf("unexpected order: %s %s %s", found[0].Name, found[1].Name, found[2].Name)
	}

	limited, err := svc.FindWorkouts(ctx, []string{"legs", "cardio"}, 2)
	if err != nil {
		t.Fatalf("find workouts limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected limit applied, got %d", len(limited))
	}
}

func TestFindWorkoutsUnknownTagsYieldEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	found, err := svc.FindWorkouts(context.Background(), []string{"nonexistent"}, 10)
	if err != nil {
		t.Fatalf("find workouts: %v", err)
	}
	if len(found) != 0 {
		t.Fatalf("expected no matches, got %d", len(found))
	}

	found, err = svc.FindWorkouts(context.Background(), nil, 10)
	if err != nil {
		t.Fatalf("find workouts nil names: %v", err)
	}
	if len(found) != 0 {
		t.Fatalf("expected no matches for empty names, got %d", len(found))
	}
}

func TestWorkoutTagNames(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	tagRows, err := svc.ResolveWorkoutTags(ctx, []string{"core", "balance"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	w := models.Workout{ID: uuid.New(), Name: "planks", CreatorID: uuid.New(), Time: 20}
	if err := repo.db.Create(&w).Error; err != nil {
		t.Fatalf("create workout: %v", err)
	}
	for _, tag := range tagRows {
		if err := repo.AttachToWorkout(ctx, w.ID, tag.ID); err != nil {
			t.Fatalf("attach tag: %v", err)
		}
	}
	// attaching twice is a no-op
	if err := repo.AttachToWorkout(ctx, w.ID, tagRows[0].ID); err != nil {
		t.Fatalf("re-attach tag: %v", err)
	}

	names, err := svc.WorkoutTagNames(ctx, w.ID)
	if err != nil {
		t.Fatalf("tag names: %v", err)
	}
	if len(names) != 2 || names[0] != "balance" || names[1] != "core" {
		t.Fatalf("unexpected names %v", names)
	}
}
