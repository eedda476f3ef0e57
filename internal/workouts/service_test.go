package workouts

import (
	"context"
	"testing"

	"github.com/benkovy/fyp-api/internal/movements"
	"github.com/benkovy/fyp-api/internal/tags"
	"github.com/benkovy/fyp-api/internal/users"
	"github.com/benkovy/fyp-api/pkg/db/models"
	"github.com/benkovy/fyp-api/pkg/enums"
	pkgerrors "github.com/benkovy/fyp-api/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	svc      Service
	userRepo *users.Repository
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(
		&models.User{},
		&models.Movement{},
		&models.Workout{},
		&models.WorkoutTag{},
		&models.MovementTag{},
		&models.WorkoutMovement{},
		&models.WorkoutWorkoutTag{},
		&models.MovementMovementTag{},
		&models.UserWorkout{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	tagRepo := tags.NewRepository(conn)
	resolver, err := tags.NewService(tags.ServiceParams{TagRepo: tagRepo})
	if err != nil {
		t.Fatalf("tag service: %v", err)
	}
	movementRepo := movements.NewRepository(conn)
	movementSvc, err := movements.NewService(movements.ServiceParams{
		MovementRepo: movementRepo,
		TagRepo:      tagRepo,
		TagResolver:  resolver,
	})
	if err != nil {
		t.Fatalf("movement service: %v", err)
	}
	userRepo := users.NewRepository(conn)
	svc, err := NewService(ServiceParams{
		WorkoutRepo:  NewRepository(conn),
		MovementRepo: movementRepo,
		MovementSvc:  movementSvc,
		UserRepo:     userRepo,
		TagRepo:      tagRepo,
		TagResolver:  resolver,
	})
	if err != nil {
		t.Fatalf("workout service: %v", err)
	}
	return testEnv{db: conn, svc: svc, userRepo: userRepo}
}

func seedUser(t *testing.T, env testEnv, first, last string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        users.NormalizeEmail(first + "." + last + "@example.com"),
		PasswordHash: "hash",
		FirstName:    first,
		LastName:     last,
		UserType:     enums.UserTypeTrainer,
	}
	if err := env.userRepo.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestCreateWorkoutAssemblesFullView(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := seedUser(t, env, "Ben", "Kovacs")

	created, err := env.svc.Create(ctx, CreateWorkoutInput{
		Name:      "Leg Day",
		CreatorID: creator.ID,
		Time:      45,
		Tags:      []string{"Legs", "strength"},
		Movements: []movements.CreateMovementInput{
			{Name: "Back Squat", Reps: 5, Sets: 5, RestTime: 120, Tags: []string{"quads"}},
			{Name: "Lunge", Reps: 10, Sets: 3, RestTime: 60},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if created.CreatorName != "Ben Kovacs" {
		t.Fatalf("expected creator name, got %q", created.CreatorName)
	}
	if len(created.Movements) != 2 {
		t.Fatalf("expected 2 movements, got %d", len(created.Movements))
	}
	if len(created.Tags) != 2 {
		t.Fatalf("expected 2 tags, got %v", created.Tags)
	}

	// creator membership is recorded
	ids, err := env.userRepo.WorkoutIDs(ctx, creator.ID)
	if err != nil {
		t.Fatalf("workout ids: %v", err)
	}
	if len(ids) != 1 || ids[0] != created.ID {
		t.Fatalf("expected membership row, got %v", ids)
	}
}

func TestGetWorkoutDanglingCreatorIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := seedUser(t, env, "Gone", "Soon")

	created, err := env.svc.Create(ctx, CreateWorkoutInput{
		Name:      "Orphaned",
		CreatorID: creator.ID,
		Time:      30,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := env.db.Delete(&models.User{}, "id = ?", creator.ID).Error; err != nil {
		t.Fatalf("delete creator: %v", err)
	}

	_, err = env.svc.Get(ctx, created.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for dangling creator, got %v", err)
	}
}

func TestFindByTagsReturnsAssembledWorkouts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := seedUser(t, env, "Tag", "Finder")

	tagged, err := env.svc.Create(ctx, CreateWorkoutInput{
		Name:      "Tagged",
		CreatorID: creator.ID,
		Time:      20,
		Tags:      []string{"cardio"},
	})
	if err != nil {
		t.Fatalf("create tagged: %v", err)
	}
	if _, err := env.svc.Create(ctx, CreateWorkoutInput{
		Name:      "Untagged",
		CreatorID: creator.ID,
		Time:      20,
	}); err != nil {
		t.Fatalf("create untagged: %v", err)
	}

	found, err := env.svc.FindByTags(ctx, []string{"CARDIO"}, 10)
	if err != nil {
		t.Fatalf("find by tags: %v", err)
	}
	if len(found) != 1 || found[0].ID != tagged.ID {
		t.Fatalf("unexpected results %+v", found)
	}
	if found[0].CreatorName != "Tag Finder" {
		t.Fatalf("expected assembled creator name, got %q", found[0].CreatorName)
	}
}

func TestDeleteWorkoutRequiresCreator(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := seedUser(t, env, "Owner", "One")
	other := seedUser(t, env, "Other", "Two")

	created, err := env.svc.Create(ctx, CreateWorkoutInput{
		Name:      "Protected",
		CreatorID: creator.ID,
		Time:      25,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = env.svc.Delete(ctx, created.ID, other.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	if err := env.svc.Delete(ctx, created.ID, creator.ID); err != nil {
		t.Fatalf("delete by creator: %v", err)
	}

	_, err = env.svc.Get(ctx, created.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestListWorkoutsPaginates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := seedUser(t, env, "Page", "Turner")

	for _, name := range []string{"First", "Second", "Third"} {
		if _, err := env.svc.Create(ctx, CreateWorkoutInput{
			Name:      name,
			CreatorID: creator.ID,
			Time:      15,
		}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	page, err := env.svc.List(ctx, "", 2)
	if err != nil {
		t.Fatalf("list first page: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	if page.NextCursor == "" {
		t.Fatal("expected a next cursor")
	}

	rest, err := env.svc.List(ctx, page.NextCursor, 2)
	if err != nil {
		t.Fatalf("list second page: %v", err)
	}
	if len(rest.Items) != 1 {
		t.Fatalf("expected 1 remaining item, got %d", len(rest.Items))
	}
	if rest.NextCursor != "" {
		t.Fatalf("expected exhausted cursor, got %q", rest.NextCursor)
	}
	seen := map[uuid.UUID]bool{}
	for _, item := range append(page.Items, rest.Items...) {
		if seen[item.ID] {
			t.Fatalf("duplicate workout %s across pages", item.ID)
		}
		seen[item.ID] = true
	}
}

func TestUpdateWorkoutReplacesTags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := seedUser(t, env, "Edit", "Or")
	other := seedUser(t, env, "Not", "Mine")

	created, err := env.svc.Create(ctx, CreateWorkoutInput{
		Name:      "Before",
		CreatorID: creator.ID,
		Time:      40,
		Tags:      []string{"old"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = env.svc.Update(ctx, created.ID, other.ID, UpdateWorkoutInput{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for non-creator, got %v", err)
	}

	name := "After"
	newTime := 55
	tagSet := []string{"Fresh", "fresh", "new"}
	updated, err := env.svc.Update(ctx, created.ID, creator.ID, UpdateWorkoutInput{
		Name: &name,
		Time: &newTime,
		Tags: &tagSet,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "After" || updated.Time != 55 {
		t.Fatalf("unexpected updated fields %+v", updated)
	}
	if len(updated.Tags) != 2 {
		t.Fatalf("expected replaced deduplicated tag set, got %v", updated.Tags)
	}
	for _, tag := range updated.Tags {
		if tag == "old" {
			t.Fatal("expected old tag link removed")
		}
	}
}

func TestForUserListsMemberships(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	member := seedUser(t, env, "Member", "Ship")
	stranger := seedUser(t, env, "Stran", "Ger")

	mine, err := env.svc.Create(ctx, CreateWorkoutInput{
		Name:      "Mine",
		CreatorID: member.ID,
		Time:      30,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := env.svc.Create(ctx, CreateWorkoutInput{
		Name:      "Theirs",
		CreatorID: stranger.ID,
		Time:      30,
	}); err != nil {
		t.Fatalf("create other: %v", err)
	}

	listed, err := env.svc.ForUser(ctx, member.ID)
	if err != nil {
		t.Fatalf("for user: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != mine.ID {
		t.Fatalf("expected only the member's workout, got %+v", listed)
	}

	_, err = env.svc.ForUser(ctx, uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown user, got %v", err)
	}
}

func TestCreateWorkoutUnknownMovementID(t *testing.T) {
	env := newTestEnv(t)
	creator := seedUser(t, env, "Strict", "Ref")

	_, err := env.svc.Create(context.Background(), CreateWorkoutInput{
		Name:        "Broken",
		CreatorID:   creator.ID,
		Time:        10,
		MovementIDs: []uuid.UUID{uuid.New()},
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown movement, got %v", err)
	}
}
