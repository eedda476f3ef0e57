package routines

import (
	"context"
	"testing"

	"github.com/benkovy/fyp-api/pkg/db/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRoutineRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:routine_repo_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(
		&models.Routine{},
		&models.RoutineDay{},
		&models.WorkoutTag{},
		&models.RoutineDayWorkoutTag{},
	))
	return conn
}

func TestRepositoryDaysOrdering(t *testing.T) {
	conn := setupRoutineRepoDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	routine := &models.Routine{Name: "week", UserID: uuid.New()}
	require.NoError(t, repo.Create(ctx, routine))

	for _, n := range []int{5, 1, 3} {
		require.NoError(t, repo.CreateDay(ctx, &models.RoutineDay{
			RoutineID: routine.ID,
			Day:       n,
			Empty:     true,
		}))
	}

	days, err := repo.Days(ctx, routine.ID)
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, 1, days[0].Day)
	assert.Equal(t, 3, days[1].Day)
	assert.Equal(t, 5, days[2].Day)
}

func TestRepositoryAttachDayTagIgnoresDuplicates(t *testing.T) {
	conn := setupRoutineRepoDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	routine := &models.Routine{Name: "week", UserID: uuid.New()}
	require.NoError(t, repo.Create(ctx, routine))

	day := &models.RoutineDay{RoutineID: routine.ID, Day: 1}
	require.NoError(t, repo.CreateDay(ctx, day))

	legs := models.WorkoutTag{Name: "legs"}
	push := models.WorkoutTag{Name: "push"}
	require.NoError(t, conn.Create(&legs).Error)
	require.NoError(t, conn.Create(&push).Error)

	require.NoError(t, repo.AttachDayTag(ctx, day.ID, push.ID))
	require.NoError(t, repo.AttachDayTag(ctx, day.ID, legs.ID))
	require.NoError(t, repo.AttachDayTag(ctx, day.ID, legs.ID))

	names, err := repo.DayTagNames(ctx, day.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"legs", "push"}, names)

	require.Error(t, repo.AttachDayTag(ctx, uuid.Nil, legs.ID))
}

func TestRepositoryDeleteCascade(t *testing.T) {
	conn := setupRoutineRepoDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	userID := uuid.New()
	routine := &models.Routine{Name: "doomed", UserID: userID}
	require.NoError(t, repo.Create(ctx, routine))

	day := &models.RoutineDay{RoutineID: routine.ID, Day: 2}
	require.NoError(t, repo.CreateDay(ctx, day))

	tag := models.WorkoutTag{Name: "pull"}
	require.NoError(t, conn.Create(&tag).Error)
	require.NoError(t, repo.AttachDayTag(ctx, day.ID, tag.ID))

	require.NoError(t, repo.DeleteCascade(ctx, routine.ID))

	_, err := repo.FindByUser(ctx, userID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	days, err := repo.Days(ctx, routine.ID)
	require.NoError(t, err)
	assert.Empty(t, days)

	var links int64
	require.NoError(t, conn.Model(&models.RoutineDayWorkoutTag{}).Count(&links).Error)
	assert.Zero(t, links)

	// Tag rows survive the cascade.
	var tagCount int64
	require.NoError(t, conn.Model(&models.WorkoutTag{}).Count(&tagCount).Error)
	assert.EqualValues(t, 1, tagCount)
}
