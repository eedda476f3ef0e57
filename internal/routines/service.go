package routines

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/benkovy/fyp-api/internal/tags"
	"github.com/benkovy/fyp-api/internal/users"
	"github.com/benkovy/fyp-api/internal/workouts"
	pkgdb "github.com/benkovy/fyp-api/pkg/db"
	"github.com/benkovy/fyp-api/pkg/db/models"
	pkgerrors "github.com/benkovy/fyp-api/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

const defaultTagMatchLimit = 10

// ServiceParams carries the dependencies for the routine service.
type ServiceParams struct {
	RoutineRepo *Repository
	UserRepo    *users.Repository
	WorkoutSvc  workouts.Service
	TagResolver tags.Service
	Tx          pkgdb.TxRunner

	// TagMatchLimit caps how many workouts a tagged day resolves to.
	TagMatchLimit int
}

// Service composes routine views and runs the replacement protocol.
type Service interface {
	// ViewForUser returns the composed view of the user's current routine.
	ViewForUser(ctx context.Context, userID uuid.UUID) (RoutineView, error)
	// DayRows returns a routine's persisted day rows without composition.
	DayRows(ctx context.Context, routineID uuid.UUID) ([]DayRowDTO, error)
	// Submit replaces the user's routine with the submitted one and returns
	// its composed view.
	Submit(ctx context.Context, input SubmitRoutineInput) (RoutineView, error)
	// DeleteForUser removes the user's current routine and all its days.
	DeleteForUser(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	routineRepo   *Repository
	userRepo      *users.Repository
	workoutSvc    workouts.Service
	tagResolver   tags.Service
	tx            pkgdb.TxRunner
	tagMatchLimit int
}

// NewService validates the dependency set and returns a routine service.
func NewService(params ServiceParams) (Service, error) {
	if params.RoutineRepo == nil {
		return nil, fmt.Errorf("routine repository is required")
	}
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.WorkoutSvc == nil {
		return nil, fmt.Errorf("workout service is required")
	}
	if params.TagResolver == nil {
		return nil, fmt.Errorf("tag resolver is required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	limit := params.TagMatchLimit
	if limit <= 0 {
		limit = defaultTagMatchLimit
	}
	return &service{
		routineRepo:   params.RoutineRepo,
		userRepo:      params.UserRepo,
		workoutSvc:    params.WorkoutSvc,
		tagResolver:   params.TagResolver,
		tx:            params.Tx,
		tagMatchLimit: limit,
	}, nil
}

func (s *service) ViewForUser(ctx context.Context, userID uuid.UUID) (RoutineView, error) {
	routine, err := s.routineRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoutineView{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "no routine for user")
		}
		return RoutineView{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load routine")
	}
	return s.composeView(ctx, routine)
}

func (s *service) DayRows(ctx context.Context, routineID uuid.UUID) ([]DayRowDTO, error) {
	if _, err := s.routineRepo.FindByID(ctx, routineID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "routine not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load routine")
	}
	days, err := s.routineRepo.Days(ctx, routineID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load routine days")
	}
	rows := make([]DayRowDTO, 0, len(days))
	for _, day := range days {
		rows = append(rows, DayRowDTO{
			ID:          day.ID,
			RoutineID:   day.RoutineID,
			Day:         day.Day,
			Empty:       day.Empty,
			Initialized: day.Initialized,
			WorkoutID:   day.WorkoutID,
		})
	}
	return rows, nil
}

func (s *service) Submit(ctx context.Context, input SubmitRoutineInput) (RoutineView, error) {
	if err := validateSubmission(input); err != nil {
		return RoutineView{}, err
	}
	if _, err := s.userRepo.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoutineView{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return RoutineView{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load user")
	}

	// Referenced workouts must exist before anything is torn down.
	for _, spec := range input.Days {
		if spec.WorkoutID == nil {
			continue
		}
		if _, err := s.workoutSvc.Get(ctx, *spec.WorkoutID); err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
				return RoutineView{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err,
					fmt.Sprintf("day %d references an unknown workout", spec.Day))
			}
			return RoutineView{}, err
		}
	}

	// Tags are resolved ahead of the transaction: tag rows are create-only
	// and shared across routines, and the find-or-create recovery path
	// cannot re-read inside a transaction a failed insert has aborted.
	dayTags := make(map[int][]models.WorkoutTag, len(input.Days))
	for i, spec := range input.Days {
		names := tags.NormalizeAll(spec.Tags)
		if len(names) == 0 {
			continue
		}
		resolved, err := s.tagResolver.ResolveWorkoutTags(ctx, names)
		if err != nil {
			return RoutineView{}, err
		}
		dayTags[i] = resolved
	}

	routine := &models.Routine{Name: strings.TrimSpace(input.Name), UserID: input.UserID}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.routineRepo.WithDB(tx)

		previous, err := txRepo.FindByUser(ctx, input.UserID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if previous != nil {
			if err := txRepo.DeleteCascade(ctx, previous.ID); err != nil {
				return err
			}
		}

		if err := txRepo.Create(ctx, routine); err != nil {
			return err
		}
		for i, spec := range input.Days {
			day := dayModel(routine.ID, spec, dayTags[i])
			if err := txRepo.CreateDay(ctx, day); err != nil {
				return err
			}
			for _, tag := range dayTags[i] {
				if err := txRepo.AttachDayTag(ctx, day.ID, tag.ID); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return RoutineView{}, typed
		}
		return RoutineView{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to replace routine")
	}

	return s.composeView(ctx, routine)
}

func (s *service) DeleteForUser(ctx context.Context, userID uuid.UUID) error {
	routine, err := s.routineRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "no routine for user")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load routine")
	}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.routineRepo.WithDB(tx).DeleteCascade(ctx, routine.ID)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to delete routine")
	}
	return nil
}

// composeView finalizes every day of the routine. A failing day aborts the
// whole composition, naming the day that failed.
func (s *service) composeView(ctx context.Context, routine *models.Routine) (RoutineView, error) {
	days, err := s.routineRepo.Days(ctx, routine.ID)
	if err != nil {
		return RoutineView{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load routine days")
	}

	views := make([]DayView, 0, len(days))
	for _, day := range days {
		view, err := s.composeDay(ctx, day)
		if err != nil {
			if typed := pkgerrors.As(err); typed != nil {
				return RoutineView{}, pkgerrors.Wrap(typed.Code(), err,
					fmt.Sprintf("day %d: %s", day.Day, typed.Message()))
			}
			return RoutineView{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err,
				fmt.Sprintf("day %d failed to compose", day.Day))
		}
		views = append(views, view)
	}

	return RoutineView{
		ID:        routine.ID,
		Name:      routine.Name,
		UserID:    routine.UserID,
		CreatedAt: routine.CreatedAt,
		Days:      views,
	}, nil
}

func (s *service) composeDay(ctx context.Context, day models.RoutineDay) (DayView, error) {
	tagNames, err := s.routineRepo.DayTagNames(ctx, day.ID)
	if err != nil {
		return DayView{}, err
	}

	view := DayView{
		ID:        day.ID,
		Day:       day.Day,
		Empty:     day.Empty,
		WorkoutID: day.WorkoutID,
	}

	switch state := classify(day, tagNames).(type) {
	case FixedDay:
		workout, err := s.workoutSvc.Get(ctx, state.WorkoutID)
		if err != nil {
			return DayView{}, err
		}
		view.Initialized = tagNames
		view.Finalized = []workouts.WorkoutDTO{workout}
	case TaggedDay:
		matches, err := s.workoutSvc.FindByTags(ctx, state.Tags, s.tagMatchLimit)
		if err != nil {
			return DayView{}, err
		}
		view.Initialized = state.Tags
		view.Finalized = matches
	case EmptyDay:
	}
	return view, nil
}

// classify derives the day's state. Precedence: a workout reference wins,
// then a non-null tag placeholder, then empty.
func classify(day models.RoutineDay, tagNames []string) DayState {
	switch {
	case day.WorkoutID != nil:
		return FixedDay{WorkoutID: *day.WorkoutID}
	case day.Initialized != nil:
		return TaggedDay{Tags: tagNames}
	default:
		return EmptyDay{}
	}
}

// validateSubmission checks the whole day list before any write, collecting
// every problem instead of stopping at the first.
func validateSubmission(input SubmitRoutineInput) error {
	var err error
	if strings.TrimSpace(input.Name) == "" {
		err = multierr.Append(err, fmt.Errorf("routine name is required"))
	}
	if input.UserID == uuid.Nil {
		err = multierr.Append(err, fmt.Errorf("user id is required"))
	}
	for _, spec := range input.Days {
		if spec.Day < 1 {
			err = multierr.Append(err, fmt.Errorf("day %d: day number must be positive", spec.Day))
		}
		hasTags := len(tags.NormalizeAll(spec.Tags)) > 0
		if hasTags && spec.WorkoutID != nil {
			err = multierr.Append(err, fmt.Errorf("day %d: tags and a workout are mutually exclusive", spec.Day))
		}
		if spec.Empty && (hasTags || spec.WorkoutID != nil) {
			err = multierr.Append(err, fmt.Errorf("day %d: an empty day cannot carry tags or a workout", spec.Day))
		}
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid routine submission").
			WithDetails(errorMessages(err))
	}
	return nil
}

func errorMessages(err error) []string {
	split := multierr.Errors(err)
	messages := make([]string, 0, len(split))
	for _, e := range split {
		messages = append(messages, e.Error())
	}
	return messages
}

// dayModel maps a validated day spec onto the flat persisted shape.
func dayModel(routineID uuid.UUID, spec DaySpec, resolved []models.WorkoutTag) *models.RoutineDay {
	day := &models.RoutineDay{
		RoutineID: routineID,
		Day:       spec.Day,
	}
	switch {
	case spec.WorkoutID != nil:
		day.WorkoutID = spec.WorkoutID
	case len(resolved) > 0:
		names := make([]string, 0, len(resolved))
		for _, tag := range resolved {
			names = append(names, tag.Name)
		}
		placeholder := strings.Join(names, ",")
		day.Initialized = &placeholder
	default:
		day.Empty = true
	}
	return day
}
