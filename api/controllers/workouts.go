package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/benkovy/fyp-api/api/responses"
	"github.com/benkovy/fyp-api/api/validators"
	movementsvc "github.com/benkovy/fyp-api/internal/movements"
	workoutsvc "github.com/benkovy/fyp-api/internal/workouts"
	pkgerrors "github.com/benkovy/fyp-api/pkg/errors"
	"github.com/benkovy/fyp-api/pkg/logger"
	"github.com/benkovy/fyp-api/pkg/pagination"
)

type createWorkoutRequest struct {
	Name        string                  `json:"name" validate:"required"`
	Time        int                     `json:"time" validate:"min=0"`
	Description *string                 `json:"description,omitempty"`
	Image       bool                    `json:"image"`
	Rating      int                     `json:"rating" validate:"min=0,max=5"`
	MovementIDs []uuid.UUID             `json:"movement_ids,omitempty"`
	Movements   []createMovementRequest `json:"movements,omitempty"`
	Tags        []string                `json:"tags,omitempty"`
}

type updateWorkoutRequest struct {
	Name        *string   `json:"name,omitempty"`
	Time        *int      `json:"time,omitempty" validate:"omitempty,min=0"`
	Description *string   `json:"description,omitempty"`
	Image       *bool     `json:"image,omitempty"`
	Rating      *int      `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
	Tags        *[]string `json:"tags,omitempty"`
}

// WorkoutCreate builds a workout from the caller's payload. Inline movements
// are created alongside the workout; existing ones are linked by id.
func WorkoutCreate(svc workoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "workout service unavailable"))
			return
		}

		creatorID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createWorkoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		inline := make([]movementsvc.CreateMovementInput, 0, len(body.Movements))
		for _, m := range body.Movements {
			inline = append(inline, movementsvc.CreateMovementInput{
				Name:        m.Name,
				Reps:        m.Reps,
				Sets:        m.Sets,
				RestTime:    m.RestTime,
				Description: m.Description,
				Image:       m.Image,
				Tags:        m.Tags,
			})
		}

		created, err := svc.Create(r.Context(), workoutsvc.CreateWorkoutInput{
			Name:        body.Name,
			CreatorID:   creatorID,
			Time:        body.Time,
			Description: body.Description,
			Image:       body.Image,
			Rating:      body.Rating,
			MovementIDs: body.MovementIDs,
			Movements:   inline,
			Tags:        body.Tags,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// WorkoutGet returns a fully assembled workout view.
func WorkoutGet(svc workoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "workout service unavailable"))
			return
		}

		id, err := pathUUID(r, "workoutId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		workout, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, workout)
	}
}

// WorkoutList returns a cursor-paginated page of assembled workouts.
func WorkoutList(svc workoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "workout service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), r.URL.Query().Get("cursor"), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// WorkoutSearch finds workouts carrying any of the comma-separated tags.
func WorkoutSearch(svc workoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "workout service unavailable"))
			return
		}

		raw := strings.TrimSpace(r.URL.Query().Get("tags"))
		if raw == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "tags query parameter is required"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		found, err := svc.FindByTags(r.Context(), strings.Split(raw, ","), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, found)
	}
}

// WorkoutMovements returns the ordered movements of a workout.
func WorkoutMovements(svc workoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "workout service unavailable"))
			return
		}

		id, err := pathUUID(r, "workoutId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		workout, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, workout.Movements)
	}
}

// WorkoutUpdate applies partial changes to a workout (creator only).
func WorkoutUpdate(svc workoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "workout service unavailable"))
			return
		}

		requester, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathUUID(r, "workoutId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateWorkoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, requester, workoutsvc.UpdateWorkoutInput{
			Name:        body.Name,
			Time:        body.Time,
			Description: body.Description,
			Image:       body.Image,
			Rating:      body.Rating,
			Tags:        body.Tags,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// WorkoutDelete removes a workout (creator only).
func WorkoutDelete(svc workoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "workout service unavailable"))
			return
		}

		requester, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathUUID(r, "workoutId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id, requester); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
