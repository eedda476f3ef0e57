package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/benkovy/fyp-api/api/responses"
	"github.com/benkovy/fyp-api/api/validators"
	routinesvc "github.com/benkovy/fyp-api/internal/routines"
	pkgerrors "github.com/benkovy/fyp-api/pkg/errors"
	"github.com/benkovy/fyp-api/pkg/logger"
)

type submitRoutineRequest struct {
	Name string `json:"name" validate:"required"`
	Days []struct {
		Day       int        `json:"day" validate:"min=1"`
		Empty     bool       `json:"empty"`
		Tags      []string   `json:"tags,omitempty"`
		WorkoutID *uuid.UUID `json:"workout_id,omitempty"`
	} `json:"days" validate:"dive"`
}

// RoutineMe returns the composed view of the caller's current routine.
func RoutineMe(svc routinesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "routine service unavailable"))
			return
		}

		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.ViewForUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// RoutineSubmit replaces the caller's routine with the submitted plan and
// returns its composed view.
func RoutineSubmit(svc routinesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "routine service unavailable"))
			return
		}

		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body submitRoutineRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		days := make([]routinesvc.DaySpec, 0, len(body.Days))
		for _, d := range body.Days {
			days = append(days, routinesvc.DaySpec{
				Day:       d.Day,
				Empty:     d.Empty,
				Tags:      d.Tags,
				WorkoutID: d.WorkoutID,
			})
		}

		view, err := svc.Submit(r.Context(), routinesvc.SubmitRoutineInput{
			Name:   body.Name,
			UserID: userID,
			Days:   days,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// RoutineDelete removes the caller's routine, days and day-tag links included.
func RoutineDelete(svc routinesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "routine service unavailable"))
			return
		}

		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteForUser(r.Context(), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// RoutineDays returns a routine's raw day rows.
func RoutineDays(svc routinesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "routine service unavailable"))
			return
		}

		id, err := pathUUID(r, "routineId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.DayRows(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}
