package controllers

import (
	"net/http"

	"github.com/benkovy/fyp-api/api/responses"
	"github.com/benkovy/fyp-api/api/validators"
	movementsvc "github.com/benkovy/fyp-api/internal/movements"
	pkgerrors "github.com/benkovy/fyp-api/pkg/errors"
	"github.com/benkovy/fyp-api/pkg/logger"
)

const maxMovementListLimit = 200

type createMovementRequest struct {
	Name        string   `json:"name" validate:"required"`
	Reps        int      `json:"reps" validate:"min=0"`
	Sets        int      `json:"sets" validate:"min=0"`
	RestTime    int      `json:"rest_time" validate:"min=0"`
	Description *string  `json:"description,omitempty"`
	Image       bool     `json:"image"`
	Tags        []string `json:"tags,omitempty"`
}

type updateMovementRequest struct {
	Name        *string `json:"name,omitempty"`
	Reps        *int    `json:"reps,omitempty" validate:"omitempty,min=0"`
	Sets        *int    `json:"sets,omitempty" validate:"omitempty,min=0"`
	RestTime    *int    `json:"rest_time,omitempty" validate:"omitempty,min=0"`
	Description *string `json:"description,omitempty"`
	Image       *bool   `json:"image,omitempty"`
}

// MovementCreate handles movement creation, resolving any tag names.
func MovementCreate(svc movementsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "movement service unavailable"))
			return
		}

		var body createMovementRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), movementsvc.CreateMovementInput{
			Name:        body.Name,
			Reps:        body.Reps,
			Sets:        body.Sets,
			RestTime:    body.RestTime,
			Description: body.Description,
			Image:       body.Image,
			Tags:        body.Tags,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// MovementGet returns a single movement with its tags.
func MovementGet(svc movementsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "movement service unavailable"))
			return
		}

		id, err := pathUUID(r, "movementId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		movement, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, movement)
	}
}

// MovementList returns movements, newest first, capped by the limit query.
func MovementList(svc movementsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "movement service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, maxMovementListLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listed, err := svc.List(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, listed)
	}
}

// MovementUpdate applies a partial update to a movement.
func MovementUpdate(svc movementsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "movement service unavailable"))
			return
		}

		id, err := pathUUID(r, "movementId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateMovementRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, movementsvc.UpdateMovementInput{
			Name:        body.Name,
			Reps:        body.Reps,
			Sets:        body.Sets,
			RestTime:    body.RestTime,
			Description: body.Description,
			Image:       body.Image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// MovementDelete removes a movement and its association rows.
func MovementDelete(svc movementsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "movement service unavailable"))
			return
		}

		id, err := pathUUID(r, "movementId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
