package api

import (
	"errors"
	"net/http"

	"github.com/rappy1999/workhours/internal/api/respond"
	"github.com/rappy1999/workhours/internal/model"
	"github.com/rappy1999/workhours/internal/timeclock"
)

// writeServiceError maps service-layer failures onto HTTP statuses.
// Validation problems (including the time-accounting errors) surface as 400
// before anything touches storage; ownership mismatches are 403 regardless
// of what the store would have said.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		respond.WriteNotFound(w, err.Error())
	case errors.Is(err, model.ErrNotAuthorized):
		respond.WriteForbidden(w, "not authorized")
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, timeclock.ErrInvalidTimeFormat),
		errors.Is(err, timeclock.ErrNonPositiveDuration),
		errors.Is(err, timeclock.ErrInvalidLunchDuration):
		respond.WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrConflict):
		respond.WriteError(w, http.StatusConflict, err.Error())
	default:
		respond.WriteInternalError(w, err.Error())
	}
}
