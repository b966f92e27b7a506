package controllers

import (
	"net/http"

	"github.com/campuskit/campusboard-backend/api/responses"
	"github.com/campuskit/campusboard-backend/internal/likes"
	pkgerrors "github.com/campuskit/campusboard-backend/pkg/errors"
	"github.com/campuskit/campusboard-backend/pkg/logger"
)

// ToggleLike flips the caller's like on an announcement and returns the new
// state with the current count.
func ToggleLike(svc likes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "likes service unavailable"))
			return
		}

		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		announcementID, err := parseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Toggle(r.Context(), userID, announcementID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, result)
	}
}
