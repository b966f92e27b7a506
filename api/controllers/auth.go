package controllers

import (
	"net/http"

	"github.com/campuskit/campusboard-backend/api/responses"
	"github.com/campuskit/campusboard-backend/api/validators"
	"github.com/campuskit/campusboard-backend/internal/auth"
	pkgauth "github.com/campuskit/campusboard-backend/pkg/auth"
	"github.com/campuskit/campusboard-backend/pkg/config"
	pkgerrors "github.com/campuskit/campusboard-backend/pkg/errors"
	"github.com/campuskit/campusboard-backend/pkg/logger"
)

// AuthRegister creates an account and opens a session in one step.
func AuthRegister(svc auth.Service, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.SetCookie(w, pkgauth.NewSessionCookie(cfg, result.Token))
		responses.WriteJSONStatus(w, http.StatusCreated, result.User)
	}
}

// AuthLogin verifies credentials and sets the session cookie.
func AuthLogin(svc auth.Service, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.SetCookie(w, pkgauth.NewSessionCookie(cfg, result.Token))
		responses.WriteJSON(w, result.User)
	}
}

// AuthLogout revokes the session behind the cookie and clears it. A request
// without a valid session still clears the cookie and reports success.
func AuthLogout(svc auth.Service, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		sessionID := ""
		if token := pkgauth.ReadSessionCookie(r, cfg); token != "" {
			if claims, err := pkgauth.ParseSessionToken(cfg, token); err == nil {
				sessionID = claims.ID
			}
		}

		if err := svc.Logout(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.SetCookie(w, pkgauth.ClearSessionCookie(cfg))
		responses.WriteSuccess(w)
	}
}
