package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	pkgauth "github.com/campuskit/campusboard-backend/pkg/auth"
	"github.com/campuskit/campusboard-backend/pkg/auth/session"
	"github.com/campuskit/campusboard-backend/pkg/config"
	"github.com/campuskit/campusboard-backend/pkg/db/models"
	"github.com/campuskit/campusboard-backend/pkg/logger"
)

// userSource resolves the account a session claims to belong to.
type userSource interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Session resolves the session cookie into a request identity. A missing,
// expired, revoked, or orphaned session leaves the request anonymous; route
// guards decide what anonymous means for each surface.
func Session(cfg config.SessionConfig, sessions session.Checker, users userSource, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			identity, ok := resolveIdentity(ctx, cfg, sessions, users, r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx = WithIdentity(ctx, identity.userID, identity.role)
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id": identity.userID,
					"role":    identity.role,
				})
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type identity struct {
	userID string
	role   string
}

func resolveIdentity(ctx context.Context, cfg config.SessionConfig, sessions session.Checker, users userSource, r *http.Request) (identity, bool) {
	token := pkgauth.ReadSessionCookie(r, cfg)
	if token == "" {
		return identity{}, false
	}

	claims, err := pkgauth.ParseSessionToken(cfg, token)
	if err != nil || claims.ID == "" {
		return identity{}, false
	}

	if sessions != nil {
		live, err := sessions.HasSession(ctx, claims.ID)
		if err != nil || !live {
			return identity{}, false
		}
	}

	if users != nil {
		if _, err := users.FindByID(ctx, claims.UserID); err != nil {
			return identity{}, false
		}
	}

	return identity{
		userID: claims.UserID.String(),
		role:   string(claims.Role),
	}, true
}
