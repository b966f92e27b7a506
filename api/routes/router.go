package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campuskit/campusboard-backend/api/controllers"
	"github.com/campuskit/campusboard-backend/api/middleware"
	"github.com/campuskit/campusboard-backend/internal/announcements"
	"github.com/campuskit/campusboard-backend/internal/auth"
	"github.com/campuskit/campusboard-backend/internal/comments"
	"github.com/campuskit/campusboard-backend/internal/likes"
	"github.com/campuskit/campusboard-backend/internal/notifications"
	"github.com/campuskit/campusboard-backend/internal/subscriptions"
	"github.com/campuskit/campusboard-backend/pkg/auth/session"
	"github.com/campuskit/campusboard-backend/pkg/config"
	"github.com/campuskit/campusboard-backend/pkg/db/models"
	"github.com/campuskit/campusboard-backend/pkg/enums"
	"github.com/campuskit/campusboard-backend/pkg/logger"
)

// UserSource resolves session claims to live accounts.
type UserSource interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Params bundles everything the router needs.
type Params struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       controllers.Pinger
	Redis    controllers.Pinger
	Sessions session.Checker
	Users    UserSource

	AuthService          auth.Service
	AnnouncementsService announcements.Service
	CommentsService      comments.Service
	LikesService         likes.Service
	NotificationsService notifications.Service
	SubscriptionsService subscriptions.Service
}

func NewRouter(p Params) http.Handler {
	r := chi.NewRouter()
	logg := p.Logger
	cfg := p.Config

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.BaseURL),
		middleware.Session(cfg.Session, p.Sessions, p.Users, logg),
	)

	r.Get("/healthz", controllers.HealthLive(cfg))
	r.Get("/readyz", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Page gates mirror the frontend proxy: anonymous visitors are redirected
	// to login, students never see the faculty dashboard.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RedirectAuthenticated())
		r.Get("/login", controllers.Page("login"))
		r.Get("/register", controllers.Page("register"))
	})
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePageSession(), middleware.RequirePageRole(enums.UserRoleFaculty))
		r.Get("/dashboard", controllers.Page("dashboard"))
		r.Get("/dashboard/*", controllers.Page("dashboard"))
	})
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePageSession())
		r.Get("/notifications", controllers.Page("notifications"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", controllers.AuthRegister(p.AuthService, cfg.Session, logg))
			r.Post("/login", controllers.AuthLogin(p.AuthService, cfg.Session, logg))
			r.Post("/logout", controllers.AuthLogout(p.AuthService, cfg.Session, logg))
		})

		r.Route("/announcements", func(r chi.Router) {
			r.Get("/", controllers.ListAnnouncements(p.AnnouncementsService, logg))
			r.Get("/{id}", controllers.GetAnnouncement(p.AnnouncementsService, p.CommentsService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireUser(logg))
				r.With(middleware.RequireRole(enums.UserRoleFaculty, logg)).
					Post("/", controllers.CreateAnnouncement(p.AnnouncementsService, logg))
				r.Put("/{id}", controllers.UpdateAnnouncement(p.AnnouncementsService, logg))
				r.Delete("/{id}", controllers.DeleteAnnouncement(p.AnnouncementsService, logg))
				r.Post("/{id}/comments", controllers.CreateComment(p.CommentsService, logg))
				r.Delete("/{id}/comments/{commentId}", controllers.DeleteComment(p.CommentsService, logg))
				r.Post("/{id}/like", controllers.ToggleLike(p.LikesService, logg))
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser(logg))

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", controllers.ListNotifications(p.NotificationsService, logg))
				r.Post("/{id}/read", controllers.MarkNotificationRead(p.NotificationsService, logg))
				r.Post("/read-all", controllers.MarkAllNotificationsRead(p.NotificationsService, logg))
			})

			r.Route("/subscriptions", func(r chi.Router) {
				r.Get("/", controllers.SubscriptionStatus(p.SubscriptionsService, logg))
				r.Post("/", controllers.UpdateSubscription(p.SubscriptionsService, logg))
				r.Delete("/", controllers.RemoveSubscriptionEndpoint(p.SubscriptionsService, logg))
			})
		})
	})

	return r
}
