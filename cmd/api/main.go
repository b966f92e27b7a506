package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/campuskit/campusboard-backend/api/routes"
	"github.com/campuskit/campusboard-backend/internal/announcements"
	"github.com/campuskit/campusboard-backend/internal/auth"
	"github.com/campuskit/campusboard-backend/internal/comments"
	"github.com/campuskit/campusboard-backend/internal/fanout"
	"github.com/campuskit/campusboard-backend/internal/likes"
	"github.com/campuskit/campusboard-backend/internal/notifications"
	"github.com/campuskit/campusboard-backend/internal/subscriptions"
	"github.com/campuskit/campusboard-backend/internal/users"
	"github.com/campuskit/campusboard-backend/pkg/auth/session"
	"github.com/campuskit/campusboard-backend/pkg/config"
	"github.com/campuskit/campusboard-backend/pkg/db"
	"github.com/campuskit/campusboard-backend/pkg/logger"
	"github.com/campuskit/campusboard-backend/pkg/metrics"
	"github.com/campuskit/campusboard-backend/pkg/migrate"
	"github.com/campuskit/campusboard-backend/pkg/redis"
	"github.com/campuskit/campusboard-backend/pkg/webpush"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.Session)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	usersRepo := users.NewRepository(dbClient.DB())
	subscriptionsRepo := subscriptions.NewRepository(dbClient.DB())
	notificationsRepo := notifications.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		SessionConfig:  cfg.Session,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	var sender webpush.Sender
	if cfg.WebPush.Enabled() {
		pushClient, err := webpush.New(context.Background(), cfg.WebPush, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create web push client", err)
			os.Exit(1)
		}
		sender = pushClient
	} else {
		logg.Warn(context.Background(), "VAPID keys missing, push delivery disabled")
	}

	engine, err := fanout.NewEngine(fanout.Params{
		Subscribers: subscriptionsRepo,
		Ledger:      notificationsRepo,
		Sender:      sender,
		Logger:      logg,
		Metrics:     metrics.NewPushMetrics(prometheus.DefaultRegisterer),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create fanout engine", err)
		os.Exit(1)
	}

	announcementsService, err := announcements.NewService(announcements.NewRepository(dbClient.DB()), engine)
	if err != nil {
		logg.Error(context.Background(), "failed to create announcements service", err)
		os.Exit(1)
	}
	commentsService, err := comments.NewService(comments.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create comments service", err)
		os.Exit(1)
	}
	likesService, err := likes.NewService(likes.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create likes service", err)
		os.Exit(1)
	}
	notificationsService, err := notifications.NewService(notificationsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}
	subscriptionsService, err := subscriptions.NewService(subscriptionsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create subscriptions service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Params{
			Config:               cfg,
			Logger:               logg,
			DB:                   dbClient,
			Redis:                redisClient,
			Sessions:             sessionManager,
			Users:                usersRepo,
			AuthService:          authService,
			AnnouncementsService: announcementsService,
			CommentsService:      commentsService,
			LikesService:         likesService,
			NotificationsService: notificationsService,
			SubscriptionsService: subscriptionsService,
		}),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		<-stopCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "server shutdown failed", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}

	// let in-flight push deliveries finish before exiting
	engine.Wait()
	logg.Info(ctx, "api server shut down gracefully")
}
