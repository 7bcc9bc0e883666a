package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskflow-api/internal/auth"
	"github.com/BuzzLyutic/taskflow-api/internal/config"
	"github.com/BuzzLyutic/taskflow-api/internal/handler"
	"github.com/BuzzLyutic/taskflow-api/internal/mailer"
	"github.com/BuzzLyutic/taskflow-api/internal/notify"
	"github.com/BuzzLyutic/taskflow-api/internal/realtime"
	"github.com/BuzzLyutic/taskflow-api/internal/repo"
	"github.com/BuzzLyutic/taskflow-api/internal/service"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg := config.Load()

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to Database", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		logger.Fatal("Failed to ping the Database", zap.Error(err))
	}
	logger.Info("Successfully connected to the Database!")

	taskRepo := repo.NewTaskRepo(pool)
	projectRepo := repo.NewProjectRepo(pool)
	userRepo := repo.NewUserRepo(pool)
	notificationRepo := repo.NewNotificationRepo(pool)

	hub := realtime.NewHub(cfg.RealtimeWriteWait, cfg.CORSAllowedOrigins, logger)

	var email notify.EmailGateway
	if cfg.EmailEnabled() {
		email = mailer.NewSMTP(cfg.SMTP)
		logger.Info("Email delivery via SMTP", zap.String("host", cfg.SMTP.Host), zap.String("port", cfg.SMTP.Port))
	} else {
		email = mailer.NewLogGateway(logger)
		logger.Warn("SMTP_HOST is not set, emails will only be logged")
	}

	notifier := notify.NewNotifier(
		notify.NewResolver(userRepo, projectRepo, logger),
		notify.NewDispatcher(notificationRepo, userRepo, projectRepo, hub, email, logger),
		logger,
	)

	taskService := service.NewTaskService(taskRepo, projectRepo, userRepo, notifier, logger)
	notificationService := service.NewNotificationService(notificationRepo, logger)

	taskHandler := handler.NewTaskHandler(taskService, logger)
	notificationHandler := handler.NewNotificationHandler(notificationService, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok"}`)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(auth.GatewayHeaders{}))

		r.Route("/task", taskHandler.Routes)
		r.Route("/notification", notificationHandler.Routes)
		r.With(auth.Authorize(auth.OpRealtimeConnect)).Get("/ws", hub.ServeHTTP)
	})

	srv := http.Server{
		Addr: ":" + cfg.Port,
		Handler: cors.New(cors.Options{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
			AllowedHeaders:   []string{"Origin", "Accept", "Content-Type", "Authorization", auth.HeaderUserID, auth.HeaderUserRole},
			AllowCredentials: true,
		}).Handler(r),
		ReadTimeout: 10 * time.Second,
		// Dispatch runs inside the request, so writes wait on every channel.
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("Server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	hub.Close()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error", zap.Error(err))
	}
	logger.Info("Server stopped successfully!")
}
