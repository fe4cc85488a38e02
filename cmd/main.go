package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/power-play/config"
	"github.com/Dosada05/power-play/db"
	"github.com/Dosada05/power-play/handlers"
	"github.com/Dosada05/power-play/i18n"
	"github.com/Dosada05/power-play/push"
	"github.com/Dosada05/power-play/realtime"
	"github.com/Dosada05/power-play/repositories"
	api "github.com/Dosada05/power-play/routes"
	"github.com/Dosada05/power-play/services"
	"github.com/Dosada05/power-play/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("application failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.Migrate(ctx, dbConn); err != nil {
		return err
	}

	// Без R2 сервер работает, но загрузка картинок отвечает 503.
	var uploader storage.FileUploader
	r2Config := storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	}
	if r2Config.Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, r2Config)
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("Cloudflare R2 is not configured, image uploads are disabled")
	}

	var sender push.Sender = push.NopSender{}
	if cfg.VAPIDConfigured() {
		sender, err = push.NewWebPushSender(push.VAPIDConfig{
			PublicKey:  cfg.VAPIDPublicKey,
			PrivateKey: cfg.VAPIDPrivateKey,
			Subject:    cfg.VAPIDSubject,
		}, nil)
		if err != nil {
			return fmt.Errorf("failed to initialize web push: %w", err)
		}
	} else {
		logger.Warn("VAPID keys are not configured, push notifications are disabled")
	}

	translator, err := i18n.NewTranslator()
	if err != nil {
		return fmt.Errorf("failed to build message catalog: %w", err)
	}

	hub := realtime.NewHub(logger)
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go hub.Run(hubCtx)
	logger.Info("WebSocket hub started")

	// Репозитории
	profileRepo := repositories.NewPostgresProfileRepository(dbConn)
	clubRepo := repositories.NewPostgresClubRepository(dbConn)
	rinkRepo := repositories.NewPostgresRinkRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	participantRepo := repositories.NewPostgresParticipantRepository(dbConn)
	pointRepo := repositories.NewPostgresPointRepository(dbConn)
	chatRepo := repositories.NewPostgresChatRepository(dbConn)
	auditRepo := repositories.NewPostgresAuditRepository(dbConn)
	pushRepo := repositories.NewPostgresPushRepository(dbConn)
	transactor := repositories.NewTransactor(dbConn)

	// Сервисы
	notificationService := services.NewNotificationService(pushRepo, profileRepo, sender, translator, cfg.VAPIDPublicKey, logger)
	auditService := services.NewAuditService(auditRepo, notificationService, logger)
	authService := services.NewAuthService(profileRepo)
	profileService := services.NewProfileService(profileRepo, uploader, logger)
	clubService := services.NewClubService(clubRepo, profileRepo, transactor, uploader, notificationService, auditService, logger)
	rinkService := services.NewRinkService(rinkRepo, auditService)
	matchService := services.NewMatchService(
		matchRepo,
		participantRepo,
		rinkRepo,
		clubRepo,
		profileRepo,
		pointRepo,
		transactor,
		uploader,
		notificationService,
		auditService,
		logger,
	)
	participantService := services.NewParticipantService(
		participantRepo,
		matchRepo,
		profileRepo,
		pointRepo,
		transactor,
		notificationService,
		auditService,
		logger,
	)
	pointService := services.NewPointService(pointRepo, profileRepo, participantRepo, transactor, notificationService, auditService, logger)
	chatService := services.NewChatService(chatRepo, profileRepo, transactor, hub, notificationService, logger)
	adminService := services.NewAdminService(profileRepo, matchRepo, pointRepo, clubRepo, auditService)
	logger.Info("services initialized")

	scheduler, err := services.NewMatchScheduler(matchService, logger)
	if err != nil {
		return err
	}
	if err := scheduler.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			logger.Error("failed to stop scheduler", slog.Any("error", err))
		}
	}()

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Auth:        handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		Profile:     handlers.NewProfileHandler(profileService),
		Club:        handlers.NewClubHandler(clubService),
		Rink:        handlers.NewRinkHandler(rinkService),
		Match:       handlers.NewMatchHandler(matchService),
		Participant: handlers.NewParticipantHandler(participantService),
		Point:       handlers.NewPointHandler(pointService),
		Chat:        handlers.NewChatHandler(chatService),
		WebSocket:   handlers.NewWebSocketHandler(hub, chatService, cfg.CORSAllowedOrigins, logger),
		Push:        handlers.NewPushHandler(notificationService),
		Admin:       handlers.NewAdminHandler(adminService, auditService),
		Meta:        handlers.NewMetaHandler(dbConn, translator),
	}, api.Options{
		JWTSecret:      []byte(cfg.JWTSecretKey),
		Profiles:       profileRepo,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("server stopped gracefully")
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
		} else {
			logger.Info("server shutdown complete")
		}
	}

	// Хаб закрывает websocket-клиентов, затем дожидаемся фоновых push-рассылок.
	stopHub()
	notificationService.Wait()
	return nil
}
