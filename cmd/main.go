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
	_ "github.com/lib/pq"

	"github.com/Dosada05/college-cricket/config"
	"github.com/Dosada05/college-cricket/db"
	"github.com/Dosada05/college-cricket/events"
	"github.com/Dosada05/college-cricket/handlers"
	"github.com/Dosada05/college-cricket/repositories"
	api "github.com/Dosada05/college-cricket/routes"
	"github.com/Dosada05/college-cricket/services"
	"github.com/Dosada05/college-cricket/storage"
)

// @title College Cricket API
// @version 1.0
// @description Teams, players, tournaments, matches and leaderboards for college cricket.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключение к базе данных
	connectCtx, cancelConnect := context.WithTimeout(ctx, 5*time.Second)
	dbConn, err := db.Connect(connectCtx, cfg.DatabaseURL, db.DefaultPool(cfg.DBMaxOpenConns))
	cancelConnect()
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if cfg.AutoMigrate {
		migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		err := db.Migrate(migrateCtx, dbConn)
		cancel()
		if err != nil {
			logger.Error("failed to apply schema", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("database schema up to date")
	}

	// Инициализация загрузчика файлов (Cloudflare R2)
	uploader := storage.NewDisabledUploader()
	if cfg.R2Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 is not configured, logo and photo uploads are disabled")
	}

	// Инициализация WebSocket Hub
	wsHub := events.NewHub()
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	var publisher events.Publisher = wsHub
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Error("failed to connect to AMQP broker", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := amqpPublisher.Close(); err != nil {
				logger.Error("failed to close AMQP connection", slog.Any("error", err))
			}
		}()
		publisher = events.MultiPublisher{wsHub, amqpPublisher}
		logger.Info("AMQP publisher started", slog.String("exchange", cfg.AMQPExchange))
	}

	// Инициализация репозиториев
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	membershipRepo := repositories.NewPostgresMembershipRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	logger.Info("Repositories initialized")

	// Инициализация сервисов
	authService := services.NewAuthService(userRepo)
	teamService := services.NewTeamService(teamRepo, playerRepo, uploader)
	playerService := services.NewPlayerService(playerRepo, uploader)
	tournamentService := services.NewTournamentService(tournamentRepo, teamRepo, membershipRepo, matchRepo)
	rosterService := services.NewRosterService(tournamentRepo, teamRepo, membershipRepo, uploader, publisher)
	matchService := services.NewMatchService(matchRepo, teamRepo, uploader, publisher)
	fixtureService := services.NewFixtureService(tournamentRepo, membershipRepo, matchRepo, publisher)
	leaderboardService := services.NewLeaderboardService(playerRepo, teamRepo, uploader)
	dashboardService := services.NewDashboardService(playerRepo, teamRepo, tournamentRepo, matchRepo, uploader)
	logger.Info("Services initialized")

	// Инициализация обработчиков HTTP
	router := chi.NewRouter()
	api.SetupRoutes(router, []byte(cfg.JWTSecretKey), cfg.CORSAllowedOrigins, api.Handlers{
		Auth:        handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		Team:        handlers.NewTeamHandler(teamService, playerService),
		Player:      handlers.NewPlayerHandler(playerService),
		Tournament:  handlers.NewTournamentHandler(tournamentService),
		Roster:      handlers.NewRosterHandler(rosterService),
		Match:       handlers.NewMatchHandler(matchService),
		Fixture:     handlers.NewFixtureHandler(fixtureService),
		Leaderboard: handlers.NewLeaderboardHandler(leaderboardService),
		Dashboard:   handlers.NewDashboardHandler(dashboardService),
		WebSocket:   handlers.NewWebSocketHandler(wsHub, tournamentService, cfg.CORSAllowedOrigins),
	})
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
