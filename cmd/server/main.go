package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"sheba-admin/docs" // swagger docs
	"sheba-admin/internal/audit"
	"sheba-admin/internal/auth"
	"sheba-admin/internal/cache"
	"sheba-admin/internal/config"
	"sheba-admin/internal/db"
	"sheba-admin/internal/handler"
	"sheba-admin/internal/logging"
	"sheba-admin/internal/model"
	"sheba-admin/internal/repository"
	"sheba-admin/internal/router"
	"sheba-admin/internal/service"
	"sheba-admin/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

// @title Sheba Admin API
// @version 1.0
// @description Admin backend for clients, projects, careers, content, communication, dashboard and settings.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logging.Init(cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTelEndpoint, router.ServiceName)
	if err != nil {
		log.Fatal().Err(err).Msg("telemetry init")
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	// Drop tables if RESET_DB environment variable is set
	if cfg.ResetDB {
		log.Warn().Msg("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			log.Fatal().Err(err).Msg("reset database")
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, running without cache")
	}

	auditLog := audit.NewLog(
		repository.NewStore[model.ActivityLog](gormDB),
		repository.NewStore[model.SystemLog](gormDB),
	)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	userService := service.NewUserService(gormDB, cacheClient, auditLog, cfg.UserCacheTTL)
	authService := service.NewAuthService(
		repository.NewUserRepository(gormDB),
		repository.NewSessionRepository(gormDB),
		userService,
		jwtService,
		tokenStore,
		auditLog,
	)
	projectService := service.NewProjectService(gormDB, auditLog)
	clientService := service.NewClientService(gormDB, auditLog)
	careersService := service.NewCareersService(gormDB, auditLog)
	contentService := service.NewContentService(gormDB, auditLog)
	communicationService := service.NewCommunicationService(gormDB, auditLog)
	dashboardService := service.NewDashboardService(gormDB, cacheClient, auditLog, cfg.OverviewCacheTTL)
	settingsService := service.NewSettingsService(gormDB, cacheClient, auditLog)

	e := echo.New()
	e.HideBanner = true

	// Register routes
	router.Register(e, cfg, router.Handlers{
		Auth:          handler.NewAuthHandler(authService, userService),
		Users:         handler.NewUserHandler(userService),
		Projects:      handler.NewProjectHandler(projectService),
		Clients:       handler.NewClientHandler(clientService),
		Careers:       handler.NewCareersHandler(careersService),
		Content:       handler.NewContentHandler(contentService),
		Communication: handler.NewCommunicationHandler(communicationService),
		Dashboard:     handler.NewDashboardHandler(dashboardService),
		Settings:      handler.NewSettingsHandler(settingsService),
		Public:        handler.NewPublicHandler(careersService, contentService, projectService, communicationService),
	}, authService, jwtService, auditLog)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}
	log.Info().Str("url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html").Msg("Swagger documentation available")

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	auditLog.Close()
	if err := cacheClient.Close(); err != nil {
		log.Warn().Err(err).Msg("close redis")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("flush traces")
	}
}
