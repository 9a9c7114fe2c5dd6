package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"myStarCompanion/app/echo-server/metrics"
	"myStarCompanion/app/echo-server/router"
	"myStarCompanion/business/character"
	"myStarCompanion/business/collection"
	"myStarCompanion/business/currency"
	"myStarCompanion/business/lightcone"
	"myStarCompanion/business/material"
	"myStarCompanion/business/optimizer"
	"myStarCompanion/business/relic"
	userService "myStarCompanion/business/user"
	"myStarCompanion/internal/middleware"
	"myStarCompanion/internal/repository/notification"
	psqlRepo "myStarCompanion/internal/repository/postgres"
	redisRepo "myStarCompanion/internal/repository/redis"
	"myStarCompanion/internal/rest"
	"myStarCompanion/pkg/config"
	"myStarCompanion/pkg/database"
	redisClient "myStarCompanion/pkg/database/redis"
	"myStarCompanion/pkg/logger"
	optimizerMetrics "myStarCompanion/pkg/metrics"
	"myStarCompanion/pkg/utils"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var logWriters []io.Writer
	if cfg.App.LogFile != "" {
		f, err := os.OpenFile(cfg.App.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		logWriters = append(logWriters, f)
	}

	logger.Init(cfg.App.Environment, logWriters...)
	logger.Info("Starting "+cfg.App.Name, "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey, cfg.JWT.TTL)
	metrics.Init()
	optimizerMetrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	logger.Info("Database connected successfully")

	rdb, err := redisClient.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}
	defer func() {
		if err := redisClient.CloseRedisClient(rdb); err != nil {
			logger.Error("Failed to close redis", "error", err)
		}
	}()

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(cfg.Mailjet)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	characterRepo := psqlRepo.NewCharacterRepository(db)
	lightConeRepo := psqlRepo.NewLightConeRepository(db)
	relicRepo := psqlRepo.NewRelicRepository(db)
	currencyRepo := psqlRepo.NewCurrencyRepository(db)
	materialRepo := psqlRepo.NewMaterialRepository(db)
	collectionRepo := psqlRepo.NewCollectionRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(rdb)
	optimizationCache := redisRepo.NewOptimizationCache(rdb, cfg.Optimizer.CacheTTL)

	// Init service
	userService := userService.NewUserService(userRepo, validate, mailjetEmail, tokenRepo, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	characterService := character.NewCharacterService(characterRepo, validate)
	lightConeService := lightcone.NewLightConeService(lightConeRepo, validate)
	currencyService := currency.NewCurrencyService(currencyRepo)
	materialService := material.NewMaterialService(materialRepo, validate)
	optimizerService := optimizer.NewService(collectionRepo, optimizationCache)
	relicService := relic.NewRelicService(relicRepo, validate, optimizerService.HandleChange)
	collectionService := collection.NewCollectionService(
		collectionRepo,
		collection.Catalog{
			Relics:     relicRepo,
			Characters: characterRepo,
			LightCones: lightConeRepo,
			Currencies: currencyRepo,
			Materials:  materialRepo,
		},
		validate,
		optimizerService.HandleChange,
	)

	// Init handler
	userHandler := rest.NewUserHandler(userService)
	characterHandler := rest.NewCharacterHandler(characterService)
	lightConeHandler := rest.NewLightConeHandler(lightConeService)
	relicHandler := rest.NewRelicHandler(relicService)
	currencyHandler := rest.NewCurrencyHandler(currencyService)
	materialHandler := rest.NewMaterialHandler(materialService)
	collectionHandler := rest.NewCollectionHandler(collectionService)
	optimizerHandler := rest.NewOptimizerHandler(optimizerService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(metrics.Middleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.App.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"version": cfg.App.Version,
		})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddleware(userService)
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly)
	router.SetupCharacterRoutes(api, characterHandler, authRequired, adminOnly)
	router.SetupLightConeRoutes(api, lightConeHandler, authRequired, adminOnly)
	router.SetupRelicRoutes(api, relicHandler, authRequired, adminOnly)
	router.SetupCurrencyRoutes(api, currencyHandler, authRequired, adminOnly)
	router.SetupMaterialRoutes(api, materialHandler, authRequired, adminOnly)
	router.SetupCollectionRoutes(api, collectionHandler, authRequired)
	router.SetupOptimizerRoutes(api, optimizerHandler, authRequired)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("Server stopped")
}
