package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/KOFI-GYIMAH/portfolio/docs"
	"github.com/KOFI-GYIMAH/portfolio/internal/config"
	"github.com/KOFI-GYIMAH/portfolio/internal/db"
	"github.com/KOFI-GYIMAH/portfolio/internal/github"
	"github.com/KOFI-GYIMAH/portfolio/internal/handler"
	md "github.com/KOFI-GYIMAH/portfolio/internal/middleware"
	"github.com/KOFI-GYIMAH/portfolio/internal/models"
	"github.com/KOFI-GYIMAH/portfolio/internal/queue"
	"github.com/KOFI-GYIMAH/portfolio/internal/service"
	"github.com/KOFI-GYIMAH/portfolio/internal/worker"
	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Portfolio Cards Service
// @version 1.0.0
// @description Project cards fetched from GitHub and per-visitor theme preferences.
// @host localhost:8081
// @BasePath /v1
func main() {
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.LevelDebug)
	}

	// * Load configuration
	cfg, err := config.LoadConfiguration()
	if err != nil {
		logger.Error("‼️ Failed to load config: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// * Preference storage is optional: without it every visitor starts on light
	var database models.Database
	if cfg.DBURL != "" {
		pg, err := db.NewPostgresDB(cfg.DBURL)
		if err != nil {
			logger.Error("Failed to initialize database, theme preferences will not persist: %v", err)
		} else if err := pg.Migrate("file://migrations"); err != nil {
			logger.Error("Failed to run migrations, theme preferences will not persist: %v", err)
			pg.Close()
		} else {
			logger.Info("Successfully ran migrations")
			database = pg
			defer pg.Close()
		}
	} else {
		logger.Warn("DB_URL not set, theme preferences will not persist")
	}

	// * Initialize GitHub client
	var opts []github.Option
	if cfg.StrictStatus {
		opts = append(opts, github.WithStrictStatus())
	}
	if cfg.FetchTimeout > 0 {
		opts = append(opts, github.WithTimeout(cfg.FetchTimeout))
	}
	githubClient := github.NewClient(cfg.GitHubToken, opts...)

	// * Refresh requests go through RabbitMQ when configured
	var broker *queue.RabbitMQ
	var publisher service.RefreshPublisher
	if cfg.RabbitMQURL != "" {
		broker, err = queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			logger.Error("Failed to initialize RabbitMQ, refreshing in-process: %v", err)
		} else {
			defer broker.Close()
			publisher = broker
		}
	}

	// * Create services
	projectsService := service.NewProjectsService(ctx, githubClient, publisher)
	themeService := service.NewThemeService(database)

	projectsService.Start(cfg.Repositories)
	defer projectsService.Shutdown()

	if broker != nil {
		if err := broker.ConsumeRefreshRequests(ctx, projectsService.ApplyRefresh); err != nil {
			logger.Error("Failed to consume refresh requests: %v", err)
		}
	}

	if cfg.RefreshInterval > 0 {
		w := worker.NewRefreshWorker(projectsService, cfg.RefreshInterval)
		go w.Run(ctx)
	}

	// * Create API server
	portfolioHandler := handler.NewPortfolioHandler(projectsService, themeService)
	router := mux.NewRouter()
	router.Use(md.VisitorMiddleware)
	router.Use(md.LoggingMiddleware)

	api := router.PathPrefix("/v1").Subrouter()
	portfolioHandler.RegisterRoutes(api)
	router.PathPrefix("/v1/swagger/").Handler(httpSwagger.WrapHandler)
	portfolioHandler.RegisterPages(router)

	server := &http.Server{
		Addr:              cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting API server on %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("API server error: %v", err)
			os.Exit(1)
		}
	}()

	// * Wait for termination signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	cancel()

	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}
