package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartcity/aqdash/internal/charts"
	"github.com/smartcity/aqdash/internal/config"
	"github.com/smartcity/aqdash/internal/delivery/http"
	"github.com/smartcity/aqdash/internal/domain"
	"github.com/smartcity/aqdash/internal/repository/csvfile"
	"github.com/smartcity/aqdash/internal/repository/memory"
	"github.com/smartcity/aqdash/internal/repository/postgres"
	"github.com/smartcity/aqdash/internal/service"
)

// App wires the dataset source, services and HTTP server together.
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	pool      *pgxpool.Pool
	provider  *service.DatasetProvider
	dashboard *service.DashboardService
	fiber     *fiber.App
}

// New builds the configured data source and loads the dataset once.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	source, err := a.openSource(ctx)
	if err != nil {
		return nil, err
	}

	// Dependency Injection: Services
	a.provider = service.NewDatasetProvider(source, logger)
	loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := a.provider.Load(loadCtx); err != nil {
		a.Close()
		return nil, err
	}
	a.dashboard = service.NewDashboardService(a.provider, cfg.DefaultCityCount)
	return a, nil
}

func (a *App) openSource(ctx context.Context) (domain.DatasetSource, error) {
	switch a.cfg.DataSource {
	case config.SourcePostgres:
		connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		pool, err := pgxpool.New(connCtx, a.cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("app: connect postgres: %w", err)
		}
		log.Println("Connected to PostgreSQL")
		a.pool = pool
		return postgres.NewPostgresRepository(pool, a.cfg.Table), nil
	case config.SourceMemory:
		log.Println("Running with built-in demo data")
		return memory.NewDemoRepository(), nil
	default:
		return csvfile.NewSource(a.cfg.CSVPath), nil
	}
}

// Dashboard exposes the dashboard service for the CLI commands
func (a *App) Dashboard() *service.DashboardService { return a.dashboard }

// ChartSize returns the configured chart dimensions
func (a *App) ChartSize() charts.Size {
	return charts.Size{Width: a.cfg.ChartWidth, Height: a.cfg.ChartHeight}
}

// Fiber builds the HTTP application on first use.
func (a *App) Fiber() *fiber.App {
	if a.fiber != nil {
		return a.fiber
	}
	app := fiber.New(fiber.Config{
		AppName:               "AQDash API v1.0",
		ReadTimeout:           time.Duration(a.cfg.ReadTimeoutSec) * time.Second,
		WriteTimeout:          time.Duration(a.cfg.WriteTimeoutSec) * time.Second,
		ErrorHandler:          http.CustomErrorHandler,
		DisableStartupMessage: a.cfg.Env == "production",
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Routes
	http.SetupRoutes(app, a.dashboard, a.ChartSize(), a.cfg.PreviewRows)
	a.fiber = app
	return app
}

// Run serves HTTP until ctx is cancelled, reloading the CSV on change when
// watch_dataset is set.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.WatchDataset {
		if a.cfg.DataSource == config.SourceCSV {
			if err := a.provider.Watch(ctx, a.cfg.CSVPath); err != nil {
				return err
			}
			a.logger.Info("watching dataset", "path", a.cfg.CSVPath)
		} else {
			a.logger.Warn("watch_dataset ignored for non-file source", "data_source", a.cfg.DataSource)
		}
	}

	app := a.Fiber()
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on :%s", a.cfg.Port)
		errCh <- app.Listen(":" + a.cfg.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("app: server error: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited gracefully")
	return nil
}

// Close releases the database pool, if any
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
	}
}
