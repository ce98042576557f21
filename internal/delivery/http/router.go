package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartcity/aqdash/internal/charts"
	"github.com/smartcity/aqdash/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, dashboardSvc *service.DashboardService, chartSize charts.Size, previewRows int) {
	handler := NewHandler(dashboardSvc, chartSize, previewRows)

	// Health check and metrics
	app.Get("/health", handler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API v1 routes
	api := app.Group("/api/v1")
	{
		api.Get("/controls", handler.GetControls)
		api.Get("/dashboard", handler.GetDashboard)
		api.Get("/records", handler.GetRecords)
		api.Get("/preview", handler.GetPreview)
		api.Get("/describe", handler.GetDescribe)
		api.Get("/export", handler.Export)

		// Chart images
		api.Get("/charts/trend.png", handler.TrendChart)
		api.Get("/charts/city-aqi.png", handler.CityAQIChart)
		api.Get("/charts/scatter.png", handler.ScatterChart)
	}
}

// CustomErrorHandler renders errors as JSON
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
