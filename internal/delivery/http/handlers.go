package http

import (
	"bytes"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/smartcity/aqdash/internal/charts"
	"github.com/smartcity/aqdash/internal/csvio"
	"github.com/smartcity/aqdash/internal/domain"
	"github.com/smartcity/aqdash/internal/service"
)

// Handler contains all HTTP handlers
type Handler struct {
	dashboardSvc *service.DashboardService
	chartSize    charts.Size
	previewRows  int
}

// NewHandler creates a new handler
func NewHandler(dashboardSvc *service.DashboardService, chartSize charts.Size, previewRows int) *Handler {
	return &Handler{
		dashboardSvc: dashboardSvc,
		chartSize:    chartSize,
		previewRows:  previewRows,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	status := "ok"
	code := fiber.StatusOK
	if err := h.dashboardSvc.Health(c.Context()); err != nil {
		log.Printf("Health check failed: %v", err)
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}

	body := fiber.Map{
		"status":  status,
		"service": "aqdash",
		"version": "1.0.0",
	}
	if ds, err := h.dashboardSvc.Dataset(); err == nil {
		body["dataset"] = ds
	}
	return c.Status(code).JSON(body)
}

// GetControls returns the filter widget bounds and defaults
func (h *Handler) GetControls(c *fiber.Ctx) error {
	ctl, err := h.dashboardSvc.GetControls(c.Context())
	if err != nil {
		return toFiberError(err, "Failed to build controls")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    ctl,
	})
}

// GetDashboard returns summary, city ranking, insights and chart data for the filters
func (h *Handler) GetDashboard(c *fiber.Ctx) error {
	ctx := c.Context()

	crit, err := h.criteria(c)
	if err != nil {
		return err
	}
	tr, err := parseTrend(c)
	if err != nil {
		return err
	}

	data, err := h.dashboardSvc.GetDashboardData(ctx, crit, tr)
	if err != nil {
		return toFiberError(err, "Failed to compute dashboard data")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// GetRecords returns a page of the filtered rows
func (h *Handler) GetRecords(c *fiber.Ctx) error {
	crit, err := h.criteria(c)
	if err != nil {
		return err
	}

	limit := c.QueryInt("limit", 100)
	if limit < 1 || limit > 10000 {
		limit = 100
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	records, total, err := h.dashboardSvc.GetRecords(c.Context(), crit, offset, limit)
	if err != nil {
		return toFiberError(err, "Failed to fetch records")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    records,
		"count":   len(records),
		"total":   total,
	})
}

// GetPreview returns the first rows of the dataset
func (h *Handler) GetPreview(c *fiber.Ctx) error {
	n := c.QueryInt("rows", h.previewRows)
	if n < 0 {
		n = h.previewRows
	}

	records, err := h.dashboardSvc.GetPreview(c.Context(), n)
	if err != nil {
		return toFiberError(err, "Failed to fetch preview")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    records,
		"count":   len(records),
	})
}

// GetDescribe returns summary statistics per numeric column
func (h *Handler) GetDescribe(c *fiber.Ctx) error {
	stats, err := h.dashboardSvc.GetDescribe(c.Context())
	if err != nil {
		return toFiberError(err, "Failed to describe dataset")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}

// Export downloads the filtered rows as CSV
func (h *Handler) Export(c *fiber.Ctx) error {
	crit, err := h.criteria(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if _, err := h.dashboardSvc.Export(c.Context(), crit, &buf); err != nil {
		return toFiberError(err, "Failed to export data")
	}

	c.Attachment(csvio.ExportFilename)
	c.Set(fiber.HeaderContentType, csvio.ExportMediaType)
	return c.Send(buf.Bytes())
}

// TrendChart renders the trend chart for the selected city and metric
func (h *Handler) TrendChart(c *fiber.Ctx) error {
	data, err := h.dashboardData(c)
	if err != nil {
		return err
	}
	return h.sendPNG(c, func() ([]byte, error) {
		return charts.Trend(data.Trend, h.chartSize)
	})
}

// CityAQIChart renders the average AQI by city bar chart
func (h *Handler) CityAQIChart(c *fiber.Ctx) error {
	data, err := h.dashboardData(c)
	if err != nil {
		return err
	}
	return h.sendPNG(c, func() ([]byte, error) {
		return charts.CityMeans(data.CityMeans, h.chartSize)
	})
}

// ScatterChart renders PM2.5 against temperature
func (h *Handler) ScatterChart(c *fiber.Ctx) error {
	data, err := h.dashboardData(c)
	if err != nil {
		return err
	}
	return h.sendPNG(c, func() ([]byte, error) {
		return charts.Scatter(data.Scatter, h.chartSize)
	})
}

func (h *Handler) criteria(c *fiber.Ctx) (domain.FilterCriteria, error) {
	ctl, err := h.dashboardSvc.GetControls(c.Context())
	if err != nil {
		return domain.FilterCriteria{}, toFiberError(err, "Failed to build controls")
	}
	return parseCriteria(c, ctl)
}

func (h *Handler) dashboardData(c *fiber.Ctx) (domain.DashboardData, error) {
	crit, err := h.criteria(c)
	if err != nil {
		return domain.DashboardData{}, err
	}
	tr, err := parseTrend(c)
	if err != nil {
		return domain.DashboardData{}, err
	}
	data, err := h.dashboardSvc.GetDashboardData(c.Context(), crit, tr)
	if err != nil {
		return domain.DashboardData{}, toFiberError(err, "Failed to compute dashboard data")
	}
	return data, nil
}

func (h *Handler) sendPNG(c *fiber.Ctx, render func() ([]byte, error)) error {
	img, err := render()
	if errors.Is(err, charts.ErrNoData) {
		c.Set("X-Chart-Empty", "true")
		img, err = charts.Placeholder(service.TrendNoDataMessage, h.chartSize)
	}
	if err != nil {
		log.Printf("Chart render failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render chart")
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(img)
}

// toFiberError maps service errors to HTTP status codes
func toFiberError(err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrInvalidValueRange),
		errors.Is(err, domain.ErrUnknownMetric):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotLoaded):
		return fiber.NewError(fiber.StatusServiceUnavailable, "Dataset not loaded")
	}
	log.Printf("%s: %v", fallback, err)
	return fiber.NewError(fiber.StatusInternalServerError, fallback)
}
