package http

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/smartcity/aqdash/internal/domain"
	"github.com/smartcity/aqdash/internal/service"
)

const dateLayout = "2006-01-02"

// parseCriteria builds FilterCriteria from query parameters, falling back
// to the control defaults for anything not given.
//
//	cities      comma separated; absent selects the defaults, present but
//	            empty selects nothing
//	all_cities  true selects every city
//	from, to    YYYY-MM-DD, inclusive
//	aqi_min, aqi_max
func parseCriteria(c *fiber.Ctx, ctl domain.Controls) (domain.FilterCriteria, error) {
	crit := ctl.Criteria()

	if c.Context().QueryArgs().Has("cities") {
		crit.Cities = splitList(c.Query("cities"))
	}
	if v := c.Query("all_cities"); v != "" {
		all, err := strconv.ParseBool(v)
		if err != nil {
			return crit, fiber.NewError(fiber.StatusBadRequest, "Invalid all_cities: "+v)
		}
		crit.AllCities = all
	}

	var err error
	if crit.Start, err = queryDate(c, "from", crit.Start); err != nil {
		return crit, err
	}
	if crit.End, err = queryDate(c, "to", crit.End); err != nil {
		return crit, err
	}
	if crit.MinAQI, err = queryFloat(c, "aqi_min", crit.MinAQI); err != nil {
		return crit, err
	}
	if crit.MaxAQI, err = queryFloat(c, "aqi_max", crit.MaxAQI); err != nil {
		return crit, err
	}
	if err := crit.Validate(); err != nil {
		return crit, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return crit, nil
}

func parseTrend(c *fiber.Ctx) (service.TrendRequest, error) {
	tr := service.TrendRequest{
		City:   strings.TrimSpace(c.Query("trend_city")),
		Metric: strings.TrimSpace(c.Query("metric", domain.MetricAQI)),
	}
	if !domain.IsMetric(tr.Metric) {
		return tr, fiber.NewError(fiber.StatusBadRequest, "Unknown metric: "+tr.Metric)
	}
	return tr, nil
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func queryDate(c *fiber.Ctx, key string, def time.Time) (time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return def, fiber.NewError(fiber.StatusBadRequest, "Invalid "+key+": expected YYYY-MM-DD")
	}
	return t, nil
}

func queryFloat(c *fiber.Ctx, key string, def float64) (float64, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, fiber.NewError(fiber.StatusBadRequest, "Invalid "+key+": "+v)
	}
	return f, nil
}
