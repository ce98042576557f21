package service

import (
	"fmt"

	"github.com/smartcity/aqdash/internal/domain"
)

// TrendNoDataMessage is reported when the trend city has no rows in the view
const TrendNoDataMessage = "No data available for the selected filters."

// Trend extracts metric values over time for one city of the view.
// Rows where the metric is missing are skipped.
func Trend(v domain.FilteredView, city, metric string) (domain.TrendSeries, error) {
	if !domain.IsMetric(metric) {
		return domain.TrendSeries{}, fmt.Errorf("%w: %q", domain.ErrUnknownMetric, metric)
	}
	series := domain.TrendSeries{City: city, Metric: metric, Points: []domain.TrendPoint{}}
	rows := 0
	for _, r := range v.Records {
		if r.City != city {
			continue
		}
		rows++
		val := r.Value(metric)
		if val == nil {
			continue
		}
		series.Points = append(series.Points, domain.TrendPoint{Date: r.Date, Value: *val})
	}
	if rows == 0 {
		series.Message = TrendNoDataMessage
	}
	return series, nil
}

// Scatter pairs PM2.5 with temperature for every row holding both.
func Scatter(v domain.FilteredView) []domain.ScatterPoint {
	out := make([]domain.ScatterPoint, 0, v.Len())
	for _, r := range v.Records {
		if r.PM25 == nil || r.Temperature == nil {
			continue
		}
		out = append(out, domain.ScatterPoint{
			City:        r.City,
			Date:        r.Date,
			AQI:         r.AQI,
			PM25:        *r.PM25,
			Temperature: *r.Temperature,
		})
	}
	return out
}
