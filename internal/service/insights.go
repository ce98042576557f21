package service

import (
	"fmt"

	"github.com/smartcity/aqdash/internal/domain"
)

// DeriveInsights produces the highest-AQI city and highest-PM2.5 day facts.
func DeriveInsights(v domain.FilteredView) domain.Insights {
	return deriveInsights(v, CityMeans(v))
}

func deriveInsights(v domain.FilteredView, means []domain.CityMean) domain.Insights {
	var items []domain.Insight
	if !v.Empty() {
		if len(means) > 0 {
			items = append(items, domain.Insight{
				Kind: domain.InsightHighestAQICity,
				Text: fmt.Sprintf("City with highest average AQI: %s", means[0].City),
			})
		}
		if r, ok := maxPM25Record(v); ok {
			items = append(items, domain.Insight{
				Kind: domain.InsightHighestPM25Day,
				Text: fmt.Sprintf("Day with highest PM2.5: %s", r.Date.Format("2006-01-02")),
			})
		}
	}
	if len(items) == 0 {
		return domain.Insights{Items: []domain.Insight{}, Message: domain.NoInsightsMessage}
	}
	return domain.Insights{Items: items, Available: true}
}

// maxPM25Record returns the first record holding the largest PM2.5 value.
func maxPM25Record(v domain.FilteredView) (domain.Record, bool) {
	var (
		best  domain.Record
		found bool
	)
	for _, r := range v.Records {
		if r.PM25 == nil {
			continue
		}
		if !found || *r.PM25 > *best.PM25 {
			best = r
			found = true
		}
	}
	return best, found
}
