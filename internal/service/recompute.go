package service

import (
	"github.com/smartcity/aqdash/internal/domain"
)

// Recompute runs the whole pipeline for one interaction. It is a pure
// function of its inputs and may be called concurrently.
func Recompute(ds domain.Dataset, c domain.FilterCriteria) domain.Result {
	view := Filter(ds, c)
	means := CityMeans(view)
	return domain.Result{
		Criteria:  c,
		View:      view,
		Summary:   Summarize(view),
		CityMeans: means,
		Insights:  deriveInsights(view, means),
	}
}
