package service

import (
	"github.com/smartcity/aqdash/internal/domain"
)

// Filter returns the records of ds matching all three predicates of c,
// in dataset order. The dataset is not modified.
func Filter(ds domain.Dataset, c domain.FilterCriteria) domain.FilteredView {
	return filterRecords(ds.Records, c, citySet(ds, c))
}

// Refilter applies c to an existing view. Filtering a view with the
// criteria that produced it returns the same records.
func Refilter(v domain.FilteredView, c domain.FilterCriteria) domain.FilteredView {
	return filterRecords(v.Records, c, citySet(domain.Dataset{Records: v.Records}, c))
}

func citySet(ds domain.Dataset, c domain.FilterCriteria) map[string]struct{} {
	names := c.Cities
	if c.AllCities {
		names = ds.Cities()
	}
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

func filterRecords(records []domain.Record, c domain.FilterCriteria, cities map[string]struct{}) domain.FilteredView {
	out := make([]domain.Record, 0)
	if len(cities) == 0 {
		return domain.FilteredView{Records: out}
	}
	upper := c.UpperBound()
	for _, r := range records {
		if _, ok := cities[r.City]; !ok {
			continue
		}
		if r.Date.Before(c.Start) || r.Date.After(upper) {
			continue
		}
		if r.AQI == nil || *r.AQI < c.MinAQI || *r.AQI > c.MaxAQI {
			continue
		}
		out = append(out, r)
	}
	return domain.FilteredView{Records: out}
}
