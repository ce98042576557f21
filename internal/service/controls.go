package service

import (
	"math"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/smartcity/aqdash/internal/domain"
)

// DefaultCityCount is how many cities the city selector preselects
const DefaultCityCount = 3

// SortedCities returns the distinct dataset cities in collation order.
func SortedCities(ds domain.Dataset) []string {
	cities := ds.Cities()
	collate.New(language.Und).SortStrings(cities)
	return cities
}

// Controls derives the filter widget bounds and defaults from a dataset.
// The default selection is the first defaultCount cities, or all of them
// when there are no more than that.
func Controls(ds domain.Dataset, defaultCount int) domain.Controls {
	if defaultCount <= 0 {
		defaultCount = DefaultCityCount
	}
	cities := SortedCities(ds)
	defaults := cities
	if len(cities) > defaultCount {
		defaults = cities[:defaultCount]
	}

	ctl := domain.Controls{
		Cities:        cities,
		DefaultCities: append([]string{}, defaults...),
		Metrics:       append([]string(nil), domain.Metrics...),
	}
	if minDate, maxDate, ok := ds.DateBounds(); ok {
		ctl.MinDate = domain.StartOfDay(minDate)
		ctl.MaxDate = domain.StartOfDay(maxDate)
	}
	// Bounds widen to whole numbers so the default range keeps every row.
	if lo, hi, ok := ds.ValueBounds(domain.ColumnAQI); ok {
		ctl.MinAQI = math.Floor(lo)
		ctl.MaxAQI = math.Ceil(hi)
	}
	return ctl
}

// TrendCityOptions lists the cities offered by the trend chart selector:
// the active selection, or every city when the selection is empty.
func TrendCityOptions(ds domain.Dataset, c domain.FilterCriteria) []string {
	if c.AllCities || len(c.Cities) == 0 {
		return SortedCities(ds)
	}
	return append([]string(nil), c.Cities...)
}
