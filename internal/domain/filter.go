package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidDateRange  = errors.New("invalid date range: start is after end")
	ErrInvalidValueRange = errors.New("invalid AQI range: min is greater than max")
	ErrUnknownMetric     = errors.New("unknown metric")
	ErrMissingColumn     = errors.New("missing required column")
)

// FilterCriteria narrows a Dataset by city, date and AQI. It is built fresh
// from the current selections on every recomputation.
type FilterCriteria struct {
	// AllCities selects every city present in the dataset and ignores Cities.
	AllCities bool `json:"all_cities"`
	// Cities is the explicit selection. Empty with AllCities unset selects nothing.
	Cities []string `json:"cities"`
	// Start and End are calendar dates; End is inclusive through its last second.
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	// MinAQI and MaxAQI are inclusive bounds on the AQI value.
	MinAQI float64 `json:"min_aqi"`
	MaxAQI float64 `json:"max_aqi"`
}

// Validate checks the range invariants.
func (c FilterCriteria) Validate() error {
	if c.Start.After(c.End) {
		return ErrInvalidDateRange
	}
	if c.MinAQI > c.MaxAQI {
		return ErrInvalidValueRange
	}
	return nil
}

// UpperBound is the inclusive end instant of the date predicate.
func (c FilterCriteria) UpperBound() time.Time {
	return EndOfDay(c.End)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59 of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Second)
}
