package domain

import (
	"time"
)

// Canonical column names of the measurement CSV
const (
	ColumnCity        = "City"
	ColumnDate        = "Date"
	ColumnAQI         = "AQI"
	ColumnPM25        = "PM2.5"
	ColumnTemperature = "Temperature"
	ColumnHumidity    = "Humidity"
)

// CanonicalColumns lists the measurement columns in their default order
var CanonicalColumns = []string{
	ColumnCity, ColumnDate, ColumnAQI, ColumnPM25, ColumnTemperature, ColumnHumidity,
}

// Record is one air-quality measurement row. Nil numeric fields are missing values.
type Record struct {
	City        string    `json:"city"`
	Date        time.Time `json:"date"`
	AQI         *float64  `json:"aqi"`
	PM25        *float64  `json:"pm25"`
	Temperature *float64  `json:"temperature"`
	Humidity    *float64  `json:"humidity"`
}

// Value returns the field stored under a canonical numeric column name.
func (r Record) Value(column string) *float64 {
	switch column {
	case ColumnAQI:
		return r.AQI
	case ColumnPM25:
		return r.PM25
	case ColumnTemperature:
		return r.Temperature
	case ColumnHumidity:
		return r.Humidity
	}
	return nil
}

// Dataset is the loaded measurement table. It is never mutated after load;
// a reload produces a new Dataset.
type Dataset struct {
	Version  string    `json:"version"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loaded_at"`
	// Columns holds the canonical columns in the order the source declared them.
	Columns []string `json:"columns"`
	Records []Record `json:"-"`
}

// Len returns the number of records
func (d Dataset) Len() int { return len(d.Records) }

// Cities returns the distinct non-empty city names in first-seen order.
func (d Dataset) Cities() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range d.Records {
		if r.City == "" {
			continue
		}
		if _, ok := seen[r.City]; ok {
			continue
		}
		seen[r.City] = struct{}{}
		out = append(out, r.City)
	}
	return out
}

// DateBounds returns the earliest and latest record dates.
func (d Dataset) DateBounds() (min, max time.Time, ok bool) {
	for i, r := range d.Records {
		if i == 0 || r.Date.Before(min) {
			min = r.Date
		}
		if i == 0 || r.Date.After(max) {
			max = r.Date
		}
	}
	return min, max, len(d.Records) > 0
}

// ValueBounds returns the smallest and largest present value of a numeric column.
func (d Dataset) ValueBounds(column string) (min, max float64, ok bool) {
	for _, r := range d.Records {
		v := r.Value(column)
		if v == nil {
			continue
		}
		if !ok || *v < min {
			min = *v
		}
		if !ok || *v > max {
			max = *v
		}
		ok = true
	}
	return min, max, ok
}

// FilteredView is the ordered subsequence of a Dataset matching a FilterCriteria.
type FilteredView struct {
	Records []Record `json:"records"`
}

// Len returns the number of records in the view
func (v FilteredView) Len() int { return len(v.Records) }

// Empty reports whether the view has no records
func (v FilteredView) Empty() bool { return len(v.Records) == 0 }

// Float returns a pointer to v, used for optional measurement fields.
func Float(v float64) *float64 { return &v }
