package service

import (
	"math"
	"sort"

	"github.com/smartcity/aqdash/internal/domain"
)

var numericColumns = []string{
	domain.ColumnAQI, domain.ColumnPM25, domain.ColumnTemperature, domain.ColumnHumidity,
}

// Describe summarizes every numeric column of the records: count, mean,
// sample standard deviation, min, quartiles and max.
func Describe(records []domain.Record) []domain.ColumnStats {
	out := make([]domain.ColumnStats, 0, len(numericColumns))
	for _, col := range numericColumns {
		vals := make([]float64, 0, len(records))
		for _, r := range records {
			if v := r.Value(col); v != nil {
				vals = append(vals, *v)
			}
		}
		out = append(out, describeColumn(col, vals))
	}
	return out
}

func describeColumn(name string, vals []float64) domain.ColumnStats {
	s := domain.ColumnStats{Column: name, Count: len(vals)}
	if len(vals) == 0 {
		return s
	}
	// Welford
	var n int
	var mean, m2 float64
	for _, x := range vals {
		n++
		delta := x - mean
		mean += delta / float64(n)
		m2 += delta * (x - mean)
	}
	s.Mean = domain.Float(mean)
	if n > 1 {
		s.Std = domain.Float(math.Sqrt(m2 / float64(n-1)))
	}

	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	s.Min = domain.Float(sorted[0])
	s.Q25 = domain.Float(quantile(sorted, 0.25))
	s.Median = domain.Float(quantile(sorted, 0.5))
	s.Q75 = domain.Float(quantile(sorted, 0.75))
	s.Max = domain.Float(sorted[len(sorted)-1])
	return s
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
