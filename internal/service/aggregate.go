package service

import (
	"sort"

	"github.com/smartcity/aqdash/internal/domain"
)

// Summarize computes the headline figures of a view. Missing values are
// skipped, never counted as zero.
func Summarize(v domain.FilteredView) domain.Summary {
	s := domain.Summary{Rows: v.Len()}
	var (
		sum float64
		n   int
	)
	for _, r := range v.Records {
		if r.AQI != nil {
			sum += *r.AQI
			n++
		}
		if r.PM25 != nil && (s.MaxPM25 == nil || *r.PM25 > *s.MaxPM25) {
			s.MaxPM25 = domain.Float(*r.PM25)
		}
		if r.Humidity != nil && (s.MinHumidity == nil || *r.Humidity < *s.MinHumidity) {
			s.MinHumidity = domain.Float(*r.Humidity)
		}
	}
	if n > 0 {
		s.MeanAQI = domain.Float(sum / float64(n))
	}
	return s
}

// CityMeans returns the mean AQI per city, highest first. Ties keep the
// order in which cities first appear in the view.
func CityMeans(v domain.FilteredView) []domain.CityMean {
	type acc struct {
		sum float64
		n   int
	}
	var order []string
	accs := map[string]*acc{}
	for _, r := range v.Records {
		a := accs[r.City]
		if a == nil {
			a = &acc{}
			accs[r.City] = a
			order = append(order, r.City)
		}
		if r.AQI != nil {
			a.sum += *r.AQI
			a.n++
		}
	}

	out := make([]domain.CityMean, 0, len(order))
	for _, city := range order {
		a := accs[city]
		if a.n == 0 {
			continue
		}
		out = append(out, domain.CityMean{City: city, MeanAQI: a.sum / float64(a.n), Count: a.n})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MeanAQI > out[j].MeanAQI
	})
	return out
}
