package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/smartcity/aqdash/internal/domain"
	"github.com/smartcity/aqdash/internal/service"
)

// criteriaFlags are the filter controls as command line flags. Unset
// flags take the dashboard defaults.
type criteriaFlags struct {
	cities    []string
	allCities bool
	from      string
	to        string
	aqiMin    float64
	aqiMax    float64
	trendCity string
	metric    string
}

func (f *criteriaFlags) bind(cmd *cobra.Command, withTrend bool) {
	fs := cmd.Flags()
	fs.StringSliceVar(&f.cities, "cities", nil, "comma separated cities (default: first cities in sort order; empty selects none)")
	fs.BoolVar(&f.allCities, "all-cities", false, "select every city")
	fs.StringVar(&f.from, "from", "", "start date YYYY-MM-DD (default: earliest)")
	fs.StringVar(&f.to, "to", "", "end date YYYY-MM-DD, inclusive (default: latest)")
	fs.Float64Var(&f.aqiMin, "aqi-min", 0, "minimum AQI (default: dataset minimum)")
	fs.Float64Var(&f.aqiMax, "aqi-max", 0, "maximum AQI (default: dataset maximum)")
	if withTrend {
		fs.StringVar(&f.trendCity, "trend-city", "", "city for the trend chart (default: first selected)")
		fs.StringVar(&f.metric, "metric", domain.MetricAQI, "trend metric: AQI or PM2.5")
	}
}

func (f *criteriaFlags) resolve(cmd *cobra.Command, ctl domain.Controls) (domain.FilterCriteria, error) {
	crit := ctl.Criteria()
	fs := cmd.Flags()

	if fs.Changed("cities") {
		crit.Cities = append([]string{}, f.cities...)
	}
	crit.AllCities = f.allCities
	if fs.Changed("from") {
		t, err := time.Parse("2006-01-02", f.from)
		if err != nil {
			return crit, fmt.Errorf("invalid --from %q: expected YYYY-MM-DD", f.from)
		}
		crit.Start = t
	}
	if fs.Changed("to") {
		t, err := time.Parse("2006-01-02", f.to)
		if err != nil {
			return crit, fmt.Errorf("invalid --to %q: expected YYYY-MM-DD", f.to)
		}
		crit.End = t
	}
	if fs.Changed("aqi-min") {
		crit.MinAQI = f.aqiMin
	}
	if fs.Changed("aqi-max") {
		crit.MaxAQI = f.aqiMax
	}
	if err := crit.Validate(); err != nil {
		return crit, err
	}
	return crit, nil
}

func (f *criteriaFlags) trend() service.TrendRequest {
	return service.TrendRequest{City: f.trendCity, Metric: f.metric}
}
