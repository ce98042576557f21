package domain

import "time"

// Metric names accepted by the trend chart
const (
	MetricAQI  = "AQI"
	MetricPM25 = "PM2.5"
)

// Metrics lists the trend metrics in display order
var Metrics = []string{MetricAQI, MetricPM25}

// IsMetric reports whether name is a supported trend metric
func IsMetric(name string) bool {
	return name == MetricAQI || name == MetricPM25
}

// Summary holds the headline figures of a FilteredView. Nil means "no data".
type Summary struct {
	Rows        int      `json:"rows"`
	MeanAQI     *float64 `json:"mean_aqi"`
	MaxPM25     *float64 `json:"max_pm25"`
	MinHumidity *float64 `json:"min_humidity"`
}

// CityMean is the average AQI of one city within a FilteredView
type CityMean struct {
	City    string  `json:"city"`
	MeanAQI float64 `json:"mean_aqi"`
	Count   int     `json:"count"`
}

// Insight kinds
const (
	InsightHighestAQICity = "highest_avg_aqi_city"
	InsightHighestPM25Day = "highest_pm25_day"
)

// NoInsightsMessage is reported when a view yields no insights
const NoInsightsMessage = "No insights available for the current filtered data."

// Insight is a short derived fact about a FilteredView
type Insight struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// Insights wraps the derived facts; Available is false when none could be produced.
type Insights struct {
	Items     []Insight `json:"items"`
	Available bool      `json:"available"`
	Message   string    `json:"message,omitempty"`
}

// Result is the output of one full recomputation
type Result struct {
	Criteria  FilterCriteria `json:"criteria"`
	View      FilteredView   `json:"-"`
	Summary   Summary        `json:"summary"`
	CityMeans []CityMean     `json:"city_means"`
	Insights  Insights       `json:"insights"`
}

// Controls describes the filter widgets offered for a Dataset
type Controls struct {
	Cities        []string  `json:"cities"`
	DefaultCities []string  `json:"default_cities"`
	MinDate       time.Time `json:"min_date"`
	MaxDate       time.Time `json:"max_date"`
	MinAQI        float64   `json:"min_aqi"`
	MaxAQI        float64   `json:"max_aqi"`
	Metrics       []string  `json:"metrics"`
}

// Criteria returns the FilterCriteria matching the default control values.
func (c Controls) Criteria() FilterCriteria {
	return FilterCriteria{
		Cities: append([]string(nil), c.DefaultCities...),
		Start:  c.MinDate,
		End:    c.MaxDate,
		MinAQI: c.MinAQI,
		MaxAQI: c.MaxAQI,
	}
}

// TrendPoint is one dated value of the trend chart
type TrendPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// TrendSeries is a metric over time for a single city
type TrendSeries struct {
	City    string       `json:"city"`
	Metric  string       `json:"metric"`
	Points  []TrendPoint `json:"points"`
	Message string       `json:"message,omitempty"`
}

// ScatterPoint pairs PM2.5 with temperature for one record
type ScatterPoint struct {
	City        string    `json:"city"`
	Date        time.Time `json:"date"`
	AQI         *float64  `json:"aqi"`
	PM25        float64   `json:"pm25"`
	Temperature float64   `json:"temperature"`
}

// ColumnStats mirrors a describe() row for one numeric column
type ColumnStats struct {
	Column string   `json:"column"`
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	Std    *float64 `json:"std"`
	Min    *float64 `json:"min"`
	Q25    *float64 `json:"p25"`
	Median *float64 `json:"p50"`
	Q75    *float64 `json:"p75"`
	Max    *float64 `json:"max"`
}

// DashboardData is everything a client needs to render one interaction
type DashboardData struct {
	Result
	Display   map[string]string `json:"display"`
	Trend     TrendSeries       `json:"trend"`
	Scatter   []ScatterPoint    `json:"scatter"`
	Version   string            `json:"dataset_version"`
	Timestamp time.Time         `json:"timestamp"`
}
