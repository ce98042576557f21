package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/smartcity/aqdash/internal/csvio"
	"github.com/smartcity/aqdash/internal/domain"
	"github.com/smartcity/aqdash/internal/metrics"
	"github.com/smartcity/aqdash/pkg/utils"
)

// NoDataLabel is displayed in place of an undefined summary figure
const NoDataLabel = "no data"

// TrendRequest selects the trend chart city and metric. Empty fields use defaults.
type TrendRequest struct {
	City   string
	Metric string
}

// DashboardService answers dashboard interactions against the current dataset
type DashboardService struct {
	provider         *DatasetProvider
	defaultCityCount int
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(provider *DatasetProvider, defaultCityCount int) *DashboardService {
	return &DashboardService{
		provider:         provider,
		defaultCityCount: defaultCityCount,
	}
}

// Dataset returns the dataset currently served
func (s *DashboardService) Dataset() (domain.Dataset, error) {
	return s.provider.Current()
}

// Health checks the dataset source
func (s *DashboardService) Health(ctx context.Context) error {
	if _, err := s.provider.Current(); err != nil {
		return err
	}
	return s.provider.Health(ctx)
}

// GetControls returns widget bounds and defaults for the current dataset
func (s *DashboardService) GetControls(ctx context.Context) (domain.Controls, error) {
	ds, err := s.provider.Current()
	if err != nil {
		return domain.Controls{}, err
	}
	return Controls(ds, s.defaultCityCount), nil
}

// GetDashboardData runs one full recomputation and builds the chart data
func (s *DashboardService) GetDashboardData(ctx context.Context, c domain.FilterCriteria, tr TrendRequest) (domain.DashboardData, error) {
	if err := c.Validate(); err != nil {
		return domain.DashboardData{}, err
	}
	if tr.Metric == "" {
		tr.Metric = domain.MetricAQI
	}
	if !domain.IsMetric(tr.Metric) {
		return domain.DashboardData{}, fmt.Errorf("%w: %q", domain.ErrUnknownMetric, tr.Metric)
	}
	ds, err := s.provider.Current()
	if err != nil {
		return domain.DashboardData{}, err
	}

	started := time.Now()
	result := Recompute(ds, c)
	metrics.ObserveRecompute(started, result.View.Len())

	if tr.City == "" {
		if options := TrendCityOptions(ds, c); len(options) > 0 {
			tr.City = options[0]
		}
	}
	trend, err := Trend(result.View, tr.City, tr.Metric)
	if err != nil {
		return domain.DashboardData{}, err
	}

	var scatter []domain.ScatterPoint
	if !result.View.Empty() {
		scatter = Scatter(result.View)
	}

	return domain.DashboardData{
		Result:    result,
		Display:   DisplaySummary(result.Summary),
		Trend:     trend,
		Scatter:   scatter,
		Version:   ds.Version,
		Timestamp: time.Now(),
	}, nil
}

// GetRecords returns a page of the filtered view and its total length
func (s *DashboardService) GetRecords(ctx context.Context, c domain.FilterCriteria, offset, limit int) ([]domain.Record, int, error) {
	view, err := s.view(c)
	if err != nil {
		return nil, 0, err
	}
	total := view.Len()
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return view.Records[offset:end], total, nil
}

// GetPreview returns the first n dataset rows
func (s *DashboardService) GetPreview(ctx context.Context, n int) ([]domain.Record, error) {
	ds, err := s.provider.Current()
	if err != nil {
		return nil, err
	}
	if n < 0 || n > ds.Len() {
		n = ds.Len()
	}
	return ds.Records[:n], nil
}

// GetDescribe summarizes the numeric columns of the whole dataset
func (s *DashboardService) GetDescribe(ctx context.Context) ([]domain.ColumnStats, error) {
	ds, err := s.provider.Current()
	if err != nil {
		return nil, err
	}
	return Describe(ds.Records), nil
}

// Export writes the filtered view as CSV using the dataset's column order
func (s *DashboardService) Export(ctx context.Context, c domain.FilterCriteria, w io.Writer) (int, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	ds, err := s.provider.Current()
	if err != nil {
		return 0, err
	}
	view := Filter(ds, c)
	if err := csvio.Write(w, ds.Columns, view.Records); err != nil {
		return 0, fmt.Errorf("dashboard: export: %w", err)
	}
	metrics.ObserveExport()
	return view.Len(), nil
}

func (s *DashboardService) view(c domain.FilterCriteria) (domain.FilteredView, error) {
	if err := c.Validate(); err != nil {
		return domain.FilteredView{}, err
	}
	ds, err := s.provider.Current()
	if err != nil {
		return domain.FilteredView{}, err
	}
	started := time.Now()
	view := Filter(ds, c)
	metrics.ObserveRecompute(started, view.Len())
	return view, nil
}

// DisplaySummary formats the summary figures the way the metric tiles show them
func DisplaySummary(s domain.Summary) map[string]string {
	return map[string]string{
		"mean_aqi":     utils.FormatOptional(s.MeanAQI, NoDataLabel),
		"max_pm25":     utils.FormatOptional(s.MaxPM25, NoDataLabel),
		"min_humidity": utils.FormatOptional(s.MinHumidity, NoDataLabel),
		"rows":         fmt.Sprintf("%d", s.Rows),
	}
}
