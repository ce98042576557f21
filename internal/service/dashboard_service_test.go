package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcity/aqdash/internal/csvio"
	"github.com/smartcity/aqdash/internal/domain"
	"github.com/smartcity/aqdash/internal/repository/memory"
)

func newTestDashboard(t *testing.T, records ...domain.Record) *DashboardService {
	t.Helper()
	p := NewDatasetProvider(memory.NewMemoryRepository(records), quietLogger())
	require.NoError(t, p.Load(context.Background()))
	return NewDashboardService(p, 3)
}

func TestDashboardService_GetDashboardData(t *testing.T) {
	ctx := context.Background()
	svc := newTestDashboard(t, sample().Records...)

	ctl, err := svc.GetControls(ctx)
	require.NoError(t, err)
	data, err := svc.GetDashboardData(ctx, ctl.Criteria(), TrendRequest{})
	require.NoError(t, err)

	assert.Equal(t, 8, data.Summary.Rows)
	assert.Equal(t, "Delhi", data.CityMeans[0].City)
	assert.True(t, data.Insights.Available)
	assert.Equal(t, "Almaty", data.Trend.City)
	assert.Equal(t, domain.MetricAQI, data.Trend.Metric)
	assert.Len(t, data.Scatter, 6)
	assert.Equal(t, "8", data.Display["rows"])
	assert.Equal(t, "140.6", data.Display["mean_aqi"])
	assert.Equal(t, "140.0", data.Display["max_pm25"])
	assert.Equal(t, "50.0", data.Display["min_humidity"])
	assert.NotEmpty(t, data.Version)
}

func TestDashboardService_DisplayNoData(t *testing.T) {
	ctx := context.Background()
	svc := newTestDashboard(t, sample().Records...)

	ctl, err := svc.GetControls(ctx)
	require.NoError(t, err)
	c := ctl.Criteria()
	c.Cities = []string{}

	data, err := svc.GetDashboardData(ctx, c, TrendRequest{Metric: domain.MetricPM25})
	require.NoError(t, err)
	assert.Equal(t, 0, data.Summary.Rows)
	assert.Equal(t, NoDataLabel, data.Display["mean_aqi"])
	assert.Equal(t, NoDataLabel, data.Display["max_pm25"])
	assert.Equal(t, NoDataLabel, data.Display["min_humidity"])
	assert.Empty(t, data.Scatter)
	assert.False(t, data.Insights.Available)
	// empty selection offers every city for the trend chart
	assert.Equal(t, "Almaty", data.Trend.City)
	assert.Equal(t, TrendNoDataMessage, data.Trend.Message)
}

func TestDashboardService_InvalidCriteria(t *testing.T) {
	ctx := context.Background()
	svc := newTestDashboard(t, sample().Records...)
	ctl, err := svc.GetControls(ctx)
	require.NoError(t, err)

	c := ctl.Criteria()
	c.Start, c.End = c.End, c.Start.AddDate(0, 0, -1)
	_, err = svc.GetDashboardData(ctx, c, TrendRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)

	c = ctl.Criteria()
	c.MinAQI, c.MaxAQI = 200, 100
	_, err = svc.GetDashboardData(ctx, c, TrendRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidValueRange)

	_, err = svc.GetDashboardData(ctx, ctl.Criteria(), TrendRequest{Metric: "NO2"})
	assert.ErrorIs(t, err, domain.ErrUnknownMetric)
}

func TestDashboardService_GetRecordsPaging(t *testing.T) {
	ctx := context.Background()
	ds := sample()
	svc := newTestDashboard(t, ds.Records...)

	page, total, err := svc.GetRecords(ctx, wide(ds), 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 8, total)
	assert.Equal(t, []string{"Delhi", "Almaty", "Delhi"}, cities(view(page...)))

	page, total, err = svc.GetRecords(ctx, wide(ds), 50, 3)
	require.NoError(t, err)
	assert.Equal(t, 8, total)
	assert.Empty(t, page)
}

func TestDashboardService_GetPreview(t *testing.T) {
	ctx := context.Background()
	svc := newTestDashboard(t, sample().Records...)

	rows, err := svc.GetPreview(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, rows, 5)

	rows, err = svc.GetPreview(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, rows, 9)
}

func TestDashboardService_Export(t *testing.T) {
	ctx := context.Background()
	ds := sample()
	svc := newTestDashboard(t, ds.Records...)

	c := wide(ds)
	c.AllCities = false
	c.Cities = []string{"Oslo"}

	var buf bytes.Buffer
	n, err := svc.Export(ctx, c, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t,
		"City,Date,AQI,PM2.5,Temperature,Humidity\n"+
			"Oslo,2024-01-01,30,8,-2,80\n"+
			"Oslo,2024-01-03,25,6,0,85\n",
		buf.String())

	// exported rows read back as the same view
	cols, back, err := csvio.Read(strings.NewReader(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, domain.CanonicalColumns, cols)
	assert.Equal(t, Filter(ds, c).Records, back)
}

func TestDashboardService_ExportEmptySelection(t *testing.T) {
	ctx := context.Background()
	ds := sample()
	svc := newTestDashboard(t, ds.Records...)

	c := wide(ds)
	c.AllCities = false

	var buf bytes.Buffer
	n, err := svc.Export(ctx, c, &buf)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, "City,Date,AQI,PM2.5,Temperature,Humidity\n", buf.String())
}

func TestDashboardService_Describe(t *testing.T) {
	svc := newTestDashboard(t, sample().Records...)

	stats, err := svc.GetDescribe(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 4)
	assert.Equal(t, 8, stats[0].Count)
}

func TestDashboardService_NotLoaded(t *testing.T) {
	p := NewDatasetProvider(memory.NewDemoRepository(), quietLogger())
	svc := NewDashboardService(p, 3)

	_, err := svc.GetControls(context.Background())
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.ErrorIs(t, svc.Health(context.Background()), ErrNotLoaded)
}
