package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smartcity/aqdash/internal/domain"
)

func TestControls_Defaults(t *testing.T) {
	ds := dataset(
		rec("Oslo", at("2024-02-03 08:00:00"), f(12.7), nil, nil, nil),
		rec("almaty", day("2024-02-01"), f(88.2), nil, nil, nil),
		rec("Delhi", day("2024-02-02"), f(301.4), nil, nil, nil),
		rec("Bergen", day("2024-02-02"), nil, nil, nil, nil),
		rec("Étretat", day("2024-02-02"), f(40), nil, nil, nil),
	)

	ctl := Controls(ds, 3)
	assert.Equal(t, []string{"almaty", "Bergen", "Delhi", "Étretat", "Oslo"}, ctl.Cities)
	assert.Equal(t, []string{"almaty", "Bergen", "Delhi"}, ctl.DefaultCities)
	assert.Equal(t, day("2024-02-01"), ctl.MinDate)
	assert.Equal(t, day("2024-02-03"), ctl.MaxDate)
	assert.Equal(t, 12.0, ctl.MinAQI)
	assert.Equal(t, 302.0, ctl.MaxAQI)
	assert.Equal(t, domain.Metrics, ctl.Metrics)
}

func TestControls_FewCitiesSelectsAll(t *testing.T) {
	ds := sample()

	ctl := Controls(ds, 3)
	assert.Equal(t, []string{"Almaty", "Delhi", "Oslo"}, ctl.DefaultCities)

	ctl = Controls(ds, 0)
	assert.Len(t, ctl.DefaultCities, DefaultCityCount)
}

func TestControls_DefaultCriteriaKeepEveryRowOfSelectedCities(t *testing.T) {
	ds := sample()
	ctl := Controls(ds, 10)

	c := ctl.Criteria()
	assert.NoError(t, c.Validate())
	assert.Equal(t, 8, Filter(ds, c).Len())
}

func TestControls_DefaultSelectionIsACopy(t *testing.T) {
	ds := sample()
	ctl := Controls(ds, 2)
	ctl.DefaultCities[0] = "changed"

	assert.Equal(t, "Almaty", ctl.Cities[0])
}

func TestControls_EmptyDataset(t *testing.T) {
	ctl := Controls(dataset(), 3)

	assert.Empty(t, ctl.Cities)
	assert.Empty(t, ctl.DefaultCities)
	assert.True(t, ctl.MinDate.IsZero())
	assert.Equal(t, 0.0, ctl.MaxAQI)
}

func TestTrendCityOptions(t *testing.T) {
	ds := sample()
	testCases := []struct {
		name string
		crit domain.FilterCriteria
		want []string
	}{
		{name: "explicit selection", crit: domain.FilterCriteria{Cities: []string{"Oslo", "Delhi"}}, want: []string{"Oslo", "Delhi"}},
		{name: "all cities", crit: domain.FilterCriteria{AllCities: true, Cities: []string{"Oslo"}}, want: []string{"Almaty", "Delhi", "Oslo"}},
		{name: "empty selection offers every city", crit: domain.FilterCriteria{}, want: []string{"Almaty", "Delhi", "Oslo"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TrendCityOptions(ds, tc.crit))
		})
	}
}
