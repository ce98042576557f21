// Package charts renders the dashboard charts as PNG images.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/smartcity/aqdash/internal/domain"
	"github.com/smartcity/aqdash/pkg/utils"
)

// ErrNoData is returned when a chart has nothing to plot
var ErrNoData = errors.New("charts: no data to plot")

// Size is the rendered image size in pixels
type Size struct {
	Width  int
	Height int
}

// DefaultSize matches the dashboard layout
var DefaultSize = Size{Width: 900, Height: 420}

func (s Size) orDefault() Size {
	if s.Width <= 0 || s.Height <= 0 {
		return DefaultSize
	}
	return s
}

// lineStyle renders markers joined by a line
func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotColor:    col,
		DotWidth:    3,
	}
}

// dotStyle renders points only
func dotStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotColor:    col,
		DotWidth:    4,
	}
}

// Trend renders a metric over time for one city as a line chart with markers.
func Trend(series domain.TrendSeries, size Size) ([]byte, error) {
	if len(series.Points) == 0 {
		return nil, ErrNoData
	}
	xs := make([]time.Time, 0, len(series.Points)+1)
	ys := make([]float64, 0, len(series.Points)+1)
	for _, p := range series.Points {
		xs = append(xs, p.Date)
		ys = append(ys, p.Value)
	}
	// A single instant has no x range; repeat the last point a day later.
	if sameInstant(xs) {
		xs = append(xs, xs[0].Add(24*time.Hour))
		ys = append(ys, ys[len(ys)-1])
	}

	size = size.orDefault()
	ch := chart.Chart{
		Title:      fmt.Sprintf("%s Over Time - %s", series.Metric, series.City),
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: domain.ColumnDate, ValueFormatter: chart.TimeDateValueFormatter},
		YAxis:      chart.YAxis{Name: series.Metric, Range: paddedRange(ys)},
		Series: []chart.Series{
			chart.TimeSeries{Name: series.City, XValues: xs, YValues: ys, Style: lineStyle(chart.GetDefaultColor(0))},
		},
	}
	return render(&ch)
}

// CityMeans renders the average AQI per city as a bar chart, highest first.
func CityMeans(means []domain.CityMean, size Size) ([]byte, error) {
	if len(means) == 0 {
		return nil, ErrNoData
	}
	top := 0.0
	bars := make([]chart.Value, 0, len(means))
	for _, m := range means {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s (%.1f)", m.City, m.MeanAQI),
			Value: m.MeanAQI,
		})
		top = math.Max(top, m.MeanAQI)
	}
	if top <= 0 {
		top = 1
	}

	size = size.orDefault()
	barWidth := int(utils.Clamp(float64(size.Width/(2*len(bars)+3)), 4, 80))
	bc := chart.BarChart{
		Title:      "Average AQI by City",
		Width:      size.Width,
		Height:     size.Height,
		BarWidth:   barWidth,
		BarSpacing: barWidth,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1}},
		Bars:       bars,
	}
	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("charts: render bar chart: %w", err)
	}
	return buf.Bytes(), nil
}

// Scatter renders PM2.5 against temperature with one colour per city.
func Scatter(points []domain.ScatterPoint, size Size) ([]byte, error) {
	if len(points) == 0 {
		return nil, ErrNoData
	}
	var order []string
	byCity := map[string]*chart.ContinuousSeries{}
	var allX, allY []float64
	for _, p := range points {
		s := byCity[p.City]
		if s == nil {
			s = &chart.ContinuousSeries{
				Name:  p.City,
				Style: dotStyle(chart.GetDefaultColor(len(order))),
			}
			byCity[p.City] = s
			order = append(order, p.City)
		}
		s.XValues = append(s.XValues, p.PM25)
		s.YValues = append(s.YValues, p.Temperature)
		allX = append(allX, p.PM25)
		allY = append(allY, p.Temperature)
	}
	series := make([]chart.Series, 0, len(order))
	for _, city := range order {
		series = append(series, *byCity[city])
	}

	size = size.orDefault()
	ch := chart.Chart{
		Title:      "PM2.5 vs Temperature",
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: domain.ColumnPM25, Range: paddedRange(allX)},
		YAxis:      chart.YAxis{Name: domain.ColumnTemperature, Range: paddedRange(allY)},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return render(&ch)
}

// Placeholder renders a blank chart area with text centred in it, shown in
// place of a chart that has nothing to plot.
func Placeholder(text string, size Size) ([]byte, error) {
	size = size.orDefault()
	rgba := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	draw.Draw(rgba, rgba.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	dr := &font.Drawer{
		Dst:  rgba,
		Src:  image.NewUniform(color.RGBA{R: 90, G: 90, B: 90, A: 255}),
		Face: face,
	}
	tw := dr.MeasureString(text).Ceil()
	x := (size.Width - tw) / 2
	if x < 4 {
		x = 4
	}
	y := (size.Height + face.Metrics().Ascent.Ceil()) / 2
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, fmt.Errorf("charts: encode placeholder: %w", err)
	}
	return buf.Bytes(), nil
}

func render(ch *chart.Chart) ([]byte, error) {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("charts: render %q: %w", ch.Title, err)
	}
	return buf.Bytes(), nil
}

func sameInstant(ts []time.Time) bool {
	for _, t := range ts[1:] {
		if !t.Equal(ts[0]) {
			return false
		}
	}
	return true
}

// paddedRange returns an axis range around vals that never has zero width.
func paddedRange(vals []float64) *chart.ContinuousRange {
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = math.Max(math.Abs(lo)*0.1, 1)
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
