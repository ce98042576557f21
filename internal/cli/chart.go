package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartcity/aqdash/internal/charts"
	"github.com/smartcity/aqdash/internal/domain"
)

// Chart kinds
const (
	chartTrend   = "trend"
	chartCityAQI = "city-aqi"
	chartScatter = "scatter"
)

func newChartCmd(opts *options) *cobra.Command {
	var (
		flags  criteriaFlags
		kind   string
		output string
	)
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render a dashboard chart as PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			svc := a.Dashboard()
			ctl, err := svc.GetControls(ctx)
			if err != nil {
				return err
			}
			crit, err := flags.resolve(cmd, ctl)
			if err != nil {
				return err
			}
			data, err := svc.GetDashboardData(ctx, crit, flags.trend())
			if err != nil {
				return err
			}

			img, err := renderChart(kind, data, a.ChartSize())
			if err != nil {
				return err
			}
			if output == "" {
				output = kind + ".png"
			}
			if err := os.WriteFile(output, img, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %s chart to %s\n", kind, output)
			return nil
		},
	}
	flags.bind(cmd, true)
	cmd.Flags().StringVar(&kind, "kind", chartTrend, "chart kind: trend|city-aqi|scatter")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG file (default: <kind>.png)")
	return cmd
}

func renderChart(kind string, data domain.DashboardData, size charts.Size) ([]byte, error) {
	switch kind {
	case chartTrend:
		return charts.Trend(data.Trend, size)
	case chartCityAQI:
		return charts.CityMeans(data.CityMeans, size)
	case chartScatter:
		return charts.Scatter(data.Scatter, size)
	default:
		return nil, fmt.Errorf("unknown chart kind %q (use trend|city-aqi|scatter)", kind)
	}
}
