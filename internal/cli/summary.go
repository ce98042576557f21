package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartcity/aqdash/internal/domain"
	"github.com/smartcity/aqdash/internal/service"
)

func newSummaryCmd(opts *options) *cobra.Command {
	var (
		flags  criteriaFlags
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print summary metrics, city ranking and insights for the filters",
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

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(data)
			}
			printSummary(out, data)
			return nil
		},
	}
	flags.bind(cmd, true)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full dashboard payload as JSON")
	return cmd
}

// printSummary writes the dashboard as a plain text report
func printSummary(w io.Writer, d domain.DashboardData) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "%s\n", sep)
	fmt.Fprintf(w, "  AIR QUALITY SUMMARY\n")
	fmt.Fprintf(w, "%s\n\n", sep)

	c := d.Criteria
	fmt.Fprintf(w, "  Filters\n  %s\n", thin)
	if c.AllCities {
		fmt.Fprintf(w, "  Cities     : all\n")
	} else if len(c.Cities) == 0 {
		fmt.Fprintf(w, "  Cities     : (none)\n")
	} else {
		fmt.Fprintf(w, "  Cities     : %s\n", strings.Join(c.Cities, ", "))
	}
	fmt.Fprintf(w, "  Dates      : %s .. %s\n", c.Start.Format("2006-01-02"), c.End.Format("2006-01-02"))
	fmt.Fprintf(w, "  AQI range  : %g .. %g\n\n", c.MinAQI, c.MaxAQI)

	fmt.Fprintf(w, "  Summary Metrics\n  %s\n", thin)
	fmt.Fprintf(w, "  Rows         : %d\n", d.Summary.Rows)
	fmt.Fprintf(w, "  Mean AQI     : %s\n", d.Display["mean_aqi"])
	fmt.Fprintf(w, "  Max PM2.5    : %s\n", d.Display["max_pm25"])
	fmt.Fprintf(w, "  Min Humidity : %s\n\n", d.Display["min_humidity"])

	fmt.Fprintf(w, "  Average AQI by City\n  %s\n", thin)
	if len(d.CityMeans) == 0 {
		fmt.Fprintf(w, "  %s\n", service.TrendNoDataMessage)
	}
	for i, m := range d.CityMeans {
		fmt.Fprintf(w, "  %2d. %-24s %8.1f  (%d rows)\n", i+1, m.City, m.MeanAQI, m.Count)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Insights\n  %s\n", thin)
	if !d.Insights.Available {
		fmt.Fprintf(w, "  %s\n", d.Insights.Message)
	}
	for _, in := range d.Insights.Items {
		fmt.Fprintf(w, "  • %s\n", in.Text)
	}
	fmt.Fprintf(w, "\n%s\n", sep)
}
