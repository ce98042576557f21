// Package cli implements the aqdash command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartcity/aqdash/internal/app"
	"github.com/smartcity/aqdash/internal/config"
	"github.com/smartcity/aqdash/internal/logger"
)

// options is shared by every subcommand of one root command
type options struct {
	cfgFile string
	csvPath string
	source  string
	cfg     *config.Config
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

// NewRootCmd builds the aqdash command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "aqdash",
		Short:         "AQDash: filter and summarize air-quality measurements",
		Long:          `AQDash loads a table of city air-quality measurements and answers dashboard queries: filtered summaries, city rankings, insights, charts and CSV exports.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.loadConfig(cmd)
		},
	}

	// Persistent global flags available to all subcommands
	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&opts.csvPath, "csv", "", "measurement CSV path (overrides config)")
	root.PersistentFlags().StringVar(&opts.source, "source", "", "data source: csv|postgres|memory (overrides config)")

	root.AddCommand(
		newServeCmd(opts),
		newSummaryCmd(opts),
		newExportCmd(opts),
		newChartCmd(opts),
		newConfigCmd(opts),
	)
	return root
}

func (o *options) loadConfig(cmd *cobra.Command) error {
	c, err := config.Load(o.cfgFile)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("csv") && o.csvPath != "" {
		c.CSVPath = o.csvPath
		if !f.Changed("source") {
			c.DataSource = config.SourceCSV
		}
	}
	if f.Changed("source") {
		c.DataSource = o.source
	}
	if err := c.Validate(); err != nil {
		return err
	}
	o.cfg = c
	return nil
}

// open loads the dataset for a one-shot command. Logs go to stderr so
// command output stays clean.
func (o *options) open(ctx context.Context) (*app.App, error) {
	return app.New(ctx, o.cfg, o.quietLogger())
}

func (o *options) quietLogger() *slog.Logger {
	level := o.cfg.LogLevel
	if level == "" || level == "info" {
		level = "warn"
	}
	return logger.New(os.Stderr, level)
}
