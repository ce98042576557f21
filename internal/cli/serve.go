package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/smartcity/aqdash/internal/app"
	"github.com/smartcity/aqdash/internal/logger"
)

func newServeCmd(opts *options) *cobra.Command {
	var (
		port  string
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				opts.cfg.Port = port
			}
			if cmd.Flags().Changed("watch") {
				opts.cfg.WatchDataset = watch
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, opts.cfg, logger.Init(opts.cfg.LogLevel))
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides config)")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload the CSV when it changes")
	return cmd
}
