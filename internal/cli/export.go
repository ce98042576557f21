package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartcity/aqdash/internal/csvio"
)

func newExportCmd(opts *options) *cobra.Command {
	var (
		flags  criteriaFlags
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered rows as CSV",
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

			var w io.Writer = cmd.OutOrStdout()
			if output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			n, err := svc.Export(ctx, crit, w)
			if err != nil {
				return err
			}
			if output != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %d rows to %s\n", n, output)
			}
			return nil
		},
	}
	flags.bind(cmd, false)
	cmd.Flags().StringVarP(&output, "output", "o", csvio.ExportFilename, "output file, - for stdout")
	return cmd
}
