// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/dequad/catalog"
	"github.com/katalvlaran/dequad/tanhsinh"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <entry>...",
		Short: "Integrate catalogue entries and print the results",
		Example: `  dequad run bailey5
  dequad run bailey7 --mode arbitrary --digits 50 --tol 1e-40
  dequad run linear --mode arbitrary --digits 420 --tol 1e-400`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := make([]catalog.Entry, 0, len(args))
			for _, name := range args {
				e, err := catalog.Lookup(name)
				if err != nil {
					return err
				}
				entries = append(entries, e)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ENTRY\tVALUE\tESTIMATE\tERROR\tLEVEL\tEVALS\tSTATUS")
			var failed []string
			for _, e := range entries {
				out, err := e.Run(a.runConfig())
				if err != nil && !errors.Is(err, tanhsinh.ErrNonConvergence) {
					_ = tw.Flush()
					return fmt.Errorf("%s: %w", e.Name, err)
				}
				if err != nil {
					failed = append(failed, e.Name)
				}
				fmt.Fprintf(tw, "%s\t%s\t%.3g\t%.3g\t%d\t%d\t%s\n",
					out.Entry, out.Value, out.Estimate, out.Error, out.Level, out.Evaluations, out.Status)
				a.log.Info("integrated", "entry", out.Entry, "status", out.Status, "elapsed", out.Elapsed)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if len(failed) > 0 {
				return fmt.Errorf("%w: %v", tanhsinh.ErrNonConvergence, failed)
			}

			return nil
		},
	}
}

func (a *app) runConfig() catalog.RunConfig {
	return catalog.RunConfig{
		Mode:     a.cfg.PrecisionMode(),
		Digits:   a.cfg.Digits,
		Tol:      a.cfg.Tol,
		TolText:  a.tolText,
		Fallback: a.cfg.Fallback,
		Options:  a.options(),
	}
}
