// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/dequad/catalog"
	"github.com/katalvlaran/dequad/precision"
	"github.com/katalvlaran/dequad/tanhsinh"
)

// errBenchMiss is returned when at least one entry missed its tolerance.
var errBenchMiss = errors.New("bench: entries missed the tolerance")

type benchRow struct {
	catalog.Outcome
	formula string
	miss    bool
	note    string
}

func newBenchCmd(a *app) *cobra.Command {
	var (
		plain bool
		slack float64
	)
	cmd := &cobra.Command{
		Use:   "bench [filter]",
		Short: "Integrate every matching entry and compare against the exact value",
		Long: `bench runs every catalogue entry whose name contains the filter and checks
that the actual error is within slack times the tolerance. Entries without an
arbitrary-precision form are skipped in arbitrary mode. The command fails when
any entry misses.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := ""
			if len(args) == 1 {
				filter = args[0]
			}
			rows, misses, err := a.bench(catalog.Filter(filter), slack)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				return fmt.Errorf("%w: no entry matches %q", catalog.ErrUnknownEntry, filter)
			}

			if plain {
				err = writePlain(cmd.OutOrStdout(), rows)
			} else {
				err = writeRendered(cmd.OutOrStdout(), rows, a.cfg.Tol)
			}
			if err != nil {
				return err
			}
			if misses > 0 {
				return fmt.Errorf("%w: %d of %d", errBenchMiss, misses, len(rows))
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Print a plain text table instead of rendered markdown")
	cmd.Flags().Float64Var(&slack, "slack", 10, "Allowed ratio of actual error to tolerance")

	return cmd
}

func (a *app) bench(entries []catalog.Entry, slack float64) ([]benchRow, int, error) {
	rc := a.runConfig()
	rows := make([]benchRow, 0, len(entries))
	misses := 0
	for _, e := range entries {
		if rc.Mode == precision.Arbitrary && !e.HasBig() {
			a.log.Debug("skipping entry without arbitrary form", "entry", e.Name)
			continue
		}
		out, err := e.Run(rc)
		row := benchRow{Outcome: out, formula: e.Formula}
		switch {
		case errors.Is(err, tanhsinh.ErrNonConvergence):
			row.miss, row.note = true, "strict"
		case err != nil:
			return nil, 0, fmt.Errorf("%s: %w", e.Name, err)
		case !out.Within(slack * rc.Tol):
			row.miss, row.note = true, "error"
		}
		if row.miss {
			misses++
			a.log.Warn("tolerance missed", "entry", e.Name, "error", out.Error, "tol", rc.Tol)
		}
		rows = append(rows, row)
	}

	return rows, misses, nil
}

func (r benchRow) verdict() string {
	if r.miss {
		return "MISS (" + r.note + ")"
	}
	return "ok"
}

func writePlain(w io.Writer, rows []benchRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ENTRY\tLEVEL\tEVALS\tESTIMATE\tERROR\tSTATUS\tELAPSED\tRESULT")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2e\t%.2e\t%s\t%s\t%s\n",
			r.Entry, r.Level, r.Evaluations, r.Estimate, r.Error, r.Status, r.Elapsed, r.verdict())
	}

	return tw.Flush()
}

// benchMarkdown renders rows as a markdown table.
func benchMarkdown(rows []benchRow, tol float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## tanh-sinh bench (tol %.0e)\n\n", tol)
	b.WriteString("| entry | integrand | level | evals | estimate | error | status | result |\n")
	b.WriteString("|---|---|--:|--:|--:|--:|---|---|\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | `%s` | %d | %d | %.2e | %.2e | %s | %s |\n",
			r.Entry, r.formula, r.Level, r.Evaluations, r.Estimate, r.Error, r.Status, r.verdict())
	}

	return b.String()
}

func writeRendered(w io.Writer, rows []benchRow, tol float64) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return err
	}
	out, err := r.Render(benchMarkdown(rows, tol))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)

	return err
}
