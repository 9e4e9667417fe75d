// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/dequad/catalog"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list [filter]",
		Short: "List the catalogue integrands",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := ""
			if len(args) == 1 {
				filter = args[0]
			}
			entries := catalog.Filter(filter)
			if len(entries) == 0 {
				return fmt.Errorf("%w: no entry matches %q", catalog.ErrUnknownEntry, filter)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tINTERVAL\tINTEGRAND\tDERIVATIVES\tARBITRARY\tEXACT")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t[%s, %s]\t%s\t%s\t%s\t%s\n",
					e.Name, e.A, e.B, e.Formula,
					yesNo(e.HasDerivatives()), yesNo(e.HasBig()), shorten(e.Exact, 24))
			}

			return tw.Flush()
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
