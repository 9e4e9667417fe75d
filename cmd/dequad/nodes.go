// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"math/big"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/dequad/precision"
	"github.com/katalvlaran/dequad/tanhsinh"
)

func newNodesCmd(a *app) *cobra.Command {
	var (
		level int
		limit int
	)
	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "Print the abscissas and weights of one refinement level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if a.cfg.PrecisionMode() == precision.Arbitrary {
				be, err := precision.NewBigFloat(a.cfg.Digits)
				if err != nil {
					return err
				}
				nodes, err := tanhsinh.Nodes[*big.Float](be, level)
				if err != nil {
					return err
				}
				return writeNodes[*big.Float](w, be, nodes, limit)
			}
			nodes, err := tanhsinh.Nodes[float64](precision.Float64{}, level)
			if err != nil {
				return err
			}

			return writeNodes[float64](w, precision.Float64{}, nodes, limit)
		},
	}
	cmd.Flags().IntVar(&level, "level", 0, "Refinement level (step 2^-level)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Print at most this many nodes; 0 prints all")

	return cmd
}

func writeNodes[T any](w io.Writer, be precision.Backend[T], nodes []tanhsinh.Node[T], limit int) error {
	if limit > 0 && limit < len(nodes) {
		nodes = nodes[:limit]
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "T\tX\t1-X\tWEIGHT")
	for _, n := range nodes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			be.String(n.Offset), be.String(n.Abscissa), be.String(n.Complement), be.String(n.Weight))
	}

	return tw.Flush()
}
