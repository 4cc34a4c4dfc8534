package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"photo-adjust/internal/algorithms"
)

func newOpsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List operations in application order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tKEY\tNAME\tFAMILY\tDOMAIN\tDEFAULT")
			for i, id := range algorithms.Order() {
				op := algorithms.Lookup(id)
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%g\n", i+1, op.Key, op.Name, op.Family, op.Domain, op.Default)
			}
			return w.Flush()
		},
	}
}
