package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/gst-invoice/internal/gst"
)

var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "List GST state and union territory codes",
	RunE:  runStates,
}

func init() {
	rootCmd.AddCommand(statesCmd)
}

func runStates(cmd *cobra.Command, args []string) error {
	states := gst.ListStates()

	if outputFormat == "json" {
		return writeJSON(cmd.OutOrStdout(), states)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME")
	fmt.Fprintln(tw, "----\t----")
	for _, s := range states {
		fmt.Fprintf(tw, "%s\t%s\n", s.Code, s.Name)
	}
	return tw.Flush()
}
