package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/gst-invoice/internal/pdf"
)

var infoCmd = &cobra.Command{
	Use:   "info [files...]",
	Short: "Show information about rendered PDFs",
	Long: `Check rendered invoice PDFs and report their page counts.

Examples:
  gst-invoice info invoice.pdf
  gst-invoice info out/ -f table`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

// FileInfo is one row of the info command output
type FileInfo struct {
	File string `json:"file"`
	*pdf.Info
}

func runInfo(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args, ".pdf")
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found")
	}

	results := make([]FileInfo, 0, len(files))
	for _, file := range files {
		results = append(results, inspectFile(file))
	}

	if outputFormat == "json" {
		return writeJSON(cmd.OutOrStdout(), results)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tPAGES\tSIZE\tVALID\tERROR")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%t\t%s\n", r.File, r.Pages, r.Size, r.Valid, r.Error)
	}
	return tw.Flush()
}

func inspectFile(path string) FileInfo {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileInfo{File: path, Info: &pdf.Info{Error: err.Error()}}
	}

	info, err := pdf.Inspect(data)
	if err != nil {
		printVerbose("%s: %v\n", path, err)
		return FileInfo{File: path, Info: &pdf.Info{Size: len(data), Error: err.Error()}}
	}
	return FileInfo{File: path, Info: info}
}
