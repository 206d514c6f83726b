package cmd

import (
	"fmt"
	"os"

	"github.com/ChrisMcGann/EEMKey/pkg/report"
	"github.com/ChrisMcGann/EEMKey/pkg/translate"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that inputs parse and every wavelength has an absorbance",
	Long: `Run the readers and the correction without writing any output. Reports the
number of records a translation would produce, or the first error.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize the corrected intensities of an input set",
	Long: `Print summary statistics about a translation without writing it: record
count, wavelength coverage and min/max/mean/median of IF, IFC and the
correction factor IFC/IF.`,
	Args: cobra.NoArgs,
	RunE: runSummarize,
}

func compute(cmd *cobra.Command) (*translate.Result, error) {
	req, opts, err := buildRequest(cmd)
	if err != nil {
		return nil, err
	}
	res, err := translate.New(opts).Compute(req)
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", w)
	}
	return res, nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	res, err := compute(cmd)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if err := res.Table.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("OK: %d records (%d lines with header)\n", len(res.Table.Records), res.Table.Len())
	return nil
}

func runSummarize(cmd *cobra.Command, args []string) error {
	res, err := compute(cmd)
	if err != nil {
		return err
	}

	summary, err := report.Summarize(res.Table)
	if err != nil {
		return fmt.Errorf("failed to summarize: %w", err)
	}
	summary.Print(os.Stdout)
	return nil
}
