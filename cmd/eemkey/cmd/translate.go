package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ChrisMcGann/EEMKey/pkg/report"
	"github.com/ChrisMcGann/EEMKey/pkg/translate"
	"github.com/ChrisMcGann/EEMKey/pkg/writer/sqlite"
	"github.com/spf13/cobra"
)

func init() {
	f := translateCmd.Flags()
	f.StringVarP(&outputFile, "out", "o", "", "Output table path (required)")
	f.StringVar(&lineEnding, "line-ending", "", "Output line ending: crlf or lf (default crlf)")
	f.StringVar(&dbFile, "db", "", "Also store the run in this SQLite database")
	f.StringVar(&heatmapFile, "heatmap", "", "Also render an IFC heatmap image (.png, .svg, .pdf)")

	translateCmd.MarkFlagRequired("out")
}

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Correct an EB or FL export and write the IFC table",
	Long: `Read a fluorescence export and its UV-VIS absorbance spectrum, apply the
inner-filter correction and write the semicolon-delimited result table.

Examples:
  # Correct an excitation-emission matrix
  eemkey translate --mode EB --eem EEM_raw_EB.csv --absorbance UVVIS_raw.csv --out output.csv

  # Correct a tabulated list stored in a spreadsheet
  eemkey translate --mode FL --eem fluorescence.xlsx --absorbance UVVIS_raw.csv --out output.csv

  # Keep a copy of the run in SQLite and render a heatmap
  eemkey translate -m EB -e eem.csv -a uvvis.csv -o output.csv --db runs.db --heatmap eem.png`,
	RunE: runTranslate,
}

func runTranslate(cmd *cobra.Command, args []string) error {
	req, opts, err := buildRequest(cmd)
	if err != nil {
		return err
	}

	for _, p := range []string{req.EEMPath, req.AbsorbancePath} {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return fmt.Errorf("input file does not exist: %s", p)
		}
	}

	fmt.Printf("Translating %s to %s...\n", req.EEMPath, req.OutputPath)
	fmt.Printf("Mode: %s\n", req.Mode)
	fmt.Printf("Absorbance: %s\n", req.AbsorbancePath)
	if opts.Filter.Active() {
		fmt.Printf("Filter: lem %s, lex %s\n",
			window(opts.Filter.EmissionMin, opts.Filter.EmissionMax),
			window(opts.Filter.ExcitationMin, opts.Filter.ExcitationMax))
	}

	tr := translate.New(opts)
	res, err := tr.Compute(req)
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", w)
	}

	// Decide on the heatmap before anything reaches disk.
	heatmap := heatmapFile
	if heatmap != "" {
		if err := report.CanHeatmap(res.Table); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v, skipping %s\n", err, heatmap)
			heatmap = ""
		}
	}

	if err := tr.Write(req, res); err != nil {
		return err
	}

	if dbFile != "" {
		if err := storeRun(req, res); err != nil {
			return err
		}
	}

	if heatmap != "" {
		title := strings.TrimSuffix(filepath.Base(req.EEMPath), filepath.Ext(req.EEMPath))
		if err := report.Heatmap(res.Table, title, heatmap); err != nil {
			return err
		}
		fmt.Printf("Heatmap: %s\n", heatmap)
	}

	fmt.Printf("\nTranslation complete!\n")
	fmt.Printf("Records: %d\n", len(res.Table.Records))
	if res.Filtered > 0 {
		fmt.Printf("Filtered: %d records\n", res.Filtered)
	}
	fmt.Printf("Output: %s\n", req.OutputPath)

	return nil
}

func storeRun(req translate.Request, res *translate.Result) error {
	writer, err := sqlite.NewWriter(dbFile)
	if err != nil {
		return fmt.Errorf("failed to open run database: %w", err)
	}
	defer writer.Close()

	runID, err := writer.WriteRun(sqlite.Run{
		Mode:             req.Mode,
		FluorescenceFile: req.EEMPath,
		AbsorbanceFile:   req.AbsorbancePath,
		OutputFile:       req.OutputPath,
	}, res.Table)
	if err != nil {
		return fmt.Errorf("failed to store run: %w", err)
	}

	fmt.Printf("Run %s stored in %s\n", runID, dbFile)
	return writer.Close()
}

func window(lo, hi int) string {
	switch {
	case lo == 0 && hi == 0:
		return "any"
	case hi == 0:
		return fmt.Sprintf(">= %d nm", lo)
	case lo == 0:
		return fmt.Sprintf("<= %d nm", hi)
	default:
		return fmt.Sprintf("%d..%d nm", lo, hi)
	}
}
