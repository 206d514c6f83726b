// Package cmd provides CLI command implementations
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ChrisMcGann/EEMKey/internal/config"
	"github.com/ChrisMcGann/EEMKey/internal/logging"
	"github.com/ChrisMcGann/EEMKey/pkg/core"
	"github.com/ChrisMcGann/EEMKey/pkg/filter"
	"github.com/ChrisMcGann/EEMKey/pkg/translate"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	envFile   string
	logLevel  string
	logFormat string

	// Input flags shared by translate, validate and summarize
	eemFile        string
	absorbanceFile string
	mode           string
	absorbanceSkip int
	metadataLines  int
	tabularSkip    int
	sheetName      string
	blankPolicy    string

	// Filter flags
	lemMin   int
	lemMax   int
	lexMin   int
	lexMax   int
	dropZero bool

	// Output flags (translate only)
	outputFile  string
	lineEnding  string
	dbFile      string
	heatmapFile string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "eemkey",
	Short: "EEMKey - fluorescence inner-filter correction tool",
	Long: `EEMKey converts raw fluorescence exports into an inner-filter-corrected
intensity table.

Two acquisition modes are supported:
- EB: excitation-emission matrix export plus UV-VIS absorbance spectrum
- FL: tabulated (lem, lex, IF) list plus UV-VIS absorbance spectrum

Every value is corrected with IFC = IF * 10^(0.5 * (Aex + Aem)) and written
as a semicolon-delimited table with decimal commas.`,
	Version:           "1.0.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(summarizeCmd)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&envFile, "env-file", ".env", "Environment file with EEMKEY_* settings")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from EEMKEY_LOG_LEVEL)")
	pf.StringVar(&logFormat, "log-format", "", "Log format: text or json (default from EEMKEY_LOG_FORMAT)")

	for _, c := range []*cobra.Command{translateCmd, validateCmd, summarizeCmd} {
		addInputFlags(c)
	}
}

func addInputFlags(c *cobra.Command) {
	f := c.Flags()
	f.StringVarP(&eemFile, "eem", "e", "", "EB matrix or FL table path (required)")
	f.StringVarP(&absorbanceFile, "absorbance", "a", "", "UV-VIS absorbance file path (required)")
	f.StringVarP(&mode, "mode", "m", "", "Acquisition mode: EB or FL (required)")
	f.IntVar(&absorbanceSkip, "absorbance-skip", 0, "Header lines of the absorbance file (default 47)")
	f.IntVar(&metadataLines, "metadata-lines", 0, "Metadata lines of an EB matrix (default 24)")
	f.IntVar(&tabularSkip, "tabular-skip", 0, "Header rows of an FL table (default 1)")
	f.StringVar(&sheetName, "sheet", "", "Worksheet of .xlsx inputs (default first sheet)")
	f.StringVar(&blankPolicy, "blank", "", "Blank data cells: zero or strict (default zero)")
	f.IntVar(&lemMin, "lem-min", 0, "Drop records with emission below this wavelength (nm)")
	f.IntVar(&lemMax, "lem-max", 0, "Drop records with emission above this wavelength (nm)")
	f.IntVar(&lexMin, "lex-min", 0, "Drop records with excitation below this wavelength (nm)")
	f.IntVar(&lexMax, "lex-max", 0, "Drop records with excitation above this wavelength (nm)")
	f.BoolVar(&dropZero, "drop-zero", false, "Drop records with zero or negative raw intensity")

	c.MarkFlagRequired("eem")
	c.MarkFlagRequired("absorbance")
	c.MarkFlagRequired("mode")
}

// setup loads configuration and configures logging before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	if _, err := config.LoadEnvFile(envFile); err != nil {
		return err
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	if logLevel != "" || logFormat != "" {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config validation: %w", err)
		}
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Debug("configuration loaded",
		"absorbance_skip", cfg.Input.AbsorbanceSkip,
		"metadata_lines", cfg.Input.MetadataLines,
		"tabular_skip", cfg.Input.TabularSkip,
		"blank_policy", cfg.Input.BlankPolicy,
	)
	return nil
}

// buildRequest resolves the mode and options from configuration and the
// flags that were set on cmd.
func buildRequest(cmd *cobra.Command) (translate.Request, translate.Options, error) {
	m, err := core.ParseMode(mode)
	if err != nil {
		return translate.Request{}, translate.Options{}, err
	}

	opts := translate.DefaultOptions()
	opts.AbsorbanceSkip = cfg.Input.AbsorbanceSkip
	opts.MetadataLines = cfg.Input.MetadataLines
	opts.TabularSkip = cfg.Input.TabularSkip
	opts.Sheet = cfg.Input.Sheet
	opts.Blank = cfg.Blank()
	opts.CRLF = cfg.CRLF()

	flags := cmd.Flags()
	if flags.Changed("absorbance-skip") {
		opts.AbsorbanceSkip = absorbanceSkip
	}
	if flags.Changed("metadata-lines") {
		opts.MetadataLines = metadataLines
	}
	if flags.Changed("tabular-skip") {
		opts.TabularSkip = tabularSkip
	}
	if flags.Changed("sheet") {
		opts.Sheet = sheetName
	}
	if flags.Changed("blank") {
		if opts.Blank, err = core.ParseBlankPolicy(blankPolicy); err != nil {
			return translate.Request{}, translate.Options{}, err
		}
	}
	if flags.Lookup("line-ending") != nil && flags.Changed("line-ending") {
		switch lineEnding {
		case "crlf":
			opts.CRLF = true
		case "lf":
			opts.CRLF = false
		default:
			return translate.Request{}, translate.Options{}, fmt.Errorf("invalid line ending '%s', must be crlf or lf", lineEnding)
		}
	}
	if opts.AbsorbanceSkip < 0 || opts.MetadataLines < 0 || opts.TabularSkip < 0 {
		return translate.Request{}, translate.Options{}, fmt.Errorf("skip and metadata line counts must be non-negative")
	}

	opts.Filter = filter.Config{
		EmissionMin:   lemMin,
		EmissionMax:   lemMax,
		ExcitationMin: lexMin,
		ExcitationMax: lexMax,
		DropZero:      dropZero,
	}

	req := translate.Request{
		EEMPath:        eemFile,
		AbsorbancePath: absorbanceFile,
		OutputPath:     outputFile,
		Mode:           m,
	}
	return req, opts, nil
}
