// Package config provides centralized configuration for EEMKey.
// It loads settings from environment variables (optionally seeded from a
// .env file) with defaults matching the instrument export layouts, and
// validates them before any file is read.
package config

import (
	"fmt"
	"strings"

	"github.com/ChrisMcGann/EEMKey/pkg/core"
)

// Config holds all application configuration.
type Config struct {
	Logging LoggingConfig
	Input   InputConfig
	Output  OutputConfig
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"EEMKEY_LOG_LEVEL" default:"info"`

	// Format is the log output format: text or json (default: text)
	Format string `env:"EEMKEY_LOG_FORMAT" default:"text"`
}

// InputConfig holds reader settings.
type InputConfig struct {
	// AbsorbanceSkip is the number of header lines of an absorbance export (default: 47)
	AbsorbanceSkip int `env:"EEMKEY_ABSORBANCE_SKIP" default:"47"`

	// MetadataLines is the size of the EB matrix metadata block (default: 24)
	MetadataLines int `env:"EEMKEY_METADATA_LINES" default:"24"`

	// TabularSkip is the number of header rows of an FL table (default: 1)
	TabularSkip int `env:"EEMKEY_TABULAR_SKIP" default:"1"`

	// Sheet is the worksheet read from spreadsheet inputs (default: first sheet)
	Sheet string `env:"EEMKEY_SHEET"`

	// BlankPolicy is how blank data cells are read: zero or strict (default: zero)
	BlankPolicy string `env:"EEMKEY_BLANK_POLICY" default:"zero"`
}

// OutputConfig holds writer settings.
type OutputConfig struct {
	// LineEnding terminates output lines: crlf or lf (default: crlf)
	LineEnding string `env:"EEMKEY_LINE_ENDING" default:"crlf"`
}

// Validate checks every setting.
func (c *Config) Validate() error {
	var errs []string

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("log level %q must be debug, info, warn or error", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log format %q must be text or json", c.Logging.Format))
	}

	if c.Input.AbsorbanceSkip < 0 {
		errs = append(errs, "absorbance skip must be non-negative")
	}
	if c.Input.MetadataLines < 0 {
		errs = append(errs, "metadata lines must be non-negative")
	}
	if c.Input.TabularSkip < 0 {
		errs = append(errs, "tabular skip must be non-negative")
	}
	if _, err := core.ParseBlankPolicy(c.Input.BlankPolicy); err != nil {
		errs = append(errs, err.Error())
	}

	switch strings.ToLower(c.Output.LineEnding) {
	case "crlf", "lf":
	default:
		errs = append(errs, fmt.Sprintf("line ending %q must be crlf or lf", c.Output.LineEnding))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Blank returns the parsed blank policy. Call after Validate.
func (c *Config) Blank() core.BlankPolicy {
	p, _ := core.ParseBlankPolicy(c.Input.BlankPolicy)
	return p
}

// CRLF reports whether output lines end with \r\n.
func (c *Config) CRLF() bool {
	return strings.ToLower(c.Output.LineEnding) == "crlf"
}
