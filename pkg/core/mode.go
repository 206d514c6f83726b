package core

import (
	"fmt"
	"strings"
)

// Mode selects the acquisition pipeline.
type Mode int

const (
	// ModeUnknown is the zero value and selects no pipeline.
	ModeUnknown Mode = iota
	// ModeEB reads an excitation-emission matrix plus absorbance spectrum.
	ModeEB
	// ModeFL reads a tabulated fluorescence list plus absorbance spectrum.
	ModeFL
)

func (m Mode) String() string {
	switch m {
	case ModeEB:
		return "EB"
	case ModeFL:
		return "FL"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a mode selector ("EB", "FL", case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "EB":
		return ModeEB, nil
	case "FL":
		return ModeFL, nil
	default:
		return ModeUnknown, &UnsupportedModeError{Mode: s}
	}
}

// BlankPolicy decides how blank or non-numeric data cells are treated.
type BlankPolicy int

const (
	// BlankZero substitutes zero for blank cells.
	BlankZero BlankPolicy = iota
	// BlankStrict fails the translation on the first blank cell.
	BlankStrict
)

func (p BlankPolicy) String() string {
	if p == BlankStrict {
		return "strict"
	}
	return "zero"
}

// ParseBlankPolicy converts "zero" or "strict".
func ParseBlankPolicy(s string) (BlankPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "zero":
		return BlankZero, nil
	case "strict":
		return BlankStrict, nil
	default:
		return BlankZero, fmt.Errorf("invalid blank policy %q, must be zero or strict", s)
	}
}

// Resolve applies the policy to r. what names the cell for error messages.
func (p BlankPolicy) Resolve(r Reading, file string, row int, what string) (float64, error) {
	if r.Valid {
		return r.Value, nil
	}
	if p == BlankStrict {
		return 0, &MalformedRowError{File: file, Row: row, Reason: "blank or non-numeric " + what}
	}
	return 0, nil
}
