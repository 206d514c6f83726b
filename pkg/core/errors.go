package core

import (
	"errors"
	"fmt"
)

// ErrNoOffsetsFound is reported when an EB matrix carries no usable
// Fixed/Offset line in its metadata block. It is recoverable: the
// translation still produces a header-only table.
var ErrNoOffsetsFound = errors.New("no excitation offsets found in matrix metadata")

// MalformedRowError is returned when a data row cannot be read into the
// expected numeric shape.
type MalformedRowError struct {
	File   string
	Row    int // 1-based line or row number
	Reason string
}

func (e *MalformedRowError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("malformed row %d: %s", e.Row, e.Reason)
	}
	return fmt.Sprintf("%s: malformed row %d: %s", e.File, e.Row, e.Reason)
}

// MissingAbsorbanceError is returned when a wavelength has no entry in the
// absorbance table.
type MissingAbsorbanceError struct {
	Wavelength int
}

func (e *MissingAbsorbanceError) Error() string {
	return fmt.Sprintf("missing absorbance value for %d nm", e.Wavelength)
}

// UnsupportedModeError is returned for a mode selector that names no pipeline.
type UnsupportedModeError struct {
	Mode string
}

func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("unsupported mode %q, must be EB or FL", e.Mode)
}
