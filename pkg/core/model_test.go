package core

import (
	"errors"
	"math"
	"testing"
)

func TestWavelength(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{250.0, 250},
		{250.9, 250},
		{300, 300},
		{-0.5, 0},
	}

	for _, tt := range tests {
		if got := Wavelength(tt.in); got != tt.want {
			t.Errorf("Wavelength(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestAbsorbanceLookup(t *testing.T) {
	table := AbsorbanceTable{250: 0.1, 300: 0.2}

	a, err := table.Lookup(250)
	if err != nil {
		t.Fatalf("Lookup(250) error = %v", err)
	}
	if a != 0.1 {
		t.Errorf("Lookup(250) = %v, want 0.1", a)
	}

	_, err = table.Lookup(310)
	var missing *MissingAbsorbanceError
	if !errors.As(err, &missing) {
		t.Fatalf("Lookup(310) error = %v, want MissingAbsorbanceError", err)
	}
	if missing.Wavelength != 310 {
		t.Errorf("missing wavelength = %d, want 310", missing.Wavelength)
	}
}

func TestNewTableHeader(t *testing.T) {
	table := NewTable()
	if table.Len() != 1 {
		t.Fatalf("empty table Len() = %d, want 1", table.Len())
	}

	table.Header[0] = "changed"
	if Header[0] != "lem (nm)" {
		t.Error("NewTable must not share the package header slice")
	}
}

func TestTableValidate(t *testing.T) {
	table := NewTable()
	table.Records = append(table.Records, Record{Emission: 300, Excitation: 250, Intensity: 10, Corrected: 14.1})
	if err := table.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	table.Records = append(table.Records, Record{Emission: 301, Excitation: 250, Corrected: math.Inf(1)})
	if err := table.Validate(); err == nil {
		t.Error("Validate() expected error for infinite value")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"EB", ModeEB, false},
		{"fl", ModeFL, false},
		{" Eb ", ModeEB, false},
		{"XY", ModeUnknown, true},
		{"", ModeUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
			var unsupported *UnsupportedModeError
			if tt.wantErr && !errors.As(err, &unsupported) {
				t.Errorf("ParseMode(%q) error type = %T, want *UnsupportedModeError", tt.in, err)
			}
		})
	}
}

func TestBlankPolicyResolve(t *testing.T) {
	v, err := BlankZero.Resolve(Blank(), "eem.csv", 30, "intensity")
	if err != nil || v != 0 {
		t.Errorf("BlankZero.Resolve(blank) = %v, %v; want 0, nil", v, err)
	}

	v, err = BlankStrict.Resolve(Num(3.5), "eem.csv", 30, "intensity")
	if err != nil || v != 3.5 {
		t.Errorf("BlankStrict.Resolve(3.5) = %v, %v; want 3.5, nil", v, err)
	}

	_, err = BlankStrict.Resolve(Blank(), "eem.csv", 30, "intensity")
	var malformed *MalformedRowError
	if !errors.As(err, &malformed) {
		t.Fatalf("BlankStrict.Resolve(blank) error = %v, want MalformedRowError", err)
	}
	if malformed.Row != 30 {
		t.Errorf("malformed row = %d, want 30", malformed.Row)
	}
}

func TestParseBlankPolicy(t *testing.T) {
	if p, err := ParseBlankPolicy("strict"); err != nil || p != BlankStrict {
		t.Errorf("ParseBlankPolicy(strict) = %v, %v", p, err)
	}
	if p, err := ParseBlankPolicy(""); err != nil || p != BlankZero {
		t.Errorf("ParseBlankPolicy(\"\") = %v, %v", p, err)
	}
	if _, err := ParseBlankPolicy("drop"); err == nil {
		t.Error("ParseBlankPolicy(drop) expected error")
	}
}
