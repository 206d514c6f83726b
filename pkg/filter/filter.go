// Package filter provides record filtering applied after correction
package filter

import (
	"fmt"

	"github.com/ChrisMcGann/EEMKey/pkg/core"
)

// Config holds filtering configuration. Zero bounds are unset.
type Config struct {
	EmissionMin   int  // Keep records with lem >= EmissionMin
	EmissionMax   int  // Keep records with lem <= EmissionMax
	ExcitationMin int  // Keep records with lex >= ExcitationMin
	ExcitationMax int  // Keep records with lex <= ExcitationMax
	DropZero      bool // Drop records whose raw intensity is zero or negative
}

// Active reports whether any filter is configured.
func (c *Config) Active() bool {
	return c.EmissionMin != 0 || c.EmissionMax != 0 ||
		c.ExcitationMin != 0 || c.ExcitationMax != 0 || c.DropZero
}

// Validate checks that every configured window is well formed.
func (c *Config) Validate() error {
	if c.EmissionMax != 0 && c.EmissionMin > c.EmissionMax {
		return fmt.Errorf("emission window %d..%d is empty", c.EmissionMin, c.EmissionMax)
	}
	if c.ExcitationMax != 0 && c.ExcitationMin > c.ExcitationMax {
		return fmt.Errorf("excitation window %d..%d is empty", c.ExcitationMin, c.ExcitationMax)
	}
	return nil
}

// Apply removes records outside the configured windows, keeping the order
// of the remaining records. It returns the number of records removed.
func (c *Config) Apply(t *core.Table) int {
	if !c.Active() {
		return 0
	}

	kept := t.Records[:0]
	for _, r := range t.Records {
		if c.keep(r) {
			kept = append(kept, r)
		}
	}

	removed := len(t.Records) - len(kept)
	t.Records = kept
	return removed
}

func (c *Config) keep(r core.Record) bool {
	if !within(r.Emission, c.EmissionMin, c.EmissionMax) {
		return false
	}
	if !within(r.Excitation, c.ExcitationMin, c.ExcitationMax) {
		return false
	}
	if c.DropZero && r.Intensity <= 0 {
		return false
	}
	return true
}

func within(v, lo, hi int) bool {
	if lo != 0 && v < lo {
		return false
	}
	if hi != 0 && v > hi {
		return false
	}
	return true
}
