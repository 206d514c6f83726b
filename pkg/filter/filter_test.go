package filter

import (
	"testing"

	"github.com/ChrisMcGann/EEMKey/pkg/core"
)

func sampleTable() *core.Table {
	t := core.NewTable()
	t.Records = []core.Record{
		{Emission: 300, Excitation: 250, Intensity: 10},
		{Emission: 350, Excitation: 250, Intensity: 0},
		{Emission: 400, Excitation: 250, Intensity: 5},
		{Emission: 300, Excitation: 270, Intensity: 7},
	}
	return t
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantLem []int
	}{
		{"inactive", Config{}, []int{300, 350, 400, 300}},
		{"emission window", Config{EmissionMin: 320, EmissionMax: 400}, []int{350, 400}},
		{"excitation max", Config{ExcitationMax: 260}, []int{300, 350, 400}},
		{"drop zero", Config{DropZero: true}, []int{300, 400, 300}},
		{"combined", Config{EmissionMax: 350, ExcitationMin: 260}, []int{300}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := sampleTable()
			removed := tt.config.Apply(table)

			if removed != 4-len(tt.wantLem) {
				t.Errorf("removed = %d, want %d", removed, 4-len(tt.wantLem))
			}
			if len(table.Records) != len(tt.wantLem) {
				t.Fatalf("got %d records, want %d", len(table.Records), len(tt.wantLem))
			}
			for i, r := range table.Records {
				if r.Emission != tt.wantLem[i] {
					t.Errorf("record %d: lem = %d, want %d", i, r.Emission, tt.wantLem[i])
				}
			}
		})
	}
}

func TestValidate(t *testing.T) {
	if err := (&Config{EmissionMin: 300, EmissionMax: 400}).Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if err := (&Config{EmissionMin: 500, EmissionMax: 400}).Validate(); err == nil {
		t.Error("Validate() expected error for empty emission window")
	}
	if err := (&Config{ExcitationMin: 300, ExcitationMax: 200}).Validate(); err == nil {
		t.Error("Validate() expected error for empty excitation window")
	}
}
