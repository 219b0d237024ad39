package defaults

import (
	"reflect"
	"testing"
)

func TestDefaultColumns(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}

	want := []string{"To Do", "In Progress", "Done", "Needs Review"}
	if got := r.DefaultColumns(); !reflect.DeepEqual(got, want) {
		t.Errorf("DefaultColumns() = %v, want %v", got, want)
	}
}

func TestLookupColor(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}

	tests := []struct {
		name    string
		color   string
		wantHex string
		wantOK  bool
	}{
		{"exact name", "PASTEL_RED", "#FFADAD", true},
		{"lowercase", "pastel_blue", "#9BF6FF", true},
		{"surrounding whitespace", "  PASTEL_GRAY ", "#EAEAEA", true},
		{"unknown color", "NEON_GREEN", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color, ok := r.LookupColor(tt.color)
			if ok != tt.wantOK {
				t.Fatalf("LookupColor(%q) ok = %v, want %v", tt.color, ok, tt.wantOK)
			}
			if ok && color.Hex != tt.wantHex {
				t.Errorf("LookupColor(%q) hex = %s, want %s", tt.color, color.Hex, tt.wantHex)
			}
		})
	}
}

func TestPaletteSize(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}
	if got := len(r.TagColors()); got != 9 {
		t.Errorf("palette has %d colors, want 9", got)
	}
}
