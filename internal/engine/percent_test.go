package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePercent(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"empty cell", "", 0},
		{"whitespace only", "   ", 0},
		{"percent string", "15%", 0.15},
		{"fraction string", "0.2", 0.2},
		{"unparseable", "abc", 0},
		{"bare percentage", "15", 0.15},
		{"padded percent", "  15 %  ", 0.15},
		{"percent with spaces", "  15%  ", 0.15},
		{"exactly one is one hundred percent", "1", 1.0},
		{"exactly one hundred", "100", 1.0},
		{"above one hundred", "150", 1.5},
		{"zero", "0", 0},
		{"zero percent", "0%", 0},
		{"negative stays negative", "-0.1", -0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NormalizePercent(tt.raw), 1e-9)
		})
	}
}
