package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumeric(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want float64
		ok   bool
	}{
		{"3555", 3555, true},
		{"$1,250,000", 1250000, true},
		{"66,000", 66000, true},
		{"value 12.5", 12.5, true},
		{"4,188 MMBtu", 4188, true},
		{"649,680 kWh/yr", 649680, true},
		{"$0.102/kWh", 0.102, true},
		{"about 600 kW", 600, true},
		{"$2.3 million", 2.3e6, true},
		{"4.5M", 4.5e6, true},
		{"$1.2 billion", 1.2e9, true},
		{"3 thousand", 3000, true},
		{"120k sq ft", 120000, true},
		{"-", 0, false},
		{"N/A", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := Numeric(tt.text)
		assert.Equal(t, tt.ok, ok, "Numeric(%q) ok", tt.text)
		assert.InDelta(t, tt.want, got, 1e-9, "Numeric(%q)", tt.text)
	}
}

func TestStandalone(t *testing.T) {
	t.Parallel()

	assert.True(t, standalone("4.5m", 'm'))
	assert.True(t, standalone("120k", 'k'))
	assert.True(t, standalone("2 m wide", 'm'))
	assert.False(t, standalone("mmbtu", 'm'))
	assert.False(t, standalone("kwh", 'k'))
	assert.False(t, standalone("600 kw", 'k'))
	assert.False(t, standalone("", 'm'))
}
