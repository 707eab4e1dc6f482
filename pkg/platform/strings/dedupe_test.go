package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty slice",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "trims whitespace",
			input:    []string{"  05001  ", "05002  "},
			expected: []string{"05001", "05002"},
		},
		{
			name:     "removes duplicates preserving order",
			input:    []string{"05002", "05001", "05002"},
			expected: []string{"05002", "05001"},
		},
		{
			name:     "removes empty strings",
			input:    []string{"05001", "", "  ", "05002"},
			expected: []string{"05001", "05002"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList("", ","))
	assert.Nil(t, SplitList("   ", ","))
	assert.Equal(t, []string{"05001", "05002"}, SplitList("05001, 05002,05001", ","))
}

func TestStripDiacritics(t *testing.T) {
	tests := map[string]string{
		"Ávila":             "Avila",
		"León":              "Leon",
		"Peñafiel":          "Penafiel",
		"Cigales":           "Cigales",
		"ÁLAMO DE LA SIERRA": "ALAMO DE LA SIERRA",
		"":                  "",
	}
	for in, want := range tests {
		assert.Equal(t, want, StripDiacritics(in), "input %q", in)
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "avila", Fold("  ÁVILA "))
	assert.Equal(t, Fold("leon"), Fold("León"))
}
