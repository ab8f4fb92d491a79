package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Lowercase",
			input:    "eur",
			expected: "EUR",
		},
		{
			name:     "Surrounding whitespace",
			input:    " usd ",
			expected: "USD",
		},
		{
			name:     "Already canonical",
			input:    "GBP",
			expected: "GBP",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("eur"))
	assert.True(t, Supported("USD"))
	assert.False(t, Supported("BTC"))
	assert.False(t, Supported(""))
}
