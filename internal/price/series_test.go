package price

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeriesEmpty(t *testing.T) {
	_, err := NewSeries(nil)
	assert.ErrorIs(t, err, ErrNoPriceData)
}

func TestNewSeriesDuplicateTimestamps(t *testing.T) {
	series, err := NewSeries([]Point{
		{Time: 10, Price: 1.0},
		{Time: 10, Price: 2.0},
	})
	require.NoError(t, err)

	// Last write wins.
	assert.Equal(t, 1, series.Len())
	assert.Equal(t, 2.0, series.NearestPast(10))
}

func TestNearestPast(t *testing.T) {
	t.Parallel()

	series, err := NewSeries([]Point{
		{Time: 10, Price: 100},
		{Time: 20, Price: 200},
		{Time: 30, Price: 300},
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		at       int64
		expected float64
	}{
		{
			name:     "Between samples selects the past one",
			at:       25,
			expected: 200,
		},
		{
			name:     "Exact match",
			at:       20,
			expected: 200,
		},
		{
			name:     "After the last sample",
			at:       99,
			expected: 300,
		},
		{
			// Documented fallback: a transaction older than the whole
			// price history is valued at the earliest known price.
			name:     "Before the first sample falls back to earliest",
			at:       5,
			expected: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, series.NearestPast(tt.at))
		})
	}
}

func TestLatestAndEarliest(t *testing.T) {
	series, err := NewSeries([]Point{
		{Time: 30, Price: 300},
		{Time: 10, Price: 100},
		{Time: 20, Price: 200},
	})
	require.NoError(t, err)

	assert.Equal(t, 300.0, series.Latest())
	assert.Equal(t, 100.0, series.Earliest())
}
