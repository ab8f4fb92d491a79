package valuation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holdings-pipeline/internal/models"
	"holdings-pipeline/internal/price"
)

func mustSeries(t *testing.T, points []price.Point) *price.Series {
	t.Helper()
	series, err := price.NewSeries(points)
	require.NoError(t, err)
	return series
}

func TestValue(t *testing.T) {
	assert.Equal(t, 50.0, Value(100_000, 50_000))
	assert.Equal(t, -22.0, Value(-40_000, 55_000))
	assert.Equal(t, 0.0, Value(0, 50_000))
}

func TestValuate(t *testing.T) {
	prices := price.Set{
		"EUR": mustSeries(t, []price.Point{
			{Time: 1_000, Price: 50_000},
			{Time: 2_000, Price: 55_000},
			{Time: 3_000, Price: 60_000},
		}),
	}

	txs := []models.Transaction{
		{TxID: "tx-1", Timestamp: time.Unix(1_500, 0).UTC(), Amount: 100_000},
		{TxID: "tx-2", Timestamp: time.Unix(2_500, 0).UTC(), Amount: -40_000},
	}

	vtxs := Valuate(txs, prices)
	require.Len(t, vtxs, 2)

	// tx-1 priced at the nearest past sample (50k), tx-2 at 55k.
	assert.InDelta(t, 50.0, vtxs[0].ValueAtTx["EUR"], 1e-9)
	assert.InDelta(t, -22.0, vtxs[1].ValueAtTx["EUR"], 1e-9)

	// Both share the same latest price reference point (60k).
	assert.InDelta(t, 60.0, vtxs[0].ValueAtLatest["EUR"], 1e-9)
	assert.InDelta(t, -24.0, vtxs[1].ValueAtLatest["EUR"], 1e-9)
}

func TestValuateEarliestFallback(t *testing.T) {
	prices := price.Set{
		"EUR": mustSeries(t, []price.Point{
			{Time: 2_000, Price: 55_000},
			{Time: 3_000, Price: 60_000},
		}),
	}

	// Older than the whole price history: valued at the earliest sample.
	txs := []models.Transaction{
		{TxID: "tx-old", Timestamp: time.Unix(100, 0).UTC(), Amount: 100_000},
	}

	vtxs := Valuate(txs, prices)
	require.Len(t, vtxs, 1)
	assert.InDelta(t, 55.0, vtxs[0].ValueAtTx["EUR"], 1e-9)
}

func TestValuateMultiCurrency(t *testing.T) {
	prices := price.Set{
		"EUR": mustSeries(t, []price.Point{{Time: 1_000, Price: 50_000}}),
		"USD": mustSeries(t, []price.Point{{Time: 1_000, Price: 54_000}}),
	}

	txs := []models.Transaction{
		{TxID: "tx-1", Timestamp: time.Unix(1_500, 0).UTC(), Amount: 100_000},
	}

	vtxs := Valuate(txs, prices)
	require.Len(t, vtxs, 1)
	assert.InDelta(t, 50.0, vtxs[0].ValueAtTx["EUR"], 1e-9)
	assert.InDelta(t, 54.0, vtxs[0].ValueAtTx["USD"], 1e-9)
}
