package amount

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"holdings-pipeline/internal/models"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	const addr = "bc1qtracked"

	tests := []struct {
		name     string
		tx       models.RawTransaction
		expected int64
	}{
		{
			name: "Receive only",
			tx: models.RawTransaction{
				Vout: []models.Output{
					{ScriptPubKeyAddress: addr, Value: 50_000},
				},
			},
			expected: 50_000,
		},
		{
			name: "Spend only",
			tx: models.RawTransaction{
				Vin: []models.Input{
					{Prevout: models.Output{ScriptPubKeyAddress: addr, Value: 30_000}},
				},
				Vout: []models.Output{
					{ScriptPubKeyAddress: "bc1qother", Value: 29_000},
				},
			},
			expected: -30_000,
		},
		{
			name: "Self-transfer nets to output minus input",
			tx: models.RawTransaction{
				Vin: []models.Input{
					{Prevout: models.Output{ScriptPubKeyAddress: addr, Value: 100_000}},
				},
				Vout: []models.Output{
					{ScriptPubKeyAddress: addr, Value: 99_000},
				},
			},
			expected: -1_000,
		},
		{
			name: "Multiple matching inputs and outputs",
			tx: models.RawTransaction{
				Vin: []models.Input{
					{Prevout: models.Output{ScriptPubKeyAddress: addr, Value: 10_000}},
					{Prevout: models.Output{ScriptPubKeyAddress: addr, Value: 20_000}},
					{Prevout: models.Output{ScriptPubKeyAddress: "bc1qother", Value: 5_000}},
				},
				Vout: []models.Output{
					{ScriptPubKeyAddress: addr, Value: 7_000},
					{ScriptPubKeyAddress: addr, Value: 8_000},
				},
			},
			expected: -15_000,
		},
		{
			name: "Unrelated transaction",
			tx: models.RawTransaction{
				Vin: []models.Input{
					{Prevout: models.Output{ScriptPubKeyAddress: "bc1qsender", Value: 40_000}},
				},
				Vout: []models.Output{
					{ScriptPubKeyAddress: "bc1qreceiver", Value: 39_000},
				},
			},
			expected: 0,
		},
		{
			name: "Input without prevout address is not matched",
			tx: models.RawTransaction{
				Vin: []models.Input{
					{Prevout: models.Output{Value: 40_000}},
				},
				Vout: []models.Output{
					{ScriptPubKeyAddress: addr, Value: 1_000},
				},
			},
			expected: 1_000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Resolve(tt.tx, addr))
		})
	}
}

func TestResolveOutputMinusInputProperty(t *testing.T) {
	t.Parallel()

	// For an address appearing in one input of value a and one output of
	// value b the result must always be b - a.
	pairs := []struct{ a, b int64 }{
		{0, 0},
		{0, 100},
		{100, 0},
		{100_000, 99_000},
		{1, 100_000_000},
	}

	for _, p := range pairs {
		tx := models.RawTransaction{
			Vin:  []models.Input{{Prevout: models.Output{ScriptPubKeyAddress: "addr", Value: p.a}}},
			Vout: []models.Output{{ScriptPubKeyAddress: "addr", Value: p.b}},
		}
		assert.Equal(t, p.b-p.a, Resolve(tx, "addr"))
	}
}
