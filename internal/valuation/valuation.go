package valuation

import (
	"holdings-pipeline/internal/models"
	"holdings-pipeline/internal/price"
)

// Value converts a satoshi amount to currency units at the given price.
func Value(sats int64, unitPrice float64) float64 {
	return float64(sats) * unitPrice / models.SatsPerBTC
}

// Valuate joins transactions with price series. Each transaction is priced
// per currency at the nearest-past timestamp and at the latest known
// price. The latest price is resolved once per run so every transaction
// shares the same reference point.
func Valuate(txs []models.Transaction, prices price.Set) []models.ValuatedTransaction {
	latest := make(map[string]float64, len(prices))
	for cur, series := range prices {
		latest[cur] = series.Latest()
	}

	vtxs := make([]models.ValuatedTransaction, 0, len(txs))
	for _, tx := range txs {
		vtx := models.ValuatedTransaction{
			Transaction:   tx,
			ValueAtTx:     make(map[string]float64, len(prices)),
			ValueAtLatest: make(map[string]float64, len(prices)),
		}
		at := tx.Timestamp.Unix()
		for cur, series := range prices {
			vtx.ValueAtTx[cur] = Value(tx.Amount, series.NearestPast(at))
			vtx.ValueAtLatest[cur] = Value(tx.Amount, latest[cur])
		}
		vtxs = append(vtxs, vtx)
	}
	return vtxs
}
