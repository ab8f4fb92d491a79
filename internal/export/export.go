package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"holdings-pipeline/internal/models"
)

// TransactionsCSV renders valuated transactions as a CSV snapshot with one
// value pair of columns per currency.
func TransactionsCSV(vtxs []models.ValuatedTransaction, currencies []string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"txid", "timestamp", "amount_sats"}
	for _, cur := range currencies {
		header = append(header, "value_at_tx_"+cur, "value_at_latest_"+cur)
	}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, vtx := range vtxs {
		record := []string{
			vtx.TxID,
			vtx.Timestamp.UTC().Format(time.RFC3339),
			strconv.FormatInt(vtx.Amount, 10),
		}
		for _, cur := range currencies {
			record = append(record,
				strconv.FormatFloat(vtx.ValueAtTx[cur], 'f', 8, 64),
				strconv.FormatFloat(vtx.ValueAtLatest[cur], 'f', 8, 64),
			)
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("error flushing CSV writer: %w", err)
	}

	return buf.Bytes(), nil
}

// ObjectName returns the archive object name for a run finished at t.
func ObjectName(t time.Time) string {
	return fmt.Sprintf("runs/run-%s.csv", t.UTC().Format("2006-01-02T15-04-05"))
}
