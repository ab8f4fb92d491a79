package models

import "time"

// SatsPerBTC is the number of satoshis in one whole bitcoin.
const SatsPerBTC = 100_000_000

// RawTransaction is the block-explorer wire representation of a transaction.
type RawTransaction struct {
	TxID   string   `json:"txid"`
	Vin    []Input  `json:"vin"`
	Vout   []Output `json:"vout"`
	Status TxStatus `json:"status"`
}

type Input struct {
	Prevout Output `json:"prevout"`
}

type Output struct {
	ScriptPubKeyAddress string `json:"scriptpubkey_address"`
	Value               int64  `json:"value"`
}

// TxStatus carries confirmation metadata. BlockTime is nil for
// unconfirmed transactions.
type TxStatus struct {
	Confirmed bool   `json:"confirmed"`
	BlockTime *int64 `json:"block_time"`
}

// Transaction is a confirmed transaction reduced to what the pipeline
// needs: a signed satoshi delta for one tracked address at one instant.
type Transaction struct {
	TxID      string    `json:"txid"`
	Timestamp time.Time `json:"timestamp"`
	Amount    int64     `json:"amount"`
}

// ValuatedTransaction is a Transaction priced in every tracked currency,
// both at its own time and at the latest known price.
type ValuatedTransaction struct {
	Transaction
	ValueAtTx     map[string]float64 `json:"valueAtTx"`
	ValueAtLatest map[string]float64 `json:"valueAtLatest"`
}

// DailyPoint is one chart point per calendar date (UTC) that saw at least
// one transaction. All totals are cumulative from the beginning of history.
type DailyPoint struct {
	Date              time.Time          `json:"date"`
	CumulativeSats    int64              `json:"cumulativeSats"`
	CumulativeDeposit map[string]float64 `json:"cumulativeDeposit"`
	PortfolioValue    map[string]float64 `json:"portfolioValue"`
}

// YearlyStat summarizes one calendar year per currency.
type YearlyStat struct {
	Year               int                `json:"year"`
	TotalValueAtLatest map[string]float64 `json:"totalValueAtLatest"`
	TotalDeposited     map[string]float64 `json:"totalDeposited"`
	ProfitPercent      map[string]float64 `json:"profitPercent"`
}

// Summary holds the run-level totals shown above the tables.
type Summary struct {
	Transactions  int                `json:"transactions"`
	TotalSats     int64              `json:"totalSats"`
	TotalDeposit  map[string]float64 `json:"totalDeposit"`
	CurrentValue  map[string]float64 `json:"currentValue"`
	ReturnPercent map[string]float64 `json:"returnPercent"`
}

// Progress is an advisory fetch-progress event. It never affects control
// flow. EstimatedTotal is -1 until a short first page pins down the total.
type Progress struct {
	Address        string  `json:"address,omitempty"`
	Fetched        int     `json:"fetched"`
	EstimatedTotal int     `json:"estimatedTotal"`
	Percent        float64 `json:"percent"`
}

// ProgressFunc receives Progress events during a run.
type ProgressFunc func(Progress)
