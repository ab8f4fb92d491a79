package aggregator

import (
	"sort"
	"time"

	"holdings-pipeline/internal/models"
	"holdings-pipeline/internal/price"
	"holdings-pipeline/internal/valuation"
)

// Aggregator folds valuated transactions into daily chart points and
// yearly summary statistics.
type Aggregator struct {
	now func() time.Time
}

func New() *Aggregator {
	return &Aggregator{now: time.Now}
}

// Aggregate produces the daily series and the yearly stats for one run.
// Input order does not matter; transactions are sorted internally, so
// repeated runs over the same set yield identical output.
func (a *Aggregator) Aggregate(vtxs []models.ValuatedTransaction, prices price.Set) ([]models.DailyPoint, []models.YearlyStat) {
	sorted := sortedByTime(vtxs)
	daily := a.dailyPoints(sorted, prices)
	yearly := yearlyStats(sorted)
	return daily, yearly
}

// dailyPoints folds transactions into one point per calendar date (UTC).
// Cumulative satoshis and deposit value run across the whole history; the
// portfolio value of a date is the running satoshi total revalued at the
// price nearest the end of that date. If the last date is older than
// today a synthetic trailing point carries the holdings forward at the
// latest price, so the series always ends at today.
func (a *Aggregator) dailyPoints(sorted []models.ValuatedTransaction, prices price.Set) []models.DailyPoint {
	points := make(map[time.Time]*models.DailyPoint)
	var order []time.Time

	var cumSats int64
	deposit := make(map[string]float64)

	for _, vtx := range sorted {
		day := dateOf(vtx.Timestamp)
		cumSats += vtx.Amount
		for cur, v := range vtx.ValueAtTx {
			deposit[cur] += v
		}

		p, ok := points[day]
		if !ok {
			p = &models.DailyPoint{
				Date:              day,
				CumulativeDeposit: make(map[string]float64),
				PortfolioValue:    make(map[string]float64),
			}
			points[day] = p
			order = append(order, day)
		}
		p.CumulativeSats = cumSats
		for cur, v := range deposit {
			p.CumulativeDeposit[cur] = v
		}
	}

	daily := make([]models.DailyPoint, 0, len(order)+1)
	for _, day := range order {
		p := points[day]
		endOfDay := day.Add(24*time.Hour - time.Second).Unix()
		for cur, series := range prices {
			p.PortfolioValue[cur] = valuation.Value(p.CumulativeSats, series.NearestPast(endOfDay))
		}
		daily = append(daily, *p)
	}

	if len(daily) > 0 {
		today := dateOf(a.now().UTC())
		last := daily[len(daily)-1]
		if !last.Date.Equal(today) {
			p := models.DailyPoint{
				Date:              today,
				CumulativeSats:    last.CumulativeSats,
				CumulativeDeposit: make(map[string]float64, len(last.CumulativeDeposit)),
				PortfolioValue:    make(map[string]float64, len(prices)),
			}
			for cur, v := range last.CumulativeDeposit {
				p.CumulativeDeposit[cur] = v
			}
			for cur, series := range prices {
				p.PortfolioValue[cur] = valuation.Value(last.CumulativeSats, series.Latest())
			}
			daily = append(daily, p)
		}
	}

	return daily
}

// yearlyStats groups transactions by calendar year, sorted newest first.
// Profit percent is zero when nothing was deposited that year.
func yearlyStats(sorted []models.ValuatedTransaction) []models.YearlyStat {
	byYear := make(map[int]*models.YearlyStat)

	for _, vtx := range sorted {
		year := vtx.Timestamp.UTC().Year()
		st, ok := byYear[year]
		if !ok {
			st = &models.YearlyStat{
				Year:               year,
				TotalValueAtLatest: make(map[string]float64),
				TotalDeposited:     make(map[string]float64),
				ProfitPercent:      make(map[string]float64),
			}
			byYear[year] = st
		}
		for cur, v := range vtx.ValueAtLatest {
			st.TotalValueAtLatest[cur] += v
		}
		for cur, v := range vtx.ValueAtTx {
			st.TotalDeposited[cur] += v
		}
	}

	stats := make([]models.YearlyStat, 0, len(byYear))
	for _, st := range byYear {
		for cur, deposited := range st.TotalDeposited {
			if deposited == 0 {
				st.ProfitPercent[cur] = 0
				continue
			}
			st.ProfitPercent[cur] = (st.TotalValueAtLatest[cur] - deposited) / deposited * 100
		}
		stats = append(stats, *st)
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].Year > stats[j].Year })
	return stats
}

// Summarize computes the run-level totals across all transactions.
func Summarize(vtxs []models.ValuatedTransaction) models.Summary {
	s := models.Summary{
		Transactions:  len(vtxs),
		TotalDeposit:  make(map[string]float64),
		CurrentValue:  make(map[string]float64),
		ReturnPercent: make(map[string]float64),
	}
	for _, vtx := range vtxs {
		s.TotalSats += vtx.Amount
		for cur, v := range vtx.ValueAtTx {
			s.TotalDeposit[cur] += v
		}
		for cur, v := range vtx.ValueAtLatest {
			s.CurrentValue[cur] += v
		}
	}
	for cur, deposit := range s.TotalDeposit {
		if deposit == 0 {
			s.ReturnPercent[cur] = 0
			continue
		}
		s.ReturnPercent[cur] = (s.CurrentValue[cur] - deposit) / deposit * 100
	}
	return s
}

// FilterByYear returns the transactions confirmed in the given calendar
// year (UTC).
func FilterByYear(vtxs []models.ValuatedTransaction, year int) []models.ValuatedTransaction {
	var out []models.ValuatedTransaction
	for _, vtx := range vtxs {
		if vtx.Timestamp.UTC().Year() == year {
			out = append(out, vtx)
		}
	}
	return out
}

// sortedByTime returns a copy ordered by timestamp, tx id as tiebreaker so
// the fold is deterministic for same-second transactions.
func sortedByTime(vtxs []models.ValuatedTransaction) []models.ValuatedTransaction {
	sorted := make([]models.ValuatedTransaction, len(vtxs))
	copy(sorted, vtxs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].TxID < sorted[j].TxID
		}
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}

func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
