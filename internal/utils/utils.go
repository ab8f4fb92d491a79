package utils

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shopspring/decimal"

	"holdings-pipeline/internal/models"
)

// FormatMoney renders a currency value rounded to cents.
func FormatMoney(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// DisplaySummary prints the run-level totals.
func DisplaySummary(s models.Summary, currencies []string) {
	fmt.Printf("Run summary: %d transactions, %d sats\n", s.Transactions, s.TotalSats)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Currency", "Deposited", "Current Value", "Return %"})
	for _, cur := range currencies {
		t.AppendRow(table.Row{
			cur,
			FormatMoney(s.TotalDeposit[cur]),
			FormatMoney(s.CurrentValue[cur]),
			fmt.Sprintf("%.2f", s.ReturnPercent[cur]),
		})
	}
	t.Render()
}

// DisplayDailyPoints prints the daily chart series in table format.
func DisplayDailyPoints(points []models.DailyPoint, currencies []string) {
	if len(points) == 0 {
		fmt.Println("No daily points to display.")
		return
	}

	header := table.Row{"Date", "Cumulative Sats"}
	for _, cur := range currencies {
		header = append(header, "Deposited "+cur, "Portfolio "+cur)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(header)
	for _, p := range points {
		row := table.Row{p.Date.Format("2006-01-02"), p.CumulativeSats}
		for _, cur := range currencies {
			row = append(row, FormatMoney(p.CumulativeDeposit[cur]), FormatMoney(p.PortfolioValue[cur]))
		}
		t.AppendRow(row)
	}
	t.Render()
}

// DisplayYearlyStats prints the year-over-year summary in table format.
func DisplayYearlyStats(stats []models.YearlyStat, currencies []string) {
	if len(stats) == 0 {
		fmt.Println("No yearly stats to display.")
		return
	}

	header := table.Row{"Year"}
	for _, cur := range currencies {
		header = append(header, "Deposited "+cur, "Current "+cur, "Profit % "+cur)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(header)
	for _, st := range stats {
		row := table.Row{st.Year}
		for _, cur := range currencies {
			row = append(row,
				FormatMoney(st.TotalDeposited[cur]),
				FormatMoney(st.TotalValueAtLatest[cur]),
				fmt.Sprintf("%.2f", st.ProfitPercent[cur]),
			)
		}
		t.AppendRow(row)
	}
	t.Render()
}
