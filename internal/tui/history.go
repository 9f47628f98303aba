package tui

import (
	"time"

	"coinpulse/internal/domain"

	"github.com/charmbracelet/bubbles/table"
)

var historyColumns = []table.Column{
	{Title: "Date", Width: 10},
	{Title: "Open", Width: 14},
	{Title: "High", Width: 14},
	{Title: "Low", Width: 14},
	{Title: "Close", Width: 14},
	{Title: "Volume", Width: 16},
}

func renderHistory(history domain.History) string {
	switch history.Status {
	case domain.HistoryLoading:
		return mutedStyle.Render("Loading 10-day history...")
	case domain.HistoryUnavailable:
		return errorStyle.Render("History unavailable.")
	case domain.HistoryReady:
	default:
		return ""
	}

	rows := make([]table.Row, 0, len(history.Candles))
	for _, c := range history.Candles {
		rows = append(rows, table.Row{
			time.Unix(c.Timestamp, 0).UTC().Format("2006-01-02"),
			formatPrice(c.Open),
			formatPrice(c.High),
			formatPrice(c.Low),
			formatPrice(c.Close),
			formatAmount(c.Volume),
		})
	}

	t := table.New(
		table.WithColumns(historyColumns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+2),
	)
	return t.View()
}
