package analytics

import (
	"perpfolio/internal/models"
)

// ScalarStats is the scalar summary over one windowed event set.
type ScalarStats struct {
	WinCount   int     `json:"winCount"`
	LossCount  int     `json:"lossCount"`
	LargestWin float64 `json:"largestWin"`
	// LargestLoss is the most negative losing close, not an absolute value.
	LargestLoss  float64 `json:"largestLoss"`
	AvgTradeSize float64 `json:"avgTradeSize"`
	// TotalTradingCount counts side-bearing, sized events (the avgTradeSize
	// population), which may differ from the raw event count.
	TotalTradingCount int `json:"totalTradingCount"`
}

// Summarize iterates the event list once. Wins and losses come from
// CLOSE_POSITION events only; a zero-PnL close counts as a loss. Division
// by zero degrades to an average of 0.
func Summarize(events []models.TradeEvent) ScalarStats {
	var stats ScalarStats
	var totalSize float64

	for i := range events {
		ev := &events[i]
		out := Classify(ev)

		if out.IsClosing {
			pnl := USD(ev.PnlUsd)
			if pnl > 0 {
				stats.WinCount++
				if pnl > stats.LargestWin {
					stats.LargestWin = pnl
				}
			} else {
				stats.LossCount++
				if pnl < stats.LargestLoss {
					stats.LargestLoss = pnl
				}
			}
		}

		if ev.Side.Valid() && ev.SizeUsd != nil {
			totalSize += USD(*ev.SizeUsd)
			stats.TotalTradingCount++
		}
	}

	if stats.TotalTradingCount > 0 {
		stats.AvgTradeSize = totalSize / float64(stats.TotalTradingCount)
	}
	return stats
}
