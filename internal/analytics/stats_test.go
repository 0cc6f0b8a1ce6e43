package analytics

import (
	"testing"

	"perpfolio/internal/models"
)

func TestSummarizeWinsAndLosses(t *testing.T) {
	events := []models.TradeEvent{
		closeEvent("tx1", 1000, 100, 95, 5, 0),
		closeEvent("tx2", 2000, -50, -55, 5, 0),
		closeEvent("tx3", 3000, 25, 20, 5, 0),
	}
	stats := Summarize(events)
	if stats.WinCount != 2 || stats.LossCount != 1 {
		t.Fatalf("win/loss = %d/%d, want 2/1", stats.WinCount, stats.LossCount)
	}
	approx(t, "largestWin", stats.LargestWin, 100)
	approx(t, "largestLoss", stats.LargestLoss, -50)
}

func TestSummarizeZeroPnLCloseIsLoss(t *testing.T) {
	// Non-strict positivity: a break-even close counts against the trader.
	events := []models.TradeEvent{closeEvent("tx1", 1000, 0, 0, 0, 0)}
	stats := Summarize(events)
	if stats.WinCount != 0 || stats.LossCount != 1 {
		t.Fatalf("zero-PnL close: win/loss = %d/%d, want 0/1", stats.WinCount, stats.LossCount)
	}
	approx(t, "largestLoss", stats.LargestLoss, 0)
}

func TestSummarizeIgnoresNonCloseOutcomes(t *testing.T) {
	events := []models.TradeEvent{
		{TxID: "tx1", TradeType: models.TradeTypeLiquidate, PnlUsd: -100_000_000},
		{TxID: "tx2", TradeType: models.TradeTypeStopLoss, PnlUsd: -5_000_000},
		{TxID: "tx3", TradeType: models.TradeTypeTakeProfit, PnlUsd: 5_000_000},
	}
	stats := Summarize(events)
	if stats.WinCount != 0 || stats.LossCount != 0 {
		t.Fatalf("forced exits must not feed the tally, got %d/%d", stats.WinCount, stats.LossCount)
	}
}

func TestSummarizeAvgTradeSize(t *testing.T) {
	events := []models.TradeEvent{
		{TxID: "tx1", TradeType: models.TradeTypeOpenPosition, Side: models.TradeSideLong, SizeUsd: i64(1_000_000_000)},
		{TxID: "tx2", TradeType: models.TradeTypeClosePosition, Side: models.TradeSideShort, SizeUsd: i64(3_000_000_000)},
		// No side: excluded from the size population.
		{TxID: "tx3", TradeType: models.TradeTypeAddCollateral, SizeUsd: i64(9_000_000_000)},
		// No size: excluded too.
		{TxID: "tx4", TradeType: models.TradeTypeOpenPosition, Side: models.TradeSideLong},
	}
	stats := Summarize(events)
	if stats.TotalTradingCount != 2 {
		t.Fatalf("totalTradingCount = %d, want 2", stats.TotalTradingCount)
	}
	approx(t, "avgTradeSize", stats.AvgTradeSize, 2000)
}

func TestSummarizeEmptyInput(t *testing.T) {
	stats := Summarize(nil)
	if stats != (ScalarStats{}) {
		t.Fatalf("empty input must yield zero stats, got %+v", stats)
	}
}
