package analytics

import (
	"math"
	"testing"

	"perpfolio/internal/models"
)

const (
	solMarket      = "So11111111111111111111111111111111111111112"
	solShortMarket = "3x3FqLWmNYjejGDao5j3EJvqwbTqsHVLBXnGnL9A1BYD"
	btcMarket      = "3NZ9JMVBmGAqocybic2c7LQCJScmgsAZ6vQqTDzcqmJh"
)

func i64(v int64) *int64 { return &v }
func i32(v int32) *int32 { return &v }

// closeEvent builds a CLOSE_POSITION with PnL figures in whole dollars.
func closeEvent(txID string, ts int64, pnlUSD, netPnlUSD, feesUSD, volumeUSD float64) models.TradeEvent {
	return models.TradeEvent{
		TxID:           txID,
		Timestamp:      ts,
		Market:         solMarket,
		Side:           models.TradeSideLong,
		TradeType:      models.TradeTypeClosePosition,
		PnlUsd:         int64(pnlUSD * 1e6),
		NetPnlUsd:      i64(int64(netPnlUSD * 1e6)),
		TotalFeesUsd:   int64(feesUSD * 1e6),
		TotalVolumeUsd: int64(volumeUSD * 1e6),
	}
}

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}
