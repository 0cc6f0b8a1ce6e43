package analytics

import (
	"testing"

	"perpfolio/internal/models"
)

func TestClassifyCoversEveryTradeType(t *testing.T) {
	tests := []struct {
		tradeType models.TradeType
		want      Outcome
	}{
		{models.TradeTypeOpenPosition, Outcome{IsOpening: true}},
		{models.TradeTypeClosePosition, Outcome{IsClosing: true}},
		{models.TradeTypeLiquidate, Outcome{IsForcedExit: true}},
		{models.TradeTypeTakeProfit, Outcome{IsForcedExit: true}},
		{models.TradeTypeStopLoss, Outcome{IsForcedExit: true}},
		{models.TradeTypeIncreaseSize, Outcome{IsSizeChange: true}},
		{models.TradeTypeDecreaseSize, Outcome{IsSizeChange: true}},
		{models.TradeTypeAddCollateral, Outcome{IsCollateralOnly: true}},
		{models.TradeTypeRemoveCollateral, Outcome{IsCollateralOnly: true}},
	}
	for _, tt := range tests {
		ev := models.TradeEvent{TradeType: tt.tradeType, Side: models.TradeSideLong}
		got := Classify(&ev)
		tt.want.Side = models.TradeSideLong
		if got != tt.want {
			t.Fatalf("Classify(%s) = %+v, want %+v", tt.tradeType, got, tt.want)
		}
	}
}

func TestClassifyOnlyCloseFeedsWinLoss(t *testing.T) {
	for _, tradeType := range []models.TradeType{
		models.TradeTypeLiquidate,
		models.TradeTypeStopLoss,
		models.TradeTypeTakeProfit,
	} {
		ev := models.TradeEvent{TradeType: tradeType}
		if Classify(&ev).IsClosing {
			t.Fatalf("%s must not count as closing", tradeType)
		}
	}
}

func TestClassifyUnknownTypeIsInert(t *testing.T) {
	ev := models.TradeEvent{TradeType: "SOMETHING_NEW", Side: models.TradeSideShort}
	got := Classify(&ev)
	if got.IsClosing || got.IsOpening || got.IsCollateralOnly || got.IsForcedExit || got.IsSizeChange {
		t.Fatalf("unknown trade type classified as %+v", got)
	}
	if got.Side != models.TradeSideShort {
		t.Fatalf("side must pass through, got %q", got.Side)
	}
}

func TestDisplaySideShortMarketAuthoritative(t *testing.T) {
	// The registry flag wins over the per-event side string for short markets.
	ev := models.TradeEvent{Market: solShortMarket, Side: models.TradeSideLong}
	if got := DisplaySide(&ev); got != models.TradeSideShort {
		t.Fatalf("DisplaySide = %q, want short", got)
	}

	ev = models.TradeEvent{Market: solMarket, Side: models.TradeSideShort}
	if got := DisplaySide(&ev); got != models.TradeSideShort {
		t.Fatalf("DisplaySide = %q, want short (event side)", got)
	}
}
