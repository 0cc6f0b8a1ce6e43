package analytics

import (
	"perpfolio/internal/markets"
	"perpfolio/internal/models"
)

// Outcome is the semantic category of a single trade event.
type Outcome struct {
	// IsClosing marks the events that feed the win/loss tally. Only
	// CLOSE_POSITION qualifies; liquidations and stop-loss/take-profit
	// exits are distinct outcome kinds and deliberately excluded.
	IsClosing        bool
	IsOpening        bool
	IsSizeChange     bool
	IsCollateralOnly bool
	IsForcedExit     bool
	Side             models.TradeSide
}

// Classify maps an event's trade type to its outcome category. The switch
// is exhaustive over models.TradeType; unknown types classify as a zero
// Outcome and contribute nothing to close-keyed breakdowns.
func Classify(ev *models.TradeEvent) Outcome {
	out := Outcome{Side: ev.Side}
	switch ev.TradeType {
	case models.TradeTypeOpenPosition:
		out.IsOpening = true
	case models.TradeTypeClosePosition:
		out.IsClosing = true
	case models.TradeTypeLiquidate:
		out.IsForcedExit = true
	case models.TradeTypeTakeProfit, models.TradeTypeStopLoss:
		out.IsForcedExit = true
	case models.TradeTypeIncreaseSize, models.TradeTypeDecreaseSize:
		out.IsSizeChange = true
	case models.TradeTypeAddCollateral, models.TradeTypeRemoveCollateral:
		out.IsCollateralOnly = true
	}
	return out
}

// DisplaySide resolves the side used for display grouping. For registered
// short markets the registry flag is authoritative over the per-event side
// string; otherwise the event's own side is used.
func DisplaySide(ev *models.TradeEvent) models.TradeSide {
	if info, ok := markets.Resolve(ev.Market); ok && info.IsShortMarket {
		return models.TradeSideShort
	}
	return ev.Side
}
