package analytics

import (
	"github.com/shopspring/decimal"

	"perpfolio/internal/markets"
	"perpfolio/internal/models"
)

// Field scales are a property of the field, not the record: USD fields are
// micro-USD, price fields default to 1e-8 unless the event carries an
// explicit exponent, native amounts divide by the market denomination.
const (
	usdExponent          int32 = -6
	defaultPriceExponent int32 = -8
)

// Unavailable is the stable sentinel rendered for a field whose whole
// fallback chain came up empty. Consumers must never see NaN.
const Unavailable = "-"

// USD converts a raw micro-USD integer to display dollars.
func USD(raw int64) float64 {
	return decimal.New(raw, usdExponent).InexactFloat64()
}

// USDPtr is USD over a nullable field; nil degrades to zero, the whole
// aggregation keeps going.
func USDPtr(raw *int64) float64 {
	if raw == nil {
		return 0
	}
	return USD(*raw)
}

// Price applies an explicit exponent when the upstream provides one and the
// default 1e-8 scale otherwise.
func Price(raw int64, exponent *int32) float64 {
	exp := defaultPriceExponent
	if exponent != nil {
		exp = *exponent
	}
	return decimal.New(raw, exp).InexactFloat64()
}

// NativeAmount divides a raw integer amount by the market's denomination.
// Unresolvable markets and nil amounts fail the single field, not the call.
func NativeAmount(raw *int64, marketID string) (float64, bool) {
	if raw == nil {
		return 0, false
	}
	info, ok := markets.Resolve(marketID)
	if !ok || info.Denomination == 0 {
		return 0, false
	}
	return decimal.NewFromInt(*raw).
		Div(decimal.NewFromInt(info.Denomination)).
		InexactFloat64(), true
}

// priceAccessor is one step of a fallback chain: the raw value, its
// exponent override, and whether the field is present at all.
type priceAccessor func(ev *models.TradeEvent) (raw *int64, exponent *int32)

// entryPriceChain resolves the entry price for display: the entry price
// itself, then the oracle price. Kept as an ordered slice so the precedence
// stays visible and testable.
var entryPriceChain = []priceAccessor{
	func(ev *models.TradeEvent) (*int64, *int32) { return ev.EntryPrice, ev.EntryPriceExponent },
	func(ev *models.TradeEvent) (*int64, *int32) { return ev.OraclePrice, ev.OraclePriceExponent },
}

var exitPriceChain = []priceAccessor{
	func(ev *models.TradeEvent) (*int64, *int32) { return ev.ExitPrice, ev.ExitPriceExponent },
	func(ev *models.TradeEvent) (*int64, *int32) { return ev.OraclePrice, ev.OraclePriceExponent },
}

func resolvePrice(ev *models.TradeEvent, chain []priceAccessor) (float64, bool) {
	for _, get := range chain {
		raw, exp := get(ev)
		if raw == nil || *raw == 0 {
			continue
		}
		return Price(*raw, exp), true
	}
	return 0, false
}

// EntryPrice resolves the event's entry price through the fallback chain.
// The bool is false when every candidate field is absent or zero.
func EntryPrice(ev *models.TradeEvent) (float64, bool) {
	return resolvePrice(ev, entryPriceChain)
}

// ExitPrice resolves the event's exit price, falling back to the oracle
// price the same way EntryPrice does.
func ExitPrice(ev *models.TradeEvent) (float64, bool) {
	return resolvePrice(ev, exitPriceChain)
}

// FormatPrice renders a resolved price, or the unavailable sentinel when
// the fallback chain produced nothing.
func FormatPrice(v float64, ok bool) string {
	if !ok {
		return Unavailable
	}
	return decimal.NewFromFloat(v).String()
}
