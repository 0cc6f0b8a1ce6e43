package history

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"

	"perpfolio/internal/models"
)

// flexInt decodes the upstream's inconsistently typed numeric fields: JSON
// numbers, numeric strings, null, or garbage. A coercion failure marks the
// single field invalid instead of failing the record.
type flexInt struct {
	Value int64
	Valid bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	f.Value, f.Valid = 0, false
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil
		}
		f.Value, f.Valid = d.IntPart(), true
		return nil
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return nil
	}
	f.Value, f.Valid = d.IntPart(), true
	return nil
}

func (f flexInt) ptr() *int64 {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

func (f flexInt) ptr32() *int32 {
	if !f.Valid {
		return nil
	}
	v := int32(f.Value)
	return &v
}

func (f flexInt) or0() int64 {
	if !f.Valid {
		return 0
	}
	return f.Value
}

// rawTradeEvent is the upstream wire shape, one row per trading action.
type rawTradeEvent struct {
	TxID       string  `json:"txId"`
	EventIndex flexInt `json:"eventIndex"`
	Timestamp  flexInt `json:"timestamp"`
	Market     string  `json:"market"`
	Side       string  `json:"side"`
	TradeType  string  `json:"tradeType"`

	PnlUsd         flexInt `json:"pnlUsd"`
	NetPnlUsd      flexInt `json:"netPnlUsd"`
	SizeUsd        flexInt `json:"sizeUsd"`
	CollateralUsd  flexInt `json:"collateralUsd"`
	TotalVolumeUsd flexInt `json:"totalVolumeUsd"`
	TotalFeesUsd   flexInt `json:"totalFeesUsd"`

	FeeAmount        flexInt `json:"feeAmount"`
	SizeAmount       flexInt `json:"sizeAmount"`
	CollateralAmount flexInt `json:"collateralAmount"`

	EntryPrice          flexInt `json:"entryPrice"`
	EntryPriceExponent  flexInt `json:"entryPriceExponent"`
	ExitPrice           flexInt `json:"exitPrice"`
	ExitPriceExponent   flexInt `json:"exitPriceExponent"`
	OraclePrice         flexInt `json:"oraclePrice"`
	OraclePriceExponent flexInt `json:"oraclePriceExponent"`

	Duration flexInt `json:"duration"`
}

func (r *rawTradeEvent) toModel(address string, raw json.RawMessage) models.TradeEvent {
	return models.TradeEvent{
		TxID:       r.TxID,
		EventIndex: int(r.EventIndex.or0()),
		Address:    address,
		Timestamp:  r.Timestamp.or0(),
		Market:     r.Market,
		Side:       models.TradeSide(r.Side),
		TradeType:  models.TradeType(r.TradeType),

		PnlUsd:         r.PnlUsd.or0(),
		NetPnlUsd:      r.NetPnlUsd.ptr(),
		SizeUsd:        r.SizeUsd.ptr(),
		CollateralUsd:  r.CollateralUsd.ptr(),
		TotalVolumeUsd: r.TotalVolumeUsd.or0(),
		TotalFeesUsd:   r.TotalFeesUsd.or0(),

		FeeAmount:        r.FeeAmount.ptr(),
		SizeAmount:       r.SizeAmount.ptr(),
		CollateralAmount: r.CollateralAmount.ptr(),

		EntryPrice:          r.EntryPrice.ptr(),
		EntryPriceExponent:  r.EntryPriceExponent.ptr32(),
		ExitPrice:           r.ExitPrice.ptr(),
		ExitPriceExponent:   r.ExitPriceExponent.ptr32(),
		OraclePrice:         r.OraclePrice.ptr(),
		OraclePriceExponent: r.OraclePriceExponent.ptr32(),

		Duration: r.Duration.ptr(),
		Raw:      []byte(raw),
	}
}
