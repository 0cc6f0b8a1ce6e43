package models

import (
	"time"

	"gorm.io/datatypes"
)

// TradeType is the closed set of lifecycle actions the upstream history
// service reports. Values are stored verbatim.
type TradeType string

const (
	TradeTypeOpenPosition     TradeType = "OPEN_POSITION"
	TradeTypeClosePosition    TradeType = "CLOSE_POSITION"
	TradeTypeLiquidate        TradeType = "LIQUIDATE"
	TradeTypeAddCollateral    TradeType = "ADD_COLLATERAL"
	TradeTypeRemoveCollateral TradeType = "REMOVE_COLLATERAL"
	TradeTypeTakeProfit       TradeType = "TAKE_PROFIT"
	TradeTypeStopLoss         TradeType = "STOP_LOSS"
	TradeTypeIncreaseSize     TradeType = "INCREASE_SIZE"
	TradeTypeDecreaseSize     TradeType = "DECREASE_SIZE"
)

func (t TradeType) Valid() bool {
	switch t {
	case TradeTypeOpenPosition, TradeTypeClosePosition, TradeTypeLiquidate,
		TradeTypeAddCollateral, TradeTypeRemoveCollateral, TradeTypeTakeProfit,
		TradeTypeStopLoss, TradeTypeIncreaseSize, TradeTypeDecreaseSize:
		return true
	}
	return false
}

type TradeSide string

const (
	TradeSideLong  TradeSide = "long"
	TradeSideShort TradeSide = "short"
)

func (s TradeSide) Valid() bool {
	return s == TradeSideLong || s == TradeSideShort
}

// TradeEvent is one on-chain trading action as synced from the upstream
// history service. Monetary *Usd fields are micro-USD (1e-6), price fields
// are scaled by their exponent (default 1e-8), and *Amount fields are in the
// market's native denomination. Pointer fields are nullable upstream;
// normalization to display units happens in internal/analytics, not here.
type TradeEvent struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	TxID       string `gorm:"type:varchar(128);not null;uniqueIndex:uq_trade_events_tx" json:"txId"`
	EventIndex int    `gorm:"not null;default:0;uniqueIndex:uq_trade_events_tx" json:"eventIndex"`

	Address   string    `gorm:"type:varchar(64);not null;index:idx_trade_events_addr_ts" json:"address"`
	Timestamp int64     `gorm:"not null;index:idx_trade_events_addr_ts" json:"timestamp"`
	Market    string    `gorm:"type:varchar(64);not null;index" json:"market"`
	Side      TradeSide `gorm:"type:varchar(8)" json:"side"`
	TradeType TradeType `gorm:"type:varchar(24);not null;index" json:"tradeType"`

	PnlUsd         int64  `json:"pnlUsd"`
	NetPnlUsd      *int64 `json:"netPnlUsd"`
	SizeUsd        *int64 `json:"sizeUsd"`
	CollateralUsd  *int64 `json:"collateralUsd"`
	TotalVolumeUsd int64  `json:"totalVolumeUsd"`
	TotalFeesUsd   int64  `json:"totalFeesUsd"`

	FeeAmount        *int64 `json:"feeAmount"`
	SizeAmount       *int64 `json:"sizeAmount"`
	CollateralAmount *int64 `json:"collateralAmount"`

	EntryPrice          *int64 `json:"entryPrice"`
	EntryPriceExponent  *int32 `json:"entryPriceExponent"`
	ExitPrice           *int64 `json:"exitPrice"`
	ExitPriceExponent   *int32 `json:"exitPriceExponent"`
	OraclePrice         *int64 `json:"oraclePrice"`
	OraclePriceExponent *int32 `json:"oraclePriceExponent"`

	// Duration is seconds the position was held; set on closing events.
	Duration *int64 `json:"duration"`

	Raw       datatypes.JSON `gorm:"type:jsonb" json:"-"`
	CreatedAt time.Time      `gorm:"type:timestamptz;autoCreateTime" json:"-"`
}

func (TradeEvent) TableName() string {
	return "trade_events"
}
