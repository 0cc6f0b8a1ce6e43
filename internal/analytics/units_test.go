package analytics

import (
	"testing"

	"perpfolio/internal/models"
)

func TestUSDScaling(t *testing.T) {
	tests := []struct {
		raw  int64
		want float64
	}{
		{0, 0},
		{1_000_000, 1},
		{-50_000_000, -50},
		{123_456, 0.123456},
	}
	for _, tt := range tests {
		if got := USD(tt.raw); got != tt.want {
			t.Fatalf("USD(%d) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestUSDPtrNilDegradesToZero(t *testing.T) {
	if got := USDPtr(nil); got != 0 {
		t.Fatalf("USDPtr(nil) = %v, want 0", got)
	}
	if got := USDPtr(i64(2_000_000)); got != 2 {
		t.Fatalf("USDPtr = %v, want 2", got)
	}
}

func TestPriceExponentOverride(t *testing.T) {
	// Default 1e-8 scale.
	approx(t, "default price", Price(6_250_000_000, nil), 62.5)
	// Explicit exponent wins.
	approx(t, "override price", Price(6_250, i32(-2)), 62.5)
}

func TestEntryPriceFallbackChain(t *testing.T) {
	tests := []struct {
		name   string
		ev     models.TradeEvent
		want   float64
		wantOK bool
	}{
		{
			name: "entry price present",
			ev:   models.TradeEvent{EntryPrice: i64(100_00000000), OraclePrice: i64(999_00000000)},
			want: 100, wantOK: true,
		},
		{
			name: "falls back to oracle",
			ev:   models.TradeEvent{OraclePrice: i64(42_00000000)},
			want: 42, wantOK: true,
		},
		{
			name: "zero entry treated as absent",
			ev:   models.TradeEvent{EntryPrice: i64(0), OraclePrice: i64(42_00000000)},
			want: 42, wantOK: true,
		},
		{
			name:   "whole chain empty",
			ev:     models.TradeEvent{},
			wantOK: false,
		},
	}
	for _, tt := range tests {
		got, ok := EntryPrice(&tt.ev)
		if ok != tt.wantOK {
			t.Fatalf("%s: ok = %v, want %v", tt.name, ok, tt.wantOK)
		}
		if ok {
			approx(t, tt.name, got, tt.want)
		}
	}
}

func TestExitPriceUsesOwnExponent(t *testing.T) {
	ev := models.TradeEvent{ExitPrice: i64(5_500), ExitPriceExponent: i32(-3)}
	got, ok := ExitPrice(&ev)
	if !ok {
		t.Fatalf("expected exit price")
	}
	approx(t, "exit price", got, 5.5)
}

func TestFormatPriceSentinel(t *testing.T) {
	if got := FormatPrice(0, false); got != Unavailable {
		t.Fatalf("FormatPrice sentinel = %q, want %q", got, Unavailable)
	}
	if got := FormatPrice(62.5, true); got != "62.5" {
		t.Fatalf("FormatPrice = %q, want 62.5", got)
	}
}

func TestNativeAmount(t *testing.T) {
	// SOL denominates in lamports.
	got, ok := NativeAmount(i64(2_500_000_000), solMarket)
	if !ok {
		t.Fatalf("expected resolvable amount")
	}
	approx(t, "native amount", got, 2.5)

	if _, ok := NativeAmount(i64(1), "unknown-market"); ok {
		t.Fatalf("unknown market must fail the field")
	}
	if _, ok := NativeAmount(nil, solMarket); ok {
		t.Fatalf("nil amount must fail the field")
	}
}
