package markets

import "testing"

func TestResolveKnownMarkets(t *testing.T) {
	info, ok := Resolve("So11111111111111111111111111111111111111112")
	if !ok {
		t.Fatalf("expected SOL to resolve")
	}
	if info.Name != "SOL" || info.Denomination != 1_000_000_000 {
		t.Fatalf("unexpected SOL info: %+v", info)
	}
	if info.IsShortMarket {
		t.Fatalf("long SOL market flagged short")
	}
}

func TestResolveUnknown(t *testing.T) {
	if _, ok := Resolve("not-a-market"); ok {
		t.Fatalf("unknown identifier must not resolve")
	}
}

func TestShortMarketDisplayName(t *testing.T) {
	info, ok := Resolve("3x3FqLWmNYjejGDao5j3EJvqwbTqsHVLBXnGnL9A1BYD")
	if !ok || !info.IsShortMarket {
		t.Fatalf("expected SOL short market, got %+v", info)
	}
	if got := info.DisplayName(); got != "SOL-SHORT" {
		t.Fatalf("DisplayName = %q, want SOL-SHORT", got)
	}
	if info.BaseMarket == "" {
		t.Fatalf("short market must reference its base market")
	}

	long, _ := Resolve(info.BaseMarket)
	if long.DisplayName() != "SOL" {
		t.Fatalf("base market DisplayName = %q, want SOL", long.DisplayName())
	}
}
