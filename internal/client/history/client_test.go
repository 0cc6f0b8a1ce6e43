package history

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"perpfolio/internal/models"
)

func TestParseTradeEventsMixedFieldTypes(t *testing.T) {
	body := []byte(`[
		{
			"txId": "sig1",
			"timestamp": "1700000000",
			"market": "So11111111111111111111111111111111111111112",
			"side": "long",
			"tradeType": "CLOSE_POSITION",
			"pnlUsd": 100000000,
			"netPnlUsd": "95000000",
			"sizeUsd": "not-a-number",
			"totalVolumeUsd": "1000000000",
			"totalFeesUsd": 5000000,
			"entryPrice": null,
			"oraclePrice": "6250000000",
			"oraclePriceExponent": -8
		}
	]`)

	events, err := ParseTradeEvents("acct1", body)
	if err != nil {
		t.Fatalf("ParseTradeEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	ev := events[0]
	if ev.Timestamp != 1700000000 {
		t.Fatalf("string timestamp not coerced: %d", ev.Timestamp)
	}
	if ev.PnlUsd != 100000000 {
		t.Fatalf("pnlUsd = %d", ev.PnlUsd)
	}
	if ev.NetPnlUsd == nil || *ev.NetPnlUsd != 95000000 {
		t.Fatalf("netPnlUsd = %v", ev.NetPnlUsd)
	}
	// Coercion failure fails the single field, not the record.
	if ev.SizeUsd != nil {
		t.Fatalf("garbage sizeUsd must become null, got %d", *ev.SizeUsd)
	}
	if ev.EntryPrice != nil {
		t.Fatalf("null entryPrice must stay nil")
	}
	if ev.OraclePrice == nil || *ev.OraclePrice != 6250000000 {
		t.Fatalf("oraclePrice = %v", ev.OraclePrice)
	}
	if ev.TradeType != models.TradeTypeClosePosition {
		t.Fatalf("tradeType = %q", ev.TradeType)
	}
	if ev.Address != "acct1" {
		t.Fatalf("address = %q", ev.Address)
	}
	if len(ev.Raw) == 0 {
		t.Fatalf("raw payload must be retained")
	}
}

func TestParseTradeEventsNonArrayIsFatal(t *testing.T) {
	if _, err := ParseTradeEvents("acct1", []byte(`{"error":"nope"}`)); err == nil {
		t.Fatalf("non-array payload must fail")
	}
}

func TestParseTradeEventsSkipsNonObjectRows(t *testing.T) {
	events, err := ParseTradeEvents("acct1", []byte(`[{"txId":"sig1","timestamp":1}, 42, null]`))
	if err != nil {
		t.Fatalf("ParseTradeEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
}

func TestGetTradeEventsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL)
	_, err := client.GetTradeEvents(context.Background(), "acct1")
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusInternalServerError {
		t.Fatalf("status = %d", apiErr.Status)
	}
}

func TestGetTradeEventsRequiresAddress(t *testing.T) {
	client := NewClient(http.DefaultClient, "http://localhost:0")
	if _, err := client.GetTradeEvents(context.Background(), ""); err == nil {
		t.Fatalf("empty address must fail")
	}
}

func TestGetTradeEventsSendsAddress(t *testing.T) {
	var gotAddr string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAddr = r.URL.Query().Get("address")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL)
	events, err := client.GetTradeEvents(context.Background(), "acct9")
	if err != nil {
		t.Fatalf("GetTradeEvents: %v", err)
	}
	if gotAddr != "acct9" {
		t.Fatalf("address query = %q", gotAddr)
	}
	if len(events) != 0 {
		t.Fatalf("events = %d, want 0", len(events))
	}
}
