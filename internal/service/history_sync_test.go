package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"perpfolio/internal/client/history"
)

func TestSyncAddressStoresEventsAndWatermark(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"txId":"sig1","timestamp":1000,"market":"m","side":"long","tradeType":"OPEN_POSITION"},
			{"txId":"sig2","timestamp":2000,"market":"m","side":"long","tradeType":"CLOSE_POSITION"}
		]`))
	}))
	defer srv.Close()

	repo := &fakeRepo{}
	svc := &HistorySyncService{
		Repo:   repo,
		Client: history.NewClient(srv.Client(), srv.URL),
	}

	if err := svc.SyncAddress(context.Background(), "acct1"); err != nil {
		t.Fatalf("SyncAddress: %v", err)
	}
	if len(repo.events) != 2 {
		t.Fatalf("stored events = %d, want 2", len(repo.events))
	}

	state := repo.states["acct1"]
	if state == nil {
		t.Fatalf("sync state missing")
	}
	if state.WatermarkTS == nil || *state.WatermarkTS != 2000 {
		t.Fatalf("watermark = %v, want 2000", state.WatermarkTS)
	}
	if state.LastSuccessAt == nil {
		t.Fatalf("lastSuccessAt missing")
	}
}

func TestSyncAddressRecordsUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	repo := &fakeRepo{}
	svc := &HistorySyncService{
		Repo:   repo,
		Client: history.NewClient(srv.Client(), srv.URL),
	}

	if err := svc.SyncAddress(context.Background(), "acct1"); err == nil {
		t.Fatalf("expected upstream failure to surface")
	}
	state := repo.states["acct1"]
	if state == nil || state.LastError == nil {
		t.Fatalf("failure must be recorded in sync state, got %+v", state)
	}
	if state.LastSuccessAt != nil {
		t.Fatalf("failed run must not set lastSuccessAt")
	}
	if len(repo.events) != 0 {
		t.Fatalf("failed run must store no events")
	}
}
