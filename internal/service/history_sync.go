package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"perpfolio/internal/cache"
	"perpfolio/internal/client/history"
	"perpfolio/internal/db"
	"perpfolio/internal/models"
	"perpfolio/internal/repository"
)

// HistorySyncService mirrors the upstream trade-event history for tracked
// addresses into the local store. A failed upstream fetch fails that
// address's run; it is surfaced in sync_state and never retried here.
type HistorySyncService struct {
	Repo   repository.Repository
	Client *history.Client
	Cache  *cache.BundleCache
	Logger *zap.Logger
}

type syncStats struct {
	Fetched  int   `json:"fetched"`
	Upserted int   `json:"upserted"`
	Elapsed  int64 `json:"elapsedMs"`
}

// SyncAddress pulls the full history snapshot for one address and upserts
// it, keyed by (txId, eventIndex) so re-syncs are idempotent.
func (s *HistorySyncService) SyncAddress(ctx context.Context, address string) error {
	if s == nil || s.Repo == nil || s.Client == nil {
		return nil
	}
	started := db.NowUTC()

	events, fetchErr := s.Client.GetTradeEvents(ctx, address)
	if fetchErr != nil {
		s.recordFailure(ctx, address, started, fetchErr)
		return fetchErr
	}

	var watermark int64
	for i := range events {
		if events[i].Timestamp > watermark {
			watermark = events[i].Timestamp
		}
	}

	stats := syncStats{Fetched: len(events), Upserted: len(events)}
	err := s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Repo.UpsertTradeEventsTx(ctx, tx, events); err != nil {
			return err
		}
		stats.Elapsed = time.Since(started).Milliseconds()
		statsJSON, _ := json.Marshal(stats)
		now := db.NowUTC()
		state := &models.SyncState{
			Address:       address,
			LastAttemptAt: &started,
			LastSuccessAt: &now,
			StatsJSON:     statsJSON,
		}
		if watermark > 0 {
			state.WatermarkTS = &watermark
		}
		return s.Repo.SaveSyncStateTx(ctx, tx, state)
	})
	if err != nil {
		s.recordFailure(ctx, address, started, err)
		return err
	}

	if s.Cache != nil {
		if err := s.Cache.InvalidateAddress(ctx, address); err != nil && s.Logger != nil {
			s.Logger.Warn("bundle cache invalidation failed",
				zap.String("address", address), zap.Error(err))
		}
	}

	if s.Logger != nil {
		s.Logger.Info("history sync done",
			zap.String("address", address),
			zap.Int("events", len(events)),
			zap.Int64("watermark", watermark))
	}
	return nil
}

// SyncAll runs SyncAddress for each tracked address, continuing past
// per-address failures.
func (s *HistorySyncService) SyncAll(ctx context.Context, addresses []string) {
	for _, address := range addresses {
		if err := s.SyncAddress(ctx, address); err != nil && s.Logger != nil {
			s.Logger.Warn("history sync failed",
				zap.String("address", address), zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

func (s *HistorySyncService) recordFailure(ctx context.Context, address string, started time.Time, cause error) {
	msg := cause.Error()
	state := &models.SyncState{
		Address:       address,
		LastAttemptAt: &started,
		LastError:     &msg,
	}
	if prev, err := s.Repo.GetSyncState(ctx, address); err == nil && prev != nil {
		state.WatermarkTS = prev.WatermarkTS
		state.LastSuccessAt = prev.LastSuccessAt
		state.StatsJSON = prev.StatsJSON
	}
	if err := s.Repo.SaveSyncStateTx(ctx, nil, state); err != nil && s.Logger != nil {
		s.Logger.Warn("failed to record sync failure",
			zap.String("address", address), zap.Error(err))
	}
}
