package repository

import (
	"context"

	"gorm.io/gorm"

	"perpfolio/internal/models"
)

// ListTradeEventsParams filters the stored history. Since/Until are Unix
// seconds, inclusive; nil disables that bound. Limit 0 means no limit.
type ListTradeEventsParams struct {
	Address string
	Since   *int64
	Until   *int64
	Limit   int
	Offset  int
}

type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	UpsertTradeEventsTx(ctx context.Context, tx *gorm.DB, items []models.TradeEvent) error
	ListTradeEvents(ctx context.Context, params ListTradeEventsParams) ([]models.TradeEvent, error)
	CountTradeEvents(ctx context.Context, params ListTradeEventsParams) (int64, error)

	GetSyncState(ctx context.Context, address string) (*models.SyncState, error)
	SaveSyncStateTx(ctx context.Context, tx *gorm.DB, state *models.SyncState) error
	ListSyncStates(ctx context.Context) ([]models.SyncState, error)
}
