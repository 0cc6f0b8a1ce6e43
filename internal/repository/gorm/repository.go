package gormrepository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"perpfolio/internal/models"
	"perpfolio/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

func (s *Store) UpsertTradeEventsTx(ctx context.Context, tx *gorm.DB, items []models.TradeEvent) error {
	if s == nil || len(items) == 0 {
		return nil
	}
	if tx == nil {
		tx = s.db.WithContext(ctx)
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tx_id"}, {Name: "event_index"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"timestamp", "market", "side", "trade_type",
			"pnl_usd", "net_pnl_usd", "size_usd", "collateral_usd",
			"total_volume_usd", "total_fees_usd",
			"fee_amount", "size_amount", "collateral_amount",
			"entry_price", "entry_price_exponent",
			"exit_price", "exit_price_exponent",
			"oracle_price", "oracle_price_exponent",
			"duration", "raw",
		}),
	}).CreateInBatches(items, 500).Error
}

func applyEventFilters(query *gorm.DB, params repository.ListTradeEventsParams) *gorm.DB {
	if params.Address != "" {
		query = query.Where("address = ?", params.Address)
	}
	if params.Since != nil {
		query = query.Where("timestamp >= ?", *params.Since)
	}
	if params.Until != nil {
		query = query.Where("timestamp <= ?", *params.Until)
	}
	return query
}

func (s *Store) ListTradeEvents(ctx context.Context, params repository.ListTradeEventsParams) ([]models.TradeEvent, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyEventFilters(s.db.WithContext(ctx).Model(&models.TradeEvent{}), params)
	query = query.Order("timestamp ASC").Order("tx_id ASC").Order("event_index ASC")
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}
	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}
	var items []models.TradeEvent
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountTradeEvents(ctx context.Context, params repository.ListTradeEventsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	query := applyEventFilters(s.db.WithContext(ctx).Model(&models.TradeEvent{}), params)
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) GetSyncState(ctx context.Context, address string) (*models.SyncState, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var state models.SyncState
	err := s.db.WithContext(ctx).First(&state, "address = ?", address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *Store) SaveSyncStateTx(ctx context.Context, tx *gorm.DB, state *models.SyncState) error {
	if s == nil || state == nil {
		return nil
	}
	if tx == nil {
		tx = s.db.WithContext(ctx)
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		UpdateAll: true,
	}).Create(state).Error
}

func (s *Store) ListSyncStates(ctx context.Context) ([]models.SyncState, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.SyncState
	if err := s.db.WithContext(ctx).Order("address ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
