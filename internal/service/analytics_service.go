package service

import (
	"context"

	"go.uber.org/zap"

	"perpfolio/internal/analytics"
	"perpfolio/internal/cache"
	"perpfolio/internal/config"
	"perpfolio/internal/models"
	"perpfolio/internal/repository"
)

// AnalyticsService serves derived analytics bundles over the locally synced
// history. Each call recomputes from scratch; the optional cache only
// memoizes finished bundles and never feeds partial state into the core.
type AnalyticsService struct {
	Repo   repository.Repository
	Cache  *cache.BundleCache
	Logger *zap.Logger
	Config config.AnalyticsConfig
}

func (s *AnalyticsService) options() analytics.Options {
	opts := analytics.Options{
		MovingAveragePeriod: s.Config.MovingAveragePeriod,
	}
	if s.Config.TrueDurationMean {
		opts.DurationMode = analytics.DurationTrueMean
	}
	return opts
}

// GetBundle loads the address's event snapshot and runs the aggregation
// pipeline over it with the given window.
func (s *AnalyticsService) GetBundle(ctx context.Context, address string, window analytics.TimeRange) (*analytics.Bundle, error) {
	if s == nil || s.Repo == nil {
		return nil, nil
	}

	key := cache.Key(address, window)
	if s.Cache != nil {
		if bundle, hit, err := s.Cache.Get(ctx, key); err == nil && hit {
			return bundle, nil
		} else if err != nil && s.Logger != nil {
			s.Logger.Warn("bundle cache read failed", zap.Error(err))
		}
	}

	events, err := s.Repo.ListTradeEvents(ctx, repository.ListTradeEventsParams{Address: address})
	if err != nil {
		return nil, err
	}

	bundle := analytics.Build(events, window, s.options(), s.Logger)

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, &bundle); err != nil && s.Logger != nil {
			s.Logger.Warn("bundle cache write failed", zap.Error(err))
		}
	}
	return &bundle, nil
}

// ListHistory returns the windowed, sorted trade-event listing plus the
// total count for pagination. The single-bound no-op rule matches the
// aggregation core: filtering applies only when both bounds are set.
func (s *AnalyticsService) ListHistory(ctx context.Context, address string, window analytics.TimeRange, limit, offset int) ([]models.TradeEvent, int64, error) {
	if s == nil || s.Repo == nil {
		return nil, 0, nil
	}
	params := repository.ListTradeEventsParams{
		Address: address,
		Limit:   limit,
		Offset:  offset,
	}
	if window.Start != nil && window.End != nil {
		params.Since = window.Start
		params.Until = window.End
	}
	items, err := s.Repo.ListTradeEvents(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.CountTradeEvents(ctx, repository.ListTradeEventsParams{
		Address: params.Address,
		Since:   params.Since,
		Until:   params.Until,
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
