package analytics

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"perpfolio/internal/markets"
	"perpfolio/internal/models"
)

// MarketMetrics accumulates per-instrument outcome statistics over
// CLOSE_POSITION events.
type MarketMetrics struct {
	Market      string  `json:"market"`
	TotalPnL    float64 `json:"totalPnL"`
	TotalVolume float64 `json:"totalVolume"`
	WinCount    int     `json:"winCount"`
	LossCount   int     `json:"lossCount"`
	// AvgDuration is seconds. With legacy averaging enabled this is the
	// repeated (prev+new)/2 fold, which overweights recent closes.
	AvgDuration float64 `json:"avgDuration"`
	LongPnL     float64 `json:"longPnL"`
	ShortPnL    float64 `json:"shortPnL"`
}

// WinRate is percent of closes that were profitable; 0 for no closes.
func (m MarketMetrics) WinRate() float64 {
	total := m.WinCount + m.LossCount
	if total == 0 {
		return 0
	}
	return float64(m.WinCount) / float64(total) * 100
}

// DurationMode selects how per-market average duration is folded.
type DurationMode int

const (
	// DurationLegacyAverage reproduces the upstream dashboard's
	// (prev+new)/2 fold for behavioral parity.
	DurationLegacyAverage DurationMode = iota
	// DurationTrueMean is a correct incremental mean.
	DurationTrueMean
)

// Bucketer groups events by market and by time bucket. The logger is
// optional; unresolved market identifiers are warned about and skipped from
// market-keyed breakdowns so unknown instruments never blend into totals.
type Bucketer struct {
	Logger       *zap.Logger
	DurationMode DurationMode
}

// ByMarket groups CLOSE_POSITION events by resolved display name. Net PnL
// and size come from the nullable USD fields; the long/short split follows
// the registry's short-market flag rather than the event side string.
func (b *Bucketer) ByMarket(events []models.TradeEvent) []MarketMetrics {
	acc := make(map[string]*MarketMetrics)
	order := make([]string, 0)
	closeCount := make(map[string]int)

	for i := range events {
		ev := &events[i]
		if !Classify(ev).IsClosing {
			continue
		}

		info, ok := markets.Resolve(ev.Market)
		if !ok {
			if b != nil && b.Logger != nil {
				b.Logger.Warn("unknown market in close event",
					zap.String("market", ev.Market),
					zap.String("txId", ev.TxID))
			}
			continue
		}

		key := info.DisplayName()
		m, seen := acc[key]
		if !seen {
			m = &MarketMetrics{Market: key}
			acc[key] = m
			order = append(order, key)
		}

		pnl := USDPtr(ev.NetPnlUsd)
		volume := USDPtr(ev.SizeUsd)
		var duration int64
		if ev.Duration != nil {
			duration = *ev.Duration
		}

		m.TotalPnL += pnl
		m.TotalVolume += volume
		closeCount[key]++
		mode := DurationLegacyAverage
		if b != nil {
			mode = b.DurationMode
		}
		switch mode {
		case DurationTrueMean:
			n := float64(closeCount[key])
			m.AvgDuration += (float64(duration) - m.AvgDuration) / n
		default:
			m.AvgDuration = (m.AvgDuration + float64(duration)) / 2
		}

		if pnl > 0 {
			m.WinCount++
		} else {
			m.LossCount++
		}

		if info.IsShortMarket {
			m.ShortPnL += pnl
		} else {
			m.LongPnL += pnl
		}
	}

	out := make([]MarketMetrics, 0, len(order))
	for _, key := range order {
		out = append(out, *acc[key])
	}
	return out
}

// TimeOfDayStats holds summed close PnL per local hour and weekday. Buckets
// with no events stay 0, never absent.
type TimeOfDayStats struct {
	Hourly    [24]float64 `json:"hourlyPerformance"`
	DayOfWeek [7]float64  `json:"dayOfWeekPerformance"`
}

// ByTime sums CLOSE_POSITION PnL into hour-of-day and day-of-week buckets.
func (b *Bucketer) ByTime(events []models.TradeEvent) TimeOfDayStats {
	var stats TimeOfDayStats
	for i := range events {
		ev := &events[i]
		if !Classify(ev).IsClosing {
			continue
		}
		t := time.Unix(ev.Timestamp, 0).UTC()
		pnl := USD(ev.PnlUsd)
		stats.Hourly[t.Hour()] += pnl
		stats.DayOfWeek[int(t.Weekday())] += pnl
	}
	return stats
}

// MarketDistributionPoint is one slice of the volume allocation chart.
type MarketDistributionPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// MarketDistribution sums USD volume per resolved market name across all
// events, insertion-ordered by first sight. Unresolved identifiers are
// warned about and skipped.
func (b *Bucketer) MarketDistribution(events []models.TradeEvent) []MarketDistributionPoint {
	acc := make(map[string]int)
	out := make([]MarketDistributionPoint, 0)

	for i := range events {
		ev := &events[i]
		info, ok := markets.Resolve(ev.Market)
		if !ok {
			if b != nil && b.Logger != nil {
				b.Logger.Warn("unknown market in volume distribution",
					zap.String("market", ev.Market),
					zap.String("txId", ev.TxID))
			}
			continue
		}
		name := info.DisplayName()
		volume := USD(ev.TotalVolumeUsd)
		if idx, seen := acc[name]; seen {
			out[idx].Value += volume
		} else {
			acc[name] = len(out)
			out = append(out, MarketDistributionPoint{Name: name, Value: volume})
		}
	}
	return out
}

// TradeOutcome is the per-market close summary for the outcomes table.
type TradeOutcome struct {
	Market      string  `json:"market"`
	WinRate     float64 `json:"winRate"`
	TotalTrades int     `json:"totalTrades"`
	AveragePnL  float64 `json:"averagePnL"`
}

// Outcomes reports win rate, close count, and mean PnL per market over
// CLOSE_POSITION events.
func (b *Bucketer) Outcomes(events []models.TradeEvent) []TradeOutcome {
	metrics := b.ByMarket(events)
	out := make([]TradeOutcome, 0, len(metrics))
	for _, m := range metrics {
		total := m.WinCount + m.LossCount
		avg := 0.0
		if total > 0 {
			avg = m.TotalPnL / float64(total)
		}
		out = append(out, TradeOutcome{
			Market:      m.Market,
			WinRate:     m.WinRate(),
			TotalTrades: total,
			AveragePnL:  avg,
		})
	}
	return out
}

// LongShortRatio is percentage of all classified events on each side; the
// denominator is every event with a recognized side, not just closes.
type LongShortRatio struct {
	LongPct  float64 `json:"longPct"`
	ShortPct float64 `json:"shortPct"`
}

func (b *Bucketer) LongShort(events []models.TradeEvent) LongShortRatio {
	var long, short int
	for i := range events {
		switch DisplaySide(&events[i]) {
		case models.TradeSideLong:
			long++
		case models.TradeSideShort:
			short++
		}
	}
	total := long + short
	if total == 0 {
		return LongShortRatio{}
	}
	return LongShortRatio{
		LongPct:  float64(long) / float64(total) * 100,
		ShortPct: float64(short) / float64(total) * 100,
	}
}

// HourInsights are derived fields of the hourly breakdown: the hours with
// the most activity by absolute PnL, the most profitable hours, and the
// share of hours that closed profitable.
type HourInsights struct {
	MostActiveHours []int   `json:"mostActiveHours"`
	BestHours       []int   `json:"bestHours"`
	ConsistencyPct  float64 `json:"consistencyPct"`
}

func (s TimeOfDayStats) Insights(topN int) HourInsights {
	if topN <= 0 || topN > 24 {
		topN = 3
	}
	hours := make([]int, 24)
	for i := range hours {
		hours[i] = i
	}

	byActivity := append([]int(nil), hours...)
	sort.SliceStable(byActivity, func(i, j int) bool {
		a, b := s.Hourly[byActivity[i]], s.Hourly[byActivity[j]]
		if a < 0 {
			a = -a
		}
		if b < 0 {
			b = -b
		}
		return a > b
	})

	byPnL := append([]int(nil), hours...)
	sort.SliceStable(byPnL, func(i, j int) bool {
		return s.Hourly[byPnL[i]] > s.Hourly[byPnL[j]]
	})

	profitable := 0
	for _, pnl := range s.Hourly {
		if pnl > 0 {
			profitable++
		}
	}

	return HourInsights{
		MostActiveHours: byActivity[:topN],
		BestHours:       byPnL[:topN],
		ConsistencyPct:  float64(profitable) / 24 * 100,
	}
}
