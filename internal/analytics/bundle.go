package analytics

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"perpfolio/internal/models"
)

// Options tune one aggregation pass.
type Options struct {
	MovingAveragePeriod int
	DurationMode        DurationMode
}

// Bundle is the full derived-analytics payload consumed by dashboards.
// Everything in it is recomputed from scratch per call; there is no
// persisted aggregate state.
type Bundle struct {
	NetPnL        float64 `json:"netPnL"`
	TradingVolume float64 `json:"tradingVolume"`
	TotalFees     float64 `json:"totalFees"`
	GrossProfit   float64 `json:"grossProfit"`

	ScalarStats

	ChartData          []ChartPoint              `json:"chartData"`
	VolumeData         []VolumePoint             `json:"volumeData"`
	MarketDistribution []MarketDistributionPoint `json:"marketDistribution"`

	Metrics      BreakdownMetrics `json:"metrics"`
	Outcomes     []TradeOutcome   `json:"tradeOutcomes"`
	LongShort    LongShortRatio   `json:"longShortRatio"`
	HourInsights HourInsights     `json:"hourInsights"`
}

// BreakdownMetrics keys summed PnL by market label and by hour label, plus
// the raw bucket arrays for chart rendering.
type BreakdownMetrics struct {
	ByMarket    map[string]float64 `json:"byMarket"`
	ByTimeOfDay map[string]float64 `json:"byTimeOfDay"`
	PerMarket   []MarketMetrics    `json:"perMarket"`
	TimeOfDay   TimeOfDayStats     `json:"timeOfDay"`
}

// Build runs every aggregation stage over the same windowed snapshot. All
// stages are pure; the input slice is never mutated.
func Build(events []models.TradeEvent, window TimeRange, opts Options, logger *zap.Logger) Bundle {
	windowed := FilterWindow(events, window)
	series := Aggregate(windowed, TimeRange{})
	stats := Summarize(windowed)

	bucketer := &Bucketer{Logger: logger, DurationMode: opts.DurationMode}
	perMarket := bucketer.ByMarket(windowed)
	timeOfDay := bucketer.ByTime(windowed)

	byMarket := make(map[string]float64, len(perMarket))
	for _, m := range perMarket {
		byMarket[m.Market] = m.TotalPnL
	}
	byHour := make(map[string]float64, len(timeOfDay.Hourly))
	for hour, pnl := range timeOfDay.Hourly {
		byHour[hourLabel(hour)] = pnl
	}

	period := opts.MovingAveragePeriod
	if period <= 0 {
		period = DefaultMovingAveragePeriod
	}

	return Bundle{
		NetPnL:        round2(series.Totals.NetPnL),
		TradingVolume: round2(series.Totals.Volume),
		TotalFees:     round2(series.Totals.Fees),
		GrossProfit:   round2(series.Totals.NetPnL + series.Totals.Fees),
		ScalarStats:   stats,

		ChartData:          MovingAverage(series.Points, period),
		VolumeData:         series.Volume,
		MarketDistribution: perMarketRounded(bucketer.MarketDistribution(windowed)),

		Metrics: BreakdownMetrics{
			ByMarket:    byMarket,
			ByTimeOfDay: byHour,
			PerMarket:   perMarket,
			TimeOfDay:   timeOfDay,
		},
		Outcomes:     bucketer.Outcomes(windowed),
		LongShort:    bucketer.LongShort(windowed),
		HourInsights: timeOfDay.Insights(3),
	}
}

// round2 matches the upstream dashboard, which reported headline dollar
// figures at cent precision.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func perMarketRounded(points []MarketDistributionPoint) []MarketDistributionPoint {
	for i := range points {
		points[i].Value = round2(points[i].Value)
	}
	return points
}

func hourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}
