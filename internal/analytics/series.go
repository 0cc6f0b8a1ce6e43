package analytics

import (
	"sort"
	"time"

	"perpfolio/internal/models"
)

const dateLayout = "2006-01-02"

// TimeRange is an optional inclusive [Start, End] window in Unix seconds.
// Filtering only applies when BOTH bounds are set; a single bound is an
// open-ended window and filters nothing.
type TimeRange struct {
	Start *int64 `json:"start"`
	End   *int64 `json:"end"`
}

func (r TimeRange) active() bool {
	return r.Start != nil && r.End != nil
}

func (r TimeRange) contains(ts int64) bool {
	if !r.active() {
		return true
	}
	return ts >= *r.Start && ts <= *r.End
}

// ChartPoint is one step of the running PnL series. Totals are cumulative
// snapshots up to and including this event, one point per event; reducing
// to one point per calendar day is the consumer's job.
type ChartPoint struct {
	Date          string   `json:"date"`
	Timestamp     int64    `json:"timestamp"`
	PnL           float64  `json:"PNL"`
	NetPnL        float64  `json:"Net PNL"`
	MovingAverage *float64 `json:"Moving Average,omitempty"`
}

// VolumePoint is summed USD volume for one calendar day.
type VolumePoint struct {
	Date             string  `json:"date"`
	Volume           float64 `json:"volume"`
	CumulativeVolume float64 `json:"cumulativeVolume"`
}

// Totals are the running sums at the end of the windowed walk.
type Totals struct {
	PnL        float64 `json:"pnl"`
	NetPnL     float64 `json:"netPnL"`
	Volume     float64 `json:"tradingVolume"`
	Fees       float64 `json:"totalFees"`
	EventCount int     `json:"eventCount"`
}

// Series is the output of one aggregation pass.
type Series struct {
	Points []ChartPoint  `json:"points"`
	Volume []VolumePoint `json:"volume"`
	Totals Totals        `json:"totals"`
}

// sortedCopy returns the events in timestamp order, ties broken by txId
// then event index so repeated runs over the same snapshot are
// bit-identical. The input slice is never reordered.
func sortedCopy(events []models.TradeEvent) []models.TradeEvent {
	out := make([]models.TradeEvent, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp < out[j].Timestamp
		}
		if out[i].TxID != out[j].TxID {
			return out[i].TxID < out[j].TxID
		}
		return out[i].EventIndex < out[j].EventIndex
	})
	return out
}

// Aggregate walks a sorted copy of events once, drops those outside the
// window, and emits the running PnL series plus a per-day volume series.
// Empty or fully filtered input yields zero totals and empty series.
func Aggregate(events []models.TradeEvent, window TimeRange) Series {
	sorted := sortedCopy(events)

	series := Series{
		Points: make([]ChartPoint, 0, len(sorted)),
		Volume: make([]VolumePoint, 0),
	}
	var totals Totals
	volumeIdx := make(map[string]int)

	for i := range sorted {
		ev := &sorted[i]
		if !window.contains(ev.Timestamp) {
			continue
		}

		totals.EventCount++
		totals.PnL += USD(ev.PnlUsd)
		totals.NetPnL += USDPtr(ev.NetPnlUsd)
		dayVolume := USD(ev.TotalVolumeUsd)
		totals.Volume += dayVolume
		totals.Fees += USD(ev.TotalFeesUsd)

		date := time.Unix(ev.Timestamp, 0).UTC().Format(dateLayout)
		series.Points = append(series.Points, ChartPoint{
			Date:      date,
			Timestamp: ev.Timestamp,
			PnL:       totals.PnL,
			NetPnL:    totals.NetPnL,
		})

		if idx, ok := volumeIdx[date]; ok {
			series.Volume[idx].Volume += dayVolume
		} else {
			volumeIdx[date] = len(series.Volume)
			series.Volume = append(series.Volume, VolumePoint{Date: date, Volume: dayVolume})
		}
	}

	var cumulative float64
	for i := range series.Volume {
		cumulative += series.Volume[i].Volume
		series.Volume[i].CumulativeVolume = cumulative
	}

	series.Totals = totals
	return series
}

// FilterWindow returns the windowed subset of events in sorted order,
// applying the same both-bounds rule as Aggregate. Callers that compute
// scalar statistics must pass the same subset used for the series.
func FilterWindow(events []models.TradeEvent, window TimeRange) []models.TradeEvent {
	sorted := sortedCopy(events)
	if !window.active() {
		return sorted
	}
	out := sorted[:0]
	for i := range sorted {
		if window.contains(sorted[i].Timestamp) {
			out = append(out, sorted[i])
		}
	}
	return out
}
