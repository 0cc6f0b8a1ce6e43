package analytics

// DefaultMovingAveragePeriod is the trailing window used for trend display.
const DefaultMovingAveragePeriod = 7

// MovingAverage annotates a copy of the series with the trailing mean of
// Net PnL over the given period. Points before a full window have a nil
// moving average: the trend is undefined there, not zero. The input slice
// is not modified.
func MovingAverage(points []ChartPoint, period int) []ChartPoint {
	if period <= 0 {
		period = DefaultMovingAveragePeriod
	}
	out := make([]ChartPoint, len(points))
	copy(out, points)

	var windowSum float64
	for i := range out {
		windowSum += out[i].NetPnL
		if i >= period {
			windowSum -= out[i-period].NetPnL
		}
		if i < period-1 {
			out[i].MovingAverage = nil
			continue
		}
		avg := windowSum / float64(period)
		out[i].MovingAverage = &avg
	}
	return out
}
