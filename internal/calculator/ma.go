package calculator

import (
	"errors"

	"PriceScope/internal/model"
)

// CalculateSMA computes the simple moving average of the last period prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// MovingAverage returns the trailing simple moving average of closes over window bars.
// Dates before the first full window have no point. A non-positive window or a series
// shorter than the window yields nil.
func MovingAverage(series model.OHLCSeries, window int) []model.PricePoint {
	if window <= 0 || len(series.Bars) < window {
		return nil
	}
	bars := sortedBars(series.Bars)
	closes := extractCloses(bars)
	points := make([]model.PricePoint, 0, len(bars)-window+1)
	for i := window; i <= len(closes); i++ {
		avg, err := CalculateSMA(closes[:i], window)
		if err != nil {
			return nil
		}
		points = append(points, model.PricePoint{Date: bars[i-1].Date, Close: avg})
	}
	return points
}

func extractCloses(bars []model.Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
