package calculator

import (
	"time"

	"PriceScope/internal/model"
)

// TotalReturn computes the percentage change from the first to the last close of the series.
func TotalReturn(series model.OHLCSeries) (model.ReturnMetric, error) {
	if series.Empty() {
		return model.ReturnMetric{}, ErrEmptySeries
	}
	bars := sortedBars(series.Bars)
	first, last := bars[0], bars[len(bars)-1]
	return returnBetween(first.Date, first.Close, last.Date, last.Close)
}

// BenchmarkReturn computes the percentage change from the first to the last benchmark close.
func BenchmarkReturn(series model.BenchmarkSeries) (model.ReturnMetric, error) {
	if series.Empty() {
		return model.ReturnMetric{}, ErrEmptySeries
	}
	points := sortedPoints(series.Points)
	first, last := points[0], points[len(points)-1]
	return returnBetween(first.Date, first.Close, last.Date, last.Close)
}

// RelativePerformance is a's return minus b's return, in percentage points.
func RelativePerformance(a, b model.ReturnMetric) float64 {
	return a.ReturnPercent - b.ReturnPercent
}

func returnBetween(startDate time.Time, startClose float64, endDate time.Time, endClose float64) (model.ReturnMetric, error) {
	if startClose == 0 {
		return model.ReturnMetric{}, ErrZeroBaseline
	}
	return model.ReturnMetric{
		StartDate:     startDate,
		EndDate:       endDate,
		StartClose:    startClose,
		EndClose:      endClose,
		ReturnPercent: (endClose - startClose) / startClose * 100,
	}, nil
}
