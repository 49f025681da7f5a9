package calculator

import (
	"errors"
	"math"
	"sort"

	"PriceScope/internal/model"
)

var (
	// ErrEmptySeries is returned when statistics are requested for a series with no data.
	ErrEmptySeries = errors.New("series is empty")
	// ErrZeroBaseline is returned when a return would divide by a zero starting close.
	ErrZeroBaseline = errors.New("baseline close is zero")
)

// Summarize returns the highest high, lowest low and mean close of the series.
func Summarize(series model.OHLCSeries) (model.SummaryStats, error) {
	if series.Empty() {
		return model.SummaryStats{}, ErrEmptySeries
	}
	high := math.Inf(-1)
	low := math.Inf(1)
	sum := 0.0
	for _, b := range series.Bars {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
		sum += b.Close
	}
	return model.SummaryStats{
		HighestPrice:        high,
		LowestPrice:         low,
		AverageClosingPrice: sum / float64(len(series.Bars)),
	}, nil
}

// sortedBars returns bars ascending by date. The input is returned as is when
// already ordered, otherwise a sorted copy is made.
func sortedBars(bars []model.Bar) []model.Bar {
	if sort.SliceIsSorted(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) }) {
		return bars
	}
	out := make([]model.Bar, len(bars))
	copy(out, bars)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func sortedPoints(points []model.PricePoint) []model.PricePoint {
	if sort.SliceIsSorted(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) }) {
		return points
	}
	out := make([]model.PricePoint, len(points))
	copy(out, points)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
