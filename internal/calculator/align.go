package calculator

import (
	"time"

	"PriceScope/internal/model"
)

// Align pairs the target and benchmark closes on the dates present in both series,
// ascending by date. Dates found in only one series are dropped, nothing is filled in.
// An empty result means no comparison is possible.
func Align(target model.OHLCSeries, benchmark model.BenchmarkSeries) []model.AlignedPair {
	if target.Empty() || benchmark.Empty() {
		return nil
	}

	bench := make(map[time.Time]float64, len(benchmark.Points))
	for _, p := range benchmark.Points {
		bench[model.Day(p.Date)] = p.Close
	}

	var pairs []model.AlignedPair
	var last time.Time
	for _, b := range sortedBars(target.Bars) {
		d := model.Day(b.Date)
		c, ok := bench[d]
		if !ok {
			continue
		}
		// keep dates strictly ascending even if the input repeats a day
		if len(pairs) > 0 && !d.After(last) {
			continue
		}
		pairs = append(pairs, model.AlignedPair{Date: d, TargetClose: b.Close, BenchmarkClose: c})
		last = d
	}
	return pairs
}

// AlignedBenchmark projects aligned pairs onto the benchmark side.
func AlignedBenchmark(symbol string, rng model.DateRange, pairs []model.AlignedPair) model.BenchmarkSeries {
	points := make([]model.PricePoint, len(pairs))
	for i, p := range pairs {
		points[i] = model.PricePoint{Date: p.Date, Close: p.BenchmarkClose}
	}
	return model.BenchmarkSeries{Symbol: symbol, Range: rng, Points: points}
}

// AlignedTarget projects aligned pairs onto the target side, as a close series.
func AlignedTarget(symbol string, rng model.DateRange, pairs []model.AlignedPair) model.BenchmarkSeries {
	points := make([]model.PricePoint, len(pairs))
	for i, p := range pairs {
		points[i] = model.PricePoint{Date: p.Date, Close: p.TargetClose}
	}
	return model.BenchmarkSeries{Symbol: symbol, Range: rng, Points: points}
}
