package model

import (
	"math"
	"sort"
	"time"
)

// Bar represents one trading day of the target symbol.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Valid reports whether the bar satisfies low <= open, close <= high with non-negative finite prices.
func (b Bar) Valid() bool {
	for _, p := range []float64{b.Open, b.High, b.Low, b.Close} {
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			return false
		}
	}
	return b.Low <= b.Open && b.Low <= b.Close && b.Open <= b.High && b.Close <= b.High
}

// PricePoint is a single benchmark close.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// EmptyReason explains why a successfully fetched series holds no bars.
type EmptyReason string

const (
	EmptyUnknownSymbol EmptyReason = "unknown_symbol"
	EmptyNoTradingDays EmptyReason = "no_trading_days"
)

// OHLCSeries holds the daily bars of one symbol over a date range, ascending by date.
// An empty series is a successful fetch that produced no data.
type OHLCSeries struct {
	Symbol      string
	Range       DateRange
	Bars        []Bar
	EmptyReason EmptyReason
}

// Empty reports whether the series has no bars.
func (s OHLCSeries) Empty() bool { return len(s.Bars) == 0 }

// Closes returns the closing prices in series order.
func (s OHLCSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// CloseSeries projects the bars onto their closing prices.
func (s OHLCSeries) CloseSeries() BenchmarkSeries {
	points := make([]PricePoint, len(s.Bars))
	for i, b := range s.Bars {
		points[i] = PricePoint{Date: b.Date, Close: b.Close}
	}
	return BenchmarkSeries{Symbol: s.Symbol, Range: s.Range, Points: points, EmptyReason: s.EmptyReason}
}

// BenchmarkSeries holds closing prices of a benchmark index, ascending by date.
type BenchmarkSeries struct {
	Symbol      string
	Range       DateRange
	Points      []PricePoint
	EmptyReason EmptyReason
}

// Empty reports whether the series has no points.
func (s BenchmarkSeries) Empty() bool { return len(s.Points) == 0 }

// NewOHLCSeries normalizes raw provider bars into a series: dates are truncated to
// calendar days, bars outside rng or violating the OHLC invariant are dropped, the
// result is sorted ascending and a duplicated date keeps the last bar seen.
// It also returns how many bars were dropped.
func NewOHLCSeries(symbol string, rng DateRange, raw []Bar) (OHLCSeries, int) {
	byDay := make(map[time.Time]Bar, len(raw))
	dropped := 0
	for _, b := range raw {
		b.Date = Day(b.Date)
		if !rng.Contains(b.Date) || !b.Valid() {
			dropped++
			continue
		}
		if _, dup := byDay[b.Date]; dup {
			dropped++
		}
		byDay[b.Date] = b
	}

	bars := make([]Bar, 0, len(byDay))
	for _, b := range byDay {
		bars = append(bars, b)
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	s := OHLCSeries{Symbol: symbol, Range: rng, Bars: bars}
	if len(bars) == 0 {
		s.EmptyReason = EmptyNoTradingDays
	}
	return s, dropped
}
