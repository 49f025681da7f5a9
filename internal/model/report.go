package model

import "time"

// Request is the input of one comparison, built from user input and passed by value.
// The symbol is only required to be non-blank; an unknown one shows up as an empty fetch.
type Request struct {
	Symbol             string    `validate:"required"`
	Start              time.Time `validate:"required"`
	End                time.Time `validate:"required"`
	CompareToBenchmark bool
}

// Range returns the request's calendar date range.
func (r Request) Range() DateRange { return NewDateRange(r.Start, r.End) }

// ChartInput is what a chart renderer needs: the OHLC bars plus optional overlays.
type ChartInput struct {
	Bars            []Bar
	Benchmark       []PricePoint // aligned benchmark closes, empty when not compared
	BenchmarkSymbol string
	MovingAverage   []PricePoint
	MovingWindow    int
}

// ComparisonReport is the assembled result handed to a presentation layer.
type ComparisonReport struct {
	RequestID    string
	GeneratedAt  time.Time
	Symbol       string
	Range        DateRange
	Stats        SummaryStats
	TargetReturn ReturnMetric

	// Set only when a benchmark comparison was requested and produced aligned data.
	// RelativePerformance compares AlignedTargetReturn with BenchmarkReturn, both over
	// the first and last common trading days.
	BenchmarkSymbol     string
	BenchmarkReturn     *ReturnMetric
	AlignedTargetReturn *ReturnMetric
	RelativePerformance *float64
	AlignedDays         int

	BenchmarkRequested   bool
	BenchmarkUnavailable bool
	BenchmarkReason      string

	Chart ChartInput
}

// HasBenchmark reports whether benchmark figures are populated.
func (r *ComparisonReport) HasBenchmark() bool {
	return r.BenchmarkReturn != nil && r.RelativePerformance != nil
}

// CommonWindowNarrower reports whether the benchmark comparison covers fewer days
// than the target's own return.
func (r *ComparisonReport) CommonWindowNarrower() bool {
	a := r.AlignedTargetReturn
	return a != nil && (!a.StartDate.Equal(r.TargetReturn.StartDate) || !a.EndDate.Equal(r.TargetReturn.EndDate))
}
