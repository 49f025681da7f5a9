package model

import "time"

// AlignedPair holds the target and benchmark close for a date present in both series.
type AlignedPair struct {
	Date           time.Time
	TargetClose    float64
	BenchmarkClose float64
}

// SummaryStats summarizes one OHLC series.
type SummaryStats struct {
	HighestPrice        float64
	LowestPrice         float64
	AverageClosingPrice float64
}

// ReturnMetric is the total return between the first and last close of a series.
// ReturnPercent keeps full precision; rounding happens when it is displayed.
type ReturnMetric struct {
	StartDate     time.Time
	EndDate       time.Time
	StartClose    float64
	EndClose      float64
	ReturnPercent float64
}
