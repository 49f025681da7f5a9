package report

import (
	"errors"
	"fmt"

	"PriceScope/internal/calculator"
	"PriceScope/internal/model"
)

// ErrNoDataForSymbol is returned when the target series is empty.
var ErrNoDataForSymbol = errors.New("no data for symbol")

// NoDataError carries the symbol and, when the source knew it, why the series was empty.
type NoDataError struct {
	Symbol string
	Reason model.EmptyReason
}

func (e *NoDataError) Error() string {
	switch e.Reason {
	case model.EmptyUnknownSymbol:
		return fmt.Sprintf("no data for symbol %s: symbol not recognised by the data source", e.Symbol)
	case model.EmptyNoTradingDays:
		return fmt.Sprintf("no data for symbol %s: no trading days in range", e.Symbol)
	}
	return fmt.Sprintf("no data for symbol %s", e.Symbol)
}

func (e *NoDataError) Is(target error) bool { return target == ErrNoDataForSymbol }

// Reasons attached to a report whose benchmark comparison was dropped.
const (
	ReasonNoBenchmarkData = "no benchmark data for the requested range"
	ReasonNoCommonDays    = "no trading days in common with the benchmark"
	ReasonZeroBaseline    = "benchmark baseline close is zero"
)

// BuildOptions controls what Build puts in the report beyond the target figures.
type BuildOptions struct {
	CompareToBenchmark  bool
	BenchmarkSymbol     string
	MovingAverageWindow int
}

// Build assembles a report from fetched series.
// An empty target fails with a *NoDataError; a missing or unusable benchmark only
// marks the report BenchmarkUnavailable.
func Build(symbol string, rng model.DateRange, target model.OHLCSeries, benchmark *model.BenchmarkSeries, opts BuildOptions) (*model.ComparisonReport, error) {
	if target.Empty() {
		return nil, &NoDataError{Symbol: symbol, Reason: target.EmptyReason}
	}

	stats, err := calculator.Summarize(target)
	if err != nil {
		return nil, fmt.Errorf("summarize %s: %w", symbol, err)
	}
	ret, err := calculator.TotalReturn(target)
	if err != nil {
		return nil, fmt.Errorf("total return %s: %w", symbol, err)
	}

	r := &model.ComparisonReport{
		Symbol:             symbol,
		Range:              rng,
		Stats:              stats,
		TargetReturn:       ret,
		BenchmarkRequested: opts.CompareToBenchmark,
		Chart: model.ChartInput{
			Bars:          target.Bars,
			MovingAverage: calculator.MovingAverage(target, opts.MovingAverageWindow),
			MovingWindow:  opts.MovingAverageWindow,
		},
	}
	if !opts.CompareToBenchmark {
		return r, nil
	}

	benchSymbol := opts.BenchmarkSymbol
	if benchmark != nil && benchmark.Symbol != "" {
		benchSymbol = benchmark.Symbol
	}
	r.BenchmarkSymbol = benchSymbol
	r.Chart.BenchmarkSymbol = benchSymbol

	if benchmark == nil || benchmark.Empty() {
		r.BenchmarkUnavailable = true
		r.BenchmarkReason = ReasonNoBenchmarkData
		return r, nil
	}

	pairs := calculator.Align(target, *benchmark)
	if len(pairs) == 0 {
		r.BenchmarkUnavailable = true
		r.BenchmarkReason = ReasonNoCommonDays
		return r, nil
	}

	aligned := calculator.AlignedBenchmark(benchSymbol, rng, pairs)
	benchRet, err := calculator.BenchmarkReturn(aligned)
	if errors.Is(err, calculator.ErrZeroBaseline) {
		r.BenchmarkUnavailable = true
		r.BenchmarkReason = ReasonZeroBaseline
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("benchmark return %s: %w", benchSymbol, err)
	}

	targetRet, err := calculator.BenchmarkReturn(calculator.AlignedTarget(symbol, rng, pairs))
	if errors.Is(err, calculator.ErrZeroBaseline) {
		r.BenchmarkUnavailable = true
		r.BenchmarkReason = ReasonZeroBaseline
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("aligned return %s: %w", symbol, err)
	}

	rel := calculator.RelativePerformance(targetRet, benchRet)
	r.BenchmarkReturn = &benchRet
	r.AlignedTargetReturn = &targetRet
	r.RelativePerformance = &rel
	r.AlignedDays = len(pairs)
	r.Chart.Benchmark = aligned.Points
	return r, nil
}
