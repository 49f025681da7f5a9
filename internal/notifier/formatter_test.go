package notifier

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"PriceScope/internal/calculator"
	"PriceScope/internal/collector"
	"PriceScope/internal/engine"
	"PriceScope/internal/model"
	"PriceScope/internal/report"
)

func day(s string) time.Time {
	d, err := model.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleReport() *model.ComparisonReport {
	return &model.ComparisonReport{
		Symbol: "AAPL",
		Range:  model.NewDateRange(day("2023-01-01"), day("2023-12-31")),
		Stats: model.SummaryStats{
			HighestPrice:        199.62,
			LowestPrice:         124.17,
			AverageClosingPrice: 172.5549,
		},
		TargetReturn: model.ReturnMetric{ReturnPercent: 54.80333},
	}
}

func withBenchmark(r *model.ComparisonReport) *model.ComparisonReport {
	ret := model.ReturnMetric{StartDate: day("2023-01-03"), EndDate: day("2023-12-29"), ReturnPercent: 24.2305}
	r.TargetReturn.StartDate, r.TargetReturn.EndDate = ret.StartDate, ret.EndDate
	aligned := r.TargetReturn
	rel := aligned.ReturnPercent - ret.ReturnPercent
	r.BenchmarkRequested = true
	r.AlignedTargetReturn = &aligned
	r.BenchmarkSymbol = "^GSPC"
	r.BenchmarkReturn = &ret
	r.RelativePerformance = &rel
	r.AlignedDays = 250
	return r
}

func TestFormatText_Table(t *testing.T) {
	out := FormatText(sampleReport(), StyleTable, false)

	assert.Contains(t, out, "AAPL | 2023-01-01 to 2023-12-31")
	assert.Contains(t, out, "Highest Price           $199.62")
	assert.Contains(t, out, "Lowest Price            $124.17")
	assert.Contains(t, out, "Average Closing Price   $172.55")
	assert.Contains(t, out, "Total return over period: 54.80%")
	assert.Contains(t, out, "Enable the benchmark comparison")
	assert.NotContains(t, out, "\x1b[")
}

func TestFormatText_Compact(t *testing.T) {
	out := FormatText(sampleReport(), StyleCompact, false)
	assert.Contains(t, out, "Highest Price: $199.62 | Lowest Price: $124.17 | Average Closing Price: $172.55")
	assert.NotContains(t, out, "Statistic")
}

func TestFormatText_Color(t *testing.T) {
	out := FormatText(sampleReport(), StyleTable, true)
	assert.Contains(t, out, "\x1b[")
}

func TestFormatText_Benchmark(t *testing.T) {
	out := FormatText(withBenchmark(sampleReport()), StyleTable, false)

	assert.Contains(t, out, "AAPL total return: 54.80%")
	assert.Contains(t, out, "S&P 500 total return: 24.23%")
	assert.Contains(t, out, "Stock vs S&P 500: +30.57%")
	assert.Contains(t, out, "250 common trading days, 2023-01-03 to 2023-12-29")
	assert.NotContains(t, out, "Enable the benchmark comparison")
}

func TestFormatText_NegativeRelative(t *testing.T) {
	r := withBenchmark(sampleReport())
	rel := -3.456
	r.RelativePerformance = &rel
	assert.Contains(t, FormatText(r, StyleTable, false), "Stock vs S&P 500: -3.46%")
}

func TestFormatText_BenchmarkUnavailable(t *testing.T) {
	r := sampleReport()
	r.BenchmarkRequested = true
	r.BenchmarkUnavailable = true
	r.BenchmarkReason = report.ReasonNoCommonDays

	out := FormatText(r, StyleTable, false)
	assert.Contains(t, out, "Total return over period: 54.80%")
	assert.Contains(t, out, "Benchmark comparison unavailable: no trading days in common with the benchmark.")
}

func TestFormatHTML(t *testing.T) {
	out := FormatHTML(withBenchmark(sampleReport()), StyleTable)

	assert.Contains(t, out, "<b>AAPL</b>")
	assert.Contains(t, out, "<pre>Statistic")
	assert.Contains(t, out, "$172.55</pre>")
	assert.Contains(t, out, "S&amp;P 500 total return")
	assert.Contains(t, out, "<b>Stock vs S&amp;P 500: +30.57%</b>")
}

func TestFormatText_CommonWindowNarrower(t *testing.T) {
	r := withBenchmark(sampleReport())
	aligned := model.ReturnMetric{StartDate: day("2023-01-04"), EndDate: day("2023-12-29"), ReturnPercent: 50.1}
	rel := aligned.ReturnPercent - r.BenchmarkReturn.ReturnPercent
	r.AlignedTargetReturn, r.RelativePerformance = &aligned, &rel

	out := FormatText(r, StyleTable, false)
	assert.Contains(t, out, "AAPL total return: 54.80%")
	assert.Contains(t, out, "AAPL over common days: 50.10%")
	assert.Contains(t, out, "Stock vs S&P 500: +25.87%")

	assert.NotContains(t, FormatText(withBenchmark(sampleReport()), StyleTable, false), "over common days")
}

func TestParseStyle(t *testing.T) {
	assert.Equal(t, StyleCompact, ParseStyle(" Compact "))
	assert.Equal(t, StyleTable, ParseStyle("table"))
	assert.Equal(t, StyleTable, ParseStyle(""))
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&report.NoDataError{Symbol: "ZZZZ"}, "Unable to fetch data. Please check the ticker symbol."},
		{fmt.Errorf("wrap: %w", collector.ErrInvalidRange), "The start date must be on or before the end date."},
		{fmt.Errorf("%w: symbol", engine.ErrInvalidRequest), "Please enter a ticker symbol and a start and end date."},
		{fmt.Errorf("%w: timeout", collector.ErrSourceUnavailable), "The market data source is unavailable right now. Please try again later."},
		{calculator.ErrZeroBaseline, "Returns cannot be computed for this period."},
		{errors.New("boom"), "Unable to complete the request."},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, FormatError(tt.err))
		})
	}
	assert.Empty(t, FormatError(nil))
}
