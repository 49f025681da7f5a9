package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"PriceScope/internal/model"
	"PriceScope/internal/report"
)

// PriceChart renders a PNG line chart of the daily closes with the high/low range,
// the moving average when present and the benchmark closes on a secondary axis.
func PriceChart(in model.ChartInput, title string) ([]byte, error) {
	if len(in.Bars) < 2 {
		return nil, fmt.Errorf("need at least 2 bars, got %d", len(in.Bars))
	}

	dates := make([]time.Time, len(in.Bars))
	closes := make([]float64, len(in.Bars))
	highs := make([]float64, len(in.Bars))
	lows := make([]float64, len(in.Bars))
	for i, b := range in.Bars {
		dates[i] = b.Date
		closes[i] = b.Close
		highs[i] = b.High
		lows[i] = b.Low
	}

	band := chart.Style{
		StrokeColor: drawing.ColorFromHex("cbd5e1"), // slate-300
		StrokeWidth: 1,
	}
	series := []chart.Series{
		chart.TimeSeries{Name: "High", Style: band, XValues: dates, YValues: highs},
		chart.TimeSeries{Name: "Low", Style: band, XValues: dates, YValues: lows},
		chart.TimeSeries{
			Name: "Close",
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
				StrokeWidth: 2.5,
			},
			XValues: dates,
			YValues: closes,
		},
	}

	if len(in.MovingAverage) >= 2 {
		x, y := split(in.MovingAverage)
		series = append(series, chart.TimeSeries{
			Name: fmt.Sprintf("SMA %d", in.MovingWindow),
			Style: chart.Style{
				StrokeColor:     drawing.ColorFromHex("f59e0b"), // amber-500
				StrokeWidth:     1.5,
				StrokeDashArray: []float64{5.0, 3.0},
			},
			XValues: x,
			YValues: y,
		})
	}

	secondary := len(in.Benchmark) >= 2
	if secondary {
		x, y := split(in.Benchmark)
		series = append(series, chart.TimeSeries{
			Name:  report.BenchmarkName(in.BenchmarkSymbol),
			YAxis: chart.YAxisSecondary,
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex("9ca3af"), // gray-400
				StrokeWidth: 1.5,
			},
			XValues: x,
			YValues: y,
		})
	}

	graph := chart.Chart{
		Title:  title,
		Width:  900,
		Height: 420,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.0f", f)
				}
				return ""
			},
		},
		Series: series,
	}
	if secondary {
		graph.YAxisSecondary = chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		}
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// Title builds the chart heading for a report.
func Title(r *model.ComparisonReport) string {
	if r.HasBenchmark() {
		return fmt.Sprintf("%s vs %s, %s", r.Symbol, report.BenchmarkName(r.BenchmarkSymbol), r.Range)
	}
	return fmt.Sprintf("%s, %s", r.Symbol, r.Range)
}

// Report renders the chart of a built report.
func Report(r *model.ComparisonReport) ([]byte, error) {
	return PriceChart(r.Chart, Title(r))
}

func split(points []model.PricePoint) ([]time.Time, []float64) {
	x := make([]time.Time, len(points))
	y := make([]float64, len(points))
	for i, p := range points {
		x[i] = p.Date
		y[i] = p.Close
	}
	return x, y
}
