package notifier

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/ternarybob/banner"

	"PriceScope/internal/calculator"
	"PriceScope/internal/collector"
	"PriceScope/internal/engine"
	"PriceScope/internal/model"
	"PriceScope/internal/report"
)

// StatsStyle selects how the statistics block is laid out.
type StatsStyle string

const (
	StyleTable   StatsStyle = "table"
	StyleCompact StatsStyle = "compact"
)

// ParseStyle maps a config value to a StatsStyle, defaulting to table.
func ParseStyle(s string) StatsStyle {
	if StatsStyle(strings.ToLower(strings.TrimSpace(s))) == StyleCompact {
		return StyleCompact
	}
	return StyleTable
}

const (
	labelHigh    = "Highest Price"
	labelLow     = "Lowest Price"
	labelAverage = "Average Closing Price"
)

// markup abstracts the two output dialects.
type markup struct {
	bold   func(string) string
	escape func(string) string
	pre    func(string) string
}

func same(s string) string { return s }

func line(s string) string { return s + "\n" }

var plain = markup{bold: same, escape: same, pre: line}

var ansi = markup{
	bold:   func(s string) string { return banner.ColorBold + banner.ColorCyan + s + banner.ColorReset },
	escape: same,
	pre:    line,
}

// Telegram only keeps column alignment inside <pre>.
var htmlMarkup = markup{
	bold:   func(s string) string { return "<b>" + s + "</b>" },
	escape: html.EscapeString,
	pre:    func(s string) string { return "<pre>" + s + "</pre>\n" },
}

// FormatText renders a report for a terminal. color adds ANSI styling.
func FormatText(r *model.ComparisonReport, style StatsStyle, color bool) string {
	m := plain
	if color {
		m = ansi
	}
	return format(r, style, m)
}

// FormatHTML renders a report as Telegram HTML.
func FormatHTML(r *model.ComparisonReport, style StatsStyle) string {
	return format(r, style, htmlMarkup)
}

func format(r *model.ComparisonReport, style StatsStyle, m markup) string {
	var b strings.Builder

	b.WriteString(m.bold(m.escape(r.Symbol)))
	b.WriteString(fmt.Sprintf(" | %s\n\n", r.Range))

	rows := [][2]string{
		{labelHigh, report.Money(r.Stats.HighestPrice)},
		{labelLow, report.Money(r.Stats.LowestPrice)},
		{labelAverage, report.Money(r.Stats.AverageClosingPrice)},
	}
	switch style {
	case StyleCompact:
		parts := make([]string, len(rows))
		for i, row := range rows {
			parts[i] = row[0] + ": " + row[1]
		}
		b.WriteString(strings.Join(parts, " | "))
		b.WriteString("\n")
	default:
		var t strings.Builder
		t.WriteString(fmt.Sprintf("%-23s %s", "Statistic", "Value"))
		for _, row := range rows {
			t.WriteString(fmt.Sprintf("\n%-23s %s", row[0], row[1]))
		}
		b.WriteString(m.pre(t.String()))
	}
	b.WriteString("\n")

	switch {
	case r.HasBenchmark():
		name := m.escape(report.BenchmarkName(r.BenchmarkSymbol))
		b.WriteString(fmt.Sprintf("%s total return: %s\n", m.escape(r.Symbol), report.Percent(r.TargetReturn.ReturnPercent)))
		if r.CommonWindowNarrower() {
			b.WriteString(fmt.Sprintf("%s over common days: %s\n", m.escape(r.Symbol), report.Percent(r.AlignedTargetReturn.ReturnPercent)))
		}
		b.WriteString(fmt.Sprintf("%s total return: %s\n", name, report.Percent(r.BenchmarkReturn.ReturnPercent)))
		b.WriteString(m.bold(fmt.Sprintf("Stock vs %s: %s", name, report.SignedPercent(*r.RelativePerformance))))
		b.WriteString(fmt.Sprintf("\n(%d common trading days, %s to %s)\n",
			r.AlignedDays,
			r.BenchmarkReturn.StartDate.Format(model.DateLayout),
			r.BenchmarkReturn.EndDate.Format(model.DateLayout)))
	case r.BenchmarkUnavailable:
		b.WriteString(fmt.Sprintf("Total return over period: %s\n", report.Percent(r.TargetReturn.ReturnPercent)))
		b.WriteString(fmt.Sprintf("Benchmark comparison unavailable: %s.\n", m.escape(r.BenchmarkReason)))
	default:
		b.WriteString(fmt.Sprintf("Total return over period: %s\n", report.Percent(r.TargetReturn.ReturnPercent)))
		b.WriteString("Enable the benchmark comparison to see how the stock did against the market.\n")
	}
	return b.String()
}

// FormatError maps an error from a comparison onto the message shown to the user.
func FormatError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, report.ErrNoDataForSymbol):
		return "Unable to fetch data. Please check the ticker symbol."
	case errors.Is(err, collector.ErrInvalidRange):
		return "The start date must be on or before the end date."
	case errors.Is(err, engine.ErrInvalidRequest):
		return "Please enter a ticker symbol and a start and end date."
	case errors.Is(err, collector.ErrSourceUnavailable):
		return "The market data source is unavailable right now. Please try again later."
	case errors.Is(err, calculator.ErrZeroBaseline), errors.Is(err, calculator.ErrEmptySeries):
		return "Returns cannot be computed for this period."
	}
	return "Unable to complete the request."
}
