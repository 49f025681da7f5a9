package report

import "github.com/shopspring/decimal"

var benchmarkNames = map[string]string{
	"^GSPC": "S&P 500",
	"^DJI":  "Dow Jones",
	"^IXIC": "Nasdaq Composite",
}

// BenchmarkName returns the display name of a benchmark symbol.
func BenchmarkName(symbol string) string {
	if name, ok := benchmarkNames[symbol]; ok {
		return name
	}
	return symbol
}

// Money formats a price as dollars with two decimals.
func Money(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}

// Percent formats a percentage with two decimals.
func Percent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2) + "%"
}

// SignedPercent is Percent with an explicit plus sign for gains.
func SignedPercent(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	if d.IsPositive() {
		return "+" + d.StringFixed(2) + "%"
	}
	return d.StringFixed(2) + "%"
}
