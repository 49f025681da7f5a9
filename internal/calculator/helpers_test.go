package calculator

import (
	"time"

	"PriceScope/internal/model"
)

func day(s string) time.Time {
	t, err := model.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// closeBar builds a bar whose open/high/low sit around close.
func closeBar(date string, close float64) model.Bar {
	return model.Bar{Date: day(date), Open: close, High: close * 1.01, Low: close * 0.99, Close: close}
}

func seriesOf(bars ...model.Bar) model.OHLCSeries {
	return model.OHLCSeries{Symbol: "TEST", Bars: bars}
}

func benchOf(points ...model.PricePoint) model.BenchmarkSeries {
	return model.BenchmarkSeries{Symbol: "^GSPC", Points: points}
}

func point(date string, close float64) model.PricePoint {
	return model.PricePoint{Date: day(date), Close: close}
}
