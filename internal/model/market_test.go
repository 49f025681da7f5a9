package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDay(s)
	require.NoError(t, err)
	return d
}

func flat(d time.Time, close float64) Bar {
	return Bar{Date: d, Open: close, High: close, Low: close, Close: close}
}

func TestBar_Valid(t *testing.T) {
	tests := []struct {
		name string
		bar  Bar
		want bool
	}{
		{"ordinary", Bar{Open: 10, High: 12, Low: 9, Close: 11}, true},
		{"flat", Bar{Open: 10, High: 10, Low: 10, Close: 10}, true},
		{"zero", Bar{}, true},
		{"close above high", Bar{Open: 10, High: 11, Low: 9, Close: 12}, false},
		{"open below low", Bar{Open: 8, High: 11, Low: 9, Close: 10}, false},
		{"negative", Bar{Open: -1, High: 1, Low: -2, Close: 0}, false},
		{"nan", Bar{Open: math.NaN(), High: 11, Low: 9, Close: 10}, false},
		{"inf", Bar{Open: 10, High: math.Inf(1), Low: 9, Close: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.bar.Valid())
		})
	}
}

func TestNewOHLCSeries(t *testing.T) {
	rng := NewDateRange(mustDay(t, "2023-01-02"), mustDay(t, "2023-01-06"))
	intraday := mustDay(t, "2023-01-04").Add(14*time.Hour + 30*time.Minute)

	raw := []Bar{
		flat(mustDay(t, "2023-01-05"), 105),
		flat(mustDay(t, "2023-01-03"), 103),
		flat(intraday, 104),
		flat(mustDay(t, "2023-01-03"), 99), // duplicate, last wins
		flat(mustDay(t, "2023-01-09"), 120), // out of range
		{Date: mustDay(t, "2023-01-06"), Open: 1, High: 0.5, Low: 1, Close: 1},
	}

	s, dropped := NewOHLCSeries("AAPL", rng, raw)
	assert.Equal(t, 3, dropped)
	assert.Empty(t, s.EmptyReason)
	require.Len(t, s.Bars, 3)
	assert.Equal(t, mustDay(t, "2023-01-03"), s.Bars[0].Date)
	assert.Equal(t, 99.0, s.Bars[0].Close)
	assert.Equal(t, mustDay(t, "2023-01-04"), s.Bars[1].Date)
	assert.Equal(t, mustDay(t, "2023-01-05"), s.Bars[2].Date)
	assert.Equal(t, []float64{99, 104, 105}, s.Closes())
}

func TestNewOHLCSeries_Empty(t *testing.T) {
	rng := NewDateRange(mustDay(t, "2023-01-07"), mustDay(t, "2023-01-08"))
	s, dropped := NewOHLCSeries("AAPL", rng, nil)
	assert.Zero(t, dropped)
	assert.True(t, s.Empty())
	assert.Equal(t, EmptyNoTradingDays, s.EmptyReason)
}

func TestOHLCSeries_CloseSeries(t *testing.T) {
	rng := NewDateRange(mustDay(t, "2023-01-02"), mustDay(t, "2023-01-06"))
	s, _ := NewOHLCSeries("^GSPC", rng, []Bar{flat(mustDay(t, "2023-01-03"), 3800), flat(mustDay(t, "2023-01-04"), 3850)})

	b := s.CloseSeries()
	assert.Equal(t, "^GSPC", b.Symbol)
	assert.Equal(t, rng, b.Range)
	assert.Equal(t, []PricePoint{
		{Date: mustDay(t, "2023-01-03"), Close: 3800},
		{Date: mustDay(t, "2023-01-04"), Close: 3850},
	}, b.Points)
}

func TestDateRange(t *testing.T) {
	rng := NewDateRange(mustDay(t, "2023-01-01").Add(23*time.Hour), mustDay(t, "2023-12-31"))
	assert.Equal(t, mustDay(t, "2023-01-01"), rng.Start)
	assert.True(t, rng.Ordered())
	assert.True(t, rng.Contains(mustDay(t, "2023-01-01")))
	assert.True(t, rng.Contains(mustDay(t, "2023-12-31").Add(20*time.Hour)))
	assert.False(t, rng.Contains(mustDay(t, "2024-01-01")))
	assert.Equal(t, "2023-01-01 to 2023-12-31", rng.String())

	single := NewDateRange(mustDay(t, "2023-06-01"), mustDay(t, "2023-06-01"))
	assert.True(t, single.Ordered())

	reversed := NewDateRange(mustDay(t, "2023-06-02"), mustDay(t, "2023-06-01"))
	assert.False(t, reversed.Ordered())
}

func TestLastYear(t *testing.T) {
	rng := LastYear(time.Date(2024, 3, 15, 17, 45, 0, 0, time.UTC))
	assert.Equal(t, mustDay(t, "2024-03-15"), rng.End)
	assert.Equal(t, mustDay(t, "2023-03-16"), rng.Start)
}

func TestParseDay(t *testing.T) {
	_, err := ParseDay("2023-13-01")
	assert.Error(t, err)
	_, err = ParseDay("01/02/2023")
	assert.Error(t, err)
}
