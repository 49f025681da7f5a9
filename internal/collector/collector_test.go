package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PriceScope/internal/model"
)

func bar(date string, close float64) model.Bar {
	return model.Bar{Date: day(date), Open: close, High: close, Low: close, Close: close}
}

func newMock() *MockFetcher {
	return &MockFetcher{Bars: map[string][]model.Bar{
		"AAPL":  {bar("2023-01-03", 100), bar("2023-01-04", 110), bar("2023-01-05", 105)},
		"^GSPC": {bar("2023-01-03", 3800), bar("2023-01-05", 3850)},
	}}
}

func TestSource_FetchBenchmarkClose(t *testing.T) {
	src := NewSource(newMock(), "^GSPC")
	s, err := src.FetchBenchmarkClose(context.Background(), rangeOf("2023-01-01", "2023-01-31"))
	require.NoError(t, err)
	assert.Equal(t, "^GSPC", s.Symbol)
	assert.Equal(t, []model.PricePoint{{Date: day("2023-01-03"), Close: 3800}, {Date: day("2023-01-05"), Close: 3850}}, s.Points)
}

func TestSource_RejectsInvalidRangeBeforeFetching(t *testing.T) {
	m := newMock()
	src := NewSource(m, "^GSPC")

	_, err := src.FetchOHLC(context.Background(), "AAPL", rangeOf("2023-02-01", "2023-01-01"))
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = src.FetchBenchmarkClose(context.Background(), rangeOf("2023-02-01", "2023-01-01"))
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.Empty(t, m.Calls())
}

func TestSource_UnknownSymbolIsEmptyNotError(t *testing.T) {
	src := NewSource(newMock(), "^GSPC")
	s, err := src.FetchOHLC(context.Background(), "nope", rangeOf("2023-01-01", "2023-01-31"))
	require.NoError(t, err)
	assert.True(t, s.Empty())
	assert.Equal(t, model.EmptyUnknownSymbol, s.EmptyReason)
}

func TestCollector_TargetOnly(t *testing.T) {
	m := newMock()
	c := NewCollector(NewSource(m, "^GSPC"), time.Second, nil)

	out, err := c.Collect(context.Background(), "aapl", rangeOf("2023-01-01", "2023-01-31"), false)
	require.NoError(t, err)
	assert.Len(t, out.Target.Bars, 3)
	assert.Nil(t, out.Benchmark)
	assert.Equal(t, []string{"AAPL"}, m.Calls())
}

func TestCollector_WithBenchmark(t *testing.T) {
	m := newMock()
	c := NewCollector(NewSource(m, "^GSPC"), time.Second, nil)

	out, err := c.Collect(context.Background(), "AAPL", rangeOf("2023-01-01", "2023-01-31"), true)
	require.NoError(t, err)
	require.NotNil(t, out.Benchmark)
	assert.Len(t, out.Benchmark.Points, 2)
	assert.ElementsMatch(t, []string{"AAPL", "^GSPC"}, m.Calls())
}

func TestCollector_FetchesConcurrently(t *testing.T) {
	m := newMock()
	m.Delay = 200 * time.Millisecond
	c := NewCollector(NewSource(m, "^GSPC"), time.Second, nil)

	started := time.Now()
	_, err := c.Collect(context.Background(), "AAPL", rangeOf("2023-01-01", "2023-01-31"), true)
	require.NoError(t, err)
	assert.Less(t, time.Since(started), 390*time.Millisecond)
}

func TestCollector_TimeoutIsSourceUnavailable(t *testing.T) {
	m := newMock()
	m.Delay = time.Second
	c := NewCollector(NewSource(m, "^GSPC"), 30*time.Millisecond, nil)

	_, err := c.Collect(context.Background(), "AAPL", rangeOf("2023-01-01", "2023-01-31"), false)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCollector_BenchmarkFailureFails(t *testing.T) {
	m := newMock()
	m.Errs = map[string]error{"^GSPC": errors.New("connection reset")}
	c := NewCollector(NewSource(m, "^GSPC"), time.Second, nil)

	_, err := c.Collect(context.Background(), "AAPL", rangeOf("2023-01-01", "2023-01-31"), true)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestCollector_InvalidRange(t *testing.T) {
	m := newMock()
	c := NewCollector(NewSource(m, "^GSPC"), time.Second, nil)

	_, err := c.Collect(context.Background(), "AAPL", rangeOf("2023-01-31", "2023-01-01"), true)
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.Empty(t, m.Calls())
}

func TestGenerateBars(t *testing.T) {
	rng := rangeOf("2023-01-02", "2023-01-15")
	a := GenerateBars("AAPL", rng)
	b := GenerateBars("AAPL", rng)
	assert.Equal(t, a, b)
	assert.Len(t, a, 10)
	for _, bar := range a {
		assert.True(t, bar.Valid())
		assert.NotEqual(t, time.Saturday, bar.Date.Weekday())
		assert.NotEqual(t, time.Sunday, bar.Date.Weekday())
	}
}
