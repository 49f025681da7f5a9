package collector

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"PriceScope/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Symbols missing from Bars yield generated bars when Generate is set, otherwise
// an empty unknown_symbol series.
type MockFetcher struct {
	Bars     map[string][]model.Bar
	Errs     map[string]error
	Delay    time.Duration
	Generate bool

	mu    sync.Mutex
	calls []string
}

func (m *MockFetcher) Name() string { return "mock" }

// Calls returns the symbols fetched so far, in call order.
func (m *MockFetcher) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockFetcher) FetchDailyBars(ctx context.Context, symbol string, rng model.DateRange) (model.OHLCSeries, error) {
	if err := checkRange(rng); err != nil {
		return model.OHLCSeries{}, err
	}
	symbol = normalizeSymbol(symbol)

	m.mu.Lock()
	m.calls = append(m.calls, symbol)
	m.mu.Unlock()

	if m.Delay > 0 {
		select {
		case <-ctx.Done():
			return model.OHLCSeries{}, ctx.Err()
		case <-time.After(m.Delay):
		}
	}
	if err, ok := m.Errs[symbol]; ok && err != nil {
		return model.OHLCSeries{}, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		series, _ := model.NewOHLCSeries(symbol, rng, bars)
		return series, nil
	}
	if m.Generate {
		series, _ := model.NewOHLCSeries(symbol, rng, GenerateBars(symbol, rng))
		return series, nil
	}
	return model.OHLCSeries{Symbol: symbol, Range: rng, EmptyReason: model.EmptyUnknownSymbol}, nil
}

// GenerateBars produces a deterministic weekday-only random walk for symbol over rng.
func GenerateBars(symbol string, rng model.DateRange) []model.Bar {
	h := fnv.New32a()
	h.Write([]byte(symbol))
	seed := h.Sum32()
	price := 50 + float64(seed%450)

	var bars []model.Bar
	for d := rng.Start; !d.After(rng.End); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		// xorshift32
		seed ^= seed << 13
		seed ^= seed >> 17
		seed ^= seed << 5
		step := (float64(seed%2001) - 1000) / 1000 * 0.02
		open := price
		price = price * (1 + step)
		high := max(open, price) * 1.004
		low := min(open, price) * 0.996
		bars = append(bars, model.Bar{Date: d, Open: open, High: high, Low: low, Close: price, Volume: 1000000})
	}
	return bars
}
