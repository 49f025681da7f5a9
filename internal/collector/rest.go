package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"PriceScope/internal/model"
)

// RESTFetcher implements Fetcher against a generic daily-bar REST API.
type RESTFetcher struct {
	httpOptions
	APIKey string
}

// NewRESTFetcher creates a fetcher for baseURL, sending apiKey as a bearer token when set.
func NewRESTFetcher(baseURL, apiKey string, opts ...Option) *RESTFetcher {
	return &RESTFetcher{
		httpOptions: newHTTPOptions(baseURL, opts),
		APIKey:      apiKey,
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape from the bars endpoint.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

func (f *RESTFetcher) FetchDailyBars(ctx context.Context, symbol string, rng model.DateRange) (model.OHLCSeries, error) {
	if err := checkRange(rng); err != nil {
		return model.OHLCSeries{}, err
	}
	symbol = normalizeSymbol(symbol)
	empty := model.OHLCSeries{Symbol: symbol, Range: rng}

	if err := f.limiter.Wait(ctx); err != nil {
		return empty, unavailable(f.Name(), symbol, fmt.Errorf("rate limit wait: %w", err))
	}

	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("from", rng.Start.Format(model.DateLayout))
	params.Set("to", rng.End.Format(model.DateLayout))
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?%s", f.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return empty, unavailable(f.Name(), symbol, err)
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return empty, unavailable(f.Name(), symbol, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		empty.EmptyReason = model.EmptyUnknownSymbol
		return empty, nil
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return empty, unavailable(f.Name(), symbol, fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body)))
	}

	var bars []restBar
	if err := json.NewDecoder(resp.Body).Decode(&bars); err != nil {
		return empty, unavailable(f.Name(), symbol, fmt.Errorf("decode bars: %w", err))
	}
	raw := make([]model.Bar, len(bars))
	for i, b := range bars {
		raw[i] = model.Bar{
			Date:   time.Unix(b.Timestamp, 0).UTC(),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		}
	}

	series, dropped := model.NewOHLCSeries(symbol, rng, raw)
	if dropped > 0 {
		f.logger.Warn().Str("symbol", symbol).Int("dropped", dropped).Msg("dropped malformed or out-of-range bars")
	}
	return series, nil
}
