package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"PriceScope/internal/model"
)

const DefaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	httpOptions
	SymbolMap map[string]string // maps aliases to Yahoo tickers
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(opts ...Option) *YahooFetcher {
	return &YahooFetcher{
		httpOptions: newHTTPOptions(DefaultYahooBaseURL, opts),
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	symbol = normalizeSymbol(symbol)
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
// Quote arrays hold null on days without a print.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol    string `json:"symbol"`
				GMTOffset int64  `json:"gmtoffset"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"chart"`
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func at(values []*float64, i int) (float64, bool) {
	if i >= len(values) || values[i] == nil {
		return 0, false
	}
	return *values[i], true
}

func (f *YahooFetcher) FetchDailyBars(ctx context.Context, symbol string, rng model.DateRange) (model.OHLCSeries, error) {
	if err := checkRange(rng); err != nil {
		return model.OHLCSeries{}, err
	}
	ticker := f.yahooSymbol(symbol)
	empty := model.OHLCSeries{Symbol: ticker, Range: rng}

	if err := f.limiter.Wait(ctx); err != nil {
		return empty, unavailable(f.Name(), ticker, fmt.Errorf("rate limit wait: %w", err))
	}

	// period2 is exclusive upstream; the range is inclusive of its end date.
	// period1 starts a day early: exchanges east of UTC stamp their first session
	// on the previous UTC evening. Bars outside rng are dropped by local date.
	params := url.Values{}
	params.Set("period1", strconv.FormatInt(rng.Start.AddDate(0, 0, -1).Unix(), 10))
	params.Set("period2", strconv.FormatInt(rng.End.AddDate(0, 0, 1).Unix(), 10))
	params.Set("interval", "1d")
	params.Set("events", "history")
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", f.baseURL, url.PathEscape(ticker), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return empty, unavailable(f.Name(), ticker, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	started := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return empty, unavailable(f.Name(), ticker, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return empty, unavailable(f.Name(), ticker, fmt.Errorf("read body: %w", err))
	}

	var chart yahooChart
	decodeErr := json.Unmarshal(body, &chart)

	if resp.StatusCode != http.StatusOK {
		if reason, ok := emptyReason(resp.StatusCode, chart.Chart.Error); ok && decodeErr == nil {
			f.logger.Info().Str("symbol", ticker).Str("reason", string(reason)).Msg("yahoo returned no data")
			empty.EmptyReason = reason
			return empty, nil
		}
		return empty, unavailable(f.Name(), ticker, fmt.Errorf("status %d, body: %s", resp.StatusCode, truncate(body, 256)))
	}
	if decodeErr != nil {
		return empty, unavailable(f.Name(), ticker, fmt.Errorf("decode: %w", decodeErr))
	}
	if chart.Chart.Error != nil {
		if reason, ok := emptyReason(resp.StatusCode, chart.Chart.Error); ok {
			empty.EmptyReason = reason
			return empty, nil
		}
		return empty, unavailable(f.Name(), ticker, fmt.Errorf("api error: %s", chart.Chart.Error.Description))
	}
	if len(chart.Chart.Result) == 0 {
		empty.EmptyReason = model.EmptyNoTradingDays
		return empty, nil
	}

	result := chart.Chart.Result[0]
	raw := make([]model.Bar, 0, len(result.Timestamp))
	if len(result.Indicators.Quote) > 0 {
		quote := result.Indicators.Quote[0]
		for i, ts := range result.Timestamp {
			o, okO := at(quote.Open, i)
			h, okH := at(quote.High, i)
			l, okL := at(quote.Low, i)
			c, okC := at(quote.Close, i)
			if !okO || !okH || !okL || !okC {
				continue // null bar
			}
			v, _ := at(quote.Volume, i)
			raw = append(raw, model.Bar{
				// exchange-local trading date
				Date:   time.Unix(ts+result.Meta.GMTOffset, 0).UTC(),
				Open:   o,
				High:   h,
				Low:    l,
				Close:  c,
				Volume: v,
			})
		}
	}

	series, dropped := model.NewOHLCSeries(ticker, rng, raw)
	if dropped > 0 {
		f.logger.Debug().Str("symbol", ticker).Int("dropped", dropped).Msg("dropped malformed or out-of-range bars")
	}
	f.logger.Debug().
		Str("symbol", ticker).
		Int("bars", len(series.Bars)).
		Float64("elapsed_sec", time.Since(started).Seconds()).
		Msg("yahoo chart fetched")
	return series, nil
}

// emptyReason maps Yahoo's "no data" answers onto an empty series.
func emptyReason(status int, apiErr *yahooError) (model.EmptyReason, bool) {
	if apiErr == nil {
		if status == http.StatusNotFound {
			return model.EmptyUnknownSymbol, true
		}
		return "", false
	}
	switch {
	case apiErr.Code == "Not Found":
		return model.EmptyUnknownSymbol, true
	case strings.Contains(apiErr.Description, "Data doesn't exist"):
		return model.EmptyNoTradingDays, true
	}
	return "", false
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
