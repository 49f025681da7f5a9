package collector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"PriceScope/internal/logging"
	"PriceScope/internal/model"
)

var (
	// ErrInvalidRange is returned when the start date is after the end date.
	ErrInvalidRange = errors.New("invalid date range")
	// ErrSourceUnavailable wraps any network, upstream or timeout failure of a fetch.
	ErrSourceUnavailable = errors.New("market data source unavailable")
)

// Fetcher retrieves daily bars for one symbol. An unknown symbol or a range without
// trading days is a successful, empty series, not an error.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, rng model.DateRange) (model.OHLCSeries, error)
	Name() string
}

func unavailable(source, symbol string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrSourceUnavailable, source, symbol, err)
}

func checkRange(rng model.DateRange) error {
	if !rng.Ordered() {
		return fmt.Errorf("%w: %s", ErrInvalidRange, rng)
	}
	return nil
}

// normalizeSymbol makes symbols case-insensitive.
func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

const (
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// httpOptions is shared by the HTTP-backed fetchers.
type httpOptions struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	logger  arbor.ILogger
}

// Option configures an HTTP-backed fetcher.
type Option func(*httpOptions)

// WithBaseURL overrides the provider endpoint.
func WithBaseURL(baseURL string) Option {
	return func(o *httpOptions) {
		if baseURL != "" {
			o.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *httpOptions) {
		if timeout > 0 {
			o.client.Timeout = timeout
		}
	}
}

// WithProxy routes requests through proxyURL. Invalid URLs are ignored.
func WithProxy(proxyURL string) Option {
	return func(o *httpOptions) {
		if proxyURL == "" {
			return
		}
		if u, err := url.Parse(proxyURL); err == nil {
			o.client.Transport = &http.Transport{Proxy: http.ProxyURL(u)}
		}
	}
}

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(requestsPerSecond int) Option {
	return func(o *httpOptions) {
		if requestsPerSecond > 0 {
			o.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *httpOptions) {
		if client != nil {
			o.client = client
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger arbor.ILogger) Option {
	return func(o *httpOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newHTTPOptions(baseURL string, opts []Option) httpOptions {
	o := httpOptions{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  logging.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Source is the market data source of one request: the target symbol's bars and the
// benchmark's closes, both from the same Fetcher.
type Source struct {
	Fetcher         Fetcher
	BenchmarkSymbol string
}

// NewSource creates a Source comparing against benchmarkSymbol.
func NewSource(fetcher Fetcher, benchmarkSymbol string) *Source {
	return &Source{Fetcher: fetcher, BenchmarkSymbol: benchmarkSymbol}
}

// FetchOHLC returns the daily bars of symbol over rng.
func (s *Source) FetchOHLC(ctx context.Context, symbol string, rng model.DateRange) (model.OHLCSeries, error) {
	if err := checkRange(rng); err != nil {
		return model.OHLCSeries{}, err
	}
	return s.Fetcher.FetchDailyBars(ctx, symbol, rng)
}

// FetchBenchmarkClose returns the benchmark's closing prices over rng.
func (s *Source) FetchBenchmarkClose(ctx context.Context, rng model.DateRange) (model.BenchmarkSeries, error) {
	if err := checkRange(rng); err != nil {
		return model.BenchmarkSeries{}, err
	}
	series, err := s.Fetcher.FetchDailyBars(ctx, s.BenchmarkSymbol, rng)
	if err != nil {
		return model.BenchmarkSeries{}, err
	}
	return series.CloseSeries(), nil
}
