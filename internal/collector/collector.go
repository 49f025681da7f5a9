package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/sync/errgroup"

	"PriceScope/internal/logging"
	"PriceScope/internal/model"
)

// Collector fetches the target series and, when asked, the benchmark series of one request.
type Collector struct {
	Source  *Source
	Timeout time.Duration // per fetch; zero means no limit
	Logger  arbor.ILogger
}

// NewCollector creates a new Collector.
func NewCollector(source *Source, timeout time.Duration, logger arbor.ILogger) *Collector {
	if logger == nil {
		logger = logging.NewSilentLogger()
	}
	return &Collector{Source: source, Timeout: timeout, Logger: logger}
}

// Collection is the raw data of one request.
type Collection struct {
	Target    model.OHLCSeries
	Benchmark *model.BenchmarkSeries // nil when no benchmark was requested
}

// Collect issues the target and benchmark fetches concurrently and waits for both.
// A failure of either fetch fails the whole collection.
func (c *Collector) Collect(ctx context.Context, symbol string, rng model.DateRange, withBenchmark bool) (*Collection, error) {
	if err := checkRange(rng); err != nil {
		return nil, err
	}

	var (
		target    model.OHLCSeries
		benchmark model.BenchmarkSeries
	)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.timed(gctx, "target", symbol, func(fctx context.Context) error {
			s, err := c.Source.FetchOHLC(fctx, symbol, rng)
			target = s
			if err == nil {
				c.Logger.Info().Str("symbol", s.Symbol).Int("bars", len(s.Bars)).Msg("target series fetched")
			}
			return err
		})
	})
	if withBenchmark {
		g.Go(func() error {
			return c.timed(gctx, "benchmark", c.Source.BenchmarkSymbol, func(fctx context.Context) error {
				s, err := c.Source.FetchBenchmarkClose(fctx, rng)
				benchmark = s
				if err == nil {
					c.Logger.Info().Str("symbol", s.Symbol).Int("points", len(s.Points)).Msg("benchmark series fetched")
				}
				return err
			})
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Collection{Target: target}
	if withBenchmark {
		out.Benchmark = &benchmark
	}
	return out, nil
}

// timed runs fetch under the per-fetch timeout and maps any failure onto ErrSourceUnavailable.
func (c *Collector) timed(ctx context.Context, role, symbol string, fetch func(context.Context) error) error {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	started := time.Now()
	err := fetch(ctx)
	if err == nil {
		return nil
	}
	c.Logger.Error().
		Err(err).
		Str("role", role).
		Str("symbol", symbol).
		Float64("elapsed_sec", time.Since(started).Seconds()).
		Msg("fetch failed")
	if errors.Is(err, ErrSourceUnavailable) || errors.Is(err, ErrInvalidRange) {
		return err
	}
	return fmt.Errorf("%w: %s %s: %w", ErrSourceUnavailable, role, symbol, err)
}
