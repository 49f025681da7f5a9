package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"PriceScope/internal/collector"
	"PriceScope/internal/logging"
	"PriceScope/internal/model"
	"PriceScope/internal/report"
)

// ErrInvalidRequest is returned when a request fails validation.
var ErrInvalidRequest = errors.New("invalid request")

var errNoCollector = errors.New("engine has no collector")

// Engine runs one comparison per call and keeps no state between calls.
type Engine struct {
	Collector *collector.Collector
	Logger    arbor.ILogger
	Options   report.BuildOptions

	validate *validator.Validate
	now      func() time.Time
}

// New creates an Engine. The benchmark symbol in opts defaults to the collector's.
// A nil collector is accepted, but Compare then fails.
func New(c *collector.Collector, opts report.BuildOptions, logger arbor.ILogger) *Engine {
	if logger == nil {
		logger = logging.NewSilentLogger()
	}
	if opts.BenchmarkSymbol == "" && c != nil && c.Source != nil {
		opts.BenchmarkSymbol = c.Source.BenchmarkSymbol
	}
	return &Engine{
		Collector: c,
		Logger:    logger,
		Options:   opts,
		validate:  validator.New(),
		now:       time.Now,
	}
}

// Compare validates req, fetches the target and optional benchmark series and builds the report.
func (e *Engine) Compare(ctx context.Context, req model.Request) (*model.ComparisonReport, error) {
	if e.Collector == nil {
		return nil, errNoCollector
	}
	req.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	if err := e.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	rng := req.Range()
	if !rng.Ordered() {
		return nil, fmt.Errorf("%w: %s", collector.ErrInvalidRange, rng)
	}

	id := uuid.New().String()
	log := e.Logger.WithCorrelationId(id)
	started := e.now()
	log.Info().
		Str("symbol", req.Symbol).
		Str("range", rng.String()).
		Bool("compare", req.CompareToBenchmark).
		Msg("comparison requested")

	c := *e.Collector
	c.Logger = log
	data, err := c.Collect(ctx, req.Symbol, rng, req.CompareToBenchmark)
	if err != nil {
		return nil, err
	}

	opts := e.Options
	opts.CompareToBenchmark = req.CompareToBenchmark
	r, err := report.Build(req.Symbol, rng, data.Target, data.Benchmark, opts)
	if err != nil {
		log.Warn().Err(err).Str("symbol", req.Symbol).Msg("report not built")
		return nil, err
	}
	r.RequestID = id
	r.GeneratedAt = e.now()

	evt := log.Info().
		Str("symbol", r.Symbol).
		Int("bars", len(r.Chart.Bars)).
		Float64("return_pct", r.TargetReturn.ReturnPercent).
		Float64("elapsed_sec", r.GeneratedAt.Sub(started).Seconds())
	if r.BenchmarkUnavailable {
		evt = evt.Str("benchmark_reason", r.BenchmarkReason)
	}
	evt.Msg("comparison built")
	return r, nil
}
