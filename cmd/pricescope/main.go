package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ternarybob/arbor"

	"PriceScope/internal/collector"
	"PriceScope/internal/config"
	"PriceScope/internal/engine"
	"PriceScope/internal/logging"
	"PriceScope/internal/model"
	"PriceScope/internal/notifier"
	"PriceScope/internal/render"
	"PriceScope/internal/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath string
	provider   string
	symbol     string
	start      string
	end        string
	compare    bool
	chartPath  string
	pdfPath    string
	telegram   bool
	bot        bool
	color      bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("pricescope", flag.ContinueOnError)
	fs.SetOutput(stderr)
	defaultConfig := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultConfig = v
	}
	fs.StringVar(&o.configPath, "config", defaultConfig, "config file (.yaml or .toml)")
	fs.StringVar(&o.provider, "provider", "", "data provider override: yahoo, rest or mock")
	fs.StringVar(&o.symbol, "symbol", "AAPL", "ticker symbol")
	fs.StringVar(&o.start, "start", "", "start date YYYY-MM-DD (default: 365 days before end)")
	fs.StringVar(&o.end, "end", "", "end date YYYY-MM-DD (default: today)")
	fs.BoolVar(&o.compare, "compare", false, "compare against the benchmark")
	fs.StringVar(&o.chartPath, "chart", "", "write a PNG price chart to this path")
	fs.StringVar(&o.pdfPath, "pdf", "", "write a one-page PDF report to this path")
	fs.BoolVar(&o.telegram, "telegram", false, "also send the report to the configured Telegram chat")
	fs.BoolVar(&o.bot, "bot", false, "run the Telegram command bot until interrupted")
	fs.BoolVar(&o.color, "color", isTerminal(os.Stdout), "colored terminal output")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 1
	}
	if o.provider != "" {
		cfg.DataSource.Provider = o.provider
	}
	if o.chartPath == "" {
		o.chartPath = cfg.Report.ChartPath
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	logger := logging.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	eng := newEngine(cfg, logger)
	style := notifier.ParseStyle(cfg.Report.StatsStyle)

	if o.bot {
		return runBot(ctx, cfg, eng, style, logger, stderr)
	}

	req, err := buildRequest(o, time.Now())
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	r, err := eng.Compare(ctx, req)
	if err != nil {
		logger.Error().Err(err).Str("symbol", req.Symbol).Msg("comparison failed")
		fmt.Fprintln(stderr, notifier.FormatError(err))
		return 1
	}
	fmt.Fprint(stdout, notifier.FormatText(r, style, o.color))

	var png []byte
	if o.chartPath != "" || o.pdfPath != "" || o.telegram {
		png, err = render.Report(r)
		if err != nil {
			logger.Warn().Err(err).Msg("chart not rendered")
		}
	}
	if o.chartPath != "" && png != nil {
		if err := os.WriteFile(o.chartPath, png, 0o644); err != nil {
			fmt.Fprintf(stderr, "write chart: %v\n", err)
			return 1
		}
		logger.Info().Str("path", o.chartPath).Int("bytes", len(png)).Msg("chart written")
	}
	if o.pdfPath != "" {
		doc, err := render.PDFReport(r, png)
		if err == nil {
			err = os.WriteFile(o.pdfPath, doc, 0o644)
		}
		if err != nil {
			fmt.Fprintf(stderr, "write pdf: %v\n", err)
			return 1
		}
		logger.Info().Str("path", o.pdfPath).Int("bytes", len(doc)).Msg("pdf written")
	}

	if o.telegram {
		if err := cfg.ValidateTelegram(); err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 1
		}
		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, logger)
		if png != nil {
			if err := tn.SendPhoto(ctx, tn.ChatID, png, ""); err != nil {
				logger.Warn().Err(err).Msg("send chart")
			}
		}
		if err := tn.Send(ctx, notifier.FormatHTML(r, style)); err != nil {
			fmt.Fprintf(stderr, "send telegram: %v\n", err)
			return 1
		}
	}
	return 0
}

func runBot(ctx context.Context, cfg *config.Config, eng *engine.Engine, style notifier.StatsStyle, logger arbor.ILogger, stderr io.Writer) int {
	if err := cfg.ValidateTelegram(); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	printBanner(stderr, cfg)
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, logger)
	tn.StartPolling(ctx, notifier.CompareHandler(eng, style, render.Report))
	logger.Info().Msg("PriceScope stopped")
	return 0
}

func newEngine(cfg *config.Config, logger arbor.ILogger) *engine.Engine {
	opts := []collector.Option{
		collector.WithTimeout(cfg.DataSource.GetTimeout()),
		collector.WithProxy(cfg.Proxy),
		collector.WithRateLimit(cfg.DataSource.RateLimit),
		collector.WithLogger(logger),
	}

	var fetcher collector.Fetcher
	switch cfg.DataSource.Provider {
	case "rest":
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, opts...)
	case "mock":
		fetcher = &collector.MockFetcher{Generate: true}
	default:
		if cfg.DataSource.BaseURL != "" {
			opts = append(opts, collector.WithBaseURL(cfg.DataSource.BaseURL))
		}
		fetcher = collector.NewYahooFetcher(opts...)
	}
	logger.Info().Str("provider", fetcher.Name()).Str("benchmark", cfg.DataSource.BenchmarkSymbol).Msg("data source ready")

	source := collector.NewSource(fetcher, cfg.DataSource.BenchmarkSymbol)
	col := collector.NewCollector(source, cfg.DataSource.GetTimeout(), logger)
	return engine.New(col, report.BuildOptions{
		BenchmarkSymbol:     cfg.DataSource.BenchmarkSymbol,
		MovingAverageWindow: cfg.Report.MovingAverageWindow,
	}, logger)
}

// buildRequest applies the default range: the year ending at -end, or today.
func buildRequest(o *options, today time.Time) (model.Request, error) {
	end := model.Day(today)
	if o.end != "" {
		d, err := model.ParseDay(o.end)
		if err != nil {
			return model.Request{}, err
		}
		end = d
	}
	start := model.LastYear(end).Start
	if o.start != "" {
		d, err := model.ParseDay(o.start)
		if err != nil {
			return model.Request{}, err
		}
		start = d
	}
	return model.Request{Symbol: o.symbol, Start: start, End: end, CompareToBenchmark: o.compare}, nil
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
