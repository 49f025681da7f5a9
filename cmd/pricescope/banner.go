package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/ternarybob/banner"

	"PriceScope/internal/config"
)

// printBanner writes the bot startup banner.
func printBanner(w io.Writer, cfg *config.Config) {
	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	hr := lineColor + strings.Repeat("═", 56) + banner.ColorReset

	fmt.Fprintf(w, "\n%s\n\n", hr)
	fmt.Fprintf(w, "%s  PRICESCOPE  stock statistics and benchmark comparison%s\n\n", textColor, banner.ColorReset)
	for _, kv := range [][2]string{
		{"Provider", cfg.DataSource.Provider},
		{"Benchmark", cfg.DataSource.BenchmarkSymbol},
		{"Fetch timeout", cfg.DataSource.GetTimeout().String()},
		{"Stats style", cfg.Report.StatsStyle},
	} {
		fmt.Fprintf(w, "%s  %-14s %s%s\n", textColor, kv[0], kv[1], banner.ColorReset)
	}
	fmt.Fprintf(w, "\n%s\n\n", hr)
}
