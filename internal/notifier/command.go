package notifier

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"PriceScope/internal/model"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("bad command arguments")
)

const helpText = `<b>PriceScope</b>
/stats SYMBOL [START END] - price statistics and total return
/compare SYMBOL [START END] - the same, against the benchmark
Dates are YYYY-MM-DD; without them the last 365 days are used.`

// Command is a parsed bot command.
type Command struct {
	Name    string
	Request model.Request
}

// ParseCommand parses "/stats AAPL 2023-01-01 2023-12-31" or "/compare AAPL".
// The range defaults to the year ending today.
func ParseCommand(text string, today time.Time) (Command, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Command{}, ErrUnknownCommand
	}
	// "/compare@MyBot" in group chats
	name := strings.ToLower(strings.SplitN(fields[0], "@", 2)[0])
	args := fields[1:]

	switch name {
	case "/start", "/help":
		return Command{Name: "/help"}, nil
	case "/stats", "/compare":
	default:
		return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	if len(args) != 1 && len(args) != 3 {
		return Command{}, fmt.Errorf("%w: want SYMBOL [START END]", ErrUsage)
	}
	rng := model.LastYear(today)
	if len(args) == 3 {
		start, err := model.ParseDay(args[1])
		if err != nil {
			return Command{}, fmt.Errorf("%w: %v", ErrUsage, err)
		}
		end, err := model.ParseDay(args[2])
		if err != nil {
			return Command{}, fmt.Errorf("%w: %v", ErrUsage, err)
		}
		rng = model.NewDateRange(start, end)
	}

	return Command{
		Name: name,
		Request: model.Request{
			Symbol:             strings.ToUpper(args[0]),
			Start:              rng.Start,
			End:                rng.End,
			CompareToBenchmark: name == "/compare",
		},
	}, nil
}

// Comparer runs one comparison.
type Comparer interface {
	Compare(ctx context.Context, req model.Request) (*model.ComparisonReport, error)
}

// ChartFunc renders a report's chart as PNG.
type ChartFunc func(r *model.ComparisonReport) ([]byte, error)

// CompareHandler answers /stats and /compare with a formatted report and, when chart
// is set, a price chart.
func CompareHandler(c Comparer, style StatsStyle, chart ChartFunc) CommandHandler {
	return func(ctx context.Context, text string) Reply {
		cmd, err := ParseCommand(text, time.Now())
		switch {
		case errors.Is(err, ErrUnknownCommand):
			return Reply{Text: helpText}
		case err != nil:
			return Reply{Text: "⚠️ " + html.EscapeString(err.Error()) + "\n\n" + helpText}
		case cmd.Name == "/help":
			return Reply{Text: helpText}
		}

		r, err := c.Compare(ctx, cmd.Request)
		if err != nil {
			return Reply{Text: "⚠️ " + FormatError(err)}
		}
		reply := Reply{Text: FormatHTML(r, style)}
		if chart != nil {
			if png, err := chart(r); err == nil {
				reply.Photo = png
			}
		}
		return reply
	}
}
