package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/fgallo/cartera"
	"github.com/fgallo/cartera/renderer"
)

// moversCmd holds the flags for the 'movers' subcommand.
type moversCmd struct {
	kind     string
	period   string
	month    string
	year     int
	currency string
	metric   string
	limit    int
}

func (*moversCmd) Name() string     { return "movers" }
func (*moversCmd) Synopsis() string { return "top gainers and losers per asset" }
func (*moversCmd) Usage() string {
	return `cta movers [-kind period|total] [-period <period>] [-month <YYYY-MM>] [-year <YYYY>] [-c <currency>] [-metric pnl|valuation] [-n <limit>]

  Ranks assets by value change between the snapshots bounding a calendar
  window, or by lifetime gain with -kind total. The pnl metric adjusts for
  buy/sell cashflows inside the window.
`
}

func (c *moversCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "kind", "period", "Ranking kind (period, total)")
	f.StringVar(&c.period, "period", cartera.Daily.String(), "Calendar window (daily, weekly, monthly, yearly, ytd)")
	f.StringVar(&c.month, "month", "", "Explicit month for -period monthly (YYYY-MM)")
	f.IntVar(&c.year, "year", 0, "Explicit year for -period yearly")
	f.StringVar(&c.currency, "c", "", "Ranking currency. Defaults to the reporting currency.")
	f.StringVar(&c.metric, "metric", "pnl", "Delta metric (pnl, valuation)")
	f.IntVar(&c.limit, "n", 10, "Rows per side (1-100)")
}

func (c *moversCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	kind, err := cartera.ParseMoversKind(c.kind)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	period, err := cartera.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	metric, err := cartera.ParseMoversMetric(c.metric)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	q := cartera.MoversQuery{
		Kind:     kind,
		Period:   period,
		Currency: c.currency,
		Metric:   metric,
		Limit:    c.limit,
	}
	if c.month != "" {
		m, err := cartera.ParseMonth(c.month)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing month: %v\n", err)
			return subcommands.ExitUsageError
		}
		q.Month = &m
	}
	if c.year != 0 {
		q.Year = &c.year
	}

	as, err := OpenSystem()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := as.Movers(q)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing movers: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.MoversMarkdown(report))
	return subcommands.ExitSuccess
}
