package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/fgallo/cartera/renderer"
)

// inflationCmd holds the flags for the 'inflation' subcommand.
type inflationCmd struct {
	months int
	years  int
	annual bool
	series bool
}

func (*inflationCmd) Name() string     { return "inflation" }
func (*inflationCmd) Synopsis() string { return "portfolio returns against the price index" }
func (*inflationCmd) Usage() string {
	return `cta inflation [-months <n>] [-annual [-years <n>]] [-series]

  Compares the portfolio's monthly returns with the INDEC consumer price
  index and derives real (deflated) returns. Months the index has not
  published yet are estimated from the last known rate and labeled. -annual
  aggregates by calendar year; -series prints both sides rebased to 100.
`
}

func (c *inflationCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.months, "months", 12, "Window length in months (1-120)")
	f.IntVar(&c.years, "years", 10, "Window length in years for -annual (1-50)")
	f.BoolVar(&c.annual, "annual", false, "Aggregate by calendar year")
	f.BoolVar(&c.series, "series", false, "Print the base-100 indexed series")
}

func (c *inflationCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.annual && c.series {
		fmt.Fprintln(os.Stderr, "-annual and -series cannot be used together")
		return subcommands.ExitUsageError
	}

	as, err := OpenSystem()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}

	var md string
	switch {
	case c.annual:
		report, err := as.InflationAnnual(c.years)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error computing annual comparison: %v\n", err)
			return subcommands.ExitFailure
		}
		md = renderer.InflationAnnualMarkdown(report)
	case c.series:
		report, err := as.InflationSeries(c.months)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error computing indexed series: %v\n", err)
			return subcommands.ExitFailure
		}
		md = renderer.InflationSeriesMarkdown(report)
	default:
		report, err := as.InflationCompare(c.months)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error computing comparison: %v\n", err)
			return subcommands.ExitFailure
		}
		md = renderer.InflationCompareMarkdown(report)
	}

	printMarkdown(md)
	return subcommands.ExitSuccess
}
