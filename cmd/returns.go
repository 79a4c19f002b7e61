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

// returnsCmd holds the flags for the 'returns' subcommand.
type returnsCmd struct {
	asOf string
}

func (*returnsCmd) Name() string     { return "returns" }
func (*returnsCmd) Synopsis() string { return "portfolio returns per calendar window" }
func (*returnsCmd) Usage() string {
	return `cta returns [-d <date>]

  Computes the daily, weekly, monthly, yearly and year-to-date returns of
  the portfolio as of the given date (latest snapshot by default).
`
}

func (c *returnsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asOf, "d", "", "Reference date (YYYY-MM-DD). Defaults to the latest snapshot.")
}

func (c *returnsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var asOf cartera.Date
	if c.asOf != "" {
		d, err := cartera.ParseDate(c.asOf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		asOf = d
	}

	as, err := OpenSystem()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := as.Returns(asOf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing returns: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ReturnsMarkdown(report))
	return subcommands.ExitSuccess
}
