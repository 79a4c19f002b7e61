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

// allocationCmd holds the flags for the 'allocation' subcommand.
type allocationCmd struct {
	groupBy     string
	includeCash bool
}

func (*allocationCmd) Name() string     { return "allocation" }
func (*allocationCmd) Synopsis() string { return "current portfolio composition" }
func (*allocationCmd) Usage() string {
	return `cta allocation [-by symbol|type|market|currency] [-cash]

  Groups the latest snapshot's holdings by the chosen dimension. With -cash
  the available cash joins the breakdown as a pseudo-asset.
`
}

func (c *allocationCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.groupBy, "by", "type", "Grouping dimension (symbol, type, market, currency)")
	f.BoolVar(&c.includeCash, "cash", false, "Include cash as a pseudo-asset")
}

func (c *allocationCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	groupBy, err := cartera.ParseGroupBy(c.groupBy)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	as, err := OpenSystem()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := as.Allocation(groupBy, c.includeCash)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing allocation: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.AllocationMarkdown(report))
	return subcommands.ExitSuccess
}
