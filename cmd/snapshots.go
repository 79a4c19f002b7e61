package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/fgallo/cartera/renderer"
	"github.com/fgallo/cartera/store"
)

// snapshotsCmd holds the flags for the 'snapshots' subcommand.
type snapshotsCmd struct {
	limit int
}

func (*snapshotsCmd) Name() string     { return "snapshots" }
func (*snapshotsCmd) Synopsis() string { return "recorded snapshot history" }
func (*snapshotsCmd) Usage() string {
	return `cta snapshots [-n <limit>]

  Lists the recorded portfolio snapshots, newest first.
`
}

func (c *snapshotsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 30, "Number of snapshots to list (0 for all)")
}

func (c *snapshotsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	st, err := store.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer st.Close()

	series, err := st.Snapshots()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading snapshots: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.SnapshotsMarkdown(series, c.limit))
	return subcommands.ExitSuccess
}
