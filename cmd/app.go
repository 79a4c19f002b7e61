// Package cmd implements the CLI application to query portfolio analytics.
package cmd

import (
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/fgallo/cartera"
	"github.com/fgallo/cartera/indec"
	"github.com/fgallo/cartera/store"
)

// Commands are the subcommands a main package registers.
var Commands = []subcommands.Command{
	&returnsCmd{},
	&moversCmd{},
	&allocationCmd{},
	&inflationCmd{},
	&snapshotsCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dbPath = flag.String("db", envOr("CARTERA_DB_PATH", "data/portfolio.db"),
	"Path to the snapshot SQLite database")
var inflationCache = flag.String("inflation-cache", envOr("CARTERA_INFLATION_CACHE_PATH", "data/cache/inflation_ipc_ar.json"),
	"Path to the price-index JSON cache file")

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// OpenSystem wires the analytics engine to the SQLite store and the INDEC
// index client.
func OpenSystem() (*cartera.AnalyticsSystem, error) {
	st, err := store.Open(*dbPath)
	if err != nil {
		return nil, err
	}
	return cartera.NewAnalyticsSystem(st, indec.New(*inflationCache), st)
}
