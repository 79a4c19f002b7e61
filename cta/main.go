package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/fgallo/cartera/cmd"
)

// completion describes the CLI for shell completion. It must run before
// flag.Parse: in completion mode it prints candidates and exits.
func completion() {
	(&complete.Command{
		Flags: map[string]complete.Predictor{
			"db":              predict.Files("*.db"),
			"inflation-cache": predict.Files("*.json"),
		},
		Sub: map[string]*complete.Command{
			"returns": {Flags: map[string]complete.Predictor{
				"d": predict.Nothing,
			}},
			"movers": {Flags: map[string]complete.Predictor{
				"kind":   predict.Set{"period", "total"},
				"period": predict.Set{"daily", "weekly", "monthly", "yearly", "ytd"},
				"metric": predict.Set{"pnl", "valuation"},
				"month":  predict.Nothing,
				"year":   predict.Nothing,
				"c":      predict.Set{"ARS", "USD"},
				"n":      predict.Nothing,
			}},
			"allocation": {Flags: map[string]complete.Predictor{
				"by":   predict.Set{"symbol", "type", "market", "currency"},
				"cash": predict.Nothing,
			}},
			"inflation": {Flags: map[string]complete.Predictor{
				"months": predict.Nothing,
				"years":  predict.Nothing,
				"annual": predict.Nothing,
				"series": predict.Nothing,
			}},
			"snapshots": {Flags: map[string]complete.Predictor{
				"n": predict.Nothing,
			}},
		},
	}).Complete("cta")
}

func main() {
	// Local overrides for DB and cache paths; a missing .env is fine.
	_ = godotenv.Load()

	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
