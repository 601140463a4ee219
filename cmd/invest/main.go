// Command invest manages a JSONL transaction ledger and investment goals.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	// Missing .env is fine, flags keep their built-in defaults.
	_ = godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	commander.Register(&buyCmd{}, "transactions")
	commander.Register(&sellCmd{}, "transactions")
	commander.Register(&dividendCmd{}, "transactions")

	commander.Register(&holdingCmd{}, "reports")
	commander.Register(&projectCmd{}, "reports")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
