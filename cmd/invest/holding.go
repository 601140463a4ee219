package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/felipe-mlopes/invest"
	"github.com/google/subcommands"
)

// holdingCmd holds the flags for the 'holding' subcommand.
type holdingCmd struct {
	date      string
	portfolio string
	asset     string
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display the position held in an asset" }
func (*holdingCmd) Usage() string {
	return `invest holding -P <portfolio> [-a <asset>] [-d <date>]

  Replays the ledger and displays the position held on a given date.
  Without -a, displays every asset held in the portfolio.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", invest.Today().String(), "Date for the holding report (YYYY-MM-DD)")
	f.StringVar(&c.portfolio, "P", "", "Portfolio identifier")
	f.StringVar(&c.asset, "a", "", "Asset identifier, empty for all assets")
}

func (c *holdingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.portfolio == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	on, err := invest.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printed := 0
	for portfolio, asset := range ledger.Scopes() {
		if portfolio != c.portfolio {
			continue
		}
		if c.asset != "" && asset != c.asset {
			continue
		}
		position, err := ledger.PositionAt(portfolio, asset, on)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error replaying %s/%s: %v\n", portfolio, asset, err)
			return subcommands.ExitFailure
		}
		if position == nil {
			continue
		}
		fmt.Println(position)
		printed++
	}

	if printed == 0 {
		fmt.Printf("No open position in portfolio %s on %s\n", c.portfolio, on)
	}
	return subcommands.ExitSuccess
}
