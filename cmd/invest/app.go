package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/felipe-mlopes/invest"
	"github.com/google/subcommands"
)

// As a CLI application the lifecycle is very short lived, so global flags are fine.

var ledgerFile = flag.String("ledger", envOr("INVEST_LEDGER", "transactions.jsonl"), "Path to the ledger file (JSONL format)")
var defaultCurrency = flag.String("currency", envOr("INVEST_CURRENCY", "USD"), "Default currency for monetary flags")

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// decodeLedger loads the app ledger file. A missing file yields an empty
// ledger so that every command works on a fresh setup.
func decodeLedger() (*invest.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		return invest.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()
	return invest.DecodeLedger(f)
}

// appendTransaction validates a transaction against the current ledger state
// and appends it to the app ledger file. Validation replays the full history
// with the candidate included, so a sell that would overdraw the position is
// rejected before anything is written.
func appendTransaction(tx invest.Transaction) subcommands.ExitStatus {
	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	ledger.Append(tx)
	if _, err := ledger.Position(tx.PortfolioID(), tx.AssetID()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	f, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := invest.EncodeTransaction(f, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended transaction to %s\n", *ledgerFile)
	return subcommands.ExitSuccess
}
