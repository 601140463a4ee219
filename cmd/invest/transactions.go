package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/felipe-mlopes/invest"
	"github.com/google/subcommands"
)

// parseMoney converts an amount flag into Money, falling back to the app
// default currency when the flag left it empty.
func parseMoney(amount float64, currency string) (invest.Money, error) {
	if currency == "" {
		currency = *defaultCurrency
	}
	return invest.NewMoney(amount, currency)
}

// --- Buy Command ---

type buyCmd struct {
	date      string
	portfolio string
	asset     string
	quantity  float64
	price     float64
	fees      float64
	currency  string
	memo      string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "purchase shares to open or add to a position" }
func (*buyCmd) Usage() string {
	return `invest buy -P <portfolio> -a <asset> -q <quantity> -p <price> [-f <fees>] [-c <currency>] [-d <date>] [-m <memo>]

  Purchases shares of an asset. Fees are deducted from the invested total.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", invest.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.portfolio, "P", "", "Portfolio identifier")
	f.StringVar(&c.asset, "a", "", "Asset identifier")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares")
	f.Float64Var(&c.price, "p", 0, "Price per share")
	f.Float64Var(&c.fees, "f", 0, "Transaction fees")
	f.StringVar(&c.currency, "c", "", "Currency of price and fees, defaults to the app currency")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.portfolio == "" || c.asset == "" || c.quantity <= 0 || c.price <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := invest.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	price, err := parseMoney(c.price, c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
		return subcommands.ExitUsageError
	}
	fees, err := parseMoney(c.fees, c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing fees: %v\n", err)
		return subcommands.ExitUsageError
	}
	quantity, err := invest.NewQuantity(c.quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing quantity: %v\n", err)
		return subcommands.ExitUsageError
	}

	tx, err := invest.NewBuy(day, c.memo, c.portfolio, c.asset, quantity, price, fees)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return appendTransaction(tx)
}

// --- Sell Command ---

type sellCmd struct {
	date      string
	portfolio string
	asset     string
	quantity  float64
	price     float64
	fees      float64
	currency  string
	memo      string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares to trim or close a position" }
func (*sellCmd) Usage() string {
	return `invest sell -P <portfolio> -a <asset> -q <quantity> -p <price> [-f <fees>] [-c <currency>] [-d <date>] [-m <memo>]

  Sells shares of an asset. The sale is rejected when it exceeds the held quantity.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", invest.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.portfolio, "P", "", "Portfolio identifier")
	f.StringVar(&c.asset, "a", "", "Asset identifier")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares")
	f.Float64Var(&c.price, "p", 0, "Price per share")
	f.Float64Var(&c.fees, "f", 0, "Transaction fees")
	f.StringVar(&c.currency, "c", "", "Currency of price and fees, defaults to the app currency")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.portfolio == "" || c.asset == "" || c.quantity <= 0 || c.price <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := invest.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	price, err := parseMoney(c.price, c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
		return subcommands.ExitUsageError
	}
	fees, err := parseMoney(c.fees, c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing fees: %v\n", err)
		return subcommands.ExitUsageError
	}
	quantity, err := invest.NewQuantity(c.quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing quantity: %v\n", err)
		return subcommands.ExitUsageError
	}

	tx, err := invest.NewSell(day, c.memo, c.portfolio, c.asset, quantity, price, fees)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return appendTransaction(tx)
}

// --- Dividend Command ---

type dividendCmd struct {
	date      string
	portfolio string
	asset     string
	income    float64
	fees      float64
	price     float64
	currency  string
	memo      string
}

func (*dividendCmd) Name() string     { return "dividend" }
func (*dividendCmd) Synopsis() string { return "record a dividend payment for an asset" }
func (*dividendCmd) Usage() string {
	return `invest dividend -P <portfolio> -a <asset> -i <income> [-f <fees>] [-p <price>] [-c <currency>] [-d <date>] [-m <memo>]

  Records a dividend payment. An optional price refreshes the asset's market price.
`
}

func (c *dividendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", invest.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.portfolio, "P", "", "Portfolio identifier")
	f.StringVar(&c.asset, "a", "", "Asset identifier")
	f.Float64Var(&c.income, "i", 0, "Total dividend income received")
	f.Float64Var(&c.fees, "f", 0, "Withholding or processing fees")
	f.Float64Var(&c.price, "p", 0, "Price per share observed at payout, 0 to omit")
	f.StringVar(&c.currency, "c", "", "Currency of income and fees, defaults to the app currency")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *dividendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.portfolio == "" || c.asset == "" || c.income <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := invest.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	income, err := parseMoney(c.income, c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing income: %v\n", err)
		return subcommands.ExitUsageError
	}
	fees, err := parseMoney(c.fees, c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing fees: %v\n", err)
		return subcommands.ExitUsageError
	}
	var price invest.Money
	if c.price > 0 {
		price, err = parseMoney(c.price, c.currency)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	tx, err := invest.NewDividend(day, c.memo, c.portfolio, c.asset, income, fees, price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return appendTransaction(tx)
}
