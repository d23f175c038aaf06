package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	invest "github.com/yuanli-cn/invest-ai"
)

type fetchCmd struct {
	all bool
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetches current quotes from the market data providers" }
func (*fetchCmd) Usage() string {
	return `invest fetch [-all]

  Fetches the latest quote for every code with a position still held,
  warming the local daily cache so that reports run offline afterwards.
  Stocks are quoted by Tushare (TUSHARE_TOKEN must be set), funds by
  East Money.

  With -all, codes whose position is fully closed are fetched too.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "fetch closed positions as well")
}

func (c *fetchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := loadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load transactions: %v\n", err)
		return subcommands.ExitFailure
	}
	source, err := newPriceSource(ledger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	on := invest.NearestTradingDay(invest.Today())
	failed := 0
	for _, code := range ledger.Codes() {
		if !c.all {
			queue, _, err := invest.Replay(ledger, code)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitFailure
			}
			if !queue.Holdings().IsPositive() {
				continue
			}
		}
		quote, err := source.Price(ctx, code, on)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", code, err)
			failed++
			continue
		}
		fmt.Println(quote)
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d code(s) could not be quoted.\n", failed)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
