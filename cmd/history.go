package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/yuanli-cn/invest-ai/renderer"
)

type historyCmd struct {
	code   string
	format string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the lifetime performance of the portfolio" }
func (*historyCmd) Usage() string {
	return `invest history [-c <code>] [-format text|json]

  Displays the complete history of the portfolio (or a single code) from
  the first transaction to today: total invested, current value, realized
  and unrealized gains, dividends and the annualized rate of return.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.code, "c", "", "restrict the report to a single instrument code")
	f.StringVar(&c.format, "format", "text", "output format (text, json)")
}

func (c *historyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := loadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load transactions: %v\n", err)
		return subcommands.ExitFailure
	}
	engine, err := newEngine(ledger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	result, err := engine.History(ctx, c.code)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.format == "json" {
		return printJSON(result)
	}
	printMarkdown(renderer.HistoryMarkdown(result))
	return subcommands.ExitSuccess
}
