package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/yuanli-cn/invest-ai/renderer"
)

type annualCmd struct {
	year   int
	code   string
	format string
}

func (*annualCmd) Name() string     { return "annual" }
func (*annualCmd) Synopsis() string { return "display a calendar-year performance report" }
func (*annualCmd) Usage() string {
	return `invest annual [-y <year>] [-c <code>] [-format text|json]

  Displays the performance of the portfolio (or a single code) for one
  calendar year: start and end value, new investments, withdrawals,
  dividends, net gain and the annualized rate of return.

  Without -y, one report is printed for every year with transactions.
`
}

func (c *annualCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "y", 0, "calendar year to report on (defaults to every year)")
	f.StringVar(&c.code, "c", "", "restrict the report to a single instrument code")
	f.StringVar(&c.format, "format", "text", "output format (text, json)")
}

func (c *annualCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	years := engine.HistoryYears()
	if c.year != 0 {
		years = []int{c.year}
	}

	for _, year := range years {
		result, err := engine.Annual(ctx, year, c.code)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if c.format == "json" {
			if status := printJSON(result); status != subcommands.ExitSuccess {
				return status
			}
			continue
		}
		printMarkdown(renderer.AnnualMarkdown(result))
	}
	return subcommands.ExitSuccess
}
