// Package cmd implements the CLI application to track investment returns.
package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	invest "github.com/yuanli-cn/invest-ai"
)

// Commands lists every subcommand in registration order.
// A main package calls Register on each, then Execute on the user-selected one.
var Commands = []subcommands.Command{
	&annualCmd{},
	&historyCmd{},
	&fmtCmd{},
	&fetchCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	transactionFile = flag.String("data", "investments.yaml", "Path to the YAML transaction file")
	mockPrices      = flag.Bool("mock-prices", false, "Use deterministic offline prices instead of live providers")
	plainOutput     = flag.Bool("plain", false, "Print raw markdown without terminal styling")
)

// loadLedger reads and validates the app transaction file.
func loadLedger() (*invest.Ledger, error) {
	return invest.LoadTransactions(*transactionFile)
}

// newPriceSource selects the market data provider per code: Tushare for
// stocks, East Money for funds, or the deterministic mock when requested.
func newPriceSource(ledger *invest.Ledger) (invest.PriceSource, error) {
	if *mockPrices {
		return invest.MockSource{}, nil
	}
	stocks, err := invest.NewTushareSource("")
	if err != nil {
		return nil, err
	}
	return invest.RoutingSource{
		Stocks: stocks,
		Funds:  invest.NewEastMoneySource(),
		TypeOf: ledger.TypeOf,
	}, nil
}

// newEngine builds a calculation engine over the ledger.
func newEngine(ledger *invest.Ledger) (*invest.Engine, error) {
	source, err := newPriceSource(ledger)
	if err != nil {
		return nil, err
	}
	return invest.NewEngine(ledger, source), nil
}

// printJSON writes a result as indented JSON on stdout.
func printJSON(v any) subcommands.ExitStatus {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// printMarkdown renders a markdown report to the terminal.
func printMarkdown(md string) {
	if *plainOutput {
		fmt.Print(md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
