package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	invest "github.com/yuanli-cn/invest-ai"
)

type fmtCmd struct {
	write bool
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the transaction file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `invest fmt [-w]

  Validates the transaction file and prints it back in the canonical form:
  a flat "transactions:" list sorted by date, codes zero-padded to six
  digits, dividends folded into the list. Formatting is idempotent.

  With -w the file is rewritten in place instead of printed.
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.write, "w", false, "rewrite the transaction file in place")
}

func (c *fmtCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := loadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load transactions: %v\n", err)
		return subcommands.ExitFailure
	}

	var buf bytes.Buffer
	if err := invest.EncodeTransactions(&buf, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if !c.write {
		os.Stdout.Write(buf.Bytes())
		return subcommands.ExitSuccess
	}

	if err := os.WriteFile(*transactionFile, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not rewrite %q: %v\n", *transactionFile, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Formatted %d transactions into %q.\n", ledger.Len(), *transactionFile)
	return subcommands.ExitSuccess
}
