package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/yuanli-cn/invest-ai/renderer"
	"google.golang.org/genai"
)

const assistModel = "gemini-2.5-flash"

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "ask the AI assistant to review the portfolio" }
func (*assistCmd) Usage() string {
	return `invest assist [question...]

  Sends the lifetime report to Gemini and prints a plain-language review.
  An optional question focuses the answer. Requires GEMINI_API_KEY.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	result, err := engine.History(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	question := "Review this portfolio and point out anything noteworthy."
	if f.NArg() > 0 {
		question = strings.Join(f.Args(), " ")
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	prompt := fmt.Sprintf(`You are a patient financial assistant for a retail investor
holding Chinese A-share stocks and mutual funds. Below is their lifetime
performance report in markdown. Answer the question in plain language,
without giving trading instructions.

%s

Question: %s`, renderer.HistoryMarkdown(result), question)

	resp, err := client.Models.GenerateContent(ctx, assistModel, genai.Text(prompt), nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error generating answer:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(resp.Text())
	return subcommands.ExitSuccess
}
