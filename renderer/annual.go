package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	invest "github.com/yuanli-cn/invest-ai"
)

// AnnualMarkdown renders a calendar-year report to a markdown string.
func AnnualMarkdown(r *invest.AnnualResult) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if r.Code != "" {
		doc.H1(fmt.Sprintf("%d Report for %s", r.Year, r.Code))
	} else {
		doc.H1(fmt.Sprintf("%d Portfolio Report", r.Year))
	}

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"Start value", r.StartValue.String()},
			{"End value", r.EndValue.String()},
			{"New investments", r.NewInvestments.String()},
			{"Withdrawals", r.Withdrawals.String()},
			{"Dividends", r.Dividends.String()},
			{"Capital gain", r.CapitalGain.SignedString()},
			{"Net gain", r.NetGain.SignedString()},
			{"Return", r.ReturnRate.SignedString()},
		},
	})

	if len(r.Rows) > 0 {
		doc.H2("Per Investment")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Code", "Start", "End", "Invested", "Withdrawn", "Dividends", "Net gain", "Return"},
			Rows:   [][]string{},
		}
		for _, row := range r.Rows {
			table.Rows = append(table.Rows, []string{
				row.Code,
				row.StartValue.String(),
				row.EndValue.String(),
				row.NewInvestments.String(),
				row.Withdrawals.String(),
				row.Dividends.String(),
				row.NetGain.SignedString(),
				row.ReturnRate.SignedString(),
			})
		}
		doc.Table(table)
	}

	if len(r.Warnings) > 0 {
		doc.H2("Warnings")
		items := make([]string, 0, len(r.Warnings))
		for _, w := range r.Warnings {
			items = append(items, w.String())
		}
		doc.BulletList(items...)
	}

	return doc.String()
}
