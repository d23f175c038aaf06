package invest

import (
	"context"
	"errors"
	"fmt"
)

// History computes the complete-history result for one code, or for the
// whole portfolio when code is empty. The window runs from the first
// transaction to "now"; remaining holdings are valued at the latest
// available price.
//
// A code with no usable current price is excluded from the aggregate and
// reported in ExcludedCodes with a warning. An inconsistent ledger
// (oversell) aborts the whole request.
func (e *Engine) History(ctx context.Context, code string) (*HistoryResult, error) {
	codes, err := e.scopeCodes(code)
	if err != nil {
		return nil, err
	}

	result := &HistoryResult{Code: code}
	var portfolioFlows []CashFlow

	for _, c := range codes {
		row, flows, warnings, err := e.historyCode(ctx, c)
		result.Warnings = append(result.Warnings, warnings...)
		if err != nil {
			return nil, err
		}
		if row == nil {
			result.ExcludedCodes = append(result.ExcludedCodes, c)
			continue
		}
		result.Investments = append(result.Investments, *row)
		portfolioFlows = append(portfolioFlows, flows...)

		result.TotalInvested = result.TotalInvested.Add(row.TotalInvested)
		result.CurrentValue = result.CurrentValue.Add(row.CurrentValue)
		result.RealizedGain = result.RealizedGain.Add(row.RealizedGain)
		result.UnrealizedGain = result.UnrealizedGain.Add(row.UnrealizedGain)
		result.Dividends = result.Dividends.Add(row.Dividends)
		result.TransactionCount += row.TransactionCount
	}
	if len(result.Investments) == 0 {
		return nil, fmt.Errorf("no code could be valued: missing prices for %v", result.ExcludedCodes)
	}

	result.CapitalGain = result.RealizedGain.Add(result.UnrealizedGain)
	result.NetGain = result.CapitalGain.Add(result.Dividends)
	result.FirstDate, _ = e.scopedLedger(codes, result.ExcludedCodes).FirstDate()
	result.LastDate, _ = e.scopedLedger(codes, result.ExcludedCodes).LastDate()

	// The portfolio rate comes from the portfolio's own merged flow series,
	// never from averaging per-code rates.
	rate, err := Xirr(portfolioFlows)
	if errors.Is(err, ErrXirrNonConvergent) {
		result.Warnings = append(result.Warnings, warnXirrFallback(""))
		rate = SimpleReturn(result.NetGain, result.TotalInvested)
	} else if err != nil {
		return nil, err
	}
	result.ReturnRate = rate

	return result, nil
}

// historyCode computes one code's lifetime row. A nil row with nil error
// means the code is excluded (missing price).
func (e *Engine) historyCode(ctx context.Context, code string) (*CodeResult, []CashFlow, []Warning, error) {
	all := e.ledger.ByCode(code)
	queue, realized, err := Replay(all, code)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("replaying %s: %w", code, err)
	}

	holdings := queue.Holdings()
	var currentValue, unrealized Money
	if holdings.IsPositive() {
		quote, err := e.source.Price(ctx, code, NearestTradingDay(e.now))
		if errors.Is(err, ErrPriceNotFound) {
			return nil, nil, []Warning{warnPriceUnavailable(code, e.now)}, nil
		} else if err != nil {
			return nil, nil, nil, fmt.Errorf("fetching price for %s: %w", code, err)
		}
		currentValue = quote.Price.Mul(holdings)
		unrealized = UnrealizedGain(holdings, quote.Price, queue.CostBasis())
	}

	dividends := DividendIncome(all)
	invested := Invested(all)

	row := &CodeResult{
		Code:             code,
		TotalInvested:    invested,
		CurrentValue:     currentValue,
		RealizedGain:     realized,
		UnrealizedGain:   unrealized,
		Dividends:        dividends,
		CapitalGain:      realized.Add(unrealized),
		TransactionCount: all.Len(),
	}
	row.NetGain = row.CapitalGain.Add(dividends)

	flows := HistoryFlows(all, e.now, currentValue)
	rate, err := Xirr(flows)
	var warnings []Warning
	if errors.Is(err, ErrXirrNonConvergent) {
		warnings = append(warnings, warnXirrFallback(code))
		rate = SimpleReturn(row.NetGain, invested)
	} else if err != nil {
		return nil, nil, nil, err
	}
	row.ReturnRate = rate

	return row, flows, warnings, nil
}

// scopedLedger narrows the ledger to the scope codes minus the excluded
// ones, for date-range reporting.
func (e *Engine) scopedLedger(codes, excluded []string) *Ledger {
	skip := make(map[string]bool, len(excluded))
	for _, c := range excluded {
		skip[c] = true
	}
	keep := make(map[string]bool, len(codes))
	for _, c := range codes {
		if !skip[c] {
			keep[c] = true
		}
	}
	return e.ledger.filter(func(tx Transaction) bool { return keep[tx.Code] })
}

// HistoryYears lists the calendar years spanned by the ledger, oldest
// first. The annual command uses it to iterate a full review.
func (e *Engine) HistoryYears() []int {
	first, ok := e.ledger.FirstDate()
	if !ok {
		return nil
	}
	last, _ := e.ledger.LastDate()
	var years []int
	for y := first.Year(); y <= last.Year() && y <= e.now.Year(); y++ {
		years = append(years, y)
	}
	return years
}
