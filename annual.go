package invest

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Annual computes the result for one calendar year, for one code or for the
// whole portfolio when code is empty.
//
// The window is valued at the year's first and last trading days. A year
// still in progress is valued at the latest trading day instead. The annual
// rate is an XIRR over the year's flows with the starting position entering
// as a synthetic investment at the window start and the ending position as a
// synthetic liquidation at the window end.
func (e *Engine) Annual(ctx context.Context, year int, code string) (*AnnualResult, error) {
	if year < 1990 || year > e.now.Year() {
		return nil, fmt.Errorf("year %d outside the valid range 1990..%d", year, e.now.Year())
	}
	codes, err := e.scopeCodes(code)
	if err != nil {
		return nil, err
	}

	start := YearStartTradingDay(year)
	end := YearEndTradingDay(year)
	if e.now.Before(end) {
		end = NearestTradingDay(e.now)
	}

	result := &AnnualResult{Year: year, Code: code}
	var portfolioFlows []CashFlow

	for _, c := range codes {
		row, flows, warnings, err := e.annualRow(ctx, year, c, start, end)
		result.Warnings = append(result.Warnings, warnings...)
		if err != nil {
			return nil, err
		}
		if row == nil {
			continue // code has no position and no activity this year
		}
		if flows == nil {
			result.ExcludedCodes = append(result.ExcludedCodes, c)
			continue
		}
		result.Rows = append(result.Rows, *row)
		portfolioFlows = append(portfolioFlows, flows...)

		result.StartValue = result.StartValue.Add(row.StartValue)
		result.EndValue = result.EndValue.Add(row.EndValue)
		result.NewInvestments = result.NewInvestments.Add(row.NewInvestments)
		result.Withdrawals = result.Withdrawals.Add(row.Withdrawals)
		result.Dividends = result.Dividends.Add(row.Dividends)
		result.CapitalGain = result.CapitalGain.Add(row.CapitalGain)
	}
	if len(result.Rows) == 0 {
		if len(result.ExcludedCodes) > 0 {
			return nil, fmt.Errorf("no code could be valued for %d: missing prices for %v", year, result.ExcludedCodes)
		}
		return nil, fmt.Errorf("no activity or holdings in %d", year)
	}

	result.NetGain = result.EndValue.Add(result.Withdrawals).Add(result.Dividends).
		Sub(result.StartValue).Sub(result.NewInvestments)

	rate, err := Xirr(portfolioFlows)
	if errors.Is(err, ErrXirrNonConvergent) {
		result.Warnings = append(result.Warnings, warnXirrFallback(""))
		rate = SimpleReturn(result.NetGain, result.StartValue.Add(result.NewInvestments))
	} else if err != nil {
		return nil, err
	}
	result.ReturnRate = rate

	return result, nil
}

// annualRow computes one code's year row.
//
// Return contract: (nil, nil, ...) means the code is out of scope this year
// (no position, no activity); (row, nil, ...) means it had scope but a price
// was missing, so it is excluded.
func (e *Engine) annualRow(ctx context.Context, year int, code string, start, end Date) (*AnnualRow, []CashFlow, []Warning, error) {
	all := e.ledger.ByCode(code)
	pre := all.Before(NewDate(year, time.January, 1))
	inYear := all.Within(year)
	if pre.Len() == 0 && inYear.Len() == 0 {
		return nil, nil, nil, nil
	}

	// position carried into the year
	queue, _, err := Replay(pre, code)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("replaying %s before %d: %w", code, year, err)
	}
	startHoldings := queue.Holdings()
	if !startHoldings.IsPositive() && inYear.Len() == 0 {
		// fully closed before the year started
		return nil, nil, nil, nil
	}

	var startValue Money
	if startHoldings.IsPositive() {
		quote, err := e.source.Price(ctx, code, start)
		if errors.Is(err, ErrPriceNotFound) {
			return &AnnualRow{Code: code}, nil, []Warning{warnPriceUnavailable(code, start)}, nil
		} else if err != nil {
			return nil, nil, nil, fmt.Errorf("fetching start price for %s: %w", code, err)
		}
		startValue = quote.Price.Mul(startHoldings)
	}

	// replay the year on a scratch copy of the carried position
	endQueue := queue.Clone()
	var realized Money
	for tx := range inYear.Transactions() {
		costBasis, err := endQueue.Apply(tx)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("replaying %s in %d: %w", code, year, err)
		}
		if tx.Kind == Sell {
			realized = realized.Add(RealizedGain(tx, costBasis))
		}
	}
	endHoldings := endQueue.Holdings()

	var endValue Money
	if endHoldings.IsPositive() {
		quote, err := e.source.Price(ctx, code, end)
		if errors.Is(err, ErrPriceNotFound) {
			return &AnnualRow{Code: code}, nil, []Warning{warnPriceUnavailable(code, end)}, nil
		} else if err != nil {
			return nil, nil, nil, fmt.Errorf("fetching end price for %s: %w", code, err)
		}
		endValue = quote.Price.Mul(endHoldings)
	}

	row := &AnnualRow{
		Code:           code,
		StartValue:     startValue,
		EndValue:       endValue,
		NewInvestments: Invested(inYear),
		Withdrawals:    Withdrawn(inYear),
		Dividends:      DividendIncome(inYear),
		CapitalGain:    realized,
	}
	row.NetGain = endValue.Add(row.Withdrawals).Add(row.Dividends).
		Sub(startValue).Sub(row.NewInvestments)

	flows := AnnualFlows(inYear, start, startValue, end, endValue)
	rate, err := Xirr(flows)
	var warnings []Warning
	if errors.Is(err, ErrXirrNonConvergent) {
		warnings = append(warnings, warnXirrFallback(code))
		rate = SimpleReturn(row.NetGain, startValue.Add(row.NewInvestments))
	} else if err != nil {
		return nil, nil, nil, err
	}
	row.ReturnRate = rate

	return row, flows, warnings, nil
}
