package invest

import "sort"

// CashFlow is a dated, signed amount: investments are negative, proceeds and
// dividends positive. Cash flows are produced once and never mutated; the
// XIRR solver is their only consumer.
type CashFlow struct {
	Date   Date  `json:"date"`
	Amount Money `json:"amount"`
}

// transactionFlows converts the ledger's transactions into signed flows.
// Stock dividends move no cash and contribute nothing.
func transactionFlows(l *Ledger) []CashFlow {
	var flows []CashFlow
	for tx := range l.Transactions() {
		switch {
		case tx.Kind == Buy:
			flows = append(flows, CashFlow{Date: tx.Date, Amount: tx.Amount.Neg()})
		case tx.Kind == Sell:
			flows = append(flows, CashFlow{Date: tx.Date, Amount: tx.Amount})
		case tx.IsCashDividend():
			flows = append(flows, CashFlow{Date: tx.Date, Amount: tx.Amount})
		}
	}
	return flows
}

// MergeFlows sorts flows chronologically and sums flows sharing a date into
// one entry. Fewer entries keep the solver well conditioned.
func MergeFlows(flows []CashFlow) []CashFlow {
	byDate := make(map[Date]Money)
	for _, f := range flows {
		byDate[f.Date] = byDate[f.Date].Add(f.Amount)
	}
	merged := make([]CashFlow, 0, len(byDate))
	for on, amount := range byDate {
		merged = append(merged, CashFlow{Date: on, Amount: amount})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Date.Before(merged[j].Date) })
	return merged
}

// HistoryFlows builds the cash-flow series for a full-history window: every
// transaction flow plus a synthetic terminal flow worth the ending market
// value. A zero ending value (nothing held) is omitted.
func HistoryFlows(l *Ledger, end Date, endValue Money) []CashFlow {
	flows := transactionFlows(l)
	if endValue.IsPositive() {
		flows = append(flows, CashFlow{Date: end, Amount: endValue})
	}
	return MergeFlows(flows)
}

// AnnualFlows builds the cash-flow series for an annual window. A nonzero
// starting position enters as a synthetic negative flow at the window start
// (the capital is treated as invested at that moment), and the ending
// position leaves as a synthetic positive flow at the window end.
func AnnualFlows(year *Ledger, start Date, startValue Money, end Date, endValue Money) []CashFlow {
	var flows []CashFlow
	if startValue.IsPositive() {
		flows = append(flows, CashFlow{Date: start, Amount: startValue.Neg()})
	}
	flows = append(flows, transactionFlows(year)...)
	if endValue.IsPositive() {
		flows = append(flows, CashFlow{Date: end, Amount: endValue})
	}
	return MergeFlows(flows)
}
