package invest

import (
	"iter"
	"sort"
)

// Ledger is a chronologically ordered list of transactions.
//
// Ordering is a precondition for replaying lots: Append keeps the list sorted
// by date with a stable sort, so same-day transactions stay in file order.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates a ledger from the given transactions.
func NewLedger(txs ...Transaction) *Ledger {
	l := &Ledger{}
	l.Append(txs...)
	return l
}

// Append adds transactions to the ledger, restoring chronological order.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Date.Before(l.transactions[j].Date)
	})
}

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// Transactions iterates over all transactions in chronological order.
func (l *Ledger) Transactions() iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range l.transactions {
			if !yield(tx) {
				return
			}
		}
	}
}

// Codes returns the distinct instrument codes present in the ledger, in the
// order of their first transaction.
func (l *Ledger) Codes() []string {
	seen := make(map[string]bool)
	var codes []string
	for _, tx := range l.transactions {
		if !seen[tx.Code] {
			seen[tx.Code] = true
			codes = append(codes, tx.Code)
		}
	}
	return codes
}

// TypeOf returns the investment type of a code. The first transaction that
// carries an explicit type wins; codes never typed default to Stock.
func (l *Ledger) TypeOf(code string) InvestmentType {
	for _, tx := range l.transactions {
		if tx.Code == code && tx.Type != "" {
			return tx.Type
		}
	}
	return Stock
}

// filter returns a new ledger containing the transactions matching the
// predicate. Order is preserved; transactions are shared, not copied, which
// is safe because they are immutable.
func (l *Ledger) filter(keep func(Transaction) bool) *Ledger {
	f := &Ledger{}
	for _, tx := range l.transactions {
		if keep(tx) {
			f.transactions = append(f.transactions, tx)
		}
	}
	return f
}

// ByCode narrows the ledger to a single instrument code.
func (l *Ledger) ByCode(code string) *Ledger {
	return l.filter(func(tx Transaction) bool { return tx.Code == code })
}

// Before narrows the ledger to transactions strictly before a date.
func (l *Ledger) Before(on Date) *Ledger {
	return l.filter(func(tx Transaction) bool { return tx.Date.Before(on) })
}

// UpTo narrows the ledger to transactions on or before a date.
func (l *Ledger) UpTo(on Date) *Ledger {
	return l.filter(func(tx Transaction) bool { return !tx.Date.After(on) })
}

// Within narrows the ledger to transactions falling inside a calendar year.
func (l *Ledger) Within(year int) *Ledger {
	return l.filter(func(tx Transaction) bool { return tx.Date.Year() == year })
}

// FirstDate returns the date of the earliest transaction, and false when the
// ledger is empty.
func (l *Ledger) FirstDate() (Date, bool) {
	if len(l.transactions) == 0 {
		return Date{}, false
	}
	return l.transactions[0].Date, true
}

// LastDate returns the date of the latest transaction, and false when the
// ledger is empty.
func (l *Ledger) LastDate() (Date, bool) {
	if len(l.transactions) == 0 {
		return Date{}, false
	}
	return l.transactions[len(l.transactions)-1].Date, true
}
