package invest

// RealizedGain returns proceeds minus the FIFO cost basis consumed by a
// sell. Positive is a gain, negative a loss; no rounding happens here.
func RealizedGain(sell Transaction, costBasis Money) Money {
	return sell.Amount.Sub(costBasis)
}

// UnrealizedGain returns the market value of the held quantity minus its
// remaining cost basis.
func UnrealizedGain(held Quantity, price Money, remainingCostBasis Money) Money {
	return price.Mul(held).Sub(remainingCostBasis)
}

// DividendIncome sums the cash dividends in the ledger. Stock dividends add
// lots, not income, and contribute nothing here.
func DividendIncome(l *Ledger) Money {
	var total Money
	for tx := range l.Transactions() {
		if tx.IsCashDividend() {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// Invested sums the amount paid on buys in the ledger.
func Invested(l *Ledger) Money {
	var total Money
	for tx := range l.Transactions() {
		if tx.Kind == Buy {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// Withdrawn sums the proceeds of sells in the ledger.
func Withdrawn(l *Ledger) Money {
	var total Money
	for tx := range l.Transactions() {
		if tx.Kind == Sell {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// Replay feeds every transaction of a single-code ledger through a fresh lot
// queue and accumulates the realized gain from its sells. The returned queue
// holds the open position after the last transaction.
//
// The ledger must contain exactly one code; replay order is the ledger's
// chronological order. An insufficient sell aborts the replay.
func Replay(l *Ledger, code string) (*LotQueue, Money, error) {
	queue := NewLotQueue(code)
	var realized Money
	for tx := range l.ByCode(code).Transactions() {
		costBasis, err := queue.Apply(tx)
		if err != nil {
			return nil, Money{}, err
		}
		if tx.Kind == Sell {
			realized = realized.Add(RealizedGain(tx, costBasis))
		}
	}
	return queue, realized, nil
}
