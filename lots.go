package invest

import (
	"errors"
	"fmt"
)

// ErrInsufficientInventory is returned when a sell asks for more shares than
// the lot queue holds. A ledger in this state is inconsistent and the whole
// calculation must stop rather than silently patch it.
var ErrInsufficientInventory = errors.New("insufficient inventory")

// Lot is a single acquisition (purchase or stock dividend) tracked until it
// is fully consumed by sales.
type Lot struct {
	Date     Date
	Quantity Quantity // remaining, not original, quantity
	UnitCost Money    // zero for stock dividends
}

// Cost returns the remaining cost basis of the lot.
func (l Lot) Cost() Money { return l.UnitCost.Mul(l.Quantity) }

// LotQueue is the FIFO inventory for one instrument code. Lots are kept in
// acquisition order and are never reordered.
type LotQueue struct {
	code string
	lots []Lot
}

// NewLotQueue creates an empty lot queue for an instrument code.
func NewLotQueue(code string) *LotQueue {
	return &LotQueue{code: code}
}

// Code returns the instrument code this queue tracks.
func (q *LotQueue) Code() string { return q.code }

// Lots returns a copy of the open lots in acquisition order.
func (q *LotQueue) Lots() []Lot {
	out := make([]Lot, len(q.lots))
	copy(out, q.lots)
	return out
}

// Holdings returns the total open quantity across all lots.
func (q *LotQueue) Holdings() Quantity {
	var total Quantity
	for _, l := range q.lots {
		total = total.Add(l.Quantity)
	}
	return total
}

// HoldingsAsOf returns the open quantity acquired on or before a date. It
// does not mutate the queue; point-in-time valuation replays onto a Clone.
func (q *LotQueue) HoldingsAsOf(on Date) Quantity {
	var total Quantity
	for _, l := range q.lots {
		if !l.Date.After(on) {
			total = total.Add(l.Quantity)
		}
	}
	return total
}

// CostBasis returns the total remaining cost basis across all open lots.
func (q *LotQueue) CostBasis() Money {
	var total Money
	for _, l := range q.lots {
		total = total.Add(l.Cost())
	}
	return total
}

// Clone returns an independent copy of the queue, used as a scratch copy for
// replays that must not touch the live inventory.
func (q *LotQueue) Clone() *LotQueue {
	c := &LotQueue{code: q.code}
	c.lots = make([]Lot, len(q.lots))
	copy(c.lots, q.lots)
	return c
}

// Apply mutates the queue for one transaction and returns the FIFO cost
// basis consumed by it (nonzero only for sells).
//
// Buys and stock dividends append a lot; cash dividends do not touch the
// inventory; sells consume lots from the front. A sell exceeding the open
// quantity fails with ErrInsufficientInventory before any lot is mutated.
func (q *LotQueue) Apply(tx Transaction) (costBasis Money, err error) {
	if tx.Code != q.code {
		return Money{}, fmt.Errorf("transaction code %s does not match lot queue %s", tx.Code, q.code)
	}
	switch tx.Kind {
	case Buy:
		q.lots = append(q.lots, Lot{Date: tx.Date, Quantity: tx.Quantity, UnitCost: tx.UnitPrice})
		return Money{}, nil
	case Dividend:
		if tx.IsStockDividend() {
			q.lots = append(q.lots, Lot{Date: tx.Date, Quantity: tx.Quantity, UnitCost: M(0)})
		}
		// cash dividends are income, not inventory
		return Money{}, nil
	case Sell:
		return q.sell(tx)
	default:
		return Money{}, fmt.Errorf("unsupported transaction kind %q", tx.Kind)
	}
}

// sell consumes lots front-first. The availability check runs before any
// mutation so a failed sell leaves the queue untouched.
func (q *LotQueue) sell(tx Transaction) (Money, error) {
	if q.Holdings().LessThan(tx.Quantity) {
		return Money{}, fmt.Errorf("sell %s of %s on %s but only %s held: %w",
			tx.Quantity, q.code, tx.Date, q.Holdings(), ErrInsufficientInventory)
	}

	var costBasis Money
	remaining := tx.Quantity
	for len(q.lots) > 0 && remaining.IsPositive() {
		front := &q.lots[0]
		taken := front.Quantity.Min(remaining)
		costBasis = costBasis.Add(front.UnitCost.Mul(taken))
		front.Quantity = front.Quantity.Sub(taken)
		remaining = remaining.Sub(taken)
		if front.Quantity.IsZero() {
			q.lots = q.lots[1:]
		}
	}
	return costBasis, nil
}
