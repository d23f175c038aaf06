package invest

import (
	"errors"
	"fmt"
)

// Engine runs the period calculations over one ledger and one price source.
// It holds no mutable state between calls: computing the same request twice
// against the same quotes yields identical results.
type Engine struct {
	ledger *Ledger
	source PriceSource
	now    Date
}

// NewEngine creates an engine for a ledger, wrapping the price source with a
// quote cache. The "now" used for open-ended windows defaults to today.
func NewEngine(ledger *Ledger, source PriceSource) *Engine {
	return &Engine{
		ledger: ledger,
		source: NewCachedSource(source),
		now:    Today(),
	}
}

// WithNow fixes the "now" used for open-ended windows. Tests use it to make
// results reproducible.
func (e *Engine) WithNow(on Date) *Engine {
	e.now = on
	return e
}

// scopeCodes resolves a calculation scope to the codes it covers: the single
// requested code, or all codes in the ledger.
func (e *Engine) scopeCodes(code string) ([]string, error) {
	if code == "" {
		codes := e.ledger.Codes()
		if len(codes) == 0 {
			return nil, errors.New("no transactions in ledger")
		}
		return codes, nil
	}
	if e.ledger.ByCode(code).Len() == 0 {
		return nil, fmt.Errorf("no transactions found for code %s", code)
	}
	return []string{code}, nil
}
