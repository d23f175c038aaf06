package invest

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind is a typed string identifying a transaction kind.
type Kind string

// Transaction kinds recorded in a transaction file.
const (
	Buy      Kind = "buy"
	Sell     Kind = "sell"
	Dividend Kind = "dividend"
)

// ParseKind parses a string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(s)) {
	case Buy:
		return Buy, nil
	case Sell:
		return Sell, nil
	case Dividend:
		return Dividend, nil
	default:
		return "", fmt.Errorf("unknown transaction kind: %q", s)
	}
}

// InvestmentType distinguishes exchange-traded stocks from open-ended mutual
// funds. Both use 6-digit codes; the type decides which price source serves
// the code.
type InvestmentType string

const (
	Stock InvestmentType = "stock"
	Fund  InvestmentType = "fund"
)

// ParseInvestmentType parses a string into an InvestmentType.
func ParseInvestmentType(s string) (InvestmentType, error) {
	switch InvestmentType(strings.ToLower(s)) {
	case Stock:
		return Stock, nil
	case Fund:
		return Fund, nil
	default:
		return "", fmt.Errorf("unknown investment type: %q", s)
	}
}

// codeRegexp checks the 6-digit instrument code format shared by A-share
// stocks and mutual funds.
var codeRegexp = regexp.MustCompile(`^\d{6}$`)

// Transaction is a single buy, sell, or dividend event for one instrument.
// It is immutable once constructed; NewTransaction is the only way to build
// a valid one.
type Transaction struct {
	Code      string   `json:"code"`
	Date      Date     `json:"date"`
	Kind      Kind     `json:"kind"`
	Quantity  Quantity `json:"quantity"`
	UnitPrice Money    `json:"unit_price"`
	Amount    Money    `json:"total_amount"`
	Name      string   `json:"name,omitempty"`
	Note      string   `json:"note,omitempty"`

	// Type is informational; an empty value means Stock. It decides which
	// market data provider quotes the code.
	Type InvestmentType `json:"investment_type,omitempty"`
}

// IsStockDividend reports whether the transaction is a dividend paid in
// shares (new units, zero cost basis) rather than cash.
func (t Transaction) IsStockDividend() bool {
	return t.Kind == Dividend && t.Quantity.IsPositive()
}

// IsCashDividend reports whether the transaction is a dividend paid in cash.
func (t Transaction) IsCashDividend() bool {
	return t.Kind == Dividend && !t.Quantity.IsPositive()
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s %s %s %s @ %s (%s)", t.Date, t.Kind, t.Code, t.Quantity, t.UnitPrice, t.Amount)
}

// ValidationError reports every field that failed validation for one
// transaction, so a bad row can be fixed in a single pass.
type ValidationError struct {
	Code   string // instrument code, possibly empty or malformed
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid transaction for %q: %s", e.Code, strings.Join(e.Fields, "; "))
}

// NewTransaction builds a validated Transaction. It returns a
// *ValidationError listing all offending fields when any check fails.
func NewTransaction(code string, on Date, kind Kind, quantity Quantity, unitPrice, amount Money) (Transaction, error) {
	e := &ValidationError{Code: code}
	badf := func(format string, args ...any) {
		e.Fields = append(e.Fields, fmt.Sprintf(format, args...))
	}

	if !codeRegexp.MatchString(code) {
		badf("code: want 6 digits, got %q", code)
	}
	if on.IsZero() {
		badf("date: missing")
	}
	if quantity.IsNegative() {
		badf("quantity: must not be negative, got %s", quantity)
	}
	if unitPrice.IsNegative() {
		badf("unit_price: must not be negative, got %s", unitPrice)
	}

	switch kind {
	case Buy, Sell:
		if !quantity.IsPositive() {
			badf("quantity: %s requires a positive quantity", kind)
		}
		if !amount.IsPositive() {
			badf("total_amount: %s requires a positive amount, got %s", kind, amount)
		}
	case Dividend:
		// Either cash (positive amount, zero quantity) or stock
		// (positive quantity, zero amount).
		switch {
		case amount.IsPositive() && quantity.IsPositive():
			badf("total_amount: dividend cannot be both cash and stock")
		case !amount.IsPositive() && !quantity.IsPositive():
			badf("total_amount: dividend needs a positive cash amount or a positive share quantity")
		case amount.IsNegative():
			badf("total_amount: must not be negative, got %s", amount)
		}
	default:
		badf("kind: unknown kind %q", kind)
	}

	if len(e.Fields) > 0 {
		return Transaction{}, e
	}
	return Transaction{
		Code:      code,
		Date:      on,
		Kind:      kind,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Amount:    amount,
	}, nil
}
