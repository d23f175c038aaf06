package invest

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Transaction files are YAML. Three shapes are accepted: a flat
// "transactions:" list, an "investments:" map with "stocks:" and "funds:"
// lists, and a top-level bare list. A "dividends:" section records payouts:
// cash when "amount" is set, stock when "quantity" (or "share_amount") is.

// txRecord is the raw YAML shape of one buy/sell/dividend row.
type txRecord struct {
	Code        yaml.Node `yaml:"code"` // may be quoted or a bare number
	Date        Date      `yaml:"date"`
	Type        string    `yaml:"type"`
	Quantity    float64   `yaml:"quantity"`
	UnitPrice   float64   `yaml:"unit_price"`
	TotalAmount float64   `yaml:"total_amount"`
	Name        string    `yaml:"name"`
	Notes       string    `yaml:"notes"`
	Investment  string    `yaml:"investment_type"` // stock or fund, optional
}

// divRecord is the raw YAML shape of one row in the dividends section.
type divRecord struct {
	Code        yaml.Node `yaml:"code"`
	Date        Date      `yaml:"date"`
	Amount      float64   `yaml:"amount"`
	TotalAmount float64   `yaml:"total_amount"`
	Quantity    float64   `yaml:"quantity"`
	ShareAmount float64   `yaml:"share_amount"`
}

// fileRecord is the raw YAML shape of a whole transaction file.
type fileRecord struct {
	Transactions []txRecord `yaml:"transactions"`
	Investments  struct {
		Stocks []txRecord `yaml:"stocks"`
		Funds  []txRecord `yaml:"funds"`
	} `yaml:"investments"`
	Dividends []divRecord `yaml:"dividends"`
}

// normalizeCode renders a YAML code scalar as a zero-padded 6-digit string,
// so a bare `code: 1234` means "001234".
func normalizeCode(node yaml.Node) string {
	code := node.Value
	for len(code) > 0 && len(code) < 6 {
		code = "0" + code
	}
	return code
}

// LoadTransactions reads a YAML transaction file into a chronologically
// sorted ledger. Every row passes through the validating factory; all
// invalid rows are reported together rather than one at a time.
func LoadTransactions(path string) (*Ledger, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read transaction file: %w", err)
	}
	return ParseTransactions(content)
}

// ParseTransactions parses YAML transaction file content into a ledger.
func ParseTransactions(content []byte) (*Ledger, error) {
	var file fileRecord
	if err := yaml.Unmarshal(content, &file); err != nil {
		// maybe the file is a bare list of transactions
		var list []txRecord
		if errList := yaml.Unmarshal(content, &list); errList != nil {
			return nil, fmt.Errorf("invalid transaction file: %w", err)
		}
		file.Transactions = list
	}
	if len(file.Transactions) == 0 && len(file.Investments.Stocks) == 0 &&
		len(file.Investments.Funds) == 0 && len(file.Dividends) == 0 {
		var list []txRecord
		if err := yaml.Unmarshal(content, &list); err == nil {
			file.Transactions = list
		}
	}

	ledger := NewLedger()
	var errs []error

	appendTx := func(r txRecord, investment InvestmentType) {
		kind, err := ParseKind(r.Type)
		if err != nil {
			errs = append(errs, &ValidationError{Code: normalizeCode(r.Code), Fields: []string{err.Error()}})
			return
		}
		tx, err := NewTransaction(normalizeCode(r.Code), r.Date, kind, Q(r.Quantity), M(r.UnitPrice), M(r.TotalAmount))
		if err != nil {
			errs = append(errs, err)
			return
		}
		tx.Name = r.Name
		tx.Note = r.Notes
		if r.Investment != "" {
			investment, err = ParseInvestmentType(r.Investment)
			if err != nil {
				errs = append(errs, &ValidationError{Code: tx.Code, Fields: []string{err.Error()}})
				return
			}
		}
		tx.Type = investment
		ledger.Append(tx)
	}

	for _, r := range file.Transactions {
		appendTx(r, "")
	}
	for _, r := range file.Investments.Stocks {
		appendTx(r, Stock)
	}
	for _, r := range file.Investments.Funds {
		appendTx(r, Fund)
	}

	for _, r := range file.Dividends {
		amount := r.Amount
		if amount == 0 {
			amount = r.TotalAmount
		}
		quantity := r.Quantity
		if quantity == 0 {
			quantity = r.ShareAmount
		}
		tx, err := NewTransaction(normalizeCode(r.Code), r.Date, Dividend, Q(quantity), M(0), M(amount))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		ledger.Append(tx)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return ledger, nil
}
