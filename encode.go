package invest

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// canonicalTx is the canonical YAML shape written back by EncodeTransactions.
type canonicalTx struct {
	Code        string  `yaml:"code"`
	Date        string  `yaml:"date"`
	Type        string  `yaml:"type"`
	Quantity    float64 `yaml:"quantity"`
	UnitPrice   float64 `yaml:"unit_price"`
	TotalAmount float64 `yaml:"total_amount"`
	Name        string  `yaml:"name,omitempty"`
	Notes       string  `yaml:"notes,omitempty"`
	Investment  string  `yaml:"investment_type,omitempty"`
}

// EncodeTransactions writes the ledger back as a canonical flat
// "transactions:" list, sorted chronologically. Reformatting a file through
// Parse and Encode is idempotent.
func EncodeTransactions(w io.Writer, l *Ledger) error {
	var out struct {
		Transactions []canonicalTx `yaml:"transactions"`
	}
	for tx := range l.Transactions() {
		out.Transactions = append(out.Transactions, canonicalTx{
			Code:        tx.Code,
			Date:        tx.Date.String(),
			Type:        string(tx.Kind),
			Quantity:    tx.Quantity.AsFloat(),
			UnitPrice:   tx.UnitPrice.AsFloat(),
			TotalAmount: tx.Amount.AsFloat(),
			Name:        tx.Name,
			Notes:       tx.Note,
			Investment:  string(tx.Type),
		})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding transactions: %w", err)
	}
	return enc.Close()
}
