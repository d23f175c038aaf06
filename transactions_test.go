package invest

import (
	"errors"
	"strings"
	"testing"
)

func TestNewTransaction_Valid(t *testing.T) {
	testCases := []struct {
		name   string
		kind   Kind
		qty    float64
		price  float64
		amount float64
	}{
		{"buy", Buy, 100, 10, 1000},
		{"sell", Sell, 50, 13, 650},
		{"cash dividend", Dividend, 0, 0, 50},
		{"stock dividend", Dividend, 30, 0, 0},
		{"fractional fund units", Buy, 123.45, 1.5, 185.17},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewTransaction("600036", MustDate("2023-02-01"), tc.kind, Q(tc.qty), M(tc.price), M(tc.amount)); err != nil {
				t.Fatalf("NewTransaction() failed: %v", err)
			}
		})
	}
}

func TestNewTransaction_Invalid(t *testing.T) {
	testCases := []struct {
		name       string
		code       string
		on         Date
		kind       Kind
		qty        float64
		amount     float64
		wantFields int
	}{
		{"short code", "123", MustDate("2023-02-01"), Buy, 100, 1000, 1},
		{"letters in code", "ABCDEF", MustDate("2023-02-01"), Buy, 100, 1000, 1},
		{"missing date", "600036", Date{}, Buy, 100, 1000, 1},
		{"buy without quantity", "600036", MustDate("2023-02-01"), Buy, 0, 1000, 1},
		{"buy without amount", "600036", MustDate("2023-02-01"), Buy, 100, 0, 1},
		{"dividend both cash and stock", "600036", MustDate("2023-02-01"), Dividend, 30, 50, 1},
		{"dividend with neither", "600036", MustDate("2023-02-01"), Dividend, 0, 0, 1},
		{"unknown kind", "600036", MustDate("2023-02-01"), Kind("transfer"), 100, 1000, 1},
		{"everything wrong at once", "12", Date{}, Buy, 0, 0, 4},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTransaction(tc.code, tc.on, tc.kind, Q(tc.qty), M(0), M(tc.amount))
			if err == nil {
				t.Fatal("NewTransaction() succeeded, want error")
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error %v is not a *ValidationError", err)
			}
			if len(ve.Fields) != tc.wantFields {
				t.Errorf("got %d field errors %v, want %d", len(ve.Fields), ve.Fields, tc.wantFields)
			}
		})
	}
}

func TestNewTransaction_NegativeQuantityReported(t *testing.T) {
	_, err := NewTransaction("600036", MustDate("2023-02-01"), Sell, Q(-10), M(10), M(100))
	if err == nil {
		t.Fatal("NewTransaction() with negative quantity succeeded, want error")
	}
	if !strings.Contains(err.Error(), "quantity") {
		t.Errorf("error %q does not mention the quantity field", err)
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind("BUY"); err != nil || k != Buy {
		t.Errorf("ParseKind(BUY) = %v, %v, want buy", k, err)
	}
	if _, err := ParseKind("transfer"); err == nil {
		t.Error("ParseKind(transfer) succeeded, want error")
	}
}

func TestParseInvestmentType(t *testing.T) {
	if it, err := ParseInvestmentType("Fund"); err != nil || it != Fund {
		t.Errorf("ParseInvestmentType(Fund) = %v, %v, want fund", it, err)
	}
	if _, err := ParseInvestmentType("bond"); err == nil {
		t.Error("ParseInvestmentType(bond) succeeded, want error")
	}
}

func TestDividendClassification(t *testing.T) {
	cash := tx(t, "600036", "2023-07-03", Dividend, 0, 0, 50)
	if !cash.IsCashDividend() || cash.IsStockDividend() {
		t.Errorf("dividend with amount only should be cash: %s", cash)
	}
	stock := tx(t, "600036", "2023-07-03", Dividend, 30, 0, 0)
	if !stock.IsStockDividend() || stock.IsCashDividend() {
		t.Errorf("dividend with quantity only should be stock: %s", stock)
	}
}
