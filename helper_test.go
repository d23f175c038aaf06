package invest

import (
	"testing"
)

// tx builds a validated transaction, failing the test on a bad row.
func tx(t *testing.T, code, on string, kind Kind, qty, price, amount float64) Transaction {
	t.Helper()
	built, err := NewTransaction(code, MustDate(on), kind, Q(qty), M(price), M(amount))
	if err != nil {
		t.Fatalf("NewTransaction(%s %s %s) failed: %v", kind, code, on, err)
	}
	return built
}

// setupTestLedger creates a two-code ledger whose numbers are easy to check
// by hand:
//
//	600036: buy 100@10, buy 100@12, sell 150 for 1950 (cost basis 1600,
//	        realized +350), cash dividend 50, 50 shares left at cost 600.
//	510300: buy 1000@1, still fully held.
func setupTestLedger(t *testing.T) *Ledger {
	t.Helper()
	return NewLedger(
		tx(t, "600036", "2023-02-01", Buy, 100, 10, 1000),
		tx(t, "600036", "2023-03-01", Buy, 100, 12, 1200),
		tx(t, "600036", "2023-06-01", Sell, 150, 13, 1950),
		tx(t, "600036", "2023-07-03", Dividend, 0, 0, 50),
		tx(t, "510300", "2023-02-01", Buy, 1000, 1, 1000),
	)
}

// setupTestSource quotes both codes on the last trading day of 2023 and
// around the 2024 window.
func setupTestSource(t *testing.T) *StaticSource {
	t.Helper()
	s := NewStaticSource()
	s.Set("600036", MustDate("2023-12-29"), M(14))
	s.Set("510300", MustDate("2023-12-29"), M(1.1))
	s.Set("600036", MustDate("2024-01-02"), M(14))
	s.Set("510300", MustDate("2024-01-02"), M(1.1))
	s.Set("600036", MustDate("2024-12-31"), M(16))
	s.Set("510300", MustDate("2024-12-31"), M(1.21))
	return s
}

// wantMoney fails the test when got differs from the expected amount.
func wantMoney(t *testing.T, label string, got Money, want float64) {
	t.Helper()
	if !got.Equal(M(want)) {
		t.Errorf("%s = %s, want %s", label, got, M(want))
	}
}
