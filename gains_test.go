package invest

import (
	"errors"
	"testing"
)

func TestRealizedGain(t *testing.T) {
	testCases := []struct {
		name      string
		proceeds  float64
		costBasis float64
		want      float64
	}{
		{"gain", 1500, 1000, 500},
		{"loss", 800, 1000, -200},
		{"break even", 1000, 1000, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sell := tx(t, "600036", "2023-06-01", Sell, 100, 10, tc.proceeds)
			wantMoney(t, "RealizedGain()", RealizedGain(sell, M(tc.costBasis)), tc.want)
		})
	}
}

func TestUnrealizedGain(t *testing.T) {
	// 100 shares bought for 1000, now priced at 15.
	wantMoney(t, "UnrealizedGain()", UnrealizedGain(Q(100), M(15), M(1000)), 500)
	// price below cost
	wantMoney(t, "UnrealizedGain()", UnrealizedGain(Q(100), M(8), M(1000)), -200)
}

func TestLedgerSums(t *testing.T) {
	l := setupTestLedger(t).ByCode("600036")
	wantMoney(t, "Invested()", Invested(l), 2200)
	wantMoney(t, "Withdrawn()", Withdrawn(l), 1950)
	wantMoney(t, "DividendIncome()", DividendIncome(l), 50)
}

func TestDividendIncome_IgnoresStockDividends(t *testing.T) {
	l := NewLedger(
		tx(t, "600036", "2023-02-01", Buy, 100, 10, 1000),
		tx(t, "600036", "2023-05-10", Dividend, 30, 0, 0),
		tx(t, "600036", "2023-08-10", Dividend, 0, 0, 75),
	)
	wantMoney(t, "DividendIncome()", DividendIncome(l), 75)
}

func TestReplay(t *testing.T) {
	ledger := setupTestLedger(t)

	queue, realized, err := Replay(ledger, "600036")
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	wantMoney(t, "realized", realized, 350)
	if !queue.Holdings().Equal(Q(50)) {
		t.Errorf("Holdings() = %s, want 50", queue.Holdings())
	}
	wantMoney(t, "CostBasis()", queue.CostBasis(), 600)
}

func TestReplay_Oversell(t *testing.T) {
	ledger := NewLedger(
		tx(t, "600036", "2023-02-01", Buy, 100, 10, 1000),
		tx(t, "600036", "2023-03-01", Sell, 200, 13, 2600),
	)
	if _, _, err := Replay(ledger, "600036"); !errors.Is(err, ErrInsufficientInventory) {
		t.Fatalf("Replay() error = %v, want ErrInsufficientInventory", err)
	}
}
