package invest

import (
	"errors"
	"math"
	"testing"
)

// wantRate checks an annualized percentage within half a point.
func wantRate(t *testing.T, got Percent, want float64) {
	t.Helper()
	if math.Abs(float64(got)-want) > 0.5 {
		t.Errorf("rate = %s, want about %.2f%%", got, want)
	}
}

func TestXirr_OneYearGain(t *testing.T) {
	// 10000 on January 1st worth 11000 on December 31st is about 10% a year.
	rate, err := Xirr([]CashFlow{
		{Date: MustDate("2023-01-01"), Amount: M(-10000)},
		{Date: MustDate("2023-12-31"), Amount: M(11000)},
	})
	if err != nil {
		t.Fatalf("Xirr() failed: %v", err)
	}
	wantRate(t, rate, 10)
}

func TestXirr_OneYearLoss(t *testing.T) {
	rate, err := Xirr([]CashFlow{
		{Date: MustDate("2023-01-01"), Amount: M(-10000)},
		{Date: MustDate("2023-12-31"), Amount: M(9000)},
	})
	if err != nil {
		t.Fatalf("Xirr() failed: %v", err)
	}
	wantRate(t, rate, -10)
}

func TestXirr_TwoYears(t *testing.T) {
	// doubling over two years is about 41.4% a year
	rate, err := Xirr([]CashFlow{
		{Date: MustDate("2022-01-01"), Amount: M(-10000)},
		{Date: MustDate("2024-01-01"), Amount: M(20000)},
	})
	if err != nil {
		t.Fatalf("Xirr() failed: %v", err)
	}
	wantRate(t, rate, 41.4)
}

func TestXirr_StaggeredFlows(t *testing.T) {
	rate, err := Xirr([]CashFlow{
		{Date: MustDate("2023-01-01"), Amount: M(-1000)},
		{Date: MustDate("2023-07-01"), Amount: M(-1000)},
		{Date: MustDate("2024-01-01"), Amount: M(2200)},
	})
	if err != nil {
		t.Fatalf("Xirr() failed: %v", err)
	}
	if rate <= 0 || rate > 30 {
		t.Errorf("rate = %s, want a moderate positive rate", rate)
	}
}

func TestXirr_DegenerateInput(t *testing.T) {
	testCases := []struct {
		name  string
		flows []CashFlow
	}{
		{"no flows", nil},
		{"single flow", []CashFlow{{Date: MustDate("2023-01-01"), Amount: M(-10000)}}},
		{"all negative", []CashFlow{
			{Date: MustDate("2023-01-01"), Amount: M(-10000)},
			{Date: MustDate("2023-06-01"), Amount: M(-5000)},
		}},
		{"all positive", []CashFlow{
			{Date: MustDate("2023-01-01"), Amount: M(100)},
			{Date: MustDate("2023-06-01"), Amount: M(200)},
		}},
		{"zero amounts only", []CashFlow{
			{Date: MustDate("2023-01-01"), Amount: M(0)},
			{Date: MustDate("2023-06-01"), Amount: M(0)},
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rate, err := Xirr(tc.flows)
			if err != nil {
				t.Fatalf("Xirr() failed: %v", err)
			}
			if rate != 0 {
				t.Errorf("rate = %s, want exactly 0.00%%", rate)
			}
		})
	}
}

func TestXirr_NonConvergent(t *testing.T) {
	// a 1000x return in a year has its root far above the rate cap
	_, err := Xirr([]CashFlow{
		{Date: MustDate("2023-01-01"), Amount: M(-100)},
		{Date: MustDate("2024-01-01"), Amount: M(100000)},
	})
	if !errors.Is(err, ErrXirrNonConvergent) {
		t.Fatalf("Xirr() error = %v, want ErrXirrNonConvergent", err)
	}
}

func TestSimpleReturn(t *testing.T) {
	if got := SimpleReturn(M(500), M(10000)); !got.Equal(5) {
		t.Errorf("SimpleReturn(500, 10000) = %s, want 5.00%%", got)
	}
	if got := SimpleReturn(M(500), M(0)); got != 0 {
		t.Errorf("SimpleReturn with zero basis = %s, want 0", got)
	}
	if got := SimpleReturn(M(500), M(-100)); got != 0 {
		t.Errorf("SimpleReturn with negative basis = %s, want 0", got)
	}
}
