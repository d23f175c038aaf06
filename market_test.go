package invest

import (
	"context"
	"errors"
	"testing"
)

// countingSource wraps a source and counts how many calls reach it.
type countingSource struct {
	base  PriceSource
	calls int
}

func (c *countingSource) Price(ctx context.Context, code string, on Date) (PriceQuote, error) {
	c.calls++
	return c.base.Price(ctx, code, on)
}

func TestCachedSource_MemoizesQuotes(t *testing.T) {
	static := NewStaticSource()
	static.Set("600036", MustDate("2023-12-29"), M(14))
	counting := &countingSource{base: static}
	cached := NewCachedSource(counting)

	ctx := context.Background()
	for range 3 {
		q, err := cached.Price(ctx, "600036", MustDate("2023-12-29"))
		if err != nil {
			t.Fatalf("Price() failed: %v", err)
		}
		wantMoney(t, "quote", q.Price, 14)
	}
	if counting.calls != 1 {
		t.Errorf("base source called %d times, want 1", counting.calls)
	}
}

func TestCachedSource_MemoizesMisses(t *testing.T) {
	counting := &countingSource{base: NewStaticSource()}
	cached := NewCachedSource(counting)

	ctx := context.Background()
	for range 3 {
		if _, err := cached.Price(ctx, "600036", MustDate("2023-12-29")); !errors.Is(err, ErrPriceNotFound) {
			t.Fatalf("Price() error = %v, want ErrPriceNotFound", err)
		}
	}
	if counting.calls != 1 {
		t.Errorf("base source called %d times for a persistent miss, want 1", counting.calls)
	}
}

func TestStaticSource_WalksBack(t *testing.T) {
	static := NewStaticSource()
	static.Set("600036", MustDate("2023-12-29"), M(14))

	// a weekend request resolves to the last quoted day
	q, err := static.Price(context.Background(), "600036", MustDate("2023-12-31"))
	if err != nil {
		t.Fatalf("Price() failed: %v", err)
	}
	if q.Date != MustDate("2023-12-29") {
		t.Errorf("quote date = %s, want 2023-12-29", q.Date)
	}

	if _, err := static.Price(context.Background(), "600036", MustDate("2024-06-01")); !errors.Is(err, ErrPriceNotFound) {
		t.Errorf("Price() far from any quote = %v, want ErrPriceNotFound", err)
	}
}

func TestMockSource_Deterministic(t *testing.T) {
	var src MockSource
	ctx := context.Background()
	a, _ := src.Price(ctx, "600036", MustDate("2023-12-29"))
	b, _ := src.Price(ctx, "600036", MustDate("2023-12-29"))
	if !a.Price.Equal(b.Price) {
		t.Errorf("mock price not deterministic: %s vs %s", a.Price, b.Price)
	}
	c, _ := src.Price(ctx, "510300", MustDate("2023-12-29"))
	if a.Price.Equal(c.Price) {
		t.Errorf("mock prices for different codes collide: %s", a.Price)
	}
}

func TestRoutingSource(t *testing.T) {
	stocks := NewStaticSource()
	stocks.Set("600036", MustDate("2023-12-29"), M(14))
	funds := NewStaticSource()
	funds.Set("510300", MustDate("2023-12-29"), M(1.1))

	types := map[string]InvestmentType{"600036": Stock, "510300": Fund}
	routed := RoutingSource{
		Stocks: stocks,
		Funds:  funds,
		TypeOf: func(code string) InvestmentType { return types[code] },
	}

	ctx := context.Background()
	if q, err := routed.Price(ctx, "600036", MustDate("2023-12-29")); err != nil || !q.Price.Equal(M(14)) {
		t.Errorf("stock route: quote %v, err %v", q, err)
	}
	if q, err := routed.Price(ctx, "510300", MustDate("2023-12-29")); err != nil || !q.Price.Equal(M(1.1)) {
		t.Errorf("fund route: quote %v, err %v", q, err)
	}
}
