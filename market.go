package invest

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
)

// ErrPriceNotFound is returned by a PriceSource when no quote exists for a
// code at (or before) the requested date. The aggregator treats it as a
// per-code condition: the code is excluded from the window and reported,
// never silently valued at zero.
var ErrPriceNotFound = errors.New("price not found")

// PriceQuote is a close price (stocks) or unit NAV (funds) for one code on
// one trading day. The quote date may precede the requested date when the
// request fell on a non-trading day.
type PriceQuote struct {
	Code   string `json:"code"`
	Date   Date   `json:"date"`
	Price  Money  `json:"price"`
	Source string `json:"source"`
}

func (p PriceQuote) String() string {
	return fmt.Sprintf("%s @ %s: %s (%s)", p.Code, p.Date, p.Price, p.Source)
}

// PriceSource serves quotes for instrument codes. Implementations resolve
// non-trading days to the nearest prior trading day themselves.
type PriceSource interface {
	Price(ctx context.Context, code string, on Date) (PriceQuote, error)
}

// cachedSource memoizes quotes per code and requested date, so a price used
// by several windows is fetched once. Misses are cached too: a missing quote
// stays missing for the life of the calculation.
type cachedSource struct {
	base PriceSource

	mu     sync.Mutex
	quotes map[string]PriceQuote
	misses map[string]error
}

// NewCachedSource wraps a source with an in-memory quote cache.
func NewCachedSource(base PriceSource) PriceSource {
	return &cachedSource{
		base:   base,
		quotes: make(map[string]PriceQuote),
		misses: make(map[string]error),
	}
}

func (c *cachedSource) Price(ctx context.Context, code string, on Date) (PriceQuote, error) {
	key := code + "@" + on.String()
	c.mu.Lock()
	if q, ok := c.quotes[key]; ok {
		c.mu.Unlock()
		return q, nil
	}
	if err, ok := c.misses[key]; ok {
		c.mu.Unlock()
		return PriceQuote{}, err
	}
	c.mu.Unlock()

	q, err := c.base.Price(ctx, code, on)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.misses[key] = err
		return PriceQuote{}, err
	}
	c.quotes[key] = q
	return q, nil
}

// RoutingSource dispatches each code to the provider matching its investment
// type: close prices for stocks, unit NAV for funds.
type RoutingSource struct {
	Stocks PriceSource
	Funds  PriceSource
	TypeOf func(code string) InvestmentType
}

func (r RoutingSource) Price(ctx context.Context, code string, on Date) (PriceQuote, error) {
	if r.TypeOf != nil && r.TypeOf(code) == Fund {
		return r.Funds.Price(ctx, code, on)
	}
	return r.Stocks.Price(ctx, code, on)
}

// StaticSource serves quotes from a fixed table, keyed by code and date. It
// backs tests and offline runs.
type StaticSource struct {
	quotes map[string]PriceQuote
}

// NewStaticSource creates an empty in-memory source.
func NewStaticSource() *StaticSource {
	return &StaticSource{quotes: make(map[string]PriceQuote)}
}

// Set records a quote for a code and date.
func (s *StaticSource) Set(code string, on Date, price Money) {
	s.quotes[code+"@"+on.String()] = PriceQuote{Code: code, Date: on, Price: price, Source: "static"}
}

// Price implements PriceSource. It walks back up to ten days from the
// requested date, mirroring how the live sources resolve non-trading days.
func (s *StaticSource) Price(_ context.Context, code string, on Date) (PriceQuote, error) {
	for back := 0; back <= 10; back++ {
		if q, ok := s.quotes[code+"@"+on.Add(-back).String()]; ok {
			return q, nil
		}
	}
	return PriceQuote{}, fmt.Errorf("no static quote for %s on %s: %w", code, on, ErrPriceNotFound)
}

// MockSource derives a deterministic pseudo-price from the code and date, so
// demo runs work without network access or a token. The price drifts slowly
// with the date to make annual windows non-trivial.
type MockSource struct{}

func (MockSource) Price(_ context.Context, code string, on Date) (PriceQuote, error) {
	h := fnv.New32a()
	h.Write([]byte(code))
	base := 5 + float64(h.Sum32()%9000)/100 // 5.00 .. 94.99 yuan
	drift := float64(on.Year()*366+int(on.Month())*31+on.Day()) / 10000
	price := base * (1 + drift/10)
	return PriceQuote{
		Code:   code,
		Date:   NearestTradingDay(on),
		Price:  M(price),
		Source: "mock",
	}, nil
}
