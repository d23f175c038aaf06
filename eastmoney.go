package invest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
)

// East Money publishes the daily unit NAV (单位净值) history of open-ended
// mutual funds, no token required. The f10/lsjz endpoint wants a Referer
// from the fund pages or it answers empty.

// var, not const, so tests can point it at a stub server
var eastmoneyURL = "https://api.fund.eastmoney.com/f10/lsjz"

const eastmoneyMaxFallbackDays = 10

// EastMoneySource fetches mutual fund NAVs from East Money.
type EastMoneySource struct {
	client *http.Client
}

// NewEastMoneySource creates a fund NAV source with a daily-expiring disk
// cache for responses.
func NewEastMoneySource() *EastMoneySource {
	return &EastMoneySource{client: daily()}
}

// Price implements PriceSource, serving the unit NAV as the price. The
// requested date resolves to the nearest prior trading day; days without a
// published NAV walk further back.
func (s *EastMoneySource) Price(ctx context.Context, code string, on Date) (PriceQuote, error) {
	var lastErr error
	for back := 0; back <= eastmoneyMaxFallbackDays; back++ {
		day := on.Add(-back)
		if !IsTradingDay(day) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return PriceQuote{}, err
		}
		nav, err := s.unitNav(code, day)
		if err != nil {
			lastErr = err
			continue
		}
		return PriceQuote{Code: code, Date: day, Price: nav, Source: "eastmoney"}, nil
	}
	return PriceQuote{}, fmt.Errorf("no NAV for fund %s on %s or the %d days before: %w (last: %v)",
		code, on, eastmoneyMaxFallbackDays, ErrPriceNotFound, lastErr)
}

// unitNav fetches the published unit NAV of one day.
func (s *EastMoneySource) unitNav(code string, day Date) (Money, error) {
	addr := fmt.Sprintf("%s?fundCode=%s&beginDate=%s&endDate=%s&pageIndex=1&pageSize=1",
		eastmoneyURL, code, day, day)
	headers := map[string]string{
		"Referer":    "https://fundf10.eastmoney.com/",
		"User-Agent": "Mozilla/5.0",
	}

	var jobj any
	if err := jwget(s.client, addr, headers, &jobj); err != nil {
		return Money{}, err
	}

	// response shape: {"Data": {"LSJZList": [{"FSRQ": date, "DWJZ": unit nav, ...}]}}
	jval, err := jsonpath.Get("$.Data.LSJZList[0].DWJZ", jobj)
	if err != nil {
		return Money{}, fmt.Errorf("no NAV row for fund %s on %s", code, day)
	}
	text, ok := jval.(string)
	if !ok {
		return Money{}, fmt.Errorf("unexpected NAV value for fund %s: %v", code, jval)
	}
	nav, err := strconv.ParseFloat(text, 64)
	if err != nil || nav <= 0 {
		return Money{}, fmt.Errorf("invalid NAV %q for fund %s on %s", text, code, day)
	}
	return M(nav), nil
}
