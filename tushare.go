package invest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// Tushare Pro serves daily bars for A-share stocks. Access needs a token,
// read from the TUSHARE_TOKEN environment variable unless set explicitly.
// See https://tushare.pro for an account.

const tushareTokenEnv = "TUSHARE_TOKEN"

// var, not const, so tests can point it at a stub server
var tushareURL = "https://api.tushare.pro"

// how many calendar days to walk back when the requested date has no bar
// (suspensions, data gaps around long holidays)
const tushareMaxFallbackDays = 7

// TushareSource fetches stock close prices from the Tushare Pro API.
type TushareSource struct {
	Token  string // falls back to $TUSHARE_TOKEN when empty
	client *http.Client
}

// NewTushareSource creates a stock price source backed by Tushare Pro,
// with a daily-expiring disk cache for responses.
func NewTushareSource(token string) (*TushareSource, error) {
	if token == "" {
		token = os.Getenv(tushareTokenEnv)
	}
	if token == "" {
		return nil, fmt.Errorf("tushare token is required, set the %s environment variable", tushareTokenEnv)
	}
	return &TushareSource{Token: token, client: daily()}, nil
}

// tushareCode converts a 6-digit code to Tushare format with the exchange
// suffix: Shanghai starts with 6, Shenzhen with 0/2/3, Beijing with 4/8.
func tushareCode(code string) string {
	switch {
	case strings.HasPrefix(code, "6"):
		return code + ".SH"
	case strings.HasPrefix(code, "8"), strings.HasPrefix(code, "4"):
		return code + ".BJ"
	default:
		return code + ".SZ"
	}
}

// Price implements PriceSource. It resolves the requested date to a trading
// day and walks back over days without a bar before giving up.
func (s *TushareSource) Price(ctx context.Context, code string, on Date) (PriceQuote, error) {
	var lastErr error
	for back := 0; back <= tushareMaxFallbackDays; back++ {
		day := on.Add(-back)
		if !IsTradingDay(day) {
			continue
		}
		price, err := s.dailyClose(ctx, code, day)
		if err != nil {
			lastErr = err
			continue
		}
		return PriceQuote{Code: code, Date: day, Price: price, Source: "tushare"}, nil
	}
	return PriceQuote{}, fmt.Errorf("no daily bar for %s on %s or the %d days before: %w (last: %v)",
		code, on, tushareMaxFallbackDays, ErrPriceNotFound, lastErr)
}

// dailyClose fetches the close of one trading day. Tushare's free tier is
// rate limited per minute; on a rate-limit response it waits and retries a
// bounded number of times.
func (s *TushareSource) dailyClose(ctx context.Context, code string, day Date) (Money, error) {
	request := map[string]any{
		"api_name": "daily",
		"token":    s.Token,
		"params": map[string]any{
			"ts_code":    tushareCode(code),
			"trade_date": day.time().Format("20060102"),
			"fields":     "ts_code,trade_date,close",
			"limit":      1,
		},
	}

	const rateLimitWait = 61 * time.Second
	for attempt := 0; attempt < 3; attempt++ {
		var jobj any
		if err := jwpost(s.client, tushareURL, request, &jobj); err != nil {
			return Money{}, err
		}

		status, _ := jsonpath.Get("$.code", jobj)
		if c, ok := status.(float64); !ok || c != 0 {
			msg, _ := jsonpath.Get("$.msg", jobj)
			text := fmt.Sprint(msg)
			if strings.Contains(text, "每分钟最多访问") || strings.Contains(strings.ToLower(text), "rate limit") {
				select {
				case <-time.After(rateLimitWait):
					continue
				case <-ctx.Done():
					return Money{}, ctx.Err()
				}
			}
			return Money{}, fmt.Errorf("tushare api error: %v", text)
		}

		// response shape: {"data": {"fields": [...], "items": [[code, date, close]]}}
		jval, err := jsonpath.Get("$.data.items[0][2]", jobj)
		if err != nil {
			return Money{}, fmt.Errorf("no bar for %s on %s", code, day)
		}
		close, ok := jval.(float64)
		if !ok || close <= 0 {
			return Money{}, fmt.Errorf("invalid close for %s on %s: %v", code, day, jval)
		}
		return M(close), nil
	}
	return Money{}, errors.New("tushare rate limit retries exhausted")
}
