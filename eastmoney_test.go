package invest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEastMoneySource_Price(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Referer") == "" {
			// the real endpoint answers empty without a Referer
			fmt.Fprint(w, `{"Data":null}`)
			return
		}
		if got := r.URL.Query().Get("fundCode"); got != "510300" {
			t.Errorf("fundCode = %q, want 510300", got)
		}
		fmt.Fprint(w, `{"Data":{"LSJZList":[{"FSRQ":"2023-12-29","DWJZ":"1.1052","LJJZ":"2.1052"}]}}`)
	}))
	defer srv.Close()
	oldURL := eastmoneyURL
	eastmoneyURL = srv.URL
	defer func() { eastmoneyURL = oldURL }()

	source := &EastMoneySource{client: srv.Client()}
	q, err := source.Price(context.Background(), "510300", MustDate("2023-12-29"))
	if err != nil {
		t.Fatalf("Price() failed: %v", err)
	}
	wantMoney(t, "unit NAV", q.Price, 1.1052)
	if q.Source != "eastmoney" {
		t.Errorf("quote source = %q, want eastmoney", q.Source)
	}
}

func TestEastMoneySource_NoRowIsPriceNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Data":{"LSJZList":[]}}`)
	}))
	defer srv.Close()
	oldURL := eastmoneyURL
	eastmoneyURL = srv.URL
	defer func() { eastmoneyURL = oldURL }()

	source := &EastMoneySource{client: srv.Client()}
	_, err := source.Price(context.Background(), "510300", MustDate("2023-12-29"))
	if !errors.Is(err, ErrPriceNotFound) {
		t.Fatalf("Price() error = %v, want ErrPriceNotFound", err)
	}
}

func TestEastMoneySource_BadNav(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Data":{"LSJZList":[{"FSRQ":"2023-12-29","DWJZ":""}]}}`)
	}))
	defer srv.Close()
	oldURL := eastmoneyURL
	eastmoneyURL = srv.URL
	defer func() { eastmoneyURL = oldURL }()

	source := &EastMoneySource{client: srv.Client()}
	if _, err := source.Price(context.Background(), "510300", MustDate("2023-12-29")); err == nil {
		t.Fatal("Price() with an empty NAV succeeded, want error")
	}
}
