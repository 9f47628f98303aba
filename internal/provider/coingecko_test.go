package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

func newTestCoinGecko(fn roundTripFunc) *CoinGeckoProvider {
	p := NewCoinGeckoProvider(trace.NewNoopTracerProvider().Tracer("test"))
	p.baseURL = "http://example"
	p.client = &http.Client{Transport: fn}
	p.limiter = NewRateLimiter(10, time.Millisecond)
	return p
}

func searchBody(n int) string {
	type coin struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
	}
	coins := make([]coin, 0, n)
	for i := 0; i < n; i++ {
		coins = append(coins, coin{ID: fmt.Sprintf("coin-%d", i), Name: fmt.Sprintf("Coin %d", i), Symbol: fmt.Sprintf("c%d", i)})
	}
	data, _ := json.Marshal(map[string]interface{}{"coins": coins, "exchanges": []string{}})
	return string(data)
}

func TestCoinGeckoSearchCoins(t *testing.T) {
	t.Parallel()

	p := newTestCoinGecko(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/search" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		if q := req.URL.Query().Get("query"); q != "dog coin" {
			t.Fatalf("unexpected query: %q", q)
		}
		return jsonResponse(http.StatusOK, `{"coins":[{"id":"dogecoin","name":"Dogecoin","symbol":"doge"}]}`), nil
	})

	coins, err := p.SearchCoins(context.Background(), "dog coin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(coins) != 1 {
		t.Fatalf("expected 1 coin, got %d", len(coins))
	}
	if coins[0].ID != "dogecoin" || coins[0].Name != "Dogecoin" || coins[0].Ticker != "DOGE" {
		t.Fatalf("unexpected coin: %+v", coins[0])
	}
}

func TestCoinGeckoSearchCoinsCapsResults(t *testing.T) {
	t.Parallel()

	p := newTestCoinGecko(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, searchBody(7)), nil
	})

	coins, err := p.SearchCoins(context.Background(), "coin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(coins) != 5 {
		t.Fatalf("expected 5 coins, got %d", len(coins))
	}
	if coins[4].ID != "coin-4" {
		t.Fatalf("expected upstream order preserved, got %+v", coins)
	}
}

func TestCoinGeckoSearchCoinsEmpty(t *testing.T) {
	t.Parallel()

	p := newTestCoinGecko(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, searchBody(0)), nil
	})

	coins, err := p.SearchCoins(context.Background(), "zzzz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(coins) != 0 {
		t.Fatalf("expected no coins, got %+v", coins)
	}
}

func TestCoinGeckoSearchCoinsHTTPError(t *testing.T) {
	t.Parallel()

	p := newTestCoinGecko(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusTooManyRequests, `{"status":{"error_code":429}}`), nil
	})
	if _, err := p.SearchCoins(context.Background(), "btc"); err == nil {
		t.Fatal("expected error on 429")
	}
}
