package provider

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"coinpulse/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     make(http.Header),
	}
}

func newTestCoinbase(fn roundTripFunc) *CoinbaseProvider {
	p := NewCoinbaseProvider(trace.NewNoopTracerProvider().Tracer("test"))
	p.baseURL = "http://spot.example"
	p.exchangeURL = "http://exchange.example"
	p.client = &http.Client{Transport: fn}
	return p
}

var btc = domain.Coin{ID: "bitcoin", Name: "Bitcoin", Ticker: "btc"}

func TestCoinbaseFetchSpotPrice(t *testing.T) {
	t.Parallel()

	p := newTestCoinbase(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/prices/BTC-USD/spot" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, `{"data":{"amount":"97123.45","base":"BTC","currency":"USD"}}`), nil
	})

	price, err := p.FetchSpotPrice(context.Background(), btc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 97123.45 {
		t.Fatalf("expected 97123.45, got %f", price)
	}
}

func TestCoinbaseFetchSpotPriceMissingAmount(t *testing.T) {
	t.Parallel()

	bodies := []string{
		`{}`,
		`{"data":{}}`,
		`{"data":{"amount":""}}`,
		`{"errors":[{"id":"not_found","message":"Invalid currency"}]}`,
	}
	for _, body := range bodies {
		body := body
		p := newTestCoinbase(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, body), nil
		})
		_, err := p.FetchSpotPrice(context.Background(), btc)
		if !errors.Is(err, ErrMissingAmount) {
			t.Fatalf("body %s: expected ErrMissingAmount, got %v", body, err)
		}
	}
}

func TestCoinbaseFetchSpotPriceBadAmount(t *testing.T) {
	t.Parallel()

	p := newTestCoinbase(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"data":{"amount":"not-a-number"}}`), nil
	})
	if _, err := p.FetchSpotPrice(context.Background(), btc); err == nil {
		t.Fatal("expected error for malformed amount")
	}
}

func TestCoinbaseFetchSpotPriceHTTPError(t *testing.T) {
	t.Parallel()

	p := newTestCoinbase(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNotFound, `{"message":"NotFound"}`), nil
	})
	_, err := p.FetchSpotPrice(context.Background(), btc)
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected 404 error, got %v", err)
	}

	p = newTestCoinbase(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})
	if _, err := p.FetchSpotPrice(context.Background(), btc); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestCoinbaseFetchDailyCandlesSortsAscending(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC)
	p := newTestCoinbase(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/products/BTC-USD/candles" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		q := req.URL.Query()
		if q.Get("granularity") != "86400" {
			t.Fatalf("unexpected granularity: %s", q.Get("granularity"))
		}
		if q.Get("start") != "2025-03-01T12:00:00Z" || q.Get("end") != "2025-03-11T12:00:00Z" {
			t.Fatalf("unexpected window: %s - %s", q.Get("start"), q.Get("end"))
		}
		return jsonResponse(http.StatusOK, `[[200,1,2,1.5,1.8,10],[100,1,2,1.1,1.4,5]]`), nil
	})
	p.now = func() time.Time { return now }

	candles, err := p.FetchDailyCandles(context.Background(), btc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candles) != 2 {
		t.Fatalf("expected 2 candles, got %d", len(candles))
	}
	if candles[0].Timestamp != 100 || candles[1].Timestamp != 200 {
		t.Fatalf("expected ascending timestamps, got %d, %d", candles[0].Timestamp, candles[1].Timestamp)
	}
	first := candles[0]
	if first.Low != 1 || first.High != 2 || first.Open != 1.1 || first.Close != 1.4 || first.Volume != 5 {
		t.Fatalf("unexpected tuple mapping: %+v", first)
	}
}

func TestCoinbaseFetchDailyCandlesUnexpectedShape(t *testing.T) {
	t.Parallel()

	p := newTestCoinbase(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"message":"granularity too small"}`), nil
	})
	if _, err := p.FetchDailyCandles(context.Background(), btc); err == nil {
		t.Fatal("expected parse error for object body")
	}
}

func TestParseCandleTuplesSkipsShortRows(t *testing.T) {
	candles := parseCandleTuples([][]float64{
		{300, 1, 2, 3, 4, 5},
		{100, 1, 2},
		{200, 1, 2, 3, 4, 5},
	})
	if len(candles) != 2 {
		t.Fatalf("expected 2 candles, got %d", len(candles))
	}
	if candles[0].Timestamp != 200 || candles[1].Timestamp != 300 {
		t.Fatalf("unexpected order: %+v", candles)
	}
}
