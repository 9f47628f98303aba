package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"coinpulse/internal/domain"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	coinbaseBaseURL         = "https://api.coinbase.com/v2"
	coinbaseExchangeBaseURL = "https://api.exchange.coinbase.com"
)

// ErrMissingAmount is returned when a spot price body has no amount field.
var ErrMissingAmount = errors.New("spot price response missing amount")

// CoinbaseProvider fetches spot prices and daily candles from the public
// Coinbase APIs. Neither endpoint requires authentication.
type CoinbaseProvider struct {
	client      *http.Client
	baseURL     string
	exchangeURL string
	tracer      trace.Tracer
	now         func() time.Time
}

func NewCoinbaseProvider(tracer trace.Tracer) *CoinbaseProvider {
	return &CoinbaseProvider{
		client:      &http.Client{Timeout: 15 * time.Second},
		baseURL:     coinbaseBaseURL,
		exchangeURL: coinbaseExchangeBaseURL,
		tracer:      tracer,
		now:         time.Now,
	}
}

// FetchSpotPrice returns the current USD spot price of coin.
func (p *CoinbaseProvider) FetchSpotPrice(ctx context.Context, coin domain.Coin) (float64, error) {
	ctx, span := p.tracer.Start(ctx, "coinbase.fetch-spot-price")
	defer span.End()
	span.SetAttributes(attribute.String("pair", coin.Pair()))

	body, err := getJSON(ctx, p.client, "coinbase", fmt.Sprintf("%s/prices/%s/spot", p.baseURL, coin.Pair()))
	if err != nil {
		return 0, fmt.Errorf("fetch spot price for %s: %w", coin.Pair(), err)
	}

	// Response shape: {"data": {"amount": "97000.12", "base": "BTC", "currency": "USD"}}
	var raw struct {
		Data *struct {
			Amount string `json:"amount"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return 0, fmt.Errorf("parse spot price for %s: %w", coin.Pair(), err)
	}
	if raw.Data == nil || raw.Data.Amount == "" {
		return 0, fmt.Errorf("%s: %w", coin.Pair(), ErrMissingAmount)
	}

	amount, err := decimal.NewFromString(raw.Data.Amount)
	if err != nil {
		return 0, fmt.Errorf("parse spot amount %q for %s: %w", raw.Data.Amount, coin.Pair(), err)
	}
	price, _ := amount.Float64()
	return price, nil
}

// FetchDailyCandles returns the daily candles of the trailing history window,
// sorted ascending by timestamp regardless of upstream ordering.
func (p *CoinbaseProvider) FetchDailyCandles(ctx context.Context, coin domain.Coin) ([]domain.Candle, error) {
	ctx, span := p.tracer.Start(ctx, "coinbase.fetch-daily-candles")
	defer span.End()
	span.SetAttributes(attribute.String("pair", coin.Pair()))

	end := p.now().UTC()
	start := end.Add(-domain.HistoryWindow)

	q := url.Values{}
	q.Set("start", start.Format(time.RFC3339))
	q.Set("end", end.Format(time.RFC3339))
	q.Set("granularity", fmt.Sprint(domain.CandleGranularitySecs))

	body, err := getJSON(ctx, p.client, "coinbase exchange",
		fmt.Sprintf("%s/products/%s/candles?%s", p.exchangeURL, coin.Pair(), q.Encode()))
	if err != nil {
		return nil, fmt.Errorf("fetch candles for %s: %w", coin.Pair(), err)
	}

	// Response shape: [[time, low, high, open, close, volume], ...]
	var raw [][]float64
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse candles for %s: %w", coin.Pair(), err)
	}

	candles := parseCandleTuples(raw)
	span.SetAttributes(attribute.Int("candles", len(candles)))
	return candles, nil
}

func parseCandleTuples(raw [][]float64) []domain.Candle {
	candles := make([]domain.Candle, 0, len(raw))
	for _, row := range raw {
		if len(row) < 6 {
			continue
		}
		candles = append(candles, domain.Candle{
			Timestamp: int64(row[0]),
			Low:       row[1],
			High:      row[2],
			Open:      row[3],
			Close:     row[4],
			Volume:    row[5],
		})
	}

	sort.SliceStable(candles, func(i, j int) bool {
		return candles[i].Timestamp < candles[j].Timestamp
	})
	return candles
}
