package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"coinpulse/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const coingeckoBaseURL = "https://api.coingecko.com/api/v3"

// CoinGeckoProvider resolves free-text queries to coin descriptors using the
// CoinGecko public search API.
type CoinGeckoProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	limiter *RateLimiter
}

// NewCoinGeckoProvider creates a new provider with built-in rate limiting.
// Bursts of up to 10 searches are allowed, refilled at one every 2 seconds.
func NewCoinGeckoProvider(tracer trace.Tracer) *CoinGeckoProvider {
	return &CoinGeckoProvider{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: coingeckoBaseURL,
		tracer:  tracer,
		limiter: NewRateLimiter(10, 2*time.Second),
	}
}

// SearchCoins returns at most domain.MaxSuggestions coins matching query,
// in the order the API ranks them. Tickers are uppercased.
func (p *CoinGeckoProvider) SearchCoins(ctx context.Context, query string) ([]domain.Coin, error) {
	ctx, span := p.tracer.Start(ctx, "coingecko.search-coins")
	defer span.End()
	span.SetAttributes(attribute.String("query", query))

	body, err := p.doRequest(ctx, fmt.Sprintf("%s/search?query=%s", p.baseURL, url.QueryEscape(query)))
	if err != nil {
		return nil, fmt.Errorf("search coins %q: %w", query, err)
	}

	// Response shape: {"coins": [{"id": "bitcoin", "name": "Bitcoin", "symbol": "BTC", ...}], ...}
	var raw struct {
		Coins []struct {
			ID     string `json:"id"`
			Name   string `json:"name"`
			Symbol string `json:"symbol"`
		} `json:"coins"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse search results %q: %w", query, err)
	}

	n := len(raw.Coins)
	if n > domain.MaxSuggestions {
		n = domain.MaxSuggestions
	}
	coins := make([]domain.Coin, 0, n)
	for _, c := range raw.Coins[:n] {
		coins = append(coins, domain.Coin{
			ID:     c.ID,
			Name:   c.Name,
			Ticker: strings.ToUpper(c.Symbol),
		})
	}
	span.SetAttributes(attribute.Int("results", len(raw.Coins)))
	return coins, nil
}

func (p *CoinGeckoProvider) doRequest(ctx context.Context, endpoint string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return getJSON(ctx, p.client, "coingecko", endpoint)
}
