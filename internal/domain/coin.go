package domain

import "strings"

// Coin identifies a tracked asset. ID is the external (CoinGecko) identifier,
// Ticker is the trading symbol used to build exchange request URLs.
type Coin struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Ticker string `json:"ticker"`
}

// Pair returns the USD trading pair for the coin, e.g. "BTC-USD".
func (c Coin) Pair() string {
	return strings.ToUpper(c.Ticker) + "-USD"
}

// DefaultCoins seeds every new dashboard.
var DefaultCoins = []Coin{
	{ID: "bitcoin", Name: "Bitcoin", Ticker: "BTC"},
	{ID: "ethereum", Name: "Ethereum", Ticker: "ETH"},
	{ID: "solana", Name: "Solana", Ticker: "SOL"},
}

// Suggestion is one entry of a search result list. A NotFound suggestion
// carries no coin and is only ever returned alone.
type Suggestion struct {
	Coin     *Coin `json:"coin,omitempty"`
	NotFound bool  `json:"not_found,omitempty"`
}

// NotFoundSuggestions is the result list for a query with no matches.
func NotFoundSuggestions() []Suggestion {
	return []Suggestion{{NotFound: true}}
}
