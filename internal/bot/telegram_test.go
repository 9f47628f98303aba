package bot

import (
	"context"
	"strings"
	"testing"

	"coinpulse/internal/domain"
)

type stubDashboard struct {
	coins   []domain.Coin
	series  map[string]domain.Series
	results []domain.Suggestion
	added   []domain.Coin
}

func newStubDashboard() *stubDashboard {
	return &stubDashboard{
		coins:  append([]domain.Coin(nil), domain.DefaultCoins...),
		series: map[string]domain.Series{},
	}
}

func (s *stubDashboard) TrackedCoins() []domain.Coin { return s.coins }

func (s *stubDashboard) Series(id string) domain.Series { return s.series[id] }

func (s *stubDashboard) Search(ctx context.Context, query string) []domain.Suggestion {
	return s.results
}

func (s *stubDashboard) Add(coin domain.Coin) error {
	s.added = append(s.added, coin)
	return nil
}

func TestStartTelegramBotSkipsWithoutToken(t *testing.T) {
	if err := StartTelegramBot("", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCoinsReply(t *testing.T) {
	out := coinsReply(newStubDashboard())
	for _, want := range []string{"BTC  Bitcoin (bitcoin)", "ETH", "SOL"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}

func TestPriceReply(t *testing.T) {
	d := newStubDashboard()
	v := 64123.456
	d.series["bitcoin"] = domain.Series{Labels: []string{"12:00:05"}, Values: []*float64{&v}}
	d.series["ethereum"] = domain.Series{Labels: []string{"12:00:05"}, Values: []*float64{nil}, Error: true}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "usage", args: nil, want: "Usage: /price BTC"},
		{name: "by ticker", args: []string{"btc"}, want: "Price: $64,123.46"},
		{name: "by id", args: []string{"Bitcoin"}, want: "As of: 12:00:05"},
		{name: "failed fetch", args: []string{"ETH"}, want: "fetch failed"},
		{name: "no data", args: []string{"sol"}, want: "No price yet"},
		{name: "unknown", args: []string{"doge"}, want: "Unknown coin: doge"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if out := priceReply(d, tt.args); !strings.Contains(out, tt.want) {
				t.Fatalf("expected %q in %q", tt.want, out)
			}
		})
	}
}

func TestSearchReply(t *testing.T) {
	d := newStubDashboard()
	ctx := context.Background()

	if out := searchReply(ctx, d, nil); !strings.HasPrefix(out, "Usage") {
		t.Fatalf("expected usage, got %q", out)
	}

	d.results = domain.NotFoundSuggestions()
	if out := searchReply(ctx, d, []string{"zzz"}); out != "No coins found for zzz" {
		t.Fatalf("unexpected reply %q", out)
	}

	d.results = []domain.Suggestion{{Coin: &domain.Coin{ID: "dogecoin", Name: "Dogecoin", Ticker: "DOGE"}}}
	if out := searchReply(ctx, d, []string{"doge"}); out != "DOGE  Dogecoin (dogecoin)" {
		t.Fatalf("unexpected reply %q", out)
	}
}

func TestAddReply(t *testing.T) {
	d := newStubDashboard()
	ctx := context.Background()

	d.results = domain.NotFoundSuggestions()
	if out := addReply(ctx, d, []string{"zzz"}); !strings.HasPrefix(out, "No coins found") {
		t.Fatalf("unexpected reply %q", out)
	}
	if len(d.added) != 0 {
		t.Fatalf("expected nothing added")
	}

	d.results = []domain.Suggestion{
		{Coin: &domain.Coin{ID: "dogecoin", Name: "Dogecoin", Ticker: "DOGE"}},
		{Coin: &domain.Coin{ID: "dogelon-mars", Name: "Dogelon Mars", Ticker: "ELON"}},
	}
	if out := addReply(ctx, d, []string{"doge"}); out != "Now tracking Dogecoin (DOGE)" {
		t.Fatalf("unexpected reply %q", out)
	}
	if len(d.added) != 1 || d.added[0].ID != "dogecoin" {
		t.Fatalf("expected first match added, got %+v", d.added)
	}
}
