package store

import (
	"testing"

	"coinpulse/internal/domain"
)

func TestCoinSetSeedsDefaults(t *testing.T) {
	cs := NewCoinSet(domain.DefaultCoins)
	got := cs.List()
	if len(got) != 3 {
		t.Fatalf("expected 3 coins, got %d", len(got))
	}
	for i, id := range []string{"bitcoin", "ethereum", "solana"} {
		if got[i].ID != id {
			t.Fatalf("coin %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestCoinSetAddDeduplicatesByID(t *testing.T) {
	cs := NewCoinSet(domain.DefaultCoins)

	if cs.Add(domain.Coin{ID: "bitcoin", Name: "Other", Ticker: "XBT"}) {
		t.Fatal("duplicate id should not be added")
	}
	if cs.Len() != 3 {
		t.Fatalf("expected length 3, got %d", cs.Len())
	}
	if c, _ := cs.Get("bitcoin"); c.Ticker != "BTC" {
		t.Fatalf("existing coin must be immutable, got %+v", c)
	}

	if !cs.Add(domain.Coin{ID: "dogecoin", Name: "Dogecoin", Ticker: "DOGE"}) {
		t.Fatal("new coin should be added")
	}
	list := cs.List()
	if len(list) != 4 || list[3].ID != "dogecoin" {
		t.Fatalf("expected dogecoin appended last, got %+v", list)
	}
	if !cs.Contains("dogecoin") || cs.Contains("cardano") {
		t.Fatal("unexpected membership")
	}
}

func TestCoinSetListIsCopy(t *testing.T) {
	cs := NewCoinSet(domain.DefaultCoins)
	list := cs.List()
	list[0].ID = "mutated"
	if !cs.Contains("bitcoin") || cs.List()[0].ID != "bitcoin" {
		t.Fatal("list shares backing array with set")
	}
}
