package store

import (
	"sync"

	"coinpulse/internal/domain"
)

// CoinSet is the ordered, ID-unique list of tracked coins. It never shrinks.
type CoinSet struct {
	mu    sync.RWMutex
	coins []domain.Coin
	index map[string]int
}

func NewCoinSet(seed []domain.Coin) *CoinSet {
	cs := &CoinSet{index: make(map[string]int)}
	for _, c := range seed {
		cs.Add(c)
	}
	return cs
}

// Add appends coin when no member shares its ID and reports whether it did.
func (cs *CoinSet) Add(coin domain.Coin) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if _, ok := cs.index[coin.ID]; ok {
		return false
	}
	cs.index[coin.ID] = len(cs.coins)
	cs.coins = append(cs.coins, coin)
	return true
}

func (cs *CoinSet) Get(id string) (domain.Coin, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	i, ok := cs.index[id]
	if !ok {
		return domain.Coin{}, false
	}
	return cs.coins[i], true
}

func (cs *CoinSet) Contains(id string) bool {
	_, ok := cs.Get(id)
	return ok
}

// List returns the tracked coins in insertion order.
func (cs *CoinSet) List() []domain.Coin {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	return append([]domain.Coin(nil), cs.coins...)
}

func (cs *CoinSet) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	return len(cs.coins)
}
