package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"coinpulse/internal/domain"
	"coinpulse/internal/store"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	searchCacheTTL = 5 * time.Minute
	candleCacheTTL = 15 * time.Minute

	subscriberBuffer = 32
)

var (
	ErrUnknownCoin = errors.New("coin is not tracked")
	ErrInvalidCoin = errors.New("coin requires id and ticker")
)

type SpotPriceProvider interface {
	FetchSpotPrice(ctx context.Context, coin domain.Coin) (float64, error)
}

type CandleProvider interface {
	FetchDailyCandles(ctx context.Context, coin domain.Coin) ([]domain.Candle, error)
}

type CoinSearcher interface {
	SearchCoins(ctx context.Context, query string) ([]domain.Coin, error)
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// DashboardService owns the state of one dashboard: the tracked coins, the
// active selection, live series, candle history and search suggestions.
// Every state change is published to subscribers.
type DashboardService struct {
	tracer   trace.Tracer
	prices   SpotPriceProvider
	candles  CandleProvider
	searcher CoinSearcher
	redis    RedisClient

	coins  *store.CoinSet
	series *store.SeriesStore

	mu          sync.RWMutex
	activeID    string
	query       string
	suggestions []domain.Suggestion
	searchGen   uint64
	history     map[string]domain.History
	historyGen  map[string]uint64

	subMu sync.RWMutex
	subs  map[string]chan domain.Event
}

func NewDashboardService(
	tracer trace.Tracer,
	prices SpotPriceProvider,
	candles CandleProvider,
	searcher CoinSearcher,
	redisClient RedisClient,
) *DashboardService {
	coins := store.NewCoinSet(domain.DefaultCoins)
	return &DashboardService{
		tracer:      tracer,
		prices:      prices,
		candles:     candles,
		searcher:    searcher,
		redis:       redisClient,
		coins:       coins,
		series:      store.NewSeriesStore(domain.MaxSeriesPoints, time.Now),
		activeID:    domain.DefaultCoins[0].ID,
		suggestions: []domain.Suggestion{},
		history:     make(map[string]domain.History),
		historyGen:  make(map[string]uint64),
		subs:        make(map[string]chan domain.Event),
	}
}

// TrackedCoins returns the tracked coin set in display order.
func (s *DashboardService) TrackedCoins() []domain.Coin {
	return s.coins.List()
}

// ActiveCoin returns the coin currently on display.
func (s *DashboardService) ActiveCoin() domain.Coin {
	s.mu.RLock()
	id := s.activeID
	s.mu.RUnlock()

	coin, _ := s.coins.Get(id)
	return coin
}

func (s *DashboardService) Coin(id string) (domain.Coin, bool) {
	return s.coins.Get(normalizeID(id))
}

func (s *DashboardService) Series(id string) domain.Series {
	return s.series.Get(id)
}

func (s *DashboardService) History(id string) domain.History {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyHistory(s.history[id])
}

// Snapshot returns a copy of the whole dashboard state.
func (s *DashboardService) Snapshot() domain.Snapshot {
	coins := s.coins.List()
	series := s.series.All()

	s.mu.RLock()
	defer s.mu.RUnlock()

	history := make(map[string]domain.History, len(s.history))
	for id, h := range s.history {
		history[id] = copyHistory(h)
	}

	return domain.Snapshot{
		Coins:       coins,
		ActiveID:    s.activeID,
		Query:       s.query,
		Suggestions: append([]domain.Suggestion{}, s.suggestions...),
		Series:      series,
		History:     history,
	}
}

// Select changes the active coin. The coin must already be tracked.
func (s *DashboardService) Select(id string) error {
	id = normalizeID(id)
	if !s.coins.Contains(id) {
		return fmt.Errorf("select %s: %w", id, ErrUnknownCoin)
	}

	s.mu.Lock()
	changed := s.activeID != id
	s.activeID = id
	s.mu.Unlock()

	if changed {
		s.publish(domain.Event{Kind: domain.EventSelectionChanged, CoinID: id})
	}
	return nil
}

// Add tracks coin when its ID is new, makes it the active coin and clears
// the search box. Adding an already tracked coin only selects it.
func (s *DashboardService) Add(coin domain.Coin) error {
	coin.ID = normalizeID(coin.ID)
	coin.Ticker = strings.ToUpper(strings.TrimSpace(coin.Ticker))
	if coin.ID == "" || coin.Ticker == "" {
		return ErrInvalidCoin
	}
	if coin.Name == "" {
		coin.Name = coin.Ticker
	}

	added := s.coins.Add(coin)

	s.mu.Lock()
	selected := s.activeID != coin.ID
	s.activeID = coin.ID
	s.query = ""
	s.suggestions = []domain.Suggestion{}
	s.searchGen++
	s.mu.Unlock()

	if added {
		zap.L().Info("coin added", zap.String("id", coin.ID), zap.String("ticker", coin.Ticker))
		s.publish(domain.Event{Kind: domain.EventCoinsChanged, CoinID: coin.ID})
	}
	if selected {
		s.publish(domain.Event{Kind: domain.EventSelectionChanged, CoinID: coin.ID})
	}
	s.publish(domain.Event{Kind: domain.EventSuggestionsChanged})
	return nil
}

// RefreshPrice fetches the spot price of coin and appends it to the coin's
// series. A failed fetch appends a nil sample with the error flag set and
// returns the error; completions older than an already applied fetch for the
// same coin are dropped.
func (s *DashboardService) RefreshPrice(ctx context.Context, coin domain.Coin) error {
	ctx, span := s.tracer.Start(ctx, "dashboard-service.refresh-price")
	defer span.End()
	span.SetAttributes(attribute.String("coin", coin.ID))

	token := s.series.Issue(coin.ID)
	price, err := s.prices.FetchSpotPrice(ctx, coin)

	var value *float64
	if err == nil {
		value = &price
	}
	if !s.series.AppendIssued(coin.ID, token, value, err != nil) {
		zap.L().Debug("stale price completion dropped", zap.String("coin", coin.ID), zap.Uint64("token", token))
		return nil
	}
	s.publish(domain.Event{Kind: domain.EventSeriesUpdated, CoinID: coin.ID})

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("refresh price for %s: %w", coin.ID, err)
	}
	return nil
}

// LoadHistory fetches the trailing daily candles for coin. An empty result
// or any failure marks the history unavailable.
func (s *DashboardService) LoadHistory(ctx context.Context, coin domain.Coin) error {
	ctx, span := s.tracer.Start(ctx, "dashboard-service.load-history")
	defer span.End()
	span.SetAttributes(attribute.String("coin", coin.ID))

	s.mu.Lock()
	s.historyGen[coin.ID]++
	gen := s.historyGen[coin.ID]
	s.history[coin.ID] = domain.History{Status: domain.HistoryLoading}
	s.mu.Unlock()
	s.publish(domain.Event{Kind: domain.EventHistoryUpdated, CoinID: coin.ID})

	candles, err := s.fetchCandles(ctx, coin)

	next := domain.History{Status: domain.HistoryReady, Candles: candles}
	if err != nil || len(candles) == 0 {
		next = domain.History{Status: domain.HistoryUnavailable}
		if err == nil {
			err = fmt.Errorf("no candles for %s", coin.Pair())
		}
		zap.L().Warn("candle history unavailable", zap.String("coin", coin.ID), zap.Error(err))
	}

	s.mu.Lock()
	if s.historyGen[coin.ID] != gen {
		s.mu.Unlock()
		return nil
	}
	s.history[coin.ID] = next
	s.mu.Unlock()
	s.publish(domain.Event{Kind: domain.EventHistoryUpdated, CoinID: coin.ID})

	if next.Status == domain.HistoryUnavailable {
		span.RecordError(err)
		return fmt.Errorf("load history for %s: %w", coin.ID, err)
	}
	return nil
}

// Search runs a typeahead query. An empty query clears the suggestions
// without any network call. Zero matches and failures both produce a single
// not-found suggestion. Only the latest query may update the suggestions.
func (s *DashboardService) Search(ctx context.Context, query string) []domain.Suggestion {
	ctx, span := s.tracer.Start(ctx, "dashboard-service.search")
	defer span.End()

	s.mu.Lock()
	s.query = query
	s.searchGen++
	gen := s.searchGen
	if strings.TrimSpace(query) == "" {
		s.suggestions = []domain.Suggestion{}
		s.mu.Unlock()
		s.publish(domain.Event{Kind: domain.EventSuggestionsChanged})
		return []domain.Suggestion{}
	}
	s.mu.Unlock()

	q := strings.TrimSpace(query)
	span.SetAttributes(attribute.String("query", q))

	coins, err := s.searchCoins(ctx, q)
	if err != nil {
		zap.L().Warn("coin search failed", zap.String("query", q), zap.Error(err))
	}

	result := domain.NotFoundSuggestions()
	if err == nil && len(coins) > 0 {
		if len(coins) > domain.MaxSuggestions {
			coins = coins[:domain.MaxSuggestions]
		}
		result = make([]domain.Suggestion, 0, len(coins))
		for i := range coins {
			c := coins[i]
			c.Ticker = strings.ToUpper(c.Ticker)
			result = append(result, domain.Suggestion{Coin: &c})
		}
	}

	s.mu.Lock()
	if s.searchGen != gen {
		s.mu.Unlock()
		zap.L().Debug("stale search completion dropped", zap.String("query", q))
		return result
	}
	s.suggestions = result
	s.mu.Unlock()
	s.publish(domain.Event{Kind: domain.EventSuggestionsChanged})

	return result
}

// Subscribe registers a listener for state change events. The returned func
// unregisters it and closes the channel.
func (s *DashboardService) Subscribe() (<-chan domain.Event, func()) {
	id := uuid.NewString()
	ch := make(chan domain.Event, subscriberBuffer)

	s.subMu.Lock()
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			close(ch)
			s.subMu.Unlock()
		})
	}
}

func (s *DashboardService) publish(ev domain.Event) {
	s.subMu.RLock()
	defer s.subMu.RUnlock()

	for id, ch := range s.subs {
		select {
		case ch <- ev:
		default:
			zap.L().Debug("subscriber buffer full, event dropped", zap.String("subscriber", id), zap.String("kind", string(ev.Kind)))
		}
	}
}

func (s *DashboardService) searchCoins(ctx context.Context, query string) ([]domain.Coin, error) {
	key := "search:" + strings.ToLower(query)

	var coins []domain.Coin
	if s.readCache(ctx, key, &coins) {
		return coins, nil
	}

	coins, err := s.searcher.SearchCoins(ctx, query)
	if err != nil {
		return nil, err
	}
	s.writeCache(ctx, key, coins, searchCacheTTL)
	return coins, nil
}

func (s *DashboardService) fetchCandles(ctx context.Context, coin domain.Coin) ([]domain.Candle, error) {
	key := "candles:" + coin.Pair()

	var candles []domain.Candle
	if s.readCache(ctx, key, &candles) {
		return candles, nil
	}

	candles, err := s.candles.FetchDailyCandles(ctx, coin)
	if err != nil {
		return nil, err
	}
	if len(candles) > 0 {
		s.writeCache(ctx, key, candles, candleCacheTTL)
	}
	return candles, nil
}

func (s *DashboardService) readCache(ctx context.Context, key string, dst interface{}) bool {
	if s.redis == nil {
		return false
	}
	data, err := s.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		zap.L().Warn("redis cache read error", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		zap.L().Warn("redis cache decode error", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *DashboardService) writeCache(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, ttl).Err(); err != nil {
		zap.L().Warn("redis cache write error", zap.String("key", key), zap.Error(err))
	}
}

// normalizeID lowercases coin IDs, matching the CoinGecko identifier form.
func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func copyHistory(h domain.History) domain.History {
	if h.Status == "" {
		h.Status = domain.HistoryIdle
	}
	if h.Candles != nil {
		h.Candles = append([]domain.Candle(nil), h.Candles...)
	}
	return h
}
