package job

import (
	"context"

	"coinpulse/internal/domain"

	"go.uber.org/zap"
)

// HistoryWatcher loads candle history once for the active coin and again
// every time the active coin changes.
type HistoryWatcher struct {
	dashboard HistoryLoader
}

type HistoryLoader interface {
	ActiveCoin() domain.Coin
	LoadHistory(ctx context.Context, coin domain.Coin) error
	Subscribe() (<-chan domain.Event, func())
}

func NewHistoryWatcher(dashboard HistoryLoader) *HistoryWatcher {
	return &HistoryWatcher{dashboard: dashboard}
}

// Start blocks until ctx is cancelled.
func (w *HistoryWatcher) Start(ctx context.Context) {
	events, unsubscribe := w.dashboard.Subscribe()
	defer unsubscribe()

	shown := w.dashboard.ActiveCoin()
	w.load(ctx, shown)

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			if active := w.dashboard.ActiveCoin(); active.ID != shown.ID {
				shown = active
				w.load(ctx, shown)
			}
		}
	}
}

func (w *HistoryWatcher) load(ctx context.Context, coin domain.Coin) {
	if coin.ID == "" {
		return
	}
	go func() {
		if err := w.dashboard.LoadHistory(ctx, coin); err != nil {
			zap.L().Warn("history load failed", zap.String("coin", coin.ID), zap.Error(err))
		}
	}()
}
