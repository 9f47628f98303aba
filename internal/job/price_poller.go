package job

import (
	"context"
	"sync"
	"time"

	"coinpulse/internal/domain"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// PricePoller drives one spot price fetch per tracked coin on every tick.
// The timer is re-armed whenever the tracked coin set changes.
type PricePoller struct {
	tracer       trace.Tracer
	dashboard    PriceRefresher
	pollInterval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	armed  int
}

type PriceRefresher interface {
	TrackedCoins() []domain.Coin
	RefreshPrice(ctx context.Context, coin domain.Coin) error
	Subscribe() (<-chan domain.Event, func())
}

func NewPricePoller(tracer trace.Tracer, dashboard PriceRefresher, pollInterval time.Duration) *PricePoller {
	if pollInterval <= 0 {
		pollInterval = domain.PollInterval
	}
	return &PricePoller{
		tracer:       tracer,
		dashboard:    dashboard,
		pollInterval: pollInterval,
	}
}

// Start arms the polling timer and blocks until ctx is cancelled or Stop is
// called. In-flight fetches run against ctx, not the timer, so re-arming
// never cancels them.
func (p *PricePoller) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.cancel = cancel
	p.mu.Unlock()
	defer cancel()

	events, unsubscribe := p.dashboard.Subscribe()
	defer unsubscribe()

	zap.L().Info("price poller starting", zap.Duration("interval", p.pollInterval))

	disarm := p.arm(ctx)
	for {
		select {
		case <-ctx.Done():
			disarm()
			zap.L().Info("price poller stopped")
			return
		case _, ok := <-events:
			if !ok {
				disarm()
				return
			}
			// Any event is a cue to check the set; a dropped coins-changed
			// event is caught by the next series update.
			if len(p.dashboard.TrackedCoins()) != p.armedCount() {
				disarm()
				disarm = p.arm(ctx)
			}
		}
	}
}

// Stop tears down the timer. It is safe to call before Start returns.
func (p *PricePoller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}
}

// arm starts a timer loop over the coins tracked right now and returns a func
// that stops it.
func (p *PricePoller) arm(fetchCtx context.Context) func() {
	coins := p.dashboard.TrackedCoins()
	p.mu.Lock()
	p.armed = len(coins)
	p.mu.Unlock()

	timerCtx, cancel := context.WithCancel(fetchCtx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.pollLoop(timerCtx, fetchCtx, coins)
	}()

	return func() {
		cancel()
		<-done
	}
}

func (p *PricePoller) armedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.armed
}

func (p *PricePoller) pollLoop(timerCtx, fetchCtx context.Context, coins []domain.Coin) {
	// Run immediately on arm
	p.tick(fetchCtx, coins)

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-timerCtx.Done():
			return
		case <-ticker.C:
			p.tick(fetchCtx, coins)
		}
	}
}

// tick launches one independent fetch per coin and does not wait for them.
func (p *PricePoller) tick(ctx context.Context, coins []domain.Coin) {
	for _, coin := range coins {
		go func(coin domain.Coin) {
			if err := p.dashboard.RefreshPrice(ctx, coin); err != nil {
				zap.L().Warn("price refresh failed", zap.String("coin", coin.ID), zap.Error(err))
			}
		}(coin)
	}
}
