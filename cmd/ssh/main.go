package main

import (
	"context"
	"fmt"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"coinpulse/internal/cache"
	"coinpulse/internal/config"
	"coinpulse/internal/job"
	"coinpulse/internal/provider"
	"coinpulse/internal/service"
	"coinpulse/internal/tui"
	"coinpulse/pkg/logger"
	"coinpulse/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	gossh "golang.org/x/crypto/ssh"
)

const serviceName = "coinpulse-ssh"

var (
	loadEnvFunc    = godotenv.Load
	loadConfigFunc = config.Load
	initLoggerFunc = logger.Init
	initRedisFunc  = cache.InitRedis
	initTracerFunc = tracing.InitTracer

	newPriceProviderFunc = func(tracer trace.Tracer) service.SpotPriceProvider {
		return provider.NewCoinbaseProvider(tracer)
	}
	newCandleProviderFunc = func(tracer trace.Tracer) service.CandleProvider {
		return provider.NewCoinbaseProvider(tracer)
	}
	newSearcherFunc = func(tracer trace.Tracer) service.CoinSearcher {
		return provider.NewCoinGeckoProvider(tracer)
	}
	newWishServerFunc = wish.NewServer
	setupSignalNotify = ossignal.Notify
	waitForSignalFunc = func(quit <-chan os.Signal) { <-quit }
)

// sessionFactory builds one dashboard per SSH session. Providers are shared;
// dashboard state, poller and history watcher live as long as the session.
type sessionFactory struct {
	tracer   trace.Tracer
	prices   service.SpotPriceProvider
	candles  service.CandleProvider
	searcher service.CoinSearcher
	redis    service.RedisClient
}

// start creates a dashboard whose background jobs stop when ctx is done.
func (f *sessionFactory) start(ctx context.Context) *service.DashboardService {
	dashboard := service.NewDashboardService(f.tracer, f.prices, f.candles, f.searcher, f.redis)
	go job.NewPricePoller(f.tracer, dashboard, 0).Start(ctx)
	go job.NewHistoryWatcher(dashboard).Start(ctx)
	return dashboard
}

func (f *sessionFactory) handler(s ssh.Session) (tea.Model, []tea.ProgramOption) {
	ctx := s.Context()
	dashboard := f.start(ctx)

	model := tui.NewAppModel(ctx, dashboard)
	pty, _, _ := s.Pty()
	model.SetSize(pty.Window.Width, pty.Window.Height)

	zap.L().Info("SSH dashboard session started", zap.String("user", s.User()), zap.String("remote", s.RemoteAddr().String()))
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// acceptPublicKey lets every key in; the fingerprint is only logged.
func acceptPublicKey(ctx ssh.Context, key ssh.PublicKey) bool {
	zap.L().Info("SSH key accepted", zap.String("user", ctx.User()), zap.String("fingerprint", gossh.FingerprintSHA256(key)))
	return true
}

func main() {
	_ = loadEnvFunc()
	cfg := loadConfigFunc()

	log, err := initLoggerFunc(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	cfg.LogWarnings(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx, serviceName)
	if err != nil {
		log.Fatal("failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Warn("error shutting down tracer provider", zap.Error(err))
		}
	}()

	var redisClient service.RedisClient
	if client := initRedisFunc(ctx, cfg.RedisURL); client != nil {
		redisClient = client
		defer client.Close()
	}

	sessions := &sessionFactory{
		tracer:   tracer,
		prices:   newPriceProviderFunc(tracer),
		candles:  newCandleProviderFunc(tracer),
		searcher: newSearcherFunc(tracer),
		redis:    redisClient,
	}

	// Build Wish SSH server
	addr := fmt.Sprintf("0.0.0.0:%d", cfg.SSHPort)

	srv, err := newWishServerFunc(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		wish.WithPublicKeyAuth(acceptPublicKey),
		wish.WithMiddleware(
			bubbletea.Middleware(sessions.handler),
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Fatal("failed to create SSH server", zap.Error(err))
	}

	if srv != nil {
		go func() {
			log.Info("SSH server listening", zap.String("addr", addr))
			if err := srv.ListenAndServe(); err != nil {
				log.Info("SSH server stopped", zap.Error(err))
			}
		}()
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Info("Shutting down SSH server...")

	cancel()

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("SSH server shutdown error", zap.Error(err))
		}
	}

	log.Info("SSH server exited")
}
