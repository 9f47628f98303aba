package main

import (
	"context"
	"fmt"
	"os"

	"coinpulse/internal/cache"
	"coinpulse/internal/config"
	"coinpulse/internal/job"
	"coinpulse/internal/provider"
	"coinpulse/internal/service"
	"coinpulse/internal/tui"
	"coinpulse/pkg/logger"
	"coinpulse/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	loadEnvFunc    = godotenv.Load
	loadConfigFunc = config.Load
	initLoggerFunc = logger.Init
	initRedisFunc  = cache.InitRedis
	initTracerFunc = tracing.InitTracer
	runProgramFunc = func(m tea.Model) error {
		_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	}
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "coinpulse: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = loadEnvFunc()
	cfg := loadConfigFunc()

	// The terminal belongs to the dashboard; logs only go to LOG_FILE.
	log, err := initLoggerFunc(cfg.LogLevel, cfg.LogFile, logger.WithoutConsole())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	cfg.LogWarnings(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx, "coinpulse-dashboard")
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
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

	coinbase := provider.NewCoinbaseProvider(tracer)
	dashboard := service.NewDashboardService(tracer, coinbase, coinbase, provider.NewCoinGeckoProvider(tracer), redisClient)

	go job.NewPricePoller(tracer, dashboard, 0).Start(ctx)
	go job.NewHistoryWatcher(dashboard).Start(ctx)

	if err := runProgramFunc(tui.NewAppModel(ctx, dashboard)); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
