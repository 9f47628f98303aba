package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coinpulse/internal/bot"
	"coinpulse/internal/cache"
	"coinpulse/internal/config"
	"coinpulse/internal/handler"
	"coinpulse/internal/job"
	"coinpulse/internal/provider"
	"coinpulse/internal/service"
	"coinpulse/pkg/logger"
	"coinpulse/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	_ "coinpulse/docs"
)

const serviceName = "coinpulse"

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
	newDashboardServiceFunc = service.NewDashboardService
	newPricePollerFunc      = job.NewPricePoller
	newHistoryWatcherFunc   = job.NewHistoryWatcher
	startPollerFunc         = func(p *job.PricePoller, ctx context.Context) { go p.Start(ctx) }
	startWatcherFunc        = func(w *job.HistoryWatcher, ctx context.Context) { go w.Start(ctx) }
	startTelegramBotFunc    = func(token string, d bot.Dashboard) error { return bot.StartTelegramBot(token, d) }
	newHandlerFunc          = handler.New
	newRouterFunc           = gin.New
	setupSignalNotify       = signal.Notify
	waitForSignalFunc       = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc     = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc  = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           coinpulse API
// @version         1.0
// @description     Live cryptocurrency prices, daily candle history and coin search.

// @host      localhost:8080
// @BasePath  /
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

	// Redis is an optional response cache
	var redisClient service.RedisClient
	if client := initRedisFunc(ctx, cfg.RedisURL); client != nil {
		redisClient = client
		defer client.Close()
	}

	dashboard := newDashboardServiceFunc(
		tracer,
		newPriceProviderFunc(tracer),
		newCandleProviderFunc(tracer),
		newSearcherFunc(tracer),
		redisClient,
	)

	// Background jobs stop with ctx
	startPollerFunc(newPricePollerFunc(tracer, dashboard, 0), ctx)
	startWatcherFunc(newHistoryWatcherFunc(dashboard), ctx)

	if err := startTelegramBotFunc(cfg.TelegramBotToken, dashboard); err != nil {
		log.Warn("Telegram bot disabled", zap.Error(err))
	}

	h := newHandlerFunc(tracer, dashboard)

	r := newRouterFunc()
	r.Use(gin.Recovery(), handler.RequestLogger(), otelgin.Middleware(serviceName))

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Info("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exiting")
}
