package handler

import (
	"context"

	"coinpulse/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// Dashboard is the state the HTTP surface reads and mutates.
type Dashboard interface {
	Snapshot() domain.Snapshot
	TrackedCoins() []domain.Coin
	Coin(id string) (domain.Coin, bool)
	Series(id string) domain.Series
	History(id string) domain.History
	Select(id string) error
	Add(coin domain.Coin) error
	Search(ctx context.Context, query string) []domain.Suggestion
	Subscribe() (<-chan domain.Event, func())
}

type Handler struct {
	tracer    trace.Tracer
	dashboard Dashboard
}

func New(tracer trace.Tracer, dashboard Dashboard) *Handler {
	return &Handler{
		tracer:    tracer,
		dashboard: dashboard,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/ws", h.Stream)

	api := r.Group("/api")
	api.GET("/state", h.GetState)
	api.GET("/coins", h.GetCoins)
	api.POST("/coins", h.AddCoin)
	api.PUT("/selection", h.SelectCoin)
	api.GET("/series/:id", h.GetSeries)
	api.GET("/history/:id", h.GetHistory)
	api.GET("/search", h.Search)
}
