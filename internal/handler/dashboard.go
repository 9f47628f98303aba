package handler

import (
	"errors"
	"net/http"
	"strings"

	"coinpulse/internal/domain"
	"coinpulse/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type addCoinRequest struct {
	ID     string `json:"id" binding:"required"`
	Name   string `json:"name"`
	Ticker string `json:"ticker" binding:"required"`
}

type selectCoinRequest struct {
	ID string `json:"id" binding:"required"`
}

// GetState godoc
// @Summary      Get the dashboard state
// @Description  Returns tracked coins, active selection, search state, live series and candle history
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  domain.Snapshot
// @Router       /api/state [get]
func (h *Handler) GetState(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-state")
	defer span.End()

	c.JSON(http.StatusOK, h.dashboard.Snapshot())
}

// GetCoins godoc
// @Summary      List tracked coins
// @Tags         coins
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/coins [get]
func (h *Handler) GetCoins(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-coins")
	defer span.End()

	snap := h.dashboard.Snapshot()
	c.JSON(http.StatusOK, gin.H{"coins": snap.Coins, "active_id": snap.ActiveID})
}

// AddCoin godoc
// @Summary      Track a coin and select it
// @Description  Adds the coin when its id is new; always makes it the active coin and clears the search
// @Tags         coins
// @Accept       json
// @Produce      json
// @Param        coin  body  addCoinRequest  true  "Coin descriptor"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/coins [post]
func (h *Handler) AddCoin(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.add-coin")
	defer span.End()

	var req addCoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	span.SetAttributes(attribute.String("coin", req.ID))

	if err := h.dashboard.Add(domain.Coin{ID: req.ID, Name: req.Name, Ticker: req.Ticker}); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap := h.dashboard.Snapshot()
	c.JSON(http.StatusOK, gin.H{"coins": snap.Coins, "active_id": snap.ActiveID})
}

// SelectCoin godoc
// @Summary      Change the active coin
// @Tags         coins
// @Accept       json
// @Produce      json
// @Param        selection  body  selectCoinRequest  true  "Coin id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/selection [put]
func (h *Handler) SelectCoin(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.select-coin")
	defer span.End()

	var req selectCoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	span.SetAttributes(attribute.String("coin", req.ID))

	if err := h.dashboard.Select(req.ID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrUnknownCoin) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"active_id": req.ID})
}

// GetSeries godoc
// @Summary      Get the live price series of a coin
// @Description  Returns up to 120 labeled samples; a null value marks a failed fetch
// @Tags         prices
// @Produce      json
// @Param        id  path  string  true  "Coin id (e.g., bitcoin)"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /api/series/{id} [get]
func (h *Handler) GetSeries(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-series")
	defer span.End()

	coin, ok := h.trackedCoin(c)
	if !ok {
		return
	}
	span.SetAttributes(attribute.String("coin", coin.ID))

	series := h.dashboard.Series(coin.ID)
	c.JSON(http.StatusOK, gin.H{
		"coin":   coin,
		"labels": series.Labels,
		"values": series.Values,
		"error":  series.Error,
		"latest": series.Latest(),
	})
}

// GetHistory godoc
// @Summary      Get daily candle history of a coin
// @Description  Returns the 10-day daily OHLCV history, sorted ascending
// @Tags         prices
// @Produce      json
// @Param        id  path  string  true  "Coin id (e.g., bitcoin)"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /api/history/{id} [get]
func (h *Handler) GetHistory(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-history")
	defer span.End()

	coin, ok := h.trackedCoin(c)
	if !ok {
		return
	}
	span.SetAttributes(attribute.String("coin", coin.ID))

	history := h.dashboard.History(coin.ID)
	c.JSON(http.StatusOK, gin.H{
		"coin":    coin,
		"status":  history.Status,
		"candles": history.Candles,
	})
}

// Search godoc
// @Summary      Search coins
// @Description  Typeahead search over the shared dashboard: the query and its suggestions replace the dashboard's search state seen by every client. An empty query clears suggestions, no match yields a single not-found entry
// @Tags         coins
// @Produce      json
// @Param        q  query  string  false  "Free-text query"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/search [get]
func (h *Handler) Search(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.search")
	defer span.End()

	query := c.Query("q")
	span.SetAttributes(attribute.String("query", query))

	suggestions := h.dashboard.Search(ctx, query)
	c.JSON(http.StatusOK, gin.H{"query": query, "suggestions": suggestions})
}

func (h *Handler) trackedCoin(c *gin.Context) (domain.Coin, bool) {
	id := strings.ToLower(strings.TrimSpace(c.Param("id")))
	coin, ok := h.dashboard.Coin(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error":         "coin is not tracked: " + id,
			"tracked_coins": h.dashboard.TrackedCoins(),
		})
		return domain.Coin{}, false
	}
	return coin, true
}
