package domain

// Candle is a daily OHLCV bucket. Timestamp is the bucket start in Unix seconds.
type Candle struct {
	Timestamp int64   `json:"timestamp"`
	Low       float64 `json:"low"`
	High      float64 `json:"high"`
	Open      float64 `json:"open"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

type HistoryStatus string

const (
	HistoryIdle        HistoryStatus = "idle"
	HistoryLoading     HistoryStatus = "loading"
	HistoryReady       HistoryStatus = "ready"
	HistoryUnavailable HistoryStatus = "unavailable"
)

// History is the candle state of a single coin.
type History struct {
	Status  HistoryStatus `json:"status"`
	Candles []Candle      `json:"candles,omitempty"`
}
