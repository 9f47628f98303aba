package domain

import "time"

const (
	// PollInterval is the spot price polling period.
	PollInterval = 5 * time.Second

	// MaxSeriesPoints bounds every coin's live series.
	MaxSeriesPoints = 120

	// HistoryWindow is the trailing window requested for daily candles.
	HistoryWindow = 10 * 24 * time.Hour

	// CandleGranularitySecs is one day.
	CandleGranularitySecs = 86400

	// MaxSuggestions caps a search result list.
	MaxSuggestions = 5

	// SeriesLabelLayout formats the wall-clock label of a live sample.
	SeriesLabelLayout = "15:04:05"
)

// Series is the bounded live price window of one coin. Labels and Values are
// always the same length; a nil value marks a failed fetch.
type Series struct {
	Labels []string   `json:"labels"`
	Values []*float64 `json:"values"`
	Error  bool       `json:"error"`
}

// Latest returns the most recent sample value, or nil when the series is
// empty or the last fetch failed.
func (s Series) Latest() *float64 {
	if len(s.Values) == 0 {
		return nil
	}
	return s.Values[len(s.Values)-1]
}

type EventKind string

const (
	EventCoinsChanged       EventKind = "coins_changed"
	EventSelectionChanged   EventKind = "selection_changed"
	EventSeriesUpdated      EventKind = "series_updated"
	EventHistoryUpdated     EventKind = "history_updated"
	EventSuggestionsChanged EventKind = "suggestions_changed"
)

// Event notifies subscribers that part of the dashboard state changed.
type Event struct {
	Kind   EventKind `json:"kind"`
	CoinID string    `json:"coin_id,omitempty"`
}

// Snapshot is an immutable copy of the dashboard state.
type Snapshot struct {
	Coins       []Coin             `json:"coins"`
	ActiveID    string             `json:"active_id"`
	Query       string             `json:"query"`
	Suggestions []Suggestion       `json:"suggestions"`
	Series      map[string]Series  `json:"series"`
	History     map[string]History `json:"history"`
}

// ActiveCoin returns the coin currently on display.
func (s Snapshot) ActiveCoin() (Coin, bool) {
	for _, c := range s.Coins {
		if c.ID == s.ActiveID {
			return c, true
		}
	}
	return Coin{}, false
}
