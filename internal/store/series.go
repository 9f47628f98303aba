package store

import (
	"sync"
	"time"

	"coinpulse/internal/domain"
)

// SeriesStore keeps a bounded sliding window of labeled price samples per coin.
type SeriesStore struct {
	mu      sync.RWMutex
	max     int
	now     func() time.Time
	series  map[string]*domain.Series
	issued  map[string]uint64
	applied map[string]uint64
}

func NewSeriesStore(max int, now func() time.Time) *SeriesStore {
	if max <= 0 {
		max = domain.MaxSeriesPoints
	}
	if now == nil {
		now = time.Now
	}
	return &SeriesStore{
		max:     max,
		now:     now,
		series:  make(map[string]*domain.Series),
		issued:  make(map[string]uint64),
		applied: make(map[string]uint64),
	}
}

// Issue reserves a request token for the next fetch of coinID. Tokens grow
// monotonically per coin.
func (s *SeriesStore) Issue(coinID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.issued[coinID]++
	return s.issued[coinID]
}

// Append records one sample labeled with the current wall-clock time and
// truncates the window to the most recent entries.
func (s *SeriesStore) Append(coinID string, value *float64, errFlag bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.appendLocked(coinID, value, errFlag)
}

// AppendIssued appends like Append but drops completions that are older than
// the last applied token for the coin. It reports whether the sample was kept.
func (s *SeriesStore) AppendIssued(coinID string, token uint64, value *float64, errFlag bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token < s.applied[coinID] {
		return false
	}
	s.applied[coinID] = token
	s.appendLocked(coinID, value, errFlag)
	return true
}

func (s *SeriesStore) appendLocked(coinID string, value *float64, errFlag bool) {
	entry, ok := s.series[coinID]
	if !ok {
		entry = &domain.Series{}
		s.series[coinID] = entry
	}

	var v *float64
	if value != nil {
		cp := *value
		v = &cp
	}

	entry.Labels = append(entry.Labels, s.now().Format(domain.SeriesLabelLayout))
	entry.Values = append(entry.Values, v)
	if n := len(entry.Labels); n > s.max {
		// Copy into fresh slices so the evicted head can be collected.
		entry.Labels = append([]string(nil), entry.Labels[n-s.max:]...)
		entry.Values = append([]*float64(nil), entry.Values[n-s.max:]...)
	}
	entry.Error = errFlag
}

// Get returns a copy of the series for coinID.
func (s *SeriesStore) Get(coinID string) domain.Series {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.series[coinID]
	if !ok {
		return domain.Series{Labels: []string{}, Values: []*float64{}}
	}
	return copySeries(entry)
}

// All returns a copy of every series keyed by coin ID.
func (s *SeriesStore) All() map[string]domain.Series {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.Series, len(s.series))
	for id, entry := range s.series {
		out[id] = copySeries(entry)
	}
	return out
}

// copySeries also copies every sample, so callers never hold the store's
// own value cells.
func copySeries(entry *domain.Series) domain.Series {
	values := make([]*float64, len(entry.Values))
	for i, v := range entry.Values {
		if v != nil {
			n := *v
			values[i] = &n
		}
	}
	return domain.Series{
		Labels: append([]string{}, entry.Labels...),
		Values: values,
		Error:  entry.Error,
	}
}
