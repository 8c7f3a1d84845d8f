package metrics

import "sync/atomic"

// PredictionStats counts estimator outcomes since process start.
type PredictionStats struct {
	requests  atomic.Int64
	failures  atomic.Int64
	cacheHits atomic.Int64
}

// StatsSnapshot is the serializable view of PredictionStats.
type StatsSnapshot struct {
	Requests  int64 `json:"requests"`
	Failures  int64 `json:"failures"`
	CacheHits int64 `json:"cacheHits"`
}

// NewPredictionStats returns zeroed counters.
func NewPredictionStats() *PredictionStats {
	return &PredictionStats{}
}

func (s *PredictionStats) RecordRequest()  { s.requests.Add(1) }
func (s *PredictionStats) RecordFailure()  { s.failures.Add(1) }
func (s *PredictionStats) RecordCacheHit() { s.cacheHits.Add(1) }

// Snapshot reads the current counter values.
func (s *PredictionStats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Requests:  s.requests.Load(),
		Failures:  s.failures.Load(),
		CacheHits: s.cacheHits.Load(),
	}
}

// IsZero reports whether nothing has been recorded yet.
func (s StatsSnapshot) IsZero() bool {
	return s.Requests == 0 && s.Failures == 0 && s.CacheHits == 0
}
