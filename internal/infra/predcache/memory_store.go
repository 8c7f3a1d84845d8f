package predcache

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/carbon-footprint/internal/domain/footprint"
	"github.com/yanqian/carbon-footprint/pkg/util"
)

const (
	// DefaultMaxEntries bounds the store when the caller passes no limit.
	DefaultMaxEntries = 10000
	sweepInterval     = time.Minute
)

type entry struct {
	value     float64
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && e.expiresAt.Before(now)
}

// MemoryStore is an in-process estimate cache. Expired entries are swept on
// write and the entry count never exceeds maxEntries.
type MemoryStore struct {
	mu         sync.RWMutex
	entries    map[string]entry
	maxEntries int
	now        util.Clock
	lastSweep  time.Time
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore(maxEntries int) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &MemoryStore{
		entries:    make(map[string]entry),
		maxEntries: maxEntries,
		now:        util.NowUTC,
	}
}

// Get implements footprint.Cache.
func (s *MemoryStore) Get(_ context.Context, key string) (float64, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return 0, false, nil
	}
	if e.expired(s.now()) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return 0, false, nil
	}
	return e.value, true, nil
}

// Save caches the estimate with optional TTL.
func (s *MemoryStore) Save(_ context.Context, key string, value float64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	_, exists := s.entries[key]
	full := !exists && len(s.entries) >= s.maxEntries
	if full || now.Sub(s.lastSweep) >= sweepInterval {
		s.sweepLocked(now)
	}
	if !exists && len(s.entries) >= s.maxEntries {
		s.evictLocked(len(s.entries) - s.maxEntries + 1)
	}

	exp := time.Time{}
	if ttl > 0 {
		exp = now.Add(ttl)
	}
	s.entries[key] = entry{value: value, expiresAt: exp}
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) sweepLocked(now time.Time) {
	s.lastSweep = now
	for key, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, key)
		}
	}
}

// evictLocked drops n live entries. Estimates are cheap to recompute, so
// the victims are whatever map iteration yields first.
func (s *MemoryStore) evictLocked(n int) {
	for key := range s.entries {
		if n <= 0 {
			return
		}
		delete(s.entries, key)
		n--
	}
}

var _ footprint.Cache = (*MemoryStore)(nil)
