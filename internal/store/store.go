package store

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Ade-Adebayo/package-health-agent/pkg/types"
)

// Entry is one retained analysis report together with its metadata.
type Entry struct {
	ID        string
	Ecosystem types.Ecosystem
	Report    *types.OverallHealth
	CreatedAt time.Time
}

// Store is a thread-safe in-memory report store, keyed by report ID.
// A background goroutine (Run) periodically evicts entries older than the
// configured TTL.
type Store struct {
	mu   sync.RWMutex
	data map[string]*Entry
	ttl  time.Duration
	now  func() time.Time // injectable for deterministic tests
}

// New creates a Store with the given TTL.
func New(ttl time.Duration) *Store {
	return &Store{
		data: make(map[string]*Entry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Add stores a completed report and returns its generated ID.
// Callers must not modify report after calling Add.
func (s *Store) Add(eco types.Ecosystem, report *types.OverallHealth) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	id := fmt.Sprintf("%s-%d", eco, now.UnixNano())
	s.data[id] = &Entry{
		ID:        id,
		Ecosystem: eco,
		Report:    report,
		CreatedAt: now,
	}
	return id
}

// Get returns the Entry for the given report ID. Expired entries that have
// not been evicted yet are treated as absent.
func (s *Store) Get(id string) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[id]
	if !ok || !e.CreatedAt.After(s.now().Add(-s.ttl)) {
		return nil, false
	}
	return e, true
}

// List returns all live entries, newest first.
func (s *Store) List() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cutoff := s.now().Add(-s.ttl)
	out := make([]*Entry, 0, len(s.data))
	for _, e := range s.data {
		if e.CreatedAt.After(cutoff) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Count returns the total number of entries currently held, stale included.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Evict removes entries older than now minus TTL and returns how many were
// removed.
func (s *Store) Evict(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := now.Add(-s.ttl)
	removed := 0
	for id, e := range s.data {
		if !e.CreatedAt.After(cutoff) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

// Run starts the background TTL eviction loop. It ticks at half the TTL
// interval (minimum 1 second) so entries are evicted promptly. Run blocks
// until ctx is cancelled.
func (s *Store) Run(ctx context.Context) {
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.Evict(now); n > 0 {
				slog.Debug("store: evicted expired reports", "count", n)
			}
		}
	}
}
