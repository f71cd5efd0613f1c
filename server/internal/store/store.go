package store

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/squadpulse/squadpulse/pkg/types"
)

// Entry is a snapshot together with the time it was last received.
type Entry struct {
	Snapshot  *types.AthleteSnapshot
	UpdatedAt time.Time

	// seq preserves first-seen order so List is deterministic — the squad
	// board's stable ranking tie-breaks on this order.
	seq uint64
}

// Store is a thread-safe in-memory store of the latest snapshot per
// athlete. A background goroutine (Run) periodically evicts entries that
// have not been updated within the configured TTL.
type Store struct {
	mu      sync.RWMutex
	data    map[string]*Entry
	ttl     time.Duration
	nextSeq uint64
	now     func() time.Time // injectable for deterministic tests
}

// New creates a Store with the given TTL.
func New(ttl time.Duration) *Store {
	return &Store{
		data: make(map[string]*Entry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Put stores or replaces the snapshot for snap.AthleteID. Replacing keeps
// the athlete's original first-seen position. Callers must not modify
// snap after calling Put.
func (s *Store) Put(snap *types.AthleteSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.nextSeq
	if prev, ok := s.data[snap.AthleteID]; ok {
		seq = prev.seq
	} else {
		s.nextSeq++
	}
	s.data[snap.AthleteID] = &Entry{
		Snapshot:  snap,
		UpdatedAt: s.now(),
		seq:       seq,
	}
}

// Get returns the Entry for the given athlete ID and a boolean indicating
// whether an entry was found. The entry may be stale if TTL has elapsed.
func (s *Store) Get(athleteID string) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[athleteID]
	return e, ok
}

// List returns all entries whose UpdatedAt is within the TTL, in
// first-seen order. Stale entries that have not yet been evicted are
// excluded.
func (s *Store) List() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cutoff := s.now().Add(-s.ttl)
	out := make([]*Entry, 0, len(s.data))
	for _, e := range s.data {
		if e.UpdatedAt.After(cutoff) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// Count returns the total number of entries currently held, including stale ones.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// TTL returns the configured entry lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Evict removes entries whose UpdatedAt is older than now minus TTL.
// It returns the number of entries removed.
func (s *Store) Evict(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := now.Add(-s.ttl)
	removed := 0
	for id, e := range s.data {
		if !e.UpdatedAt.After(cutoff) {
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
				slog.Debug("store: evicted stale snapshots", "count", n)
			}
		}
	}
}
