package store

import (
	"sort"
	"sync"

	"github.com/squadpulse/squadpulse/pkg/risk"
)

// SquadContext holds the two global evaluation toggles: the squad-wide
// match-congestion flag and the set of athletes in a return-to-play
// protocol. It is seeded from config and mutable at runtime through the
// REST API; every read returns an independent copy so evaluations never
// share the underlying map.
type SquadContext struct {
	mu         sync.RWMutex
	congestion bool
	rtp        map[string]bool
}

// NewSquadContext creates a SquadContext with the given initial state.
func NewSquadContext(congestion bool, returnToPlay []string) *SquadContext {
	c := &SquadContext{}
	c.Set(congestion, returnToPlay)
	return c
}

// Value returns the current context as engine input. The returned map is
// a copy — callers may hold it across a full squad evaluation without
// seeing concurrent updates.
func (c *SquadContext) Value() risk.Context {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rtp := make(map[string]bool, len(c.rtp))
	for id := range c.rtp {
		rtp[id] = true
	}
	return risk.Context{MatchCongestion: c.congestion, ReturnToPlay: rtp}
}

// Set replaces both toggles atomically.
func (c *SquadContext) Set(congestion bool, returnToPlay []string) {
	rtp := make(map[string]bool, len(returnToPlay))
	for _, id := range returnToPlay {
		if id != "" {
			rtp[id] = true
		}
	}

	c.mu.Lock()
	c.congestion = congestion
	c.rtp = rtp
	c.mu.Unlock()
}

// ReturnToPlayIDs returns the athlete IDs in protocol, sorted so API
// responses are deterministic.
func (c *SquadContext) ReturnToPlayIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.rtp))
	for id := range c.rtp {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
