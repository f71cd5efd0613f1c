package collect

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/squadpulse/squadpulse/agent/internal/scraper"
	"github.com/squadpulse/squadpulse/pkg/types"
)

// staleAfter is how long an athlete's readings stay eligible for shipping
// after their last update. An athlete absent from every feed for longer
// than this is dropped from cut snapshots until readings reappear.
const staleAfter = 30 * time.Minute

// Engine merges per-athlete readings from the GPS and wellness feed halves
// into complete snapshots. Each feed only knows part of the picture; the
// engine keeps the latest value per metric per athlete and cuts whole
// snapshots on the ship interval.
//
// All exported methods are safe for concurrent use.
type Engine struct {
	mu     sync.Mutex
	roster map[string]string
	states map[string]*athleteState
}

// athleteState holds the merged latest readings for one athlete.
type athleteState struct {
	values     map[string]float64
	lastUpdate time.Time
}

// NewEngine returns a ready-to-use Engine. roster maps athlete IDs to
// display names and may be nil.
func NewEngine(roster map[string]string) *Engine {
	return &Engine{
		roster: roster,
		states: make(map[string]*athleteState),
	}
}

// SetRoster replaces the ID-to-name mapping. Used on config hot-reload.
func (e *Engine) SetRoster(roster map[string]string) {
	e.mu.Lock()
	e.roster = roster
	e.mu.Unlock()
}

// Ingest merges one scrape result into the per-athlete state.
//
// now is passed explicitly so callers (and tests) control the clock without
// sleeping. Use time.Now() in production.
//
// Failed scrapes are ignored: the previous readings stay in place and age
// toward staleness instead of being zeroed.
func (e *Engine) Ingest(res *scraper.ScrapeResult, now time.Time) {
	if res.Err != nil {
		slog.Warn("collect: ignoring failed scrape",
			"source", res.SourceID, "err", res.Err)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for id, vals := range res.Samples {
		st, ok := e.states[id]
		if !ok {
			st = &athleteState{values: make(map[string]float64)}
			e.states[id] = st
		}
		for metric, v := range vals {
			st.values[metric] = v
		}
		st.lastUpdate = now
	}
}

// Cut builds a snapshot per live athlete from the merged state. Athletes
// whose last update is older than the staleness window are skipped. The
// result is sorted by athlete ID so shipping order is deterministic.
func (e *Engine) Cut(now time.Time) []*types.AthleteSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	cutoff := now.Add(-staleAfter)
	out := make([]*types.AthleteSnapshot, 0, len(e.states))
	for id, st := range e.states {
		if !st.lastUpdate.After(cutoff) {
			continue
		}
		out = append(out, &types.AthleteSnapshot{
			AthleteID:         id,
			Name:              e.roster[id],
			CapturedAt:        now,
			ACWR:              st.values["acwr"],
			FatigueZ:          st.values["fatigue_z"],
			SorenessZ:         st.values["soreness_z"],
			HighSpeedDistance: st.values["high_speed_distance"],
			Accelerations:     int(st.values["accelerations"]),
			Decelerations:     int(st.values["decelerations"]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AthleteID < out[j].AthleteID })
	return out
}

// Count returns the number of athletes currently tracked, stale included.
func (e *Engine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.states)
}
