package store

import (
	"sync"
	"testing"
	"time"

	"github.com/squadpulse/squadpulse/pkg/types"
)

func snap(id string) *types.AthleteSnapshot {
	return &types.AthleteSnapshot{AthleteID: id, ACWR: 1.1}
}

// fixedClock returns a func() time.Time that always returns t.
func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestPutAndGet(t *testing.T) {
	st := New(5 * time.Minute)
	st.Put(snap("ath-1"))

	e, ok := st.Get("ath-1")
	if !ok {
		t.Fatal("Get: expected entry, got none")
	}
	if e.Snapshot.AthleteID != "ath-1" {
		t.Errorf("AthleteID: got %q, want ath-1", e.Snapshot.AthleteID)
	}
}

func TestGet_Missing(t *testing.T) {
	st := New(5 * time.Minute)
	if _, ok := st.Get("unknown"); ok {
		t.Fatal("Get on empty store: expected false, got true")
	}
}

func TestPut_Overwrites(t *testing.T) {
	st := New(5 * time.Minute)
	s1 := &types.AthleteSnapshot{AthleteID: "ath", ACWR: 1.0}
	s2 := &types.AthleteSnapshot{AthleteID: "ath", ACWR: 1.7}

	st.Put(s1)
	st.Put(s2)

	e, ok := st.Get("ath")
	if !ok {
		t.Fatal("Get: expected entry after two Puts")
	}
	if e.Snapshot.ACWR != 1.7 {
		t.Errorf("ACWR: got %v, want 1.7", e.Snapshot.ACWR)
	}
}

func TestList_FirstSeenOrder(t *testing.T) {
	st := New(5 * time.Minute)
	for _, id := range []string{"c", "a", "b"} {
		st.Put(snap(id))
	}
	// Re-putting does not move an athlete to the back.
	st.Put(snap("c"))

	entries := st.List()
	want := []string{"c", "a", "b"}
	if len(entries) != len(want) {
		t.Fatalf("List: got %d entries, want %d", len(entries), len(want))
	}
	for i, id := range want {
		if entries[i].Snapshot.AthleteID != id {
			t.Errorf("List[%d] = %q, want %q", i, entries[i].Snapshot.AthleteID, id)
		}
	}
}

func TestList_ExcludesStale(t *testing.T) {
	base := time.Now()
	st := New(5 * time.Minute)

	st.now = fixedClock(base.Add(-10 * time.Minute)) // stale
	st.Put(snap("old"))

	st.now = fixedClock(base) // live
	st.Put(snap("new"))

	st.now = fixedClock(base)
	entries := st.List()

	if len(entries) != 1 {
		t.Fatalf("List: got %d entries, want 1", len(entries))
	}
	if entries[0].Snapshot.AthleteID != "new" {
		t.Errorf("List[0].AthleteID: got %q, want new", entries[0].Snapshot.AthleteID)
	}
}

func TestEvict_RemovesStale(t *testing.T) {
	base := time.Now()
	st := New(5 * time.Minute)

	st.now = fixedClock(base.Add(-10 * time.Minute))
	st.Put(snap("old1"))
	st.Put(snap("old2"))

	st.now = fixedClock(base)
	st.Put(snap("live"))

	if removed := st.Evict(base); removed != 2 {
		t.Errorf("Evict: removed %d, want 2", removed)
	}
	if st.Count() != 1 {
		t.Errorf("Count after evict: got %d, want 1", st.Count())
	}
}

func TestEvict_NoOp_AllLive(t *testing.T) {
	base := time.Now()
	st := New(5 * time.Minute)

	st.now = fixedClock(base)
	st.Put(snap("ath"))

	if removed := st.Evict(base); removed != 0 {
		t.Errorf("Evict on live entry: removed %d, want 0", removed)
	}
}

func TestConcurrentPuts(t *testing.T) {
	st := New(5 * time.Minute)
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.Put(snap("concurrent"))
		}()
	}
	wg.Wait()

	if st.Count() != 1 {
		t.Errorf("Count after concurrent puts: got %d, want 1", st.Count())
	}
}

func TestConcurrentMixedOps(t *testing.T) {
	st := New(5 * time.Minute)
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			st.Put(snap("ath-a"))
		}()
		go func() {
			defer wg.Done()
			st.List()
		}()
	}
	wg.Wait()
}

func TestSquadContext_Resolution(t *testing.T) {
	c := NewSquadContext(true, []string{"ath-1", "ath-2"})

	ctx := c.Value()
	if !ctx.MatchCongestion {
		t.Error("MatchCongestion: got false, want true")
	}
	if !ctx.ReturnToPlay["ath-1"] || !ctx.ReturnToPlay["ath-2"] {
		t.Errorf("ReturnToPlay: got %v, want ath-1 and ath-2", ctx.ReturnToPlay)
	}

	// Mutating the returned map must not affect the held context.
	ctx.ReturnToPlay["ath-3"] = true
	if c.Value().ReturnToPlay["ath-3"] {
		t.Error("Value() must return a copy of the return-to-play set")
	}
}

func TestSquadContext_Set(t *testing.T) {
	c := NewSquadContext(false, nil)
	c.Set(true, []string{"ath-9", ""})

	ctx := c.Value()
	if !ctx.MatchCongestion {
		t.Error("MatchCongestion after Set: got false, want true")
	}
	if len(ctx.ReturnToPlay) != 1 || !ctx.ReturnToPlay["ath-9"] {
		t.Errorf("ReturnToPlay after Set: got %v, want just ath-9 (empty IDs dropped)", ctx.ReturnToPlay)
	}

	ids := c.ReturnToPlayIDs()
	if len(ids) != 1 || ids[0] != "ath-9" {
		t.Errorf("ReturnToPlayIDs: got %v, want [ath-9]", ids)
	}
}
