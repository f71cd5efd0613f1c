package ingest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/squadpulse/squadpulse/pkg/risk"
	"github.com/squadpulse/squadpulse/pkg/types"
	"github.com/squadpulse/squadpulse/server/internal/alerts"
	"github.com/squadpulse/squadpulse/server/internal/metrics"
	"github.com/squadpulse/squadpulse/server/internal/store"
)

// maxBodySize bounds an ingest request body. A snapshot is a handful of
// scalars; anything close to this limit is not a snapshot.
const maxBodySize = 64 << 10

// Handler accepts athlete snapshots from squadpulse-agent instances at
// POST /api/v1/ingest. It is the data-validation boundary: malformed
// snapshots are rejected here and never reach the risk engine.
type Handler struct {
	store  *store.Store
	squad  *store.SquadContext
	alerts *alerts.Engine
}

// New creates a Handler that writes accepted snapshots to st and runs
// each one through the alert engine under the current squad context.
func New(st *store.Store, squad *store.SquadContext, ae *alerts.Engine) *Handler {
	return &Handler{store: st, squad: squad, alerts: ae}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var snap types.AthleteSnapshot
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(&snap); err != nil {
		metrics.SnapshotsRejected.Inc()
		jsonErr(w, http.StatusBadRequest, fmt.Sprintf("decode snapshot: %v", err))
		return
	}

	if err := validate(&snap); err != nil {
		metrics.SnapshotsRejected.Inc()
		slog.Warn("ingest: rejected snapshot", "athlete", snap.AthleteID, "err", err)
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}

	if snap.CapturedAt.IsZero() {
		snap.CapturedAt = time.Now().UTC()
	}

	h.store.Put(&snap)
	metrics.SnapshotsIngested.Inc()

	// Evaluate the athlete fresh under the current squad context so
	// alerts and the risk gauge reflect this snapshot immediately.
	evals := risk.EvaluateSquad([]risk.AthleteDay{{
		AthleteID: snap.AthleteID,
		Name:      snap.Name,
		Metrics:   snap.Metrics(),
	}}, h.squad.Value())
	ev := evals[0]

	metrics.RecordEvaluation(ev)
	h.alerts.Evaluate(ev)

	slog.Debug("ingest: snapshot stored",
		"athlete", snap.AthleteID,
		"risk_pct", ev.Assessment.RiskPct,
		"band", ev.Assessment.Band,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]bool{"ok": true}) //nolint:errcheck
}

// validate enforces the snapshot contract. The risk engine accepts any
// finite inputs, so this is the only place malformed collected data is
// turned away.
func validate(s *types.AthleteSnapshot) error {
	if s.AthleteID == "" {
		return fmt.Errorf("athlete_id is required")
	}
	for name, v := range map[string]float64{
		"acwr":                  s.ACWR,
		"fatigue_z":             s.FatigueZ,
		"soreness_z":            s.SorenessZ,
		"high_speed_distance_m": s.HighSpeedDistance,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s is not a finite number", name)
		}
	}
	if s.HighSpeedDistance < 0 {
		return fmt.Errorf("high_speed_distance_m must not be negative")
	}
	if s.Accelerations < 0 || s.Decelerations < 0 {
		return fmt.Errorf("acceleration counts must not be negative")
	}
	return nil
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg}) //nolint:errcheck
}
