package api

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/squadpulse/squadpulse/pkg/risk"
	"github.com/squadpulse/squadpulse/pkg/types"
	"github.com/squadpulse/squadpulse/server/internal/alerts"
	"github.com/squadpulse/squadpulse/server/internal/metrics"
	"github.com/squadpulse/squadpulse/server/internal/store"
)

// Handler is the HTTP handler for the read side of /api/v1/*.
// It evaluates the snapshot store under the current squad context on every
// request and returns JSON responses.
type Handler struct {
	store  *store.Store
	squad  *store.SquadContext
	alerts *alerts.Engine
	mux    *http.ServeMux
}

// New creates a Handler wired to the given store, squad context and alert
// engine, and registers all routes.
func New(st *store.Store, squad *store.SquadContext, ae *alerts.Engine) *Handler {
	h := &Handler{store: st, squad: squad, alerts: ae, mux: http.NewServeMux()}

	h.mux.HandleFunc("/api/v1/overview", h.overview)
	h.mux.HandleFunc("/api/v1/squad", h.board)
	h.mux.HandleFunc("/api/v1/athletes/", h.getAthlete) // subtree — extracts {id}
	h.mux.HandleFunc("/api/v1/context", h.context)
	h.mux.HandleFunc("/api/v1/alerts", h.listAlerts)
	h.mux.HandleFunc("/api/v1/import", h.importCSV)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// overview returns GET /api/v1/overview — squad-wide risk summary.
func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	evals := evaluate(h.store, h.squad)
	resp := OverviewResponse{
		AthleteCount: len(evals),
		AlertCount:   len(h.alerts.Active()),
	}

	if len(evals) == 0 {
		jsonResp(w, http.StatusOK, resp)
		return
	}

	var total float64
	for _, ev := range evals {
		total += ev.Assessment.RiskPct
		switch ev.Assessment.Band {
		case risk.BandHigh:
			resp.HighCount++
		case risk.BandModerate:
			resp.ModerateCount++
		case risk.BandMonitor:
			resp.MonitorCount++
		default:
			resp.LowCount++
		}
	}
	resp.AverageRiskPct = total / float64(len(evals))

	jsonResp(w, http.StatusOK, resp)
}

// board returns GET /api/v1/squad — all live athletes ranked by risk.
func (h *Handler) board(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, BuildBoard(h.store, h.squad))
}

// getAthlete returns GET /api/v1/athletes/{id} — one athlete's assessment.
func (h *Handler) getAthlete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/athletes/")
	if id == "" {
		h.board(w, r)
		return
	}

	e, ok := h.store.Get(id)
	if !ok {
		jsonErr(w, http.StatusNotFound, "athlete not found")
		return
	}
	// Exclude stale entries — treat them as not found.
	if time.Since(e.UpdatedAt) > h.store.TTL() {
		jsonErr(w, http.StatusNotFound, "athlete not found")
		return
	}

	ctx := h.squad.Value()
	evals := risk.EvaluateSquad([]risk.AthleteDay{{
		AthleteID: e.Snapshot.AthleteID,
		Name:      e.Snapshot.Name,
		Metrics:   e.Snapshot.Metrics(),
	}}, ctx)

	jsonResp(w, http.StatusOK, toAthleteResponse(evals[0], e.UpdatedAt))
}

// context serves GET and PUT /api/v1/context — the squad evaluation toggles.
func (h *Handler) context(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		jsonResp(w, http.StatusOK, h.contextResponse())

	case http.MethodPut:
		var req ContextResponse
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonErr(w, http.StatusBadRequest, fmt.Sprintf("decode context: %v", err))
			return
		}
		h.squad.Set(req.MatchCongestion, req.ReturnToPlay)
		jsonResp(w, http.StatusOK, h.contextResponse())

	default:
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// listAlerts returns GET /api/v1/alerts — firing and recently resolved alerts.
func (h *Handler) listAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, h.alerts.Active())
}

// importCSV handles POST /api/v1/import — bulk snapshot ingest from a CSV
// export. The first row must be a header naming the columns; rows that fail
// validation are reported individually and do not abort the import.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rd := csv.NewReader(r.Body)
	rd.TrimLeadingSpace = true

	header, err := rd.Read()
	if err != nil {
		jsonErr(w, http.StatusBadRequest, fmt.Sprintf("read csv header: %v", err))
		return
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := cols["athlete_id"]; !ok {
		jsonErr(w, http.StatusBadRequest, "csv header missing athlete_id column")
		return
	}

	resp := ImportResponse{Errors: []ImportRowError{}}
	ctx := h.squad.Value()
	line := 1
	for {
		line++
		rec, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			resp.Errors = append(resp.Errors, ImportRowError{Line: line, Error: err.Error()})
			continue
		}

		snap, err := parseRow(cols, rec)
		if err != nil {
			metrics.SnapshotsRejected.Inc()
			resp.Errors = append(resp.Errors, ImportRowError{Line: line, Error: err.Error()})
			continue
		}

		h.store.Put(snap)
		metrics.SnapshotsIngested.Inc()

		evals := risk.EvaluateSquad([]risk.AthleteDay{{
			AthleteID: snap.AthleteID,
			Name:      snap.Name,
			Metrics:   snap.Metrics(),
		}}, ctx)
		metrics.RecordEvaluation(evals[0])
		h.alerts.Evaluate(evals[0])

		resp.Imported++
	}

	jsonResp(w, http.StatusOK, resp)
}

// --- board ------------------------------------------------------------------

// BuildBoard evaluates every live athlete under the current squad context
// and returns the ranked board. Shared with the WebSocket hub so REST and
// push clients see identical payloads.
func BuildBoard(st *store.Store, squad *store.SquadContext) BoardResponse {
	entries := st.List()
	days := make([]risk.AthleteDay, 0, len(entries))
	updated := make(map[string]time.Time, len(entries))
	for _, e := range entries {
		days = append(days, risk.AthleteDay{
			AthleteID: e.Snapshot.AthleteID,
			Name:      e.Snapshot.Name,
			Metrics:   e.Snapshot.Metrics(),
		})
		updated[e.Snapshot.AthleteID] = e.UpdatedAt
	}

	evals := risk.EvaluateSquad(days, squad.Value())
	athletes := make([]AthleteResponse, 0, len(evals))
	for _, ev := range evals {
		athletes = append(athletes, toAthleteResponse(ev, updated[ev.AthleteID]))
	}

	return BoardResponse{
		Athletes: athletes,
		Context: ContextResponse{
			MatchCongestion: squad.Value().MatchCongestion,
			ReturnToPlay:    squad.ReturnToPlayIDs(),
		},
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// --- helpers ----------------------------------------------------------------

func (h *Handler) contextResponse() ContextResponse {
	return ContextResponse{
		MatchCongestion: h.squad.Value().MatchCongestion,
		ReturnToPlay:    h.squad.ReturnToPlayIDs(),
	}
}

// evaluate runs the full squad evaluation over the live store contents.
func evaluate(st *store.Store, squad *store.SquadContext) []risk.Evaluation {
	entries := st.List()
	days := make([]risk.AthleteDay, 0, len(entries))
	for _, e := range entries {
		days = append(days, risk.AthleteDay{
			AthleteID: e.Snapshot.AthleteID,
			Name:      e.Snapshot.Name,
			Metrics:   e.Snapshot.Metrics(),
		})
	}
	return risk.EvaluateSquad(days, squad.Value())
}

// toAthleteResponse maps an evaluation to its JSON representation.
func toAthleteResponse(ev risk.Evaluation, updatedAt time.Time) AthleteResponse {
	a := ev.Assessment
	drivers := a.Drivers
	if drivers == nil {
		drivers = []string{}
	}
	return AthleteResponse{
		AthleteID:         ev.AthleteID,
		Name:              ev.Name,
		Risk:              a.Risk,
		RiskPct:           a.RiskPct,
		Band:              a.Band.String(),
		Color:             a.Band.Color(),
		Advisory:          a.Advisory,
		Drivers:           drivers,
		Hints:             computeHints(ev.Metrics, a),
		ACWR:              ev.Metrics.ACWR,
		FatigueZ:          ev.Metrics.FatigueZ,
		SorenessZ:         ev.Metrics.SorenessZ,
		HighSpeedDistance: ev.Metrics.HighSpeedDistance,
		Accelerations:     ev.Metrics.Accelerations,
		Decelerations:     ev.Metrics.Decelerations,
		ReturnToPlay:      ev.Metrics.ReturnToPlay,
		LastSeen:          updatedAt.UTC().Format(time.RFC3339),
	}
}

// parseRow converts one CSV record into a snapshot, enforcing the same
// validation rules as the ingest endpoint.
func parseRow(cols map[string]int, rec []string) (*types.AthleteSnapshot, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	snap := &types.AthleteSnapshot{
		AthleteID:  field("athlete_id"),
		Name:       field("name"),
		CapturedAt: time.Now().UTC(),
	}
	if snap.AthleteID == "" {
		return nil, fmt.Errorf("athlete_id is required")
	}

	var err error
	parse := func(name string, dst *float64) {
		if err != nil {
			return
		}
		raw := field(name)
		if raw == "" {
			return
		}
		v, perr := strconv.ParseFloat(raw, 64)
		if perr != nil {
			err = fmt.Errorf("%s: %q is not a number", name, raw)
			return
		}
		*dst = v
	}
	parseInt := func(name string, dst *int) {
		if err != nil {
			return
		}
		raw := field(name)
		if raw == "" {
			return
		}
		v, perr := strconv.Atoi(raw)
		if perr != nil {
			err = fmt.Errorf("%s: %q is not an integer", name, raw)
			return
		}
		if v < 0 {
			err = fmt.Errorf("%s must not be negative", name)
			return
		}
		*dst = v
	}

	parse("acwr", &snap.ACWR)
	parse("fatigue_z", &snap.FatigueZ)
	parse("soreness_z", &snap.SorenessZ)
	parse("high_speed_distance_m", &snap.HighSpeedDistance)
	parseInt("accelerations", &snap.Accelerations)
	parseInt("decelerations", &snap.Decelerations)
	if err != nil {
		return nil, err
	}
	if snap.HighSpeedDistance < 0 {
		return nil, fmt.Errorf("high_speed_distance_m must not be negative")
	}

	return snap, nil
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}
