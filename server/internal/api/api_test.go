package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/squadpulse/squadpulse/pkg/types"
	"github.com/squadpulse/squadpulse/server/internal/alerts"
	"github.com/squadpulse/squadpulse/server/internal/api"
	"github.com/squadpulse/squadpulse/server/internal/config"
	"github.com/squadpulse/squadpulse/server/internal/store"
)

// --- test helpers -----------------------------------------------------------

func newHandler(squad *store.SquadContext, snaps ...*types.AthleteSnapshot) http.Handler {
	st := store.New(5 * time.Minute)
	for _, s := range snaps {
		st.Put(s)
	}
	if squad == nil {
		squad = store.NewSquadContext(false, nil)
	}
	return api.New(st, squad, alerts.New(config.AlertsConfig{}))
}

func snap(id string, acwr, hsd float64) *types.AthleteSnapshot {
	return &types.AthleteSnapshot{
		AthleteID:         id,
		Name:              "Athlete " + id,
		CapturedAt:        time.Now().UTC(),
		ACWR:              acwr,
		HighSpeedDistance: hsd,
	}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode JSON: %v (body: %s)", err, rr.Body.String())
	}
}

// --- /api/v1/overview -------------------------------------------------------

func TestOverview_EmptyStore(t *testing.T) {
	h := newHandler(nil)
	rr := get(t, h, "/api/v1/overview")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	var resp map[string]interface{}
	decode(t, rr, &resp)

	if resp["athlete_count"].(float64) != 0 {
		t.Errorf("athlete_count: got %v, want 0", resp["athlete_count"])
	}
	if resp["average_risk_pct"].(float64) != 0 {
		t.Errorf("average_risk_pct: got %v, want 0", resp["average_risk_pct"])
	}
}

func TestOverview_BandCounts(t *testing.T) {
	h := newHandler(nil,
		snap("a", 1.0, 0),    // no points → low
		snap("b", 1.7, 1300), // 0.40+0.20 = 0.60 → moderate
		snap("c", 1.4, 900),  // 0.25+0.10 = 0.35 → monitor
	)
	rr := get(t, h, "/api/v1/overview")
	var resp map[string]interface{}
	decode(t, rr, &resp)

	if resp["athlete_count"].(float64) != 3 {
		t.Errorf("athlete_count: got %v, want 3", resp["athlete_count"])
	}
	if resp["low_count"].(float64) != 1 {
		t.Errorf("low_count: got %v, want 1", resp["low_count"])
	}
	if resp["moderate_count"].(float64) != 1 {
		t.Errorf("moderate_count: got %v, want 1", resp["moderate_count"])
	}
	if resp["monitor_count"].(float64) != 1 {
		t.Errorf("monitor_count: got %v, want 1", resp["monitor_count"])
	}
	// avg of 0, 60, 35
	want := (0.0 + 60.0 + 35.0) / 3
	if got := resp["average_risk_pct"].(float64); got < want-0.01 || got > want+0.01 {
		t.Errorf("average_risk_pct: got %v, want %v", got, want)
	}
}

func TestOverview_MethodNotAllowed(t *testing.T) {
	h := newHandler(nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/overview", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status: got %d, want 405", rr.Code)
	}
}

// --- /api/v1/squad ----------------------------------------------------------

func TestBoard_RankedDescending(t *testing.T) {
	h := newHandler(nil,
		snap("low", 1.0, 0),
		snap("high", 1.7, 1300),
		snap("mid", 1.4, 900),
	)
	rr := get(t, h, "/api/v1/squad")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	var resp map[string]interface{}
	decode(t, rr, &resp)

	athletes := resp["athletes"].([]interface{})
	if len(athletes) != 3 {
		t.Fatalf("athletes: got %d, want 3", len(athletes))
	}
	var ids []string
	for _, a := range athletes {
		ids = append(ids, a.(map[string]interface{})["athlete_id"].(string))
	}
	want := []string{"high", "mid", "low"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ranking: got %v, want %v", ids, want)
		}
	}
	if resp["generated_at"] == "" || resp["generated_at"] == nil {
		t.Error("generated_at: missing")
	}
}

func TestBoard_FieldsPresent(t *testing.T) {
	h := newHandler(nil, snap("a1", 1.7, 1300))
	rr := get(t, h, "/api/v1/squad")
	var resp map[string]interface{}
	decode(t, rr, &resp)

	a := resp["athletes"].([]interface{})[0].(map[string]interface{})
	if a["band"] != "moderate" {
		t.Errorf("band: got %v, want moderate", a["band"])
	}
	if a["risk_pct"].(float64) != 60.0 {
		t.Errorf("risk_pct: got %v, want 60", a["risk_pct"])
	}
	if a["color"] == "" || a["color"] == nil {
		t.Error("color: missing")
	}
	if a["advisory"] == "" || a["advisory"] == nil {
		t.Error("advisory: missing")
	}
	drivers := a["drivers"].([]interface{})
	if len(drivers) != 2 {
		t.Errorf("drivers: got %v, want 2 entries", drivers)
	}
	hints := a["hints"].([]interface{})
	if len(hints) == 0 {
		t.Error("hints: missing")
	}
	if a["last_seen"] == "" || a["last_seen"] == nil {
		t.Error("last_seen: missing")
	}
}

func TestBoard_NoDriversGetsAllClearHint(t *testing.T) {
	h := newHandler(nil, snap("a1", 1.0, 0))
	rr := get(t, h, "/api/v1/squad")
	var resp map[string]interface{}
	decode(t, rr, &resp)

	a := resp["athletes"].([]interface{})[0].(map[string]interface{})
	if got := a["drivers"].([]interface{}); len(got) != 0 {
		t.Errorf("drivers: got %v, want []", got)
	}
	hints := a["hints"].([]interface{})
	if len(hints) != 1 {
		t.Fatalf("hints: got %d, want 1", len(hints))
	}
	hint := hints[0].(map[string]interface{})
	if hint["key"] != "all_clear" {
		t.Errorf("hint key: got %v, want all_clear", hint["key"])
	}
}

// --- /api/v1/athletes/{id} --------------------------------------------------

func TestGetAthlete_Found(t *testing.T) {
	h := newHandler(nil, snap("a1", 1.7, 1300))
	rr := get(t, h, "/api/v1/athletes/a1")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body: %s)", rr.Code, rr.Body.String())
	}
	var a map[string]interface{}
	decode(t, rr, &a)
	if a["athlete_id"] != "a1" {
		t.Errorf("athlete_id: got %v", a["athlete_id"])
	}
	if a["risk_pct"].(float64) != 60.0 {
		t.Errorf("risk_pct: got %v, want 60", a["risk_pct"])
	}
}

func TestGetAthlete_UsesSquadContext(t *testing.T) {
	squad := store.NewSquadContext(true, []string{"a1"})
	h := newHandler(squad, snap("a1", 1.0, 0))
	rr := get(t, h, "/api/v1/athletes/a1")

	var a map[string]interface{}
	decode(t, rr, &a)
	// congestion 0.15 scaled by 1.25 = 0.1875
	if a["risk_pct"].(float64) != 18.75 {
		t.Errorf("risk_pct: got %v, want 18.75", a["risk_pct"])
	}
	if a["return_to_play"] != true {
		t.Error("return_to_play: got false, want true")
	}
}

func TestGetAthlete_NotFound(t *testing.T) {
	h := newHandler(nil)
	rr := get(t, h, "/api/v1/athletes/does-not-exist")
	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
}

// --- /api/v1/context --------------------------------------------------------

func TestContext_GetDefaults(t *testing.T) {
	h := newHandler(nil)
	rr := get(t, h, "/api/v1/context")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	var resp map[string]interface{}
	decode(t, rr, &resp)
	if resp["match_congestion"] != false {
		t.Errorf("match_congestion: got %v, want false", resp["match_congestion"])
	}
	if got := resp["return_to_play"].([]interface{}); len(got) != 0 {
		t.Errorf("return_to_play: got %v, want []", got)
	}
}

func TestContext_PutUpdatesEvaluation(t *testing.T) {
	squad := store.NewSquadContext(false, nil)
	h := newHandler(squad, snap("a1", 1.0, 0))

	body := `{"match_congestion":true,"return_to_play":["a1"]}`
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/api/v1/context", strings.NewReader(body)))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body: %s)", rr.Code, rr.Body.String())
	}

	var resp map[string]interface{}
	decode(t, rr, &resp)
	if resp["match_congestion"] != true {
		t.Errorf("match_congestion: got %v, want true", resp["match_congestion"])
	}

	rr = get(t, h, "/api/v1/athletes/a1")
	var a map[string]interface{}
	decode(t, rr, &a)
	if a["risk_pct"].(float64) != 18.75 {
		t.Errorf("risk_pct after context update: got %v, want 18.75", a["risk_pct"])
	}
}

func TestContext_PutBadBody(t *testing.T) {
	h := newHandler(nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/api/v1/context", strings.NewReader("not json")))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
}

// --- /api/v1/alerts ---------------------------------------------------------

func TestAlerts_ReturnsEmptyArray(t *testing.T) {
	h := newHandler(nil)
	rr := get(t, h, "/api/v1/alerts")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	var resp []interface{}
	decode(t, rr, &resp)
	if resp == nil {
		t.Error("alerts: got null, want []")
	}
	if len(resp) != 0 {
		t.Errorf("alerts: got %d items, want 0", len(resp))
	}
}

// --- /api/v1/import ---------------------------------------------------------

func TestImport_ValidAndInvalidRows(t *testing.T) {
	st := store.New(5 * time.Minute)
	squad := store.NewSquadContext(false, nil)
	h := api.New(st, squad, alerts.New(config.AlertsConfig{}))

	csv := strings.Join([]string{
		"athlete_id,name,acwr,fatigue_z,soreness_z,high_speed_distance_m,accelerations,decelerations",
		"a1,Ora Vastra,1.4,0.2,0.1,900,40,35",
		",Missing Id,1.0,0,0,0,0,0",
		"a2,Bad Number,not-a-number,0,0,0,0,0",
		"a3,Clean,0.9,0,0,100,10,12",
	}, "\n")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/import", strings.NewReader(csv)))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body: %s)", rr.Code, rr.Body.String())
	}

	var resp api.ImportResponse
	decode(t, rr, &resp)
	if resp.Imported != 2 {
		t.Errorf("imported: got %d, want 2", resp.Imported)
	}
	if len(resp.Errors) != 2 {
		t.Fatalf("errors: got %d, want 2 (%+v)", len(resp.Errors), resp.Errors)
	}
	if resp.Errors[0].Line != 3 {
		t.Errorf("first error line: got %d, want 3", resp.Errors[0].Line)
	}
	if resp.Errors[1].Line != 4 {
		t.Errorf("second error line: got %d, want 4", resp.Errors[1].Line)
	}

	if st.Count() != 2 {
		t.Errorf("store count: got %d, want 2", st.Count())
	}
	e, ok := st.Get("a1")
	if !ok {
		t.Fatal("a1 not stored")
	}
	if e.Snapshot.ACWR != 1.4 || e.Snapshot.Accelerations != 40 {
		t.Errorf("stored snapshot: %+v", e.Snapshot)
	}
}

func TestImport_MissingIDColumn(t *testing.T) {
	h := newHandler(nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/import",
		strings.NewReader("name,acwr\nOra,1.2")))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
}

func TestImport_MethodNotAllowed(t *testing.T) {
	h := newHandler(nil)
	rr := get(t, h, "/api/v1/import")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status: got %d, want 405", rr.Code)
	}
}

// --- Content-Type -----------------------------------------------------------

func TestContentTypeJSON(t *testing.T) {
	h := newHandler(nil)
	for _, path := range []string{
		"/api/v1/overview",
		"/api/v1/squad",
		"/api/v1/context",
		"/api/v1/alerts",
	} {
		rr := get(t, h, path)
		ct := rr.Header().Get("Content-Type")
		if ct != "application/json" {
			t.Errorf("%s Content-Type: got %q, want application/json", path, ct)
		}
	}
}
