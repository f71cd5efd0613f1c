package api

// OverviewResponse is the payload for GET /api/v1/overview.
type OverviewResponse struct {
	AverageRiskPct float64 `json:"average_risk_pct"`
	AthleteCount   int     `json:"athlete_count"`
	HighCount      int     `json:"high_count"`
	ModerateCount  int     `json:"moderate_count"`
	MonitorCount   int     `json:"monitor_count"`
	LowCount       int     `json:"low_count"`
	AlertCount     int     `json:"alert_count"`
}

// AthleteResponse is one athlete entry in GET /api/v1/squad or
// GET /api/v1/athletes/{id}.
type AthleteResponse struct {
	AthleteID         string       `json:"athlete_id"`
	Name              string       `json:"name,omitempty"`
	Risk              float64      `json:"risk"`
	RiskPct           float64      `json:"risk_pct"`
	Band              string       `json:"band"`
	Color             string       `json:"color"`
	Advisory          string       `json:"advisory"`
	Drivers           []string     `json:"drivers"`
	Hints             []DriverHint `json:"hints"`
	ACWR              float64      `json:"acwr"`
	FatigueZ          float64      `json:"fatigue_z"`
	SorenessZ         float64      `json:"soreness_z"`
	HighSpeedDistance float64      `json:"high_speed_distance_m"`
	Accelerations     int          `json:"accelerations"`
	Decelerations     int          `json:"decelerations"`
	ReturnToPlay      bool         `json:"return_to_play"`
	LastSeen          string       `json:"last_seen"` // RFC3339
}

// ContextResponse is the payload for GET and PUT /api/v1/context.
type ContextResponse struct {
	MatchCongestion bool     `json:"match_congestion"`
	ReturnToPlay    []string `json:"return_to_play"`
}

// BoardResponse is the payload for GET /api/v1/squad, ranked by risk
// descending. The same payload is broadcast over WebSocket.
type BoardResponse struct {
	Athletes    []AthleteResponse `json:"athletes"`
	Context     ContextResponse   `json:"context"`
	GeneratedAt string            `json:"generated_at"` // RFC3339
}

// ImportRowError reports one rejected CSV row in POST /api/v1/import.
type ImportRowError struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
}

// ImportResponse is the payload for POST /api/v1/import.
type ImportResponse struct {
	Imported int              `json:"imported"`
	Errors   []ImportRowError `json:"errors"`
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
