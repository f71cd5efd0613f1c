package types

import (
	"time"

	"github.com/squadpulse/squadpulse/pkg/risk"
)

// AthleteSnapshot is one athlete-day of collected metrics as shipped from
// the agent and stored on the server. The two squad-context flags
// (match congestion, return-to-play) are deliberately absent: they are
// server-side state resolved at evaluation time, not collected data.
type AthleteSnapshot struct {
	// AthleteID identifies the athlete across sources and days.
	AthleteID string `json:"athlete_id"`

	// Name is the display name, when the roster provides one.
	Name string `json:"name,omitempty"`

	// CapturedAt is when the agent completed this athlete's snapshot.
	CapturedAt time.Time `json:"captured_at"`

	ACWR              float64 `json:"acwr"`
	FatigueZ          float64 `json:"fatigue_z"`
	SorenessZ         float64 `json:"soreness_z"`
	HighSpeedDistance float64 `json:"high_speed_distance_m"`
	Accelerations     int     `json:"accelerations"`
	Decelerations     int     `json:"decelerations"`
}

// Metrics converts the snapshot to engine inputs. Context flags are left
// false — risk.EvaluateSquad resolves them from the squad context.
func (s *AthleteSnapshot) Metrics() risk.Metrics {
	return risk.Metrics{
		ACWR:              s.ACWR,
		FatigueZ:          s.FatigueZ,
		SorenessZ:         s.SorenessZ,
		HighSpeedDistance: s.HighSpeedDistance,
		Accelerations:     s.Accelerations,
		Decelerations:     s.Decelerations,
	}
}
