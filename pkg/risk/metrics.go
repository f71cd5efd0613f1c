package risk

// Metrics holds one athlete-day of training-load and wellness inputs.
//
// The engine never rejects or clamps raw inputs — out-of-range values are
// evaluated against the same thresholds as everything else, and the final
// score clamp is the only guard. Type and range validation belongs to the
// data-loading boundary (agent collect, server ingest, CSV import).
type Metrics struct {
	// ACWR is the acute:chronic workload ratio, typically 0.3–3.0.
	// Values above 1.3 indicate a load spike relative to the athlete's
	// rolling baseline; values below 0.8 indicate detraining.
	ACWR float64

	// FatigueZ is the athlete's fatigue z-score against their personal
	// wellness baseline, typically -3 to 3. Only positive deviations
	// contribute to risk.
	FatigueZ float64

	// SorenessZ is the muscle-soreness z-score, same convention as FatigueZ.
	SorenessZ float64

	// HighSpeedDistance is the day's high-speed running distance in meters.
	HighSpeedDistance float64

	// Accelerations and Decelerations are GPS-detected event counts.
	// The scorer tiers on their sum (neuromuscular load).
	Accelerations int
	Decelerations int

	// MatchCongestion is true when two or more matches fell inside the
	// trailing seven days. Supplied by the caller, not computed here.
	MatchCongestion bool

	// ReturnToPlay is true while the athlete is in a post-injury return
	// protocol. Scales the entire accumulated score by 1.25.
	ReturnToPlay bool
}

// AccelDecelTotal returns the combined acceleration + deceleration count
// used by the neuromuscular-load tier and the matching driver.
func (m Metrics) AccelDecelTotal() int {
	return m.Accelerations + m.Decelerations
}
