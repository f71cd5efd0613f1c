package risk

// Tier cut-offs and point contributions for the additive risk model.
// Within each metric group only the first matching tier counts; group
// contributions are summed and the total is clamped to 1.0.
const (
	acwrSpikeCut  = 1.6
	acwrRaisedCut = 1.3
	acwrLowCut    = 0.8
	acwrSpikePts  = 0.40
	acwrRaisedPts = 0.25
	acwrLowPts    = 0.10

	fatigueWeight  = 0.12
	sorenessWeight = 0.15

	hsrHeavyCut  = 1200.0
	hsrRaisedCut = 800.0
	hsrHeavyPts  = 0.20
	hsrRaisedPts = 0.10

	accelHeavyCut  = 140
	accelRaisedCut = 100
	accelHeavyPts  = 0.15
	accelRaisedPts = 0.08

	congestionPts = 0.15

	// returnToPlayFactor scales the whole accumulated sum, congestion
	// addend included, as the final step before clamping.
	returnToPlayFactor = 1.25
)

// Score maps one athlete-day of metrics to an injury-risk value in [0, 1].
//
// The score is a saturating sum of independent contributions:
//
//	ACWR tier          >1.6 → 0.40 | >1.3 → 0.25 | <0.8 → 0.10
//	fatigue            max(0, z) * 0.12
//	soreness           max(0, z) * 0.15
//	high-speed running >1200 m → 0.20 | >800 m → 0.10
//	accel + decel      >140 → 0.15 | >100 → 0.08
//	match congestion   +0.15
//	return-to-play     ×1.25 on the whole sum
//	clamp              min(total, 1.0)
//
// Score is deterministic, total over all real inputs, and never negative.
func Score(m Metrics) float64 {
	risk := 0.0

	switch {
	case m.ACWR > acwrSpikeCut:
		risk += acwrSpikePts
	case m.ACWR > acwrRaisedCut:
		risk += acwrRaisedPts
	case m.ACWR < acwrLowCut:
		risk += acwrLowPts
	}

	if m.FatigueZ > 0 {
		risk += m.FatigueZ * fatigueWeight
	}
	if m.SorenessZ > 0 {
		risk += m.SorenessZ * sorenessWeight
	}

	switch {
	case m.HighSpeedDistance > hsrHeavyCut:
		risk += hsrHeavyPts
	case m.HighSpeedDistance > hsrRaisedCut:
		risk += hsrRaisedPts
	}

	switch total := m.AccelDecelTotal(); {
	case total > accelHeavyCut:
		risk += accelHeavyPts
	case total > accelRaisedCut:
		risk += accelRaisedPts
	}

	if m.MatchCongestion {
		risk += congestionPts
	}

	if m.ReturnToPlay {
		risk *= returnToPlayFactor
	}

	if risk > 1 {
		risk = 1
	}
	return risk
}
