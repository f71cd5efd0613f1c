package risk

import "math"

// Assessment is the full derived risk picture for one athlete-day.
// It is a value computed fresh from Metrics on every call — never cached
// or mutated in place — and has no identity of its own.
type Assessment struct {
	// Risk is the saturating additive score in [0, 1].
	Risk float64

	// RiskPct is Risk * 100 rounded to two decimals, the display form
	// used for ranking.
	RiskPct float64

	// Band is the advisory band derived from Risk alone.
	Band Band

	// Advisory is the action text tied to Band.
	Advisory string

	// Drivers are the triggered headline flags, in evaluation order.
	// Empty when no driver threshold was crossed.
	Drivers []string
}

// Assess computes the complete Assessment for one athlete-day.
func Assess(m Metrics) Assessment {
	r := Score(m)
	band, advisory := Recommend(r)
	return Assessment{
		Risk:     r,
		RiskPct:  math.Round(r*10000) / 100,
		Band:     band,
		Advisory: advisory,
		Drivers:  Explain(m),
	}
}
