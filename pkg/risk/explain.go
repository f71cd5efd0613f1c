package risk

// Driver thresholds. These are intentionally looser than the scoring
// tiers: drivers are headline flags for coaching staff, checked against
// the raw metrics and never against the accumulated score. Keep the two
// sets of constants separate — the divergence is part of the contract.
const (
	driverACWRCut     = 1.3
	driverFatigueCut  = 1.0
	driverSorenessCut = 1.0
	driverHSRCut      = 800.0
	driverAccelCut    = 120
)

// Driver labels, in evaluation order.
const (
	DriverWorkloadSpike = "acute workload spike"
	DriverFatigue       = "elevated fatigue"
	DriverSoreness      = "increased muscle soreness"
	DriverHSRExposure   = "high-speed running exposure"
	DriverNeuromuscular = "high neuromuscular load"
)

// Explain returns the ordered list of risk-driver labels triggered by m.
//
// The list is independent of Score: it can be non-empty for an athlete
// banded low (e.g. ACWR 1.4 alone scores 0.25) and empty for one banded
// higher on continuous wellness contributions. Callers rendering the list
// should show a "no flags" placeholder when it is empty rather than an
// empty section.
func Explain(m Metrics) []string {
	var drivers []string
	if m.ACWR > driverACWRCut {
		drivers = append(drivers, DriverWorkloadSpike)
	}
	if m.FatigueZ > driverFatigueCut {
		drivers = append(drivers, DriverFatigue)
	}
	if m.SorenessZ > driverSorenessCut {
		drivers = append(drivers, DriverSoreness)
	}
	if m.HighSpeedDistance > driverHSRCut {
		drivers = append(drivers, DriverHSRExposure)
	}
	if m.AccelDecelTotal() > driverAccelCut {
		drivers = append(drivers, DriverNeuromuscular)
	}
	return drivers
}
