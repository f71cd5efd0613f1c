package api

import (
	"fmt"

	"github.com/squadpulse/squadpulse/pkg/risk"
)

// DriverHint is one human-readable insight about an athlete's risk.
// The UI displays these as chips on the athlete card; clicking one shows
// Detail — written like a sports scientist explaining the flag in plain
// English.
type DriverHint struct {
	// Key is a stable machine-readable identifier (used for dedup/ordering).
	Key string `json:"key"`
	// Level is "ok" | "info" | "warning" | "critical"
	Level string `json:"level"`
	// Title is a short label shown on the chip (≤ 5 words).
	Title string `json:"title"`
	// Detail is the full explanation shown on click/hover.
	Detail string `json:"detail"`
	// Value is an optional numeric value associated with this hint.
	Value *float64 `json:"value,omitempty"`
}

// computeHints expands an athlete's risk drivers into plain-English hints
// in the same order the drivers are reported. An athlete with no drivers
// gets a single "all clear" hint so the card is never empty.
func computeHints(m risk.Metrics, a risk.Assessment) []DriverHint {
	var hints []DriverHint

	for _, d := range a.Drivers {
		switch d {
		case risk.DriverWorkloadSpike:
			v := m.ACWR
			hints = append(hints, DriverHint{
				Key:   "workload_spike",
				Level: levelFor(m.ACWR, 1.6),
				Title: fmt.Sprintf("ACWR %.2f", m.ACWR),
				Detail: fmt.Sprintf(
					"This athlete's acute:chronic workload ratio is %.2f — their recent "+
						"training load is well above what their body is conditioned for. "+
						"Ratios above 1.3 are associated with elevated soft-tissue injury "+
						"risk, and above 1.6 the risk climbs sharply. Consider trimming "+
						"volume over the next sessions rather than cutting abruptly, so the "+
						"chronic base catches up.",
					m.ACWR,
				),
				Value: &v,
			})

		case risk.DriverFatigue:
			v := m.FatigueZ
			hints = append(hints, DriverHint{
				Key:   "fatigue",
				Level: levelFor(m.FatigueZ, 2),
				Title: "Elevated fatigue",
				Detail: fmt.Sprintf(
					"Self-reported fatigue is %.1f standard deviations above this "+
						"athlete's personal baseline. One bad night is noise; a sustained "+
						"elevation usually means recovery is not keeping up with load. "+
						"Check sleep and travel, and consider a lighter session before "+
						"the score normalizes.",
					m.FatigueZ,
				),
				Value: &v,
			})

		case risk.DriverSoreness:
			v := m.SorenessZ
			hints = append(hints, DriverHint{
				Key:   "soreness",
				Level: levelFor(m.SorenessZ, 2),
				Title: "Muscle soreness",
				Detail: fmt.Sprintf(
					"Reported muscle soreness is %.1f standard deviations above "+
						"baseline. Localized soreness after a heavy session is expected, "+
						"but a squad-questionnaire spike like this often precedes "+
						"soft-tissue complaints. Ask where it hurts — general heaviness "+
						"and a specific hamstring are very different problems.",
					m.SorenessZ,
				),
				Value: &v,
			})

		case risk.DriverHSRExposure:
			v := m.HighSpeedDistance
			hints = append(hints, DriverHint{
				Key:   "hsr_exposure",
				Level: levelFor(m.HighSpeedDistance, 1200),
				Title: fmt.Sprintf("%.0f m high-speed", m.HighSpeedDistance),
				Detail: fmt.Sprintf(
					"This athlete covered %.0f m at high speed yesterday. Large "+
						"high-speed running exposures load the hamstrings hardest; when "+
						"combined with fatigue they are the classic sprint-injury setup. "+
						"If tomorrow's session includes sprint work, consider capping "+
						"their top-speed volume.",
					m.HighSpeedDistance,
				),
				Value: &v,
			})

		case risk.DriverNeuromuscular:
			v := float64(m.AccelDecelTotal())
			hints = append(hints, DriverHint{
				Key:   "neuromuscular",
				Level: levelFor(v, 140),
				Title: fmt.Sprintf("%d accel/decel", m.AccelDecelTotal()),
				Detail: fmt.Sprintf(
					"A combined %d accelerations and decelerations is a heavy "+
						"neuromuscular day — decelerations in particular produce the "+
						"eccentric load that drives quad and groin soreness. Monitor "+
						"movement quality in the next session; stiffness here shows up "+
						"before it shows up in GPS numbers.",
					m.AccelDecelTotal(),
				),
				Value: &v,
			})
		}
	}

	if m.ReturnToPlay {
		hints = append(hints, DriverHint{
			Key:   "return_to_play",
			Level: "info",
			Title: "Return to play",
			Detail: "This athlete is inside their return-to-play window, so every " +
				"workload flag is weighted more heavily. Reinjury risk is highest in " +
				"the first weeks back; progress load gradually and keep the medical " +
				"staff in the loop on any of the flags above.",
		})
	}

	if len(hints) == 0 {
		hints = append(hints, DriverHint{
			Key:   "all_clear",
			Level: "ok",
			Title: "No major risk flags",
			Detail: fmt.Sprintf(
				"No individual metric stands out for this athlete today (overall "+
					"risk %.0f%%). Workload is inside their normal range and wellness "+
					"scores are near baseline. Full training is appropriate.",
				a.RiskPct,
			),
		})
	}

	return hints
}

// levelFor maps a driver value to a hint level using the heavy cutoff for
// that metric. Drivers fire below the heavy cutoff, so anything at or past
// it is critical and the rest is a warning.
func levelFor(v, heavyCut float64) string {
	if v >= heavyCut {
		return "critical"
	}
	return "warning"
}
