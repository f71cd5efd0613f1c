package risk

import "sort"

// AthleteDay is one athlete's metrics for the evaluation day, with identity
// attached. The congestion and return-to-play fields of Metrics are
// ignored here — EvaluateSquad resolves them from the Context.
type AthleteDay struct {
	AthleteID string
	Name      string
	Metrics   Metrics
}

// Context carries the two global toggles applied across the whole squad.
type Context struct {
	// MatchCongestion applies to every athlete when true.
	MatchCongestion bool

	// ReturnToPlay holds the IDs of athletes currently in a return-to-play
	// protocol. A nil map means no athlete is in protocol.
	ReturnToPlay map[string]bool
}

// Evaluation is one athlete's ranked board row: identity, the resolved
// metrics the score was computed from, and the assessment itself.
type Evaluation struct {
	AthleteID  string
	Name       string
	Metrics    Metrics
	Assessment Assessment
}

// EvaluateSquad assesses every athlete with the context flags resolved and
// returns the squad ranked by RiskPct descending. The sort is stable:
// athletes with equal scores keep their input order. An empty input yields
// an empty, non-nil result.
func EvaluateSquad(days []AthleteDay, ctx Context) []Evaluation {
	out := make([]Evaluation, 0, len(days))
	for _, d := range days {
		m := d.Metrics
		m.MatchCongestion = ctx.MatchCongestion
		m.ReturnToPlay = ctx.ReturnToPlay[d.AthleteID]
		out = append(out, Evaluation{
			AthleteID:  d.AthleteID,
			Name:       d.Name,
			Metrics:    m,
			Assessment: Assess(m),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Assessment.RiskPct > out[j].Assessment.RiskPct
	})
	return out
}
