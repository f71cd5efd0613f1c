package alerts

import (
	"testing"

	"github.com/squadpulse/squadpulse/pkg/risk"
)

func eval(m risk.Metrics) risk.Evaluation {
	return risk.Evaluation{
		AthleteID:  "ath-1",
		Metrics:    m,
		Assessment: risk.Assess(m),
	}
}

func TestEvalCondition(t *testing.T) {
	// ACWR 1.7 + congestion + RTP: risk = (0.40+0.15)*1.25 = 0.6875.
	hot := eval(risk.Metrics{ACWR: 1.7, MatchCongestion: true, ReturnToPlay: true})
	// Quiet athlete: risk 0.
	calm := eval(risk.Metrics{ACWR: 1.0})

	tests := []struct {
		name      string
		cond      string
		ev        risk.Evaluation
		wantFires bool
	}{
		{"risk_pct above", "risk_pct > 60", hot, true},
		{"risk_pct below", "risk_pct > 75", hot, false},
		{"risk fraction", "risk >= 0.6875", hot, true},
		{"acwr raw metric", "acwr > 1.6", hot, true},
		{"band equality", "band == moderate", hot, true},
		{"band mismatch", "band == high", hot, false},
		{"band on calm", "band == low", calm, true},
		{"fatigue_z", "fatigue_z > 1", hot, false},
		{"accel_decel_total", "accel_decel_total >= 0", hot, true},
		{"unknown field", "heartrate > 200", hot, false},
		{"unparseable threshold", "risk_pct > lots", hot, false},
		{"wrong arity", "risk_pct >", hot, false},
		{"band with numeric op", "band > 1", hot, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fires, _ := evalCondition(tc.cond, tc.ev)
			if fires != tc.wantFires {
				t.Errorf("evalCondition(%q) fires = %v, want %v", tc.cond, fires, tc.wantFires)
			}
		})
	}
}

func TestEvalCondition_TriggeringValue(t *testing.T) {
	hot := eval(risk.Metrics{ACWR: 1.7})
	fires, v := evalCondition("acwr > 1.6", hot)
	if !fires {
		t.Fatal("expected condition to fire")
	}
	if v != 1.7 {
		t.Errorf("triggering value = %v, want 1.7", v)
	}
}
