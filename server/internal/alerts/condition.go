package alerts

import (
	"strconv"
	"strings"

	"github.com/squadpulse/squadpulse/pkg/risk"
)

// evalCondition evaluates a rule condition string against one athlete's
// evaluation.
//
// Supported expressions (field operator value):
//
//	risk_pct > 75
//	risk >= 0.75
//	acwr > 1.6
//	fatigue_z > 2
//	soreness_z > 2
//	high_speed_distance > 1200
//	accel_decel_total > 140
//	band == high
//	band == moderate
//
// Returns (fires bool, triggering value float64).
// Returns (false, 0) if the expression cannot be parsed or the field is unknown.
func evalCondition(cond string, ev risk.Evaluation) (bool, float64) {
	parts := strings.Fields(cond)
	if len(parts) != 3 {
		return false, 0
	}
	field, op, rhs := parts[0], parts[1], parts[2]

	if field == "band" {
		if op == "==" {
			return ev.Assessment.Band == risk.Band(rhs), ev.Assessment.RiskPct
		}
		return false, 0
	}

	v, ok := numericField(field, ev)
	if !ok {
		return false, 0
	}
	threshold, err := strconv.ParseFloat(rhs, 64)
	if err != nil {
		return false, 0
	}
	return compareFloat(v, op, threshold), v
}

// numericField maps a field name to its value in the evaluation.
func numericField(field string, ev risk.Evaluation) (float64, bool) {
	switch field {
	case "risk":
		return ev.Assessment.Risk, true
	case "risk_pct":
		return ev.Assessment.RiskPct, true
	case "acwr":
		return ev.Metrics.ACWR, true
	case "fatigue_z":
		return ev.Metrics.FatigueZ, true
	case "soreness_z":
		return ev.Metrics.SorenessZ, true
	case "high_speed_distance":
		return ev.Metrics.HighSpeedDistance, true
	case "accel_decel_total":
		return float64(ev.Metrics.AccelDecelTotal()), true
	default:
		return 0, false
	}
}

// compareFloat applies a comparison operator to two float64 values.
func compareFloat(v float64, op string, threshold float64) bool {
	switch op {
	case ">":
		return v > threshold
	case ">=":
		return v >= threshold
	case "<":
		return v < threshold
	case "<=":
		return v <= threshold
	case "==":
		return v == threshold
	default:
		return false
	}
}
