// Package risk implements the squadpulse injury-risk engine.
//
// The engine is deliberately not a learned model: every point of risk
// traces to a named, inspectable threshold so medical and coaching staff
// can audit each recommendation.
//
// score.go provides the pure Score(Metrics) function — an additive,
// threshold-tiered point system clamped to [0, 1].
//
// band.go provides Recommend, mapping a risk value to one of four ordered
// advisory bands: high ≥0.75, moderate ≥0.55, monitor ≥0.35, low below.
//
// explain.go provides Explain, the driver list. Drivers re-check their own
// headline thresholds against the raw metrics, never the accumulated
// score, so an athlete can carry drivers while banded low and vice versa.
//
// squad.go provides EvaluateSquad: resolves the two global context toggles
// (match congestion, return-to-play set) onto each athlete, assesses
// every athlete, and ranks the squad by risk descending with a stable
// tie-break on input order.
//
// Everything in this package is pure and safe for concurrent use.
package risk
