// Package metrics exposes squadpulse-server's own operational metrics in
// Prometheus exposition format, mirroring the format the agent consumes
// from its sources.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/squadpulse/squadpulse/pkg/risk"
)

var (
	// SnapshotsIngested counts accepted athlete snapshots.
	SnapshotsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "squadpulse_snapshots_ingested_total",
		Help: "Athlete snapshots accepted by the ingest endpoint.",
	})

	// SnapshotsRejected counts snapshots refused at the validation boundary.
	SnapshotsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "squadpulse_snapshots_rejected_total",
		Help: "Athlete snapshots rejected as malformed.",
	})

	// AlertsFired counts alert rule firings.
	AlertsFired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "squadpulse_alerts_fired_total",
		Help: "Alert rule firings, including re-fires after cooldown.",
	})

	athleteRisk = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "squadpulse_athlete_risk_score",
		Help: "Latest computed injury-risk score per athlete, 0-1.",
	}, []string{"athlete_id"})
)

// RecordEvaluation publishes an athlete's freshly computed risk score.
func RecordEvaluation(ev risk.Evaluation) {
	athleteRisk.WithLabelValues(ev.AthleteID).Set(ev.Assessment.Risk)
}

// Handler returns the /metrics HTTP handler for the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
