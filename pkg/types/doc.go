// Package types defines shared Go types used by both the agent and server.
// AthleteSnapshot is the canonical wire and storage representation of one
// athlete-day of collected metrics, separate from the pure engine inputs
// in pkg/risk.
package types
