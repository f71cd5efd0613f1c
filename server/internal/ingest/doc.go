// Package ingest implements the snapshot intake endpoint used by
// squadpulse-agent instances.
package ingest
