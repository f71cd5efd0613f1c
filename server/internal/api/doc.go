// Package api serves the REST surface of the squadpulse server: the
// ranked squad board, individual athlete assessments, the squad context
// toggles, active alerts and bulk CSV import.
package api
