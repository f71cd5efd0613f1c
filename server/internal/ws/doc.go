// Package ws pushes the ranked squad board to dashboard clients over
// WebSocket on a fixed broadcast interval.
package ws
