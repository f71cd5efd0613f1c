// Package shipper sends athlete snapshots to squadpulse-server as JSON
// over HTTP (POST /api/v1/ingest).
//
// Shipper.Ship() is non-blocking: snapshots are placed in an in-memory
// channel (default capacity 1000). When the buffer is full the oldest
// entry is evicted so the latest readings are always preserved.
//
// Shipper.Run() drains the buffer in a loop, retrying with truncated
// exponential backoff (1s→60s, ±25% jitter) on connection or server
// errors. Client-side rejections (4xx, including auth failures) discard
// the snapshot immediately rather than retrying.
//
// Auth: API key sent in the configured request header, resolved from an
// environment variable.
package shipper
