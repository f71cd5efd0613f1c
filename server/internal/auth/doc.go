// Package auth provides API key middleware for squadpulse-server.
//
// Middleware(mode, header, key) returns an http.Handler wrapper that
// validates the API key from the named request header using a
// constant-time comparison.
//
// When mode != "apikey", all requests pass through (useful for local
// development with auth disabled). When mode is "apikey" but no key is
// configured, every request is rejected rather than letting the write
// surface fall open.
package auth
