// Package auth enforces API-key authentication on protected HTTP routes.
package auth

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
)

// Middleware returns an http.Handler wrapper that enforces API key
// authentication on every request to next.
//
// mode: "apikey" enables enforcement; "none" or "" disables it (handy for
// local development). header is the HTTP header to read the key from,
// key the expected value.
//
// In apikey mode with an empty expected key, every request is rejected —
// a misconfigured secret must fail closed, not open.
func Middleware(mode, header, key string) func(http.Handler) http.Handler {
	enforce := mode == "apikey"
	if enforce && key == "" {
		slog.Warn("auth: apikey mode with empty key — all protected requests will be rejected")
	}

	return func(next http.Handler) http.Handler {
		if !enforce {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(header)
			if got == "" || key == "" ||
				subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				http.Error(w, `{"error":"unauthenticated"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
