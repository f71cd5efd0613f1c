// Package collect merges per-athlete readings from the GPS and wellness
// scrapers into complete athlete snapshots ready for shipping. Each feed
// half arrives on its own schedule; the engine keeps the latest value per
// metric and drops athletes whose readings have gone stale.
package collect
