// Package scraper provides scrapers for each supported data feed.
// Each scraper polls a feed's Prometheus metrics endpoint and returns a
// ScrapeResult with the latest readings per athlete, keyed by the
// athlete_id label. The collect engine merges results from both feed
// halves into complete snapshots.
//
// Implemented scrapers: GPS provider (gps.go), wellness questionnaire
// system (wellness.go). Factory: New(config.Source) returns the correct
// Scraper.
//
// Authentication (mTLS, API key, bearer token, basic) is handled by the
// shared authRoundTripper in base.go; individual scrapers receive a
// pre-configured *http.Client from New().
package scraper
