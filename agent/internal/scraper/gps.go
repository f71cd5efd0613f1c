package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/squadpulse/squadpulse/agent/internal/config"
)

// GPS feed metric names we track. Each series carries an athlete_id label.
const (
	// Acute:chronic workload ratio computed by the GPS provider.
	gpsACWR = "training_load_acwr"

	// Distance covered above the high-speed threshold, in metres.
	gpsHighSpeed = "gps_high_speed_distance_meters"

	// Count of acceleration efforts above the provider's threshold.
	gpsAccelerations = "gps_accelerations_count"

	// Count of deceleration efforts above the provider's threshold.
	gpsDecelerations = "gps_decelerations_count"
)

type gpsScraper struct {
	src    config.Source
	client *http.Client
}

// Scrape fetches the GPS provider's metrics endpoint and extracts workload
// readings per athlete. Athletes missing from the feed simply do not appear
// in the result; the collect engine keeps their previous values.
func (s *gpsScraper) Scrape(ctx context.Context) (*ScrapeResult, error) {
	res := newResult(s.src.ID, "gps")

	mfs, err := fetchMetrics(ctx, s.client, s.src.Endpoint)
	if err != nil {
		res.Err = fmt.Errorf("gps scrape %q: %w", s.src.ID, err)
		slog.Warn("scraper: gps fetch failed", "source", s.src.ID, "err", err)
		return res, nil
	}

	for name, metric := range map[string]string{
		gpsACWR:          "acwr",
		gpsHighSpeed:     "high_speed_distance",
		gpsAccelerations: "accelerations",
		gpsDecelerations: "decelerations",
	} {
		for id, v := range athleteValues(mfs[name]) {
			res.set(id, metric, v)
		}
	}

	return res, nil
}
