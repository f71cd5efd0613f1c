package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/squadpulse/squadpulse/agent/internal/config"
)

// Wellness questionnaire metric names we track. Values are z-scores against
// each athlete's rolling personal baseline, computed by the wellness system.
const (
	wellnessFatigue  = "wellness_fatigue_zscore"
	wellnessSoreness = "wellness_soreness_zscore"
)

type wellnessScraper struct {
	src    config.Source
	client *http.Client
}

// Scrape fetches the wellness system's metrics endpoint and extracts
// questionnaire z-scores per athlete.
func (s *wellnessScraper) Scrape(ctx context.Context) (*ScrapeResult, error) {
	res := newResult(s.src.ID, "wellness")

	mfs, err := fetchMetrics(ctx, s.client, s.src.Endpoint)
	if err != nil {
		res.Err = fmt.Errorf("wellness scrape %q: %w", s.src.ID, err)
		slog.Warn("scraper: wellness fetch failed", "source", s.src.ID, "err", err)
		return res, nil
	}

	for name, metric := range map[string]string{
		wellnessFatigue:  "fatigue_z",
		wellnessSoreness: "soreness_z",
	} {
		for id, v := range athleteValues(mfs[name]) {
			res.set(id, metric, v)
		}
	}

	return res, nil
}
