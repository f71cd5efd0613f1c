package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/squadpulse/squadpulse/agent/internal/collect"
	"github.com/squadpulse/squadpulse/agent/internal/config"
	"github.com/squadpulse/squadpulse/agent/internal/scraper"
	"github.com/squadpulse/squadpulse/agent/internal/shipper"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("squadpulse-agent starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	slog.Info("config loaded",
		"server_url", cfg.Agent.ServerURL,
		"sources", len(cfg.Agent.Sources),
		"roster", len(cfg.Agent.Roster),
		"scrape_interval", cfg.Agent.ScrapeInterval,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Build scrapers from the initial config. Hot-reload updates the roster
	// only; rebuilding scrapers on reload needs a restart.
	type feed struct {
		src config.Source
		s   scraper.Scraper
	}
	var feeds []feed
	for _, src := range cfg.Agent.Sources {
		s, err := scraper.New(src)
		if err != nil {
			slog.Error("skipping source — could not build scraper", "source", src.ID, "err", err)
			continue
		}
		feeds = append(feeds, feed{src: src, s: s})
		slog.Info("registered source", "id", src.ID, "type", src.Type, "endpoint", src.Endpoint)
	}

	if len(feeds) == 0 {
		slog.Warn("no sources configured — agent will idle")
	}

	engine := collect.NewEngine(cfg.Agent.Roster)

	// Watch config file for hot-reload.
	go func() {
		if err := config.Watch(ctx, *configPath, func(updated *config.Config) {
			engine.SetRoster(updated.Agent.Roster)
			slog.Info("config hot-reloaded", "roster", len(updated.Agent.Roster))
		}); err != nil {
			slog.Error("config watcher stopped", "err", err)
		}
	}()

	// Start the HTTP shipper — runs until ctx is cancelled.
	ship := shipper.New(cfg.Agent)
	go ship.Run(ctx)

	// Scrape loop: poll every ScrapeInterval and merge into the engine.
	go func() {
		ticker := time.NewTicker(cfg.Agent.ScrapeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				for _, f := range feeds {
					res, err := f.s.Scrape(ctx)
					if err != nil {
						slog.Warn("scrape error", "source", f.src.ID, "err", err)
						continue
					}
					engine.Ingest(res, t)
				}
			}
		}
	}()

	// Ship loop: cut merged snapshots every ShipInterval and enqueue them.
	go func() {
		ticker := time.NewTicker(cfg.Agent.ShipInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				snaps := engine.Cut(t)
				for _, snap := range snaps {
					ship.Ship(snap)
				}
				if len(snaps) > 0 {
					slog.Debug("shipped snapshots", "count", len(snaps))
				}
			}
		}
	}()

	<-ctx.Done()
	slog.Info("squadpulse-agent shutting down")
}
