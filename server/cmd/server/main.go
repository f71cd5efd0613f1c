package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/squadpulse/squadpulse/server/internal/alerts"
	"github.com/squadpulse/squadpulse/server/internal/api"
	"github.com/squadpulse/squadpulse/server/internal/auth"
	"github.com/squadpulse/squadpulse/server/internal/config"
	"github.com/squadpulse/squadpulse/server/internal/ingest"
	"github.com/squadpulse/squadpulse/server/internal/metrics"
	"github.com/squadpulse/squadpulse/server/internal/store"
	"github.com/squadpulse/squadpulse/server/internal/ws"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	uiDir := flag.String("ui-dir", "", "serve the dashboard static files from this directory (e.g. ui/dist); leave empty to disable")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("squadpulse-server starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	slog.Info("config loaded",
		"http_port", cfg.Server.HTTPPort,
		"auth_mode", cfg.Server.Auth.Mode,
		"snapshot_ttl", cfg.Server.Snapshot.TTL,
		"alert_rules", len(cfg.Server.Alerts.Rules),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Snapshot store with background TTL eviction.
	st := store.New(cfg.Server.Snapshot.TTL)
	go st.Run(ctx)

	// Squad context toggles, seeded from config and mutable via the API.
	squad := store.NewSquadContext(cfg.Server.Squad.MatchCongestion, cfg.Server.Squad.ReturnToPlay)

	// Alert engine — evaluates rules on every incoming snapshot.
	alertEngine := alerts.New(cfg.Server.Alerts)

	// Config hot-reload: alert rules and the squad toggles can change
	// without a restart. Auth and port changes still need one.
	go func() {
		if err := config.Watch(ctx, *configPath, func(updated *config.Config) {
			alertEngine.SetRules(updated.Server.Alerts)
			squad.Set(updated.Server.Squad.MatchCongestion, updated.Server.Squad.ReturnToPlay)
			slog.Info("config hot-reloaded",
				"alert_rules", len(updated.Server.Alerts.Rules),
				"match_congestion", updated.Server.Squad.MatchCongestion,
				"return_to_play", len(updated.Server.Squad.ReturnToPlay),
			)
		}); err != nil {
			slog.Error("config watcher stopped", "err", err)
		}
	}()

	// WebSocket hub — broadcasts the ranked board to dashboard clients.
	hub := ws.New(st, squad, cfg.Server.Board.BroadcastInterval)
	go hub.Run(ctx)

	// API key middleware guards the write surface. Reads stay open so the
	// dashboard works without credentials.
	protect := auth.Middleware(
		cfg.Server.Auth.Mode,
		cfg.Server.Auth.EffectiveHeader(),
		cfg.Server.Auth.Key(),
	)
	apiHandler := api.New(st, squad, alertEngine)
	protectWrites := func(h http.Handler) http.Handler {
		guarded := protect(h)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				h.ServeHTTP(w, r)
				return
			}
			guarded.ServeHTTP(w, r)
		})
	}

	httpMux := http.NewServeMux()
	httpMux.Handle("/api/v1/ingest", protect(ingest.New(st, squad, alertEngine)))
	httpMux.Handle("/api/v1/import", protect(apiHandler))
	httpMux.Handle("/api/v1/context", protectWrites(apiHandler))
	httpMux.Handle("/api/", apiHandler)
	httpMux.Handle("/ws/board", hub)
	httpMux.Handle("/metrics", metrics.Handler())

	// Optional: serve the pre-built dashboard from a local directory.
	// The "/" catch-all serves index.html for any unknown path (SPA routing).
	if *uiDir != "" {
		fs := http.FileServer(http.Dir(*uiDir))
		httpMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			// SPA fallback: if the requested file doesn't exist, serve index.html.
			path := *uiDir + r.URL.Path
			if _, err := os.Stat(path); os.IsNotExist(err) {
				http.ServeFile(w, r, *uiDir+"/index.html")
				return
			}
			fs.ServeHTTP(w, r)
		})
		slog.Info("serving UI static files", "dir", *uiDir)
	}

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: httpMux,
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	slog.Info("squadpulse-server shutting down")
	httpSrv.Shutdown(context.Background()) //nolint:errcheck
}
