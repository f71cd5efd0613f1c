package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	p := writeConfig(t, `server: {}
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.HTTPPort != DefaultHTTPPort {
		t.Errorf("http_port: got %d, want %d", cfg.Server.HTTPPort, DefaultHTTPPort)
	}
	if cfg.Server.Snapshot.TTL != DefaultSnapshotTTL {
		t.Errorf("snapshot.ttl: got %v, want %v", cfg.Server.Snapshot.TTL, DefaultSnapshotTTL)
	}
	if cfg.Server.Board.BroadcastInterval != DefaultBoardInterval {
		t.Errorf("board.broadcast_interval: got %v, want %v",
			cfg.Server.Board.BroadcastInterval, DefaultBoardInterval)
	}
}

func TestLoad_Full(t *testing.T) {
	p := writeConfig(t, `server:
  http_port: 9091
  auth:
    mode: apikey
    key_env: MY_KEY
    header: x-squad-key
  snapshot:
    ttl: 48h
  board:
    broadcast_interval: 5s
  squad:
    match_congestion: true
    return_to_play: [ath-7, ath-12]
  alerts:
    rules:
      - name: high-risk
        condition: "band == high"
        severity: critical
        cooldown: 12h
    webhooks:
      - type: slack
        url_env: SLACK_URL
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.HTTPPort != 9091 {
		t.Errorf("http_port: got %d, want 9091", cfg.Server.HTTPPort)
	}
	if cfg.Server.Auth.EffectiveHeader() != "x-squad-key" {
		t.Errorf("header: got %q, want x-squad-key", cfg.Server.Auth.EffectiveHeader())
	}
	if cfg.Server.Snapshot.TTL != 48*time.Hour {
		t.Errorf("snapshot.ttl: got %v, want 48h", cfg.Server.Snapshot.TTL)
	}
	if !cfg.Server.Squad.MatchCongestion {
		t.Error("squad.match_congestion: got false, want true")
	}
	if len(cfg.Server.Squad.ReturnToPlay) != 2 {
		t.Errorf("squad.return_to_play: got %v, want 2 IDs", cfg.Server.Squad.ReturnToPlay)
	}
	if len(cfg.Server.Alerts.Rules) != 1 || cfg.Server.Alerts.Rules[0].Cooldown != 12*time.Hour {
		t.Errorf("alerts.rules: got %+v", cfg.Server.Alerts.Rules)
	}
}

func TestLoad_DefaultHeader(t *testing.T) {
	p := writeConfig(t, `server:
  auth:
    mode: apikey
    key_env: K
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if h := cfg.Server.Auth.EffectiveHeader(); h != "x-api-key" {
		t.Errorf("EffectiveHeader: got %q, want x-api-key", h)
	}
}

func TestLoad_KeyEnvResolution(t *testing.T) {
	t.Setenv("TEST_SERVER_KEY", "supersecret")
	p := writeConfig(t, `server:
  auth:
    mode: apikey
    key_env: TEST_SERVER_KEY
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if k := cfg.Server.Auth.Key(); k != "supersecret" {
		t.Errorf("Key(): got %q, want supersecret", k)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown auth mode", "server:\n  auth:\n    mode: oauth2\n"},
		{"rule without name", "server:\n  alerts:\n    rules:\n      - condition: \"risk_pct > 75\"\n"},
		{"rule without condition", "server:\n  alerts:\n    rules:\n      - name: r1\n"},
		{"unknown webhook type", "server:\n  alerts:\n    webhooks:\n      - type: pigeon\n"},
		{"zero broadcast interval", "server:\n  board:\n    broadcast_interval: 0s\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := writeConfig(t, tc.yaml)
			if _, err := Load(p); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml"); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}
