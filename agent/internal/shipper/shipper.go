package shipper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/squadpulse/squadpulse/agent/internal/config"
	"github.com/squadpulse/squadpulse/pkg/types"
)

const (
	ingestPath = "/api/v1/ingest"

	backoffInitial    = 1 * time.Second
	backoffMax        = 60 * time.Second
	backoffMultiplier = 2.0
	sendTimeout       = 10 * time.Second
)

// Shipper buffers athlete snapshots and ships them to squadpulse-server
// over HTTP. Ship() is non-blocking; when the buffer is full the oldest
// snapshot is evicted. Run() must be called in a goroutine to drain the
// buffer and handle retries.
type Shipper struct {
	cfg      config.AgentConfig
	endpoint string
	buf      chan *types.AthleteSnapshot
	client   *http.Client
}

// New creates a Shipper using the given agent config.
func New(cfg config.AgentConfig) *Shipper {
	return &Shipper{
		cfg:      cfg,
		endpoint: strings.TrimRight(cfg.ServerURL, "/") + ingestPath,
		buf:      make(chan *types.AthleteSnapshot, cfg.BufferSize),
		client:   &http.Client{Timeout: sendTimeout},
	}
}

// Ship enqueues one snapshot. If the buffer is full the oldest entry is
// evicted to make room — the newest reading is always the one worth keeping.
func (s *Shipper) Ship(snap *types.AthleteSnapshot) {
	select {
	case s.buf <- snap:
	default:
		select {
		case <-s.buf:
			slog.Warn("shipper: buffer full, evicted oldest snapshot",
				"athlete", snap.AthleteID, "buffer_cap", cap(s.buf))
		default:
		}
		s.buf <- snap
	}
}

// Run drains the buffer, sending snapshots to the server. Transient
// failures requeue the snapshot and back off exponentially; rejections
// (4xx) discard it since retrying the same payload cannot succeed.
// Run blocks until ctx is cancelled.
func (s *Shipper) Run(ctx context.Context) {
	bo := newBackoff()

	for {
		select {
		case <-ctx.Done():
			return

		case snap := <-s.buf:
			err := s.send(ctx, snap)
			if err == nil {
				bo.reset()
				slog.Debug("shipper: snapshot delivered", "athlete", snap.AthleteID)
				continue
			}

			var perm *rejectionError
			if errors.As(err, &perm) {
				slog.Error("shipper: server rejected snapshot, discarding",
					"athlete", snap.AthleteID, "status", perm.status, "body", perm.body)
				continue
			}

			// Put the snapshot back if there's room; the next cycle's data
			// supersedes it anyway if the buffer is full.
			select {
			case s.buf <- snap:
			default:
			}

			wait := bo.next()
			slog.Warn("shipper: send failed, will retry",
				"endpoint", s.endpoint, "err", err, "retry_in", wait)
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
		}
	}
}

// send performs one POST of snap to the ingest endpoint.
func (s *Shipper) send(ctx context.Context, snap *types.AthleteSnapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return &rejectionError{status: 0, body: fmt.Sprintf("marshal snapshot: %v", err)}
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(sendCtx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.ServerAuth.Mode == "apikey" {
		req.Header.Set(s.cfg.ServerAuth.EffectiveHeader(), s.cfg.ServerAuth.Key())
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusAccepted:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		// Rate limiting is transient — back off and retry.
		return fmt.Errorf("server rate-limited the agent (status 429)")
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &rejectionError{status: resp.StatusCode, body: string(msg)}
	default:
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}

// rejectionError marks a snapshot the server refused. Auth failures are
// included: retrying with the same key cannot succeed, and the next cut
// gets a fresh chance after the operator fixes the config.
type rejectionError struct {
	status int
	body   string
}

func (e *rejectionError) Error() string {
	return fmt.Sprintf("server rejected snapshot (status %d): %s", e.status, e.body)
}

// backoff implements truncated exponential backoff with jitter.
type backoff struct {
	current time.Duration
}

func newBackoff() *backoff {
	return &backoff{current: backoffInitial}
}

// next returns the current backoff duration and advances the internal state.
func (b *backoff) next() time.Duration {
	d := b.current
	// Apply ±25 % jitter.
	jitter := time.Duration(float64(b.current) * 0.25 * (rand.Float64()*2 - 1)) //nolint:gosec // not crypto
	d += jitter
	if d < 0 {
		d = 0
	}

	// Advance for next call.
	b.current = time.Duration(float64(b.current) * backoffMultiplier)
	if b.current > backoffMax {
		b.current = backoffMax
	}
	return d
}

func (b *backoff) reset() {
	b.current = backoffInitial
}
