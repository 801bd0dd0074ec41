// Package keepalive pings a public URL on an interval so free-tier hosts do
// not idle the service out.
package keepalive

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultInterval = 5 * time.Minute
	pingTimeout     = 30 * time.Second
)

// Pinger issues periodic GET requests against a single URL.
type Pinger struct {
	url      string
	interval time.Duration
	hc       *http.Client
	log      *slog.Logger
}

// New creates a Pinger with the default 5-minute interval.
func New(url string, log *slog.Logger) *Pinger {
	if log == nil {
		log = slog.Default()
	}
	return &Pinger{
		url:      url,
		interval: defaultInterval,
		hc:       &http.Client{Timeout: pingTimeout},
		log:      log,
	}
}

// WithInterval overrides the ping interval (tests).
func (p *Pinger) WithInterval(d time.Duration) *Pinger {
	p.interval = d
	return p
}

// Run pings until ctx is canceled. Failures are logged and the loop keeps
// going; a dead keepalive target must never take the service down.
func (p *Pinger) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.ping(ctx)
		}
	}
}

func (p *Pinger) ping(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		p.log.Warn("keepalive request build failed", "url", p.url, "error", err)
		return
	}
	resp, err := p.hc.Do(req)
	if err != nil {
		p.log.Warn("keepalive ping failed", "url", p.url, "error", err)
		return
	}
	resp.Body.Close()
	p.log.Debug("keepalive ping", "url", p.url, "status", resp.StatusCode)
}
