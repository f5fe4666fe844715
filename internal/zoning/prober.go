// Package zoning probes the land-use and zoning-plan map services for one
// point and normalizes their answers.
package zoning

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"parcelgate/internal/platform/metrics"
	"parcelgate/internal/upstream"
	"parcelgate/internal/zoning/dialect"
	pstrings "parcelgate/pkg/platform/strings"
)

const (
	landUseService = "kiug"
	zoningService  = "kimpzp"
)

var serviceException = regexp.MustCompile(`(?i)<ServiceException`)

// Config carries endpoints and per-call deadlines.
type Config struct {
	LandUseURL string
	ZoningURL  string
	Timeout    time.Duration
}

// Prober runs both probes.
type Prober struct {
	fetcher    upstream.Fetcher
	classifier *dialect.Classifier
	cfg        Config
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// Option configures a Prober.
type Option func(*Prober)

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Prober) { p.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Prober) { p.logger = l }
}

// NewProber builds a Prober. Zero-valued Config fields take the defaults.
func NewProber(fetcher upstream.Fetcher, classifier *dialect.Classifier, cfg Config, opts ...Option) *Prober {
	if cfg.LandUseURL == "" {
		cfg.LandUseURL = DefaultLandUseURL
	}
	if cfg.ZoningURL == "" {
		cfg.ZoningURL = DefaultZoningURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	p := &Prober{fetcher: fetcher, classifier: classifier, cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe runs the land-use and zoning probes in parallel and waits for both.
// Neither probe can cancel the other.
func (p *Prober) Probe(ctx context.Context, pt Point) Report {
	var r Report
	var g errgroup.Group
	g.Go(func() error {
		r.LandUse, r.LandUseErr = p.LandUse(ctx, pt)
		return nil
	})
	g.Go(func() error {
		r.Zoning, r.ZoningErr = p.Zoning(ctx, pt)
		return nil
	})
	_ = g.Wait()
	return r
}

// LandUse runs the land-use ladder and parses the first usable response.
func (p *Prober) LandUse(ctx context.Context, pt Point) (LandUse, error) {
	body, err := p.climb(ctx, landUseService, p.cfg.LandUseURL, LandUseLadder, pt)
	if body == "" {
		return LandUse{Codes: []string{}}, err
	}
	return ParseLandUse(body), nil
}

// Zoning runs the zoning ladder and classifies the first usable response.
func (p *Prober) Zoning(ctx context.Context, pt Point) (Zoning, error) {
	body, err := p.climb(ctx, zoningService, p.cfg.ZoningURL, ZoningLadder, pt)
	if body == "" {
		return unknownZoning(), err
	}
	res := p.classifier.Classify(ctx, body)
	return zoningFrom(res, pstrings.Truncate(body, zoningRawRunes)), nil
}

// climb tries each rung until a usable body arrives. The error is returned
// only when every rung failed in transport; an answer that was merely
// unusable is not a fault.
func (p *Prober) climb(ctx context.Context, service, base string, ladder []Rung, pt Point) (string, error) {
	var lastErr error
	transportOnly := true
	for i, rung := range ladder {
		resp, err := p.fetcher.Get(ctx, BuildGetFeatureInfo(base, rung, pt),
			upstream.WithService(service), upstream.WithTimeout(p.cfg.Timeout))
		if err != nil {
			lastErr = err
			p.debug(ctx, "probe rung failed", service, i+1, "error", err)
			continue
		}
		transportOnly = false
		body := resp.Text()
		if !usable(body) {
			p.debug(ctx, "probe rung unusable", service, i+1, "length", len(body))
			continue
		}
		p.metrics.IncrementLadderRung(service, strconv.Itoa(i+1))
		return body, nil
	}
	p.metrics.IncrementLadderRung(service, "0")
	if transportOnly {
		return "", lastErr
	}
	return "", nil
}

func usable(body string) bool {
	return len(body) >= minUsableBody && !serviceException.MatchString(body)
}

func (p *Prober) debug(ctx context.Context, msg, service string, rung int, kv ...any) {
	if p.logger == nil {
		return
	}
	p.logger.DebugContext(ctx, msg, append([]any{"service", service, "rung", rung}, kv...)...)
}
