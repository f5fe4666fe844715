// Package upstream performs the outbound HTTP calls to the cadastral and map
// services. Every call carries its own deadline; expiry affects only that call.
package upstream

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"parcelgate/internal/platform/metrics"
	"parcelgate/pkg/platform/circuit"
	"parcelgate/pkg/platform/sentinel"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 2 << 20
	userAgent      = "parcelgate/1.0 (+cadastral lookup)"
)

// Response is a fully read HTTP response.
type Response struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// Fetcher issues a GET with a bounded deadline and returns the read body.
// Non-2xx statuses are data, not errors; only transport failures error.
type Fetcher interface {
	Get(ctx context.Context, rawURL string, opts ...RequestOption) (*Response, error)
}

type requestConfig struct {
	service string
	timeout time.Duration
	accept  string
	maxBody int64
}

// RequestOption tunes a single call.
type RequestOption func(*requestConfig)

// WithService labels the call for errors, metrics and traces.
func WithService(name string) RequestOption {
	return func(c *requestConfig) { c.service = name }
}

// WithTimeout overrides the per-call deadline.
func WithTimeout(d time.Duration) RequestOption {
	return func(c *requestConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithAccept sets the Accept header.
func WithAccept(v string) RequestOption {
	return func(c *requestConfig) { c.accept = v }
}

// WithMaxBody overrides the body cap for large downloads.
func WithMaxBody(n int64) RequestOption {
	return func(c *requestConfig) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

// Client is the production Fetcher.
type Client struct {
	http    *http.Client
	timeout time.Duration
	metrics *metrics.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer

	breakerOpts []circuit.Option
	breakersMu  sync.Mutex
	breakers    map[string]*circuit.Breaker
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithDefaultTimeout sets the deadline used when a call does not specify one.
func WithDefaultTimeout(d time.Duration) Option {
	return func(cl *Client) { cl.timeout = d }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(cl *Client) { cl.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// WithBreakers guards each service with a breaker that opens after
// threshold consecutive transport failures and probes again after cooldown.
func WithBreakers(threshold int, cooldown time.Duration) Option {
	return func(cl *Client) {
		if threshold > 0 {
			cl.breakerOpts = []circuit.Option{
				circuit.WithFailureThreshold(threshold),
				circuit.WithCooldown(cooldown),
			}
		}
	}
}

// NewClient builds a Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{},
		timeout: defaultTimeout,
		tracer:  otel.Tracer("parcelgate/upstream"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get implements Fetcher.
func (c *Client) Get(ctx context.Context, rawURL string, opts ...RequestOption) (*Response, error) {
	cfg := requestConfig{service: "upstream", timeout: c.timeout, maxBody: maxBodyBytes}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, span := c.tracer.Start(ctx, "upstream.get", trace.WithAttributes(
		attribute.String("service", cfg.service),
	))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	breaker := c.breaker(cfg.service)
	if breaker != nil && !breaker.Allow() {
		c.metrics.ObserveUpstream(cfg.service, "circuit_open", 0)
		span.SetStatus(codes.Error, "circuit open")
		return nil, NewError(CategoryTransport, cfg.service, "circuit open", sentinel.ErrUnavailable)
	}

	start := time.Now()
	resp, err := c.do(ctx, rawURL, cfg)
	c.record(ctx, breaker, cfg.service, err)
	outcome := "ok"
	switch {
	case err != nil:
		outcome = "transport"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case !resp.OK():
		outcome = "http_error"
	}
	if resp != nil {
		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	}
	d := time.Since(start)
	c.metrics.ObserveUpstream(cfg.service, outcome, d)
	if c.logger != nil {
		c.logger.DebugContext(ctx, "upstream call",
			"service", cfg.service,
			"outcome", outcome,
			"duration_ms", d.Milliseconds(),
		)
	}
	return resp, err
}

func (c *Client) breaker(service string) *circuit.Breaker {
	if c.breakerOpts == nil {
		return nil
	}
	c.breakersMu.Lock()
	defer c.breakersMu.Unlock()
	if c.breakers == nil {
		c.breakers = make(map[string]*circuit.Breaker)
	}
	b, ok := c.breakers[service]
	if !ok {
		b = circuit.New(service, c.breakerOpts...)
		c.breakers[service] = b
	}
	return b
}

// record feeds transport outcomes to the breaker. HTTP error statuses are
// answers and count as successes; caller cancellation counts as neither.
func (c *Client) record(ctx context.Context, b *circuit.Breaker, service string, err error) {
	if b == nil {
		return
	}
	if err == nil {
		if _, change := b.RecordSuccess(); change.Closed && c.logger != nil {
			c.logger.InfoContext(ctx, "upstream circuit closed", "service", service)
		}
		return
	}
	if errors.Is(err, context.Canceled) {
		return
	}
	if _, change := b.RecordFailure(); change.Opened && c.logger != nil {
		c.logger.WarnContext(ctx, "upstream circuit opened", "service", service, "error", err)
	}
}

func (c *Client) do(ctx context.Context, rawURL string, cfg requestConfig) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, NewError(CategoryTransport, cfg.service, "invalid request url", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if cfg.accept != "" {
		req.Header.Set("Accept", cfg.accept)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, NewError(CategoryTransport, cfg.service, describe(err), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, cfg.maxBody))
	if err != nil {
		return nil, NewError(CategoryTransport, cfg.service, "reading body: "+describe(err), err)
	}

	return &Response{
		URL:         resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func describe(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "deadline exceeded"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	return "request failed"
}
