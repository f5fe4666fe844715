package dialect

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"parcelgate/internal/platform/metrics"
)

// DefaultFanOut bounds concurrent secondary page fetches.
const DefaultFanOut = 6

// PageFetcher loads a secondary per-feature page. Implementations apply
// their own per-call deadline.
type PageFetcher interface {
	FetchPage(ctx context.Context, ref PageRef) (string, error)
}

// Result is a final classification.
type Result struct {
	Outcome
	Dialect string
}

// Classifier runs a Cascade and resolves indirection.
type Classifier struct {
	cascade Cascade
	pages   PageFetcher
	fanOut  int
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithCascade replaces the default cascade.
func WithCascade(c Cascade) Option {
	return func(cl *Classifier) { cl.cascade = c }
}

// WithFanOut sets the page fetch concurrency.
func WithFanOut(n int) Option {
	return func(cl *Classifier) {
		if n > 0 {
			cl.fanOut = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Classifier) { cl.logger = l }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(cl *Classifier) { cl.metrics = m }
}

// NewClassifier builds a Classifier. pages may be nil, in which case
// indirection dialects resolve to unknown.
func NewClassifier(pages PageFetcher, opts ...Option) *Classifier {
	c := &Classifier{
		cascade: DefaultCascade(),
		pages:   pages,
		fanOut:  DefaultFanOut,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify picks the first matching dialect and returns its normalized
// outcome. It never fails: extractor faults downgrade to unknown.
func (c *Classifier) Classify(ctx context.Context, body string) Result {
	d := c.cascade.Select(body)
	out := c.extract(ctx, d, body)

	if len(out.Follow) > 0 {
		m, ok := d.(Merger)
		if !ok || c.pages == nil {
			out = Unknown()
		} else {
			pages := c.fetchPages(ctx, out.Follow)
			out = c.merge(ctx, d.Name(), m, pages)
		}
	}

	res := Result{Outcome: out.Normalized(), Dialect: d.Name()}
	c.metrics.IncrementClassification(res.Dialect, string(res.Status))
	if c.logger != nil {
		c.logger.DebugContext(ctx, "zoning response classified",
			"dialect", res.Dialect,
			"status", res.Status,
		)
	}
	return res
}

func (c *Classifier) extract(ctx context.Context, d Dialect, body string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			c.logFault(ctx, d.Name(), r)
			out = Unknown()
		}
	}()
	return d.Extract(body)
}

func (c *Classifier) merge(ctx context.Context, name string, m Merger, pages []Page) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			c.logFault(ctx, name, r)
			out = Unknown()
		}
	}()
	return m.Merge(pages)
}

func (c *Classifier) logFault(ctx context.Context, name string, r any) {
	if c.logger != nil {
		c.logger.WarnContext(ctx, "dialect extractor fault",
			"dialect", name,
			"error", fmt.Sprint(r),
		)
	}
}

// fetchPages loads refs with bounded concurrency. A failed page is dropped;
// it never cancels its siblings. Order of refs is preserved.
func (c *Classifier) fetchPages(ctx context.Context, refs []PageRef) []Page {
	if len(refs) > MaxFeaturePages {
		refs = refs[:MaxFeaturePages]
	}

	results := make([]*Page, len(refs))
	var g errgroup.Group
	g.SetLimit(c.fanOut)
	for i, ref := range refs {
		g.Go(func() error {
			body, err := c.pages.FetchPage(ctx, ref)
			if err != nil {
				if c.logger != nil {
					c.logger.DebugContext(ctx, "feature page unavailable",
						"host", ref.Host,
						"id", ref.ID,
						"error", err,
					)
				}
				return nil
			}
			results[i] = &Page{Ref: ref, Body: body}
			return nil
		})
	}
	_ = g.Wait()

	pages := make([]Page, 0, len(results))
	for _, p := range results {
		if p != nil {
			pages = append(pages, *p)
		}
	}
	return pages
}
