// Package actdoc follows zoning-act references to the downloadable document
// and archives it.
package actdoc

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"parcelgate/internal/upstream"
)

const (
	service        = "act"
	resolveTimeout = 20 * time.Second
	acceptPDF      = "application/pdf,*/*"
)

// Resolver turns an act reference, which may be a landing page, into a
// direct document URL.
type Resolver struct {
	fetcher upstream.Fetcher
	timeout time.Duration
	logger  *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

func WithResolveTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func WithResolverLogger(l *slog.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = l }
}

func NewResolver(fetcher upstream.Fetcher, opts ...ResolverOption) *Resolver {
	r := &Resolver{fetcher: fetcher, timeout: resolveTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the document URL and true, or "" and false when the
// reference is unreachable or points at no document. It never errors.
func (r *Resolver) Resolve(ctx context.Context, actURL string) (string, bool) {
	actURL = strings.TrimSpace(actURL)
	if actURL == "" {
		return "", false
	}
	resp, err := r.fetcher.Get(ctx, actURL,
		upstream.WithService(service),
		upstream.WithTimeout(r.timeout),
		upstream.WithAccept(acceptPDF),
	)
	if err != nil {
		r.debug(ctx, "act reference unreachable", actURL, "error", err)
		return "", false
	}
	if !resp.OK() {
		r.debug(ctx, "act reference returned error status", actURL, "status", resp.StatusCode)
		return "", false
	}
	if isPDF(resp.ContentType) {
		return actURL, true
	}
	link, ok := FindDocumentLink(resp.Text(), actURL)
	if !ok {
		r.debug(ctx, "no downloadable link found", actURL)
	}
	return link, ok
}

func (r *Resolver) debug(ctx context.Context, msg, actURL string, kv ...any) {
	if r.logger == nil {
		return
	}
	r.logger.DebugContext(ctx, msg, append([]any{"url", actURL}, kv...)...)
}

func isPDF(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "pdf")
}

// FindDocumentLink returns the first href in body whose path ends in .pdf,
// resolved against the origin of base. Attribute entities are decoded.
func FindDocumentLink(body, base string) (string, bool) {
	z := html.NewTokenizer(strings.NewReader(body))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return "", false
		case html.StartTagToken, html.SelfClosingTagToken:
			_, hasAttr := z.TagName()
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				if string(key) != "href" {
					continue
				}
				if link, ok := documentLink(string(val), base); ok {
					return link, true
				}
			}
		}
	}
}

func documentLink(href, base string) (string, bool) {
	href = strings.TrimSpace(href)
	ref, err := url.Parse(href)
	if err != nil || ref.Fragment != "" || !strings.HasSuffix(strings.ToLower(ref.Path), ".pdf") {
		return "", false
	}
	if ref.IsAbs() {
		return ref.String(), true
	}
	b, err := url.Parse(base)
	if err != nil || b.Host == "" {
		return "", false
	}
	origin := &url.URL{Scheme: b.Scheme, Host: b.Host, Path: "/"}
	return origin.ResolveReference(ref).String(), true
}
