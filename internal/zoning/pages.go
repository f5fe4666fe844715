package zoning

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"parcelgate/internal/upstream"
	"parcelgate/internal/zoning/dialect"
)

// DefaultFeaturePageURL is the per-commune feature page template.
// {host} and {id} are substituted.
const DefaultFeaturePageURL = "https://{host}/application/modules/pln/pln_gfi.php?id={id}"

// FeaturePages fetches secondary per-feature pages over HTTP.
type FeaturePages struct {
	fetcher  upstream.Fetcher
	template string
	timeout  time.Duration
}

// NewFeaturePages builds a dialect.PageFetcher. An empty template selects
// DefaultFeaturePageURL.
func NewFeaturePages(fetcher upstream.Fetcher, template string, timeout time.Duration) *FeaturePages {
	if template == "" {
		template = DefaultFeaturePageURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &FeaturePages{fetcher: fetcher, template: template, timeout: timeout}
}

// FetchPage implements dialect.PageFetcher. A non-2xx page is an error.
func (f *FeaturePages) FetchPage(ctx context.Context, ref dialect.PageRef) (string, error) {
	u := strings.NewReplacer(
		"{host}", ref.Host,
		"{id}", url.QueryEscape(ref.ID),
	).Replace(f.template)

	resp, err := f.fetcher.Get(ctx, u, upstream.WithService("feature_page"), upstream.WithTimeout(f.timeout))
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", upstream.NewError(upstream.CategoryTransport, "feature_page",
			"http status "+strconv.Itoa(resp.StatusCode), nil)
	}
	return resp.Text(), nil
}
