// Package cadastre resolves parcel identities and geometry against the
// national cadastral lookup service (ULDK).
package cadastre

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"parcelgate/internal/upstream"
)

const (
	// DefaultBaseURL is the public ULDK endpoint.
	DefaultBaseURL = "https://uldk.gugik.gov.pl/"

	resultFields = "teryt,voivodeship,county,commune,region,parcel,geom_wkt"
	srid         = "4326"
)

// Client queries ULDK.
type Client struct {
	fetcher upstream.Fetcher
	baseURL string
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the service URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithTimeout sets the per-call deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient builds a Client on top of fetcher.
func NewClient(fetcher upstream.Fetcher, opts ...Option) *Client {
	c := &Client{
		fetcher: fetcher,
		baseURL: DefaultBaseURL,
		timeout: 15 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ByID looks up an exact TERYT parcel id (single-result grammar).
func (c *Client) ByID(ctx context.Context, id string) ([]Parcel, error) {
	text, err := c.call(ctx, "GetParcelById", "id", id)
	if err != nil {
		return nil, err
	}
	return ParseStatusResponse(text)
}

// ByIDOrNumber looks up an id or a free-text "district parcel" query
// (multi-result grammar).
func (c *Client) ByIDOrNumber(ctx context.Context, query string) ([]Parcel, error) {
	text, err := c.call(ctx, "GetParcelByIdOrNr", "id", query)
	if err != nil {
		return nil, err
	}
	return ParseCountResponse(text)
}

// AtPoint returns the parcel containing a WGS84 point (single-result grammar).
func (c *Client) AtPoint(ctx context.Context, lat, lng float64) ([]Parcel, error) {
	xy := fmt.Sprintf("%s,%s,%s", formatCoord(lng), formatCoord(lat), srid)
	text, err := c.call(ctx, "GetParcelByXY", "xy", xy)
	if err != nil {
		return nil, err
	}
	return ParseStatusResponse(text)
}

func (c *Client) call(ctx context.Context, request, key, value string) (string, error) {
	q := url.Values{}
	q.Set("request", request)
	q.Set(key, value)
	q.Set("result", resultFields)
	q.Set("srid", srid)

	u := strings.TrimRight(c.baseURL, "?")
	if strings.Contains(u, "?") {
		u += "&" + q.Encode()
	} else {
		u += "?" + q.Encode()
	}

	resp, err := c.fetcher.Get(ctx, u, upstream.WithService(service), upstream.WithTimeout(c.timeout))
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		if c.logger != nil {
			c.logger.WarnContext(ctx, "cadastre http error", "request", request, "status", resp.StatusCode)
		}
		return "", upstream.NewError(upstream.CategoryTransport, service,
			"http status "+strconv.Itoa(resp.StatusCode), nil)
	}
	return resp.Text(), nil
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
