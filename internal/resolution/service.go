// Package resolution turns parcel queries and points into parcel
// candidates with their land-use and zoning report.
package resolution

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"time"

	"parcelgate/internal/cadastre"
	"parcelgate/internal/diagnostics"
	"parcelgate/internal/geometry"
	"parcelgate/internal/landuse"
	"parcelgate/internal/platform/metrics"
	"parcelgate/internal/upstream"
	"parcelgate/internal/zoning"
	dErrors "parcelgate/pkg/domain-errors"
	"parcelgate/pkg/requestcontext"
)

// ParcelLookup is the cadastral service.
type ParcelLookup interface {
	ByID(ctx context.Context, id string) ([]cadastre.Parcel, error)
	ByIDOrNumber(ctx context.Context, query string) ([]cadastre.Parcel, error)
	AtPoint(ctx context.Context, lat, lng float64) ([]cadastre.Parcel, error)
}

// SiteProber runs the land-use and zoning probes for a point.
type SiteProber interface {
	Probe(ctx context.Context, pt zoning.Point) zoning.Report
}

// Service orchestrates cadastral lookup and site probing.
type Service struct {
	parcels ParcelLookup
	prober  SiteProber
	sink    diagnostics.Sink
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithSink records zoning probes that end as unknown.
func WithSink(s diagnostics.Sink) Option {
	return func(svc *Service) {
		if s != nil {
			svc.sink = s
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(svc *Service) { svc.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(svc *Service) {
		if l != nil {
			svc.logger = l
		}
	}
}

func NewService(parcels ParcelLookup, prober SiteProber, opts ...Option) *Service {
	svc := &Service{
		parcels: parcels,
		prober:  prober,
		sink:    diagnostics.Discard{},
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Resolve classifies raw, looks it up and, when the answer is a single
// located parcel, attaches its site report. A lookup failure still returns
// the (empty) resolution alongside the error.
func (s *Service) Resolve(ctx context.Context, raw string) (*Resolution, error) {
	q, err := ClassifyQuery(raw)
	if err != nil {
		s.metrics.IncrementResolution("invalid", "rejected")
		return nil, err
	}

	res := &Resolution{Query: q, Candidates: []cadastre.Parcel{}}
	candidates, err := s.lookup(ctx, q)
	if err != nil {
		s.metrics.IncrementResolution(string(q.Kind), "error")
		s.logger.WarnContext(ctx, "parcel lookup failed",
			"query", q.Raw,
			"kind", q.Kind,
			"error", err,
		)
		return res, upstream.ToDomain(err)
	}
	if len(candidates) == 0 {
		s.metrics.IncrementResolution(string(q.Kind), "empty")
		return res, nil
	}
	res.Candidates = candidates
	s.metrics.IncrementResolution(string(q.Kind), "found")

	if located := locatedSingle(candidates); located != nil {
		res.Site = s.site(ctx, *located.Centroid, located.Commune, located.RegionCode)
	}
	return res, nil
}

// lookup retries an exact id as free text on zero results. Errors are returned as is.
func (s *Service) lookup(ctx context.Context, q Query) ([]cadastre.Parcel, error) {
	if q.Kind == KindFreeText {
		return s.parcels.ByIDOrNumber(ctx, q.Raw)
	}
	candidates, err := s.parcels.ByID(ctx, q.Raw)
	if err != nil || len(candidates) > 0 {
		return candidates, err
	}
	s.logger.DebugContext(ctx, "exact id not found, retrying as free text", "query", q.Raw)
	return s.parcels.ByIDOrNumber(ctx, q.Raw)
}

func locatedSingle(candidates []cadastre.Parcel) *cadastre.Parcel {
	if len(candidates) != 1 || candidates[0].Centroid == nil {
		return nil
	}
	return &candidates[0]
}

// ParcelAt finds the parcel containing the point and reports on it. The
// site report is taken at the point itself, so it is present even when no
// parcel is found.
func (s *Service) ParcelAt(ctx context.Context, lat, lng float64) (*Resolution, error) {
	if err := validatePoint(lat, lng); err != nil {
		s.metrics.IncrementResolution(string(KindPoint), "rejected")
		return nil, err
	}
	pt := geometry.Point{Lat: lat, Lng: lng}
	res := &Resolution{
		Query:      Query{Raw: formatPoint(pt), Kind: KindPoint},
		Candidates: []cadastre.Parcel{},
	}

	candidates, err := s.parcels.AtPoint(ctx, lat, lng)
	if err != nil {
		s.metrics.IncrementResolution(string(KindPoint), "error")
		s.logger.WarnContext(ctx, "parcel at point failed", "lat", lat, "lng", lng, "error", err)
		return res, upstream.ToDomain(err)
	}

	var commune, parcelID string
	if len(candidates) > 0 {
		res.Candidates = candidates
		commune = candidates[0].Commune
		parcelID = candidates[0].RegionCode
		s.metrics.IncrementResolution(string(KindPoint), "found")
	} else {
		s.metrics.IncrementResolution(string(KindPoint), "empty")
	}
	res.Site = s.site(ctx, pt, commune, parcelID)
	return res, nil
}

// Site reports on a raw point. A nil point yields the empty report with
// the portal guess only.
func (s *Service) Site(ctx context.Context, pt *geometry.Point, commune string) (*Site, error) {
	if pt == nil {
		return &Site{
			Commune:      commune,
			PortalURL:    PortalURL(commune),
			LandUse:      zoning.LandUse{Codes: []string{}},
			LandUseCodes: []landuse.Code{},
			LandUseNote:  noPointNote,
			Zoning:       zoning.Zoning{Status: zoning.StatusUnknown},
			ZoningNote:   noPointNote,
		}, nil
	}
	if err := validatePoint(pt.Lat, pt.Lng); err != nil {
		return nil, err
	}
	return s.site(ctx, *pt, commune, ""), nil
}

func (s *Service) site(ctx context.Context, pt geometry.Point, commune, parcelID string) *Site {
	start := time.Now()
	report := s.prober.Probe(ctx, pt)
	if report.LandUseErr != nil || report.ZoningErr != nil {
		s.logger.WarnContext(ctx, "site probe partially failed",
			"lat", pt.Lat,
			"lng", pt.Lng,
			"land_use_error", report.LandUseErr,
			"zoning_error", report.ZoningErr,
		)
	}
	s.logger.DebugContext(ctx, "site probed",
		"zoning_status", report.Zoning.Status,
		"dialect", report.Zoning.Dialect,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	codes := landuse.Describe(report.LandUse.Codes)
	site := &Site{
		Point:        &pt,
		Commune:      commune,
		PortalURL:    PortalURL(commune),
		LandUse:      report.LandUse,
		LandUseCodes: codes,
		LandUseNote:  landUseNote(report.LandUse),
		Zoning:       report.Zoning,
		ZoningNote:   zoningNote(report.Zoning),
	}
	if report.Zoning.Status == zoning.StatusUnknown {
		s.recordUnresolved(ctx, pt, commune, parcelID, report)
	}
	return site
}

func (s *Service) recordUnresolved(ctx context.Context, pt geometry.Point, commune, parcelID string, report zoning.Report) {
	reason := "unrecognized response"
	switch {
	case report.ZoningErr != nil:
		reason = "zoning service unreachable"
	case report.Zoning.Raw == "":
		reason = "no usable response"
	case report.Zoning.Dialect != "" && report.Zoning.Dialect != "unrecognized":
		reason = "service reported no data: " + report.Zoning.Dialect
	}
	err := s.sink.Record(ctx, diagnostics.Unresolved{
		Point:      pt,
		Commune:    commune,
		ParcelID:   parcelID,
		Dialect:    report.Zoning.Dialect,
		Reason:     reason,
		Raw:        report.Zoning.Raw,
		RecordedAt: requestcontext.Now(ctx),
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to record unresolved zoning", "error", err)
	}
}

func validatePoint(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return dErrors.New(dErrors.CodeValidation, "coordinates out of range")
	}
	return nil
}

func formatPoint(pt geometry.Point) string {
	return strconv.FormatFloat(pt.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(pt.Lng, 'f', -1, 64)
}
