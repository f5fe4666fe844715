// Package httptransport exposes the resolution engine over HTTP.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"parcelgate/internal/diagnostics"
	"parcelgate/internal/platform/middleware"
	"parcelgate/pkg/platform/httputil"
	"parcelgate/pkg/platform/middleware/metadata"
	"parcelgate/pkg/platform/middleware/requestid"
	"parcelgate/pkg/platform/middleware/requesttime"
)

// Deps are the services the router mounts. Archiver and Lister are
// optional; their routes are omitted when nil.
type Deps struct {
	Parcels  ParcelService
	Resolver ActResolver
	Archiver ActArchiver
	Lister   diagnostics.Lister
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// NewRouter wires middleware and every public endpoint.
func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.AccessLog(logger))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok"})
	})
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	NewParcelHandler(d.Parcels, logger).Register(r)
	NewActHandler(d.Resolver, d.Archiver, logger).Register(r)
	if d.Lister != nil {
		NewDiagnosticsHandler(d.Lister).Register(r)
	}
	return r
}
