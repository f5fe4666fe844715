package httptransport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"parcelgate/internal/geometry"
	"parcelgate/internal/resolution"
	dErrors "parcelgate/pkg/domain-errors"
	"parcelgate/pkg/platform/httputil"
	"parcelgate/pkg/requestcontext"
)

// ParcelService resolves parcel queries and site reports.
type ParcelService interface {
	Resolve(ctx context.Context, raw string) (*resolution.Resolution, error)
	ParcelAt(ctx context.Context, lat, lng float64) (*resolution.Resolution, error)
	Site(ctx context.Context, pt *geometry.Point, commune string) (*resolution.Site, error)
}

// ParcelHandler serves parcel lookup and site endpoints.
type ParcelHandler struct {
	service ParcelService
	logger  *slog.Logger
}

func NewParcelHandler(service ParcelService, logger *slog.Logger) *ParcelHandler {
	return &ParcelHandler{service: service, logger: logger}
}

// Register mounts the parcel endpoints on the router.
func (h *ParcelHandler) Register(r chi.Router) {
	r.Get("/parcels", h.HandleResolve)
	r.Get("/parcels/at", h.HandleParcelAt)
	r.Get("/site", h.HandleSite)
}

// HandleResolve handles GET /parcels?q= and GET /parcels?district=&number=.
func (h *ParcelHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		q = resolution.JoinDistrictNumber(r.URL.Query().Get("district"), r.URL.Query().Get("number"))
	}
	res, err := h.service.Resolve(r.Context(), q)
	h.writeResolution(w, r, res, err)
}

// HandleParcelAt handles GET /parcels/at?lat=&lng=.
func (h *ParcelHandler) HandleParcelAt(w http.ResponseWriter, r *http.Request) {
	lat, lng, present, err := parseCoords(r.URL.Query().Get("lat"), r.URL.Query().Get("lng"))
	if err == nil && !present {
		err = dErrors.New(dErrors.CodeBadRequest, "lat and lng are required")
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	res, err := h.service.ParcelAt(r.Context(), lat, lng)
	h.writeResolution(w, r, res, err)
}

// HandleSite handles GET /site?lat=&lng=&commune=. Without coordinates only
// the portal guess is returned.
func (h *ParcelHandler) HandleSite(w http.ResponseWriter, r *http.Request) {
	lat, lng, present, err := parseCoords(r.URL.Query().Get("lat"), r.URL.Query().Get("lng"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var pt *geometry.Point
	if present {
		pt = &geometry.Point{Lat: lat, Lng: lng}
	}
	site, err := h.service.Site(r.Context(), pt, r.URL.Query().Get("commune"))
	if err != nil {
		h.logFailure(r, "site report failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, site)
}

// writeResolution renders partial results: a failed lookup that still
// produced a resolution is sent with its error code and status.
func (h *ParcelHandler) writeResolution(w http.ResponseWriter, r *http.Request, res *resolution.Resolution, err error) {
	if err == nil {
		httputil.WriteJSON(w, http.StatusOK, ParcelsResponse{Resolution: res})
		return
	}
	h.logFailure(r, "parcel lookup failed", err)
	if res == nil {
		httputil.WriteError(w, err)
		return
	}
	code := dErrors.CodeOf(err)
	body := ParcelsResponse{Resolution: res, Error: string(code)}
	var de *dErrors.Error
	if code != dErrors.CodeInternal && errors.As(err, &de) {
		body.ErrorDescription = de.Message
	}
	httputil.WriteJSON(w, dErrors.ToHTTPStatus(code), body)
}

func (h *ParcelHandler) logFailure(r *http.Request, msg string, err error) {
	if h.logger == nil || dErrors.HasCode(err, dErrors.CodeValidation) || dErrors.HasCode(err, dErrors.CodeBadRequest) {
		return
	}
	ctx := r.Context()
	h.logger.WarnContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
}
