package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"parcelgate/internal/diagnostics"
	"parcelgate/pkg/platform/httputil"
)

// DiagnosticsHandler lists unresolved zoning records.
type DiagnosticsHandler struct {
	lister diagnostics.Lister
}

func NewDiagnosticsHandler(lister diagnostics.Lister) *DiagnosticsHandler {
	return &DiagnosticsHandler{lister: lister}
}

func (h *DiagnosticsHandler) Register(r chi.Router) {
	r.Get("/diagnostics/unresolved", h.HandleUnresolved)
}

// HandleUnresolved handles GET /diagnostics/unresolved?limit=.
func (h *DiagnosticsHandler) HandleUnresolved(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	records, err := h.lister.Recent(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if records == nil {
		records = []diagnostics.Unresolved{}
	}
	httputil.WriteJSON(w, http.StatusOK, UnresolvedResponse{Records: records})
}
