package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"parcelgate/internal/actdoc"
	"parcelgate/pkg/platform/httputil"
	"parcelgate/pkg/requestcontext"
)

const noDocumentLink = "no downloadable link found"

// ActResolver finds the document behind an act reference.
type ActResolver interface {
	Resolve(ctx context.Context, actURL string) (string, bool)
}

// ActArchiver stores act documents for a project.
type ActArchiver interface {
	Archive(ctx context.Context, actURL, projectID, filename string) (*actdoc.Stored, error)
}

// ActHandler serves act document endpoints.
type ActHandler struct {
	resolver ActResolver
	archiver ActArchiver
	logger   *slog.Logger
}

func NewActHandler(resolver ActResolver, archiver ActArchiver, logger *slog.Logger) *ActHandler {
	return &ActHandler{resolver: resolver, archiver: archiver, logger: logger}
}

func (h *ActHandler) Register(r chi.Router) {
	r.Post("/acts/resolve", h.HandleResolve)
	if h.archiver != nil {
		r.Post("/acts/archive", h.HandleArchive)
	}
}

// HandleResolve handles POST /acts/resolve. A missing document is a normal
// answer with a null url.
func (h *ActHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[ResolveActRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	link, found := h.resolver.Resolve(ctx, req.URL)
	resp := ResolveActResponse{}
	if found {
		resp.URL = &link
	} else {
		msg := noDocumentLink
		resp.Error = &msg
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleArchive handles POST /acts/archive.
func (h *ActHandler) HandleArchive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	req, ok := httputil.DecodeAndPrepare[ArchiveActRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	stored, err := h.archiver.Archive(ctx, req.URL, req.ProjectID, req.Filename)
	if err != nil {
		if h.logger != nil {
			h.logger.WarnContext(ctx, "act archive failed",
				"request_id", requestID,
				"project_id", req.ProjectID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stored)
}
