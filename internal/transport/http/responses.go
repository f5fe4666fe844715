package httptransport

import (
	"parcelgate/internal/diagnostics"
	"parcelgate/internal/resolution"
)

// ParcelsResponse is a resolution, optionally with the lookup error that
// left it empty.
type ParcelsResponse struct {
	*resolution.Resolution
	Error            string `json:"error,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// ResolveActResponse carries a null url when no document was found.
type ResolveActResponse struct {
	URL   *string `json:"url"`
	Error *string `json:"error"`
}

type UnresolvedResponse struct {
	Records []diagnostics.Unresolved `json:"records"`
}

type healthResponse struct {
	Status string `json:"status"`
}
