package httptransport

import (
	"strconv"
	"strings"

	dErrors "parcelgate/pkg/domain-errors"
)

// ResolveActRequest is the body of POST /acts/resolve.
type ResolveActRequest struct {
	URL string `json:"url"`
}

func (r *ResolveActRequest) Validate() error {
	r.URL = strings.TrimSpace(r.URL)
	if r.URL == "" {
		return dErrors.New(dErrors.CodeValidation, "url is required")
	}
	return nil
}

// ArchiveActRequest is the body of POST /acts/archive.
type ArchiveActRequest struct {
	URL       string `json:"url"`
	ProjectID string `json:"projectId"`
	Filename  string `json:"filename"`
}

func (r *ArchiveActRequest) Validate() error {
	r.URL = strings.TrimSpace(r.URL)
	r.ProjectID = strings.TrimSpace(r.ProjectID)
	r.Filename = strings.TrimSpace(r.Filename)
	if r.URL == "" || r.ProjectID == "" || r.Filename == "" {
		return dErrors.New(dErrors.CodeValidation, "url, projectId and filename are required")
	}
	return nil
}

// parseCoords reads lat and lng query values. Both absent is reported as
// present=false; one absent or unparsable is an error.
func parseCoords(lat, lng string) (la, ln float64, present bool, err error) {
	lat, lng = strings.TrimSpace(lat), strings.TrimSpace(lng)
	if lat == "" && lng == "" {
		return 0, 0, false, nil
	}
	la, err1 := strconv.ParseFloat(lat, 64)
	ln, err2 := strconv.ParseFloat(lng, 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false, dErrors.New(dErrors.CodeBadRequest, "lat and lng must be numbers")
	}
	return la, ln, true, nil
}

const (
	defaultDiagnosticsLimit = 50
	maxDiagnosticsLimit     = 500
)

func parseLimit(s string) (int, error) {
	if s == "" {
		return defaultDiagnosticsLimit, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer")
	}
	return min(n, maxDiagnosticsLimit), nil
}
