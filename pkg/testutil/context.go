package testutil

import (
	"net/http"

	"parcelgate/pkg/requestcontext"
)

// WithRequestID stores id on the request context the way the request ID
// middleware does.
func WithRequestID(req *http.Request, id string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), id))
}

// WithClientIP stores the caller address on the request context.
func WithClientIP(req *http.Request, ip string) *http.Request {
	return req.WithContext(requestcontext.WithClientIP(req.Context(), ip))
}
