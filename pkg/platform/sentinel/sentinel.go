package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and the outbound client
// return these (optionally wrapped) so services can translate them into
// domain errors.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
