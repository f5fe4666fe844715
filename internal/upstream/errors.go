package upstream

import (
	"errors"
	"fmt"

	dErrors "parcelgate/pkg/domain-errors"
)

// Category is the normalized failure taxonomy for outbound calls.
type Category string

const (
	// CategoryTransport covers timeouts, refused connections and unreadable bodies.
	CategoryTransport Category = "transport"

	// CategoryUpstream means the service answered with an explicit error status.
	CategoryUpstream Category = "upstream"

	// CategoryBadData means the response could not be parsed at all.
	CategoryBadData Category = "bad_data"
)

// Error wraps an outbound failure with the service it came from.
type Error struct {
	Category   Category
	Service    string
	Code       string // raw status code reported by the service, if any
	Message    string
	Underlying error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s [%s]: %s", e.Service, e.Category, e.Message)
	if e.Code != "" {
		msg += " (code " + e.Code + ")"
	}
	if e.Underlying != nil {
		msg += ": " + e.Underlying.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

// NewError creates a categorized upstream error.
func NewError(category Category, service, message string, underlying error) *Error {
	return &Error{Category: category, Service: service, Message: message, Underlying: underlying}
}

// NewStatusError reports an explicit negative status from a service.
func NewStatusError(service, code, message string) *Error {
	return &Error{Category: CategoryUpstream, Service: service, Code: code, Message: message}
}

// GetCategory extracts the category, or "" when err is not an *Error.
func GetCategory(err error) Category {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Category
	}
	return ""
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	return GetCategory(err) == CategoryTransport
}

// IsUpstream reports whether err is an explicit service error status.
func IsUpstream(err error) bool {
	return GetCategory(err) == CategoryUpstream
}

// ToDomain maps an outbound failure onto the shared domain error codes.
func ToDomain(err error) error {
	if err == nil {
		return nil
	}
	var ue *Error
	if !errors.As(err, &ue) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "unexpected failure")
	}
	switch ue.Category {
	case CategoryTransport:
		return dErrors.Wrap(err, dErrors.CodeTransport, ue.Service+" unavailable")
	case CategoryUpstream:
		return dErrors.Wrap(err, dErrors.CodeUpstream, ue.Service+" reported error "+ue.Code)
	default:
		return dErrors.Wrap(err, dErrors.CodeFormat, ue.Service+" returned unreadable data")
	}
}
