package errs

import (
	"errors"
	"net/http"
)

// Kind identifies one member of the closed error taxonomy used by the
// gateway. Every failure that crosses a component boundary is tagged with
// exactly one Kind; the HTTP layer maps it to a status code and the JSON
// error body exposes it as the stable "codigo" field.
type Kind string

const (
	// Request-side kinds (caller must fix the request).
	KindMalformedRequest     Kind = "MalformedRequest"
	KindMissingField         Kind = "MissingField"
	KindUnsupportedOperation Kind = "UnsupportedOperation"

	// Upstream transport kinds (caller may retry later).
	KindHostUnreachable    Kind = "HostUnreachable"
	KindServiceUnavailable Kind = "ServiceUnavailable"
	KindUpstreamTimeout    Kind = "UpstreamTimeout"

	// Upstream protocol kind (schema mismatch, not retryable).
	KindUpstreamProtocolError Kind = "UpstreamProtocolError"

	// Operator-side kinds.
	KindChannelConfiguration   Kind = "ChannelConfigurationError"
	KindUnexpectedAdapterError Kind = "UnexpectedAdapterError"
)

// HTTPStatus returns the fixed HTTP status code associated with the kind.
//
// Mapping:
//   - MalformedRequest, MissingField, UnsupportedOperation → 400
//   - HostUnreachable, UpstreamProtocolError → 502
//   - ServiceUnavailable → 503
//   - UpstreamTimeout → 504
//   - ChannelConfigurationError, UnexpectedAdapterError → 500
func (k Kind) HTTPStatus() int {
	switch k {
	case KindMalformedRequest, KindMissingField, KindUnsupportedOperation:
		return http.StatusBadRequest
	case KindHostUnreachable, KindUpstreamProtocolError:
		return http.StatusBadGateway
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	case KindUpstreamTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified gateway error. It is constructed once at the point
// of detection and propagated unchanged to the HTTP boundary; wrapping code
// must preserve the original Kind (use Wrap, never re-classify).
type Error struct {
	Kind    Kind   // taxonomy member, exposed as the external error code
	Message string // human-readable, operator-actionable message
	Cause   error  // underlying error, nil for pure validation failures
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error { return e.Cause }

// New builds a classified error without an underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds a classified error around an underlying cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf extracts the Kind from an error chain. Unclassified errors report
// UnexpectedAdapterError so that no failure ever leaves the taxonomy.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnexpectedAdapterError
}

// MessageOf extracts the classified message from an error chain, falling
// back to the raw error text for unclassified errors.
func MessageOf(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
