package pkgerror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound indicates that the requested resource could not be found.
	ErrNotFound = errors.New("resource not found")
)

// Type classifies errors into high-level buckets used by the application.
type Type int

const (
	TypeServer     Type = iota // Server-side errors (e.g., encoding or programming issues).
	TypeBusiness               // Business logic errors (e.g., domain rule violations).
	TypeValidation             // Validation errors (e.g., input validation failures).
	TypeUpstream               // Failures talking to the scoring backend.
)

func (t Type) String() string {
	switch t {
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	case TypeBusiness:
		return "ERROR_TYPE_BUSINESS"
	case TypeServer:
		return "ERROR_TYPE_SERVER"
	case TypeUpstream:
		return "ERROR_TYPE_UPSTREAM"
	default:
		return "ERROR_TYPE_UNKNOWN"
	}
}

// Code is a stable identifier used for mapping errors to HTTP status codes.
type Code int

const (
	CodeInternal      Code = iota // Internal or unspecified error.
	CodeInvalidFormat             // Error code for invalid format.
	CodeInvalidInput              // Error code for invalid input.
	CodeNotFound                  // Error code for resource not found.
	CodeConflict                  // Error code for conflict situations.
	CodeTimeout                   // Error code for operation timeout.
	CodeUnavailable               // Backend could not be reached (transport failure).
	CodeUpstream                  // Backend answered with a non-2xx status.
	CodeMalformed                 // Backend answered 2xx with an unusable payload.
)

func (c Code) String() string {
	switch c {
	case CodeInvalidFormat:
		return "ERROR_CODE_INVALID_FORMAT"
	case CodeInvalidInput:
		return "ERROR_CODE_INVALID_INPUT"
	case CodeNotFound:
		return "ERROR_CODE_NOT_FOUND"
	case CodeConflict:
		return "ERROR_CODE_CONFLICT"
	case CodeTimeout:
		return "ERROR_CODE_TIMEOUT"
	case CodeUnavailable:
		return "ERROR_CODE_UNAVAILABLE"
	case CodeUpstream:
		return "ERROR_CODE_UPSTREAM"
	case CodeMalformed:
		return "ERROR_CODE_MALFORMED"
	default:
		return "ERROR_CODE_INTERNAL"
	}
}

// Error is a structured error used across the application.
//
// It can wrap an underlying error while also carrying a user-facing message,
// a high-level type, and a stable error code. Upstream errors additionally keep
// the backend's HTTP status and error payload.
type Error struct {
	err            error
	msg            string
	errType        Type
	code           Code
	upstreamStatus int
	detail         any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}

	if e.msg != "" {
		return e.msg
	}

	switch e.errType {
	case TypeValidation:
		return "Validation violation"
	case TypeBusiness:
		return "Logical business not meet with requirement"
	case TypeServer:
		return "Internal error"
	case TypeUpstream:
		return "Backend error"
	}

	return "Unknown error"
}

// String returns a verbose representation of the error for debugging/logging.
func (e *Error) String() string {
	return fmt.Sprintf(
		"Error Type: %s, Code: %s, Message: %s, Upstream Status: %d, Underlying Error: %v",
		e.errType.String(),
		e.code.String(),
		e.msg,
		e.upstreamStatus,
		e.err,
	)
}

// Msg returns the user-facing error message, if set.
func (e *Error) Msg() string {
	return e.msg
}

// Type returns the high-level error type.
func (e *Error) Type() Type {
	return e.errType
}

// Code returns the stable error code.
func (e *Error) Code() Code {
	return e.code
}

// UpstreamStatus returns the backend HTTP status for CodeUpstream errors, 0 otherwise.
func (e *Error) UpstreamStatus() int {
	return e.upstreamStatus
}

// Detail returns the decoded backend error payload, if any.
func (e *Error) Detail() any {
	return e.detail
}

// Retryable reports whether a later attempt may succeed without user changes.
func (e *Error) Retryable() bool {
	switch e.code {
	case CodeUnavailable, CodeMalformed, CodeTimeout:
		return true
	case CodeUpstream:
		return e.upstreamStatus >= http.StatusInternalServerError
	default:
		return false
	}
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.err
}

// StatusCode maps the error code to an HTTP status code.
func (e *Error) StatusCode() int {
	switch e.code {
	case CodeInvalidFormat:
		return http.StatusBadRequest
	case CodeInvalidInput:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeTimeout:
		return http.StatusGatewayTimeout
	case CodeConflict:
		return http.StatusConflict
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	case CodeUpstream, CodeMalformed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func new(err error, msg string, et Type, code Code) *Error {
	return &Error{err: err, msg: msg, errType: et, code: code}
}

// NewServer creates a server-type error with the provided error.
func NewServer(err error) error {
	return new(err, "Internal server error", TypeServer, CodeInternal)
}

// NewBusiness creates a business-type error with the specified message and code.
func NewBusiness(msg string, code Code) error {
	return new(nil, msg, TypeBusiness, code)
}

// NewInvalidInput creates a validation error for invalid input with a message and underlying error.
func NewInvalidInput(err error) error {
	return new(err, "validation error", TypeValidation, CodeInvalidInput)
}

// NewInvalidFormat creates a validation error for an invalid request body format.
func NewInvalidFormat() error {
	return new(nil, "invalid request body", TypeValidation, CodeInvalidFormat)
}

// NewUnavailable wraps a transport failure while calling the backend.
func NewUnavailable(err error) error {
	return new(err, "backend unavailable", TypeUpstream, CodeUnavailable)
}

// NewUpstream creates an error for a non-2xx backend response. msg is the
// backend's own error message when one could be extracted.
func NewUpstream(status int, msg string, detail any) error {
	if msg == "" {
		msg = fmt.Sprintf("backend responded with status %d", status)
	}
	e := new(nil, msg, TypeUpstream, CodeUpstream)
	e.upstreamStatus = status
	e.detail = detail
	return e
}

// NewMalformed wraps a decoding failure or a payload missing expected fields.
func NewMalformed(err error) error {
	return new(err, "malformed backend response", TypeUpstream, CodeMalformed)
}
