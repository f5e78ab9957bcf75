// Package errors defines the error types used throughout the Medium API wrapper.
//
// Every failure of an API call is reported as a single shape, *Error, carrying a
// message and a numeric code. SentinelCode marks errors whose code was not
// supplied by Medium (transport failures, malformed bodies, unexpected statuses
// and client-side validation). The Kind field tags where the error came from so
// callers can branch without string matching.
package errors

import (
	"errors"
	"fmt"
)

// SentinelCode is the code used whenever the remote service did not supply its own.
const SentinelCode = -1

// Messages produced by the response classifier.
const (
	MsgParseFailure       = "Failed to parse response"
	MsgUnexpectedResponse = "Unexpected response"
	MsgUndefinedParams    = "Parameters for this call are undefined"
)

// Kind identifies the stage of the pipeline that produced an Error.
type Kind int

const (
	// KindUnknown is the zero value; a bare Error{} has no known origin.
	KindUnknown Kind = iota
	// KindValidation means a required input was missing or malformed. No request was sent.
	KindValidation
	// KindParse means the response body was not valid JSON.
	KindParse
	// KindAPI means Medium answered 4xx/5xx with its own message and code.
	KindAPI
	// KindUnexpectedStatus means the status family was outside {2, 4, 5}, or a
	// 4xx/5xx body had no usable errors array.
	KindUnexpectedStatus
	// KindTransport means the round trip itself failed (DNS, reset, timeout, cancel).
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindParse:
		return "parse"
	case KindAPI:
		return "api"
	case KindUnexpectedStatus:
		return "unexpected status"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Error is the result error of every API operation.
type Error struct {
	// Message is the human readable description, verbatim from Medium for KindAPI.
	Message string
	// Code is Medium's error code, or SentinelCode.
	Code int
	// Kind tags the pipeline stage that failed.
	Kind Kind
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Code != SentinelCode && e.Code != 0 {
		return fmt.Sprintf("medium %s error (code %d): %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("medium %s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind. A target with a
// non-zero Code must also match the code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Code == 0 || t.Code == e.Code
}

// Sentinel values for errors.Is checks.
var (
	ErrValidation       = &Error{Kind: KindValidation}
	ErrParse            = &Error{Kind: KindParse}
	ErrAPI              = &Error{Kind: KindAPI}
	ErrUnexpectedStatus = &Error{Kind: KindUnexpectedStatus}
	ErrTransport        = &Error{Kind: KindTransport}
)

// NewValidationError returns a validation failure with the sentinel code.
func NewValidationError(message string, cause error) *Error {
	return &Error{Message: message, Code: SentinelCode, Kind: KindValidation, Err: cause}
}

// NewParseError returns the classifier's parse failure.
func NewParseError(cause error) *Error {
	return &Error{Message: MsgParseFailure, Code: SentinelCode, Kind: KindParse, Err: cause}
}

// NewAPIError returns an error carrying Medium's own message and code.
func NewAPIError(message string, code int) *Error {
	return &Error{Message: message, Code: code, Kind: KindAPI}
}

// NewUnexpectedStatusError returns the classifier's fallback for unhandled responses.
func NewUnexpectedStatusError() *Error {
	return &Error{Message: MsgUnexpectedResponse, Code: SentinelCode, Kind: KindUnexpectedStatus}
}

// NewTransportError wraps a round-trip failure, keeping the transport's message.
func NewTransportError(cause error) *Error {
	msg := "transport failure"
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{Message: msg, Code: SentinelCode, Kind: KindTransport, Err: cause}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// CodeOf returns the code of the first *Error in err's chain, or SentinelCode.
func CodeOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return SentinelCode
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }

func IsTransport(err error) bool { return KindOf(err) == KindTransport }

func IsAPI(err error) bool { return KindOf(err) == KindAPI }

// ConfigError indicates a problem with the client configuration.
type ConfigError struct {
	// Field contains the name of the configuration field that caused the error
	Field string
	// Message contains the detailed error message
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}
