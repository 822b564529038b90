// Package errors provides a structured error type with wrapping and metadata
package errors

// Always import the project errors package as perr (platform/errors)

import (
	stderrs "errors"
	"fmt"
)

// ErrorCode classifies failures across the publishing pipeline
// Values are stable for log compatibility; add sparingly
type ErrorCode uint16

const (
	// ErrorCodeUnknown is for unclassified errors
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodeFetch is for network/HTTP failures against a subscription source
	ErrorCodeFetch

	// ErrorCodeParse is for malformed proxy links
	ErrorCodeParse

	// ErrorCodeHeuristic is for secrets deemed corrupted by the repair heuristic
	ErrorCodeHeuristic

	// ErrorCodeDelivery is for transport/API failures while posting a batch
	ErrorCodeDelivery

	// ErrorCodeRateLimit is for flood-control rejections from the delivery channel
	ErrorCodeRateLimit

	// ErrorCodeConfig is for missing or invalid required configuration
	ErrorCodeConfig
)

// String returns a short stable label for logs
func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeFetch:
		return "fetch"
	case ErrorCodeParse:
		return "parse"
	case ErrorCodeHeuristic:
		return "heuristic"
	case ErrorCodeDelivery:
		return "delivery"
	case ErrorCodeRateLimit:
		return "rate_limit"
	case ErrorCodeConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Error is the structured error type with wrapping and metadata
// msg is human/developer facing; code is machine facing
// link is an optional offending link fragment; source is an optional source URL
type Error struct {
	orig   error
	msg    string
	code   ErrorCode
	link   string
	source string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the wrapped error, if any
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Link returns the offending link fragment, if set
func (e *Error) Link() string { return e.link }

// Source returns the source URL, if set
func (e *Error) Source() string { return e.source }

// Root returns the deepest wrapped cause
func Root(err error) error {
	for err != nil {
		u := stderrs.Unwrap(err)
		if u == nil {
			return err
		}
		err = u
	}
	return nil
}

// CodeOf extracts an ErrorCode from any error, defaulting to Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err has the given code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// As unwraps and returns (*Error, true) if err is one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Mutators (copy-on-write)

// WithLink attaches a link fragment to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithLink(err error, link string) error {
	if e, ok := As(err); ok {
		c := *e
		c.link = link
		return &c
	}
	return err
}

// WithSource attaches a source URL to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithSource(err error, source string) error {
	if e, ok := As(err); ok {
		c := *e
		c.source = source
		return &c
	}
	return err
}

// Constructors

// New returns a new *Error with the given code and message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns a new *Error with code and formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns a new *Error that wraps orig with code and message
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf returns a new *Error that wraps orig with code and formatted message
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// WrapIf wraps only when err != nil (helper for 1-liners)
func WrapIf(err error, code ErrorCode, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, msg)
}

// Sugar

// Fetchf returns a subscription fetch error
func Fetchf(format string, a ...any) error { return Newf(ErrorCodeFetch, format, a...) }

// Parsef returns a malformed-link error
func Parsef(format string, a ...any) error { return Newf(ErrorCodeParse, format, a...) }

// Heuristicf returns a corrupted-secret rejection
func Heuristicf(format string, a ...any) error { return Newf(ErrorCodeHeuristic, format, a...) }

// Deliveryf returns a channel delivery error
func Deliveryf(format string, a ...any) error { return Newf(ErrorCodeDelivery, format, a...) }

// RateLimitedf returns a flood-control error
func RateLimitedf(format string, a ...any) error { return Newf(ErrorCodeRateLimit, format, a...) }

// Configf returns a configuration error
func Configf(format string, a ...any) error { return Newf(ErrorCodeConfig, format, a...) }

// Internalf returns a generic internal error
func Internalf(format string, a ...any) error { return Newf(ErrorCodeUnknown, format, a...) }

// Retry semantics

// Retryable reports whether the error is worth an extra pause before moving on.
// Only flood-control rejections qualify; everything else is logged and skipped
func Retryable(err error) bool { return IsCode(err, ErrorCodeRateLimit) }
