package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an API error by the HTTP status that produced it.
type Kind int

const (
	// KindNetwork means no response was received (status 0).
	KindNetwork Kind = iota
	// KindValidation is a 400 with optional field-level messages.
	KindValidation
	// KindAuth is a 401; the cached session flag is cleared when observed.
	KindAuth
	// KindNotFound is a 404.
	KindNotFound
	// KindConflict is a 409 (e.g. duplicate registration).
	KindConflict
	// KindServer is any 5xx.
	KindServer
	// KindOther covers statuses with no dedicated branch.
	KindOther
)

// Error is the uniform failure shape returned by every transport call.
// Callers branch on Status (or Kind) rather than on error strings.
type Error struct {
	Status  int               // HTTP status; 0 means the request never got a response
	Message string            // server-provided or synthesized message
	Fields  map[string]string // field-level messages on validation failures
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("network error: %s", e.Message)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Kind maps the status code onto the error taxonomy.
func (e *Error) Kind() Kind {
	switch {
	case e.Status == 0:
		return KindNetwork
	case e.Status == http.StatusBadRequest:
		return KindValidation
	case e.Status == http.StatusUnauthorized:
		return KindAuth
	case e.Status == http.StatusNotFound:
		return KindNotFound
	case e.Status == http.StatusConflict:
		return KindConflict
	case e.Status >= 500:
		return KindServer
	default:
		return KindOther
	}
}

// Retryable reports whether the failure is transient enough that a
// user-triggered retry is a sensible recovery action.
func (e *Error) Retryable() bool {
	k := e.Kind()
	return k == KindNetwork || k == KindServer
}

// AsError unwraps err into an *Error, or wraps a plain error as a
// network-level failure so callers always see the uniform shape.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &Error{Status: 0, Message: err.Error()}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind() == kind
}

// IsAuth reports whether err is a 401 authentication failure.
func IsAuth(err error) bool { return IsKind(err, KindAuth) }

// IsValidation reports whether err is a 400 validation failure.
func IsValidation(err error) bool { return IsKind(err, KindValidation) }

// IsNotFound reports whether err is a 404.
func IsNotFound(err error) bool { return IsKind(err, KindNotFound) }

// IsConflict reports whether err is a 409.
func IsConflict(err error) bool { return IsKind(err, KindConflict) }
