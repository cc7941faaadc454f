package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Error represents a typed portal error with HTTP awareness.
type Error struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Status  int               `json:"status"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors by code so clones of a predefined error still satisfy errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrUnauthenticated      = New("UNAUTHENTICATED", http.StatusUnauthorized, "no access token available")
	ErrAuthenticationFailed = New("AUTHENTICATION_FAILED", http.StatusUnauthorized, "authentication failed")
	ErrInvalidCredentials   = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "Invalid email or password")
	ErrNotFound             = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden            = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized         = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrValidation           = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrConfirmationRequired = New("CONFIRMATION_REQUIRED", http.StatusPreconditionRequired, "confirmation required")
	ErrUpstream             = New("UPSTREAM_ERROR", http.StatusBadGateway, "backend request failed")
	ErrUnavailable          = New("UNAVAILABLE", http.StatusServiceUnavailable, "backend unavailable")
	ErrInternal             = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss            = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// Validation builds a field-keyed validation error.
func Validation(fields map[string]string) *Error {
	e := Clone(ErrValidation, "")
	e.Fields = fields
	return e
}

// FromUpstream converts a non-2xx backend response into an *Error. The server's text is kept
// verbatim; field-keyed error objects ({"admission_no": ["..."]}) are also mapped into Fields.
func FromUpstream(status int, body []byte) *Error {
	code := ErrUpstream.Code
	httpStatus := status
	switch {
	case status == http.StatusNotFound:
		code = ErrNotFound.Code
	case status == http.StatusForbidden:
		code = ErrForbidden.Code
	case status == http.StatusUnauthorized:
		code = ErrUnauthorized.Code
	case status == http.StatusBadRequest:
		code = ErrValidation.Code
	case status >= 500 || status < 400:
		httpStatus = ErrUpstream.Status
	}

	message, fields := upstreamMessage(body)
	if message == "" {
		message = fmt.Sprintf("backend returned status %d", status)
	}
	return &Error{Code: code, Status: httpStatus, Message: message, Fields: fields}
}

func upstreamMessage(body []byte) (string, map[string]string) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "", nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return trimmed, nil
	}

	for _, key := range []string{"error", "message", "detail"} {
		if raw, ok := obj[key]; ok {
			if text := flattenJSONText(raw); text != "" {
				return text, nil
			}
		}
	}

	fields := make(map[string]string, len(obj))
	keys := make([]string, 0, len(obj))
	for key, raw := range obj {
		if text := flattenJSONText(raw); text != "" {
			fields[key] = text
			keys = append(keys, key)
		}
	}
	if len(fields) == 0 {
		return trimmed, nil
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+fields[key])
	}
	return strings.Join(parts, "; "), fields
}

func flattenJSONText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, " ")
	}
	return ""
}
