package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrorKind tags the shape of a failed response body.
type ErrorKind int

const (
	// ErrorUnknown means the body carried nothing usable.
	ErrorUnknown ErrorKind = iota

	// ErrorStructured means the body carried a list of error messages.
	ErrorStructured

	// ErrorMessage means the body carried a single message field.
	ErrorMessage

	// ErrorRaw means the body was a plain string.
	ErrorRaw
)

// ErrorBody is the normalized form of a failed response body.
type ErrorBody struct {
	Kind   ErrorKind
	Errors []string
	Text   string
}

// errorEnvelope matches the structured shapes the API emits on failure.
type errorEnvelope struct {
	Errors  []string `json:"errors"`
	Message string   `json:"message"`
}

// ParseErrorBody normalizes a response body into an ErrorBody, probing in
// order: structured error list, single message field, raw string.
func ParseErrorBody(data []byte) ErrorBody {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return ErrorBody{Kind: ErrorUnknown}
	}

	var env errorEnvelope
	if err := json.Unmarshal(data, &env); err == nil {
		if len(env.Errors) > 0 {
			return ErrorBody{Kind: ErrorStructured, Errors: env.Errors}
		}
		if env.Message != "" {
			return ErrorBody{Kind: ErrorMessage, Text: env.Message}
		}
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil && s != "" {
		return ErrorBody{Kind: ErrorRaw, Text: s}
	}

	if utf8.ValidString(trimmed) && !strings.HasPrefix(trimmed, "{") {
		return ErrorBody{Kind: ErrorRaw, Text: trimmed}
	}
	return ErrorBody{Kind: ErrorUnknown}
}

// Display maps the body to a human-readable string. Unknown bodies map to
// "" so callers can substitute their fallback.
func (b ErrorBody) Display() string {
	switch b.Kind {
	case ErrorStructured:
		return strings.Join(b.Errors, ", ")
	case ErrorMessage, ErrorRaw:
		return b.Text
	default:
		return ""
	}
}

// Error is a failed API call with its HTTP status and normalized body.
type Error struct {
	StatusCode int
	Body       ErrorBody
}

func (e *Error) Error() string {
	if s := e.Body.Display(); s != "" {
		return s
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// SessionExpired reports whether the call was rejected for authentication.
func (e *Error) SessionExpired() bool {
	return e.StatusCode == 401
}

// Message produces the single human-readable string for any failed call:
// the normalized body when one exists, a generic message for API failures
// with an unusable body, and a generic transport message otherwise.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if s := apiErr.Body.Display(); s != "" {
			return s
		}
		return "an error occurred"
	}
	return "an unexpected error occurred"
}
