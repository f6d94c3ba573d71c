package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrServer       = errors.New("server error")
	ErrUnavailable  = errors.New("server unavailable")

	// ErrSessionExpired is terminal: the refresh failed or the replayed
	// request was rejected again, and stored credentials were cleared.
	ErrSessionExpired = errors.New("session expired")

	ErrNoRefreshToken = errors.New("no refresh token stored")
)

// Error is a non-2xx API response.
type Error struct {
	Status  int
	Message string
	Code    string
	// Fields holds per-field validation messages keyed by field name.
	// Nested objects are flattened with dots ("profile.currency").
	Fields map[string][]string
}

func (e *Error) Error() string {
	msg := e.UserMessage()
	if e.Code != "" {
		return fmt.Sprintf("api %d (%s): %s", e.Status, e.Code, msg)
	}
	return fmt.Sprintf("api %d: %s", e.Status, msg)
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrBadRequest:
		return e.Status == http.StatusBadRequest
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrServer:
		return e.Status >= http.StatusInternalServerError
	}
	return false
}

// UserMessage is the text to show a person: the server's message, else its
// field errors, else the HTTP status text.
func (e *Error) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Fields) > 0 {
		return strings.Join(e.FieldMessages(), "; ")
	}
	return http.StatusText(e.Status)
}

// FieldMessages renders Fields as "field: message" lines in key order.
func (e *Error) FieldMessages() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []string
	for _, k := range keys {
		for _, m := range e.Fields[k] {
			if k == "non_field_errors" {
				out = append(out, m)
				continue
			}
			out = append(out, k+": "+m)
		}
	}
	return out
}

// SessionExpiredError describes the end of a session: Rejected is the 401
// that started it (or the one on the replay), Cause the refresh failure if
// there was one.
type SessionExpiredError struct {
	Rejected *Error
	Cause    error
}

func (e *SessionExpiredError) Error() string {
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", ErrSessionExpired, e.Cause)
	case e.Rejected != nil:
		return fmt.Sprintf("%s: %v", ErrSessionExpired, e.Rejected)
	}
	return ErrSessionExpired.Error()
}

func (e *SessionExpiredError) Is(target error) bool { return target == ErrSessionExpired }

func (e *SessionExpiredError) Unwrap() []error {
	var errs []error
	if e.Rejected != nil {
		errs = append(errs, e.Rejected)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// decodeError builds an *Error from a response body. Bodies that are not
// JSON objects leave only Status set.
func decodeError(status int, body []byte) *Error {
	e := &Error{Status: status}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return e
	}

	for k, v := range raw {
		switch k {
		case "message", "detail", "error", "success":
		case "code":
			_ = json.Unmarshal(v, &e.Code)
		default:
			collectFields(e, k, v)
		}
	}
	for _, k := range []string{"message", "detail", "error"} {
		var s string
		if v, ok := raw[k]; ok && json.Unmarshal(v, &s) == nil && s != "" {
			e.Message = s
			break
		}
	}
	return e
}

func collectFields(e *Error, key string, v json.RawMessage) {
	var list []string
	if json.Unmarshal(v, &list) == nil {
		addField(e, key, list...)
		return
	}
	var one string
	if json.Unmarshal(v, &one) == nil {
		addField(e, key, one)
		return
	}
	var nested map[string]json.RawMessage
	if json.Unmarshal(v, &nested) == nil {
		for k, nv := range nested {
			collectFields(e, key+"."+k, nv)
		}
	}
}

func addField(e *Error, key string, msgs ...string) {
	if len(msgs) == 0 {
		return
	}
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[key] = append(e.Fields[key], msgs...)
}
