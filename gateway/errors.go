package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/jrsteele09/go-docadmin/internal/errors"
)

// StatusError is a non-2xx backend response. It unwraps to the matching
// sentinel (ErrUnauthorized, ErrForbidden, ErrNotFound, ErrConflict).
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Message)
}

func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return errors.ErrUnauthorized
	case http.StatusForbidden:
		return errors.ErrForbidden
	case http.StatusNotFound:
		return errors.ErrNotFound
	case http.StatusConflict:
		return errors.ErrConflict
	}
	return nil
}

func newStatusError(method, path string, resp *Response) *StatusError {
	msg := backendMessage(resp.Body)
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", resp.StatusCode)
	}
	return &StatusError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Message:    msg,
		Body:       resp.Body,
	}
}

// backendMessage extracts a human readable message from an error body:
// JSON "message", "error_description", "error" or "details", else short plain text.
func backendMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, k := range []string{"message", "error_description", "error", "details"} {
			if s, ok := payload[k].(string); ok && s != "" {
				return s
			}
		}
		return ""
	}
	text := strings.TrimSpace(string(body))
	if text == "" || len(text) > 200 || !utf8.ValidString(text) || strings.HasPrefix(text, "<") {
		return ""
	}
	return text
}

// UserMessage returns the text to show a user for err: the backend's own
// message (or its status fallback), a hint for expired sessions and
// unreachable servers, else the error text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Message
	}
	switch {
	case errors.Is(err, errors.ErrSessionExpired):
		return "Your session has expired. Please log in again."
	case errors.Is(err, errors.ErrTransport):
		return "Cannot reach the server: " + err.Error()
	}
	return err.Error()
}
