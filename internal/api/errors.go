package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ErrSessionExpired is returned when a 401 could not be recovered by the
// reissue protocol. The stored session has already been cleared; the caller
// should send the user back to login.
var ErrSessionExpired = errors.New("session expired")

// APIError is a non-2xx response from the backend. Message carries the
// backend-provided text verbatim when the body contained one, so validation
// failures on mutations can be shown to the user unchanged.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// IsUnavailable reports whether err means the backend is absent rather than
// unhappy: a network-level failure, or a 404 from an endpoint that is not
// implemented yet. Read paths mask these with demo data; everything else is a
// real answer and must be surfaced.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusNotFound
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
