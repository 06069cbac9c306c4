package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx API response, carrying the HTTP status and the
// backend-supplied message.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

func statusOf(err error) (int, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, true
	}
	return 0, false
}

func IsNotFound(err error) bool {
	status, ok := statusOf(err)
	return ok && status == http.StatusNotFound
}

func IsUnauthorized(err error) bool {
	status, ok := statusOf(err)
	return ok && status == http.StatusUnauthorized
}

func IsConflict(err error) bool {
	status, ok := statusOf(err)
	return ok && status == http.StatusConflict
}
