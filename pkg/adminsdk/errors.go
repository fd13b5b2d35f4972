package adminsdk

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrSessionExpired is returned by Session calls after ExpiresAt.
	ErrSessionExpired = errors.New("adminsdk: session expired")

	// ErrMissingScope is returned by client-side scope checks.
	ErrMissingScope = errors.New("adminsdk: missing required scope")
)

// APIError is a failed response of the admin service.
type APIError struct {
	StatusCode int
	// Code is the machine readable code of the envelope, e.g. "not_found".
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("adminsdk: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("adminsdk: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool { return hasStatus(err, http.StatusNotFound) }

// IsConflict reports whether err is a 409 from the service.
func IsConflict(err error) bool { return hasStatus(err, http.StatusConflict) }

// IsUnauthorized reports whether err is a 401 from the service.
func IsUnauthorized(err error) bool { return hasStatus(err, http.StatusUnauthorized) }

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
