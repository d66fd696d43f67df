package client

import (
	"errors"
	"fmt"
)

// ErrInvalidAdminKey signals a 401 from an admin endpoint: the shared secret
// is missing or wrong. Callers branch on it to drop back to an
// unauthenticated state.
var ErrInvalidAdminKey = errors.New("invalid admin key")

// APIError is a non-success response from the backend that is not an
// authentication failure.
type APIError struct {
	Method string
	Path   string
	Status int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Status)
}
