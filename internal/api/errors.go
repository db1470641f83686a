package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrSessionExpired reports a 401 on an authenticated call. By the time
	// callers see it the session has already been torn down.
	ErrSessionExpired = errors.New("session expired")

	// ErrConnectivity reports that no usable response was received.
	ErrConnectivity = errors.New("no response from server")

	// ErrRequestSetup reports a request that could not be built before it
	// left the client.
	ErrRequestSetup = errors.New("request setup failed")
)

// HTTPError carries any other non-2xx status through to the caller
// unmodified.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("http %d", e.Status)
	}
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a plain 404 from the backend. The advice
// listing treats it as "no threads yet" rather than a failure.
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound
}
