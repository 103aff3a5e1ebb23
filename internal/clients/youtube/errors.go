package youtube

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

var (
	// ErrChannelNotFound indicates channels.list returned no item for the id.
	ErrChannelNotFound = errors.New("youtube: channel not found")
	// ErrInvalidResponse indicates a response that failed boundary validation.
	ErrInvalidResponse = errors.New("youtube: invalid response")
)

// APIError wraps a failed platform call with the operation that issued it.
type APIError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("youtube %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("youtube %s: %v", e.Op, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NotFound reports whether the platform answered 404.
func (e *APIError) NotFound() bool {
	return e != nil && e.StatusCode == http.StatusNotFound
}

func wrapAPIError(op string, err error) error {
	if err == nil {
		return nil
	}
	apiErr := &APIError{Op: op, Err: err}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		apiErr.StatusCode = gErr.Code
	}
	return apiErr
}
