package provider

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrTokenRefresh marks a failed access-token refresh. There is no fallback
// credential, so callers must abort the surrounding operation.
var ErrTokenRefresh = errors.New("provider token refresh failed")

// APIError is a non-2xx response from the scheduling provider. Callers decide
// whether one failed call is isolated (skip that unit of work) or fatal.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("provider api error: status %d: %s", e.StatusCode, e.Body)
}

// RateLimited reports whether the provider rejected the call for volume
// reasons. These are counted separately from other API errors.
func (e *APIError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsRateLimited reports whether err is a provider rate-limit rejection.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.RateLimited()
	}

	return false
}
