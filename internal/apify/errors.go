package apify

import "fmt"

// HTTPError represents a non-2xx reply from the Apify API.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("apify: HTTP %d: %s", e.StatusCode, e.Message)
}

// NetworkError wraps a transport failure.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("apify: network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
