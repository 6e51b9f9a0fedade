package ol

import "fmt"

// RemoteError reports a failed call to the catalog service: a transport
// failure, a non-2xx status or a body that could not be decoded.
type RemoteError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog request %s (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("catalog request %s: %v", e.URL, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
