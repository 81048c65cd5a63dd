// internal/gzapi/errors.go
package gzapi

import "fmt"

// RemoteError is any non-success outcome of a call against a GZCTF
// instance: transport failures, unexpected status codes, or a response
// body that cannot be decoded. Status is zero when the request never
// produced an HTTP response.
type RemoteError struct {
	Op     string
	URL    string
	Status int
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s returned %d", e.Op, e.URL, e.Status)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.URL, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func remoteErr(op, url string, status int, err error) *RemoteError {
	return &RemoteError{Op: op, URL: url, Status: status, Err: err}
}
