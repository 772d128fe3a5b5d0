package client

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ShapeError reports a decoded JSON value whose structure does not match
// what an operation expected (an object where a list was needed, a list
// element that is not an object, and so on).
type ShapeError struct {
	Op   string
	Want string
	Got  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Op, e.Want, e.Got)
}

// DecodeError reports a response body that could not be parsed as JSON in
// either the strict or the wrapped form. Err holds the strict-parse error.
type DecodeError struct {
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("undecodable response body %q: %v", e.Body, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx reply from the master. Body holds the decoded
// response payload when it was parseable, the raw text otherwise. The
// master's own error classification inside the body is passed through
// untouched.
type HTTPError struct {
	Status int
	Method string
	Path   string
	Body   any
}

func (e *HTTPError) Error() string {
	// Structured failures arrive as {code, message, explain}.
	if obj, ok := e.Body.(*orderedmap.OrderedMap[string, any]); ok {
		if msg, found := obj.Get("message"); found {
			if explain, found := obj.Get("explain"); found && explain != nil {
				return fmt.Sprintf("%s %s: HTTP %d: %v (%v)", e.Method, e.Path, e.Status, msg, explain)
			}
			return fmt.Sprintf("%s %s: HTTP %d: %v", e.Method, e.Path, e.Status, msg)
		}
	}
	if e.Body == nil {
		return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %v", e.Method, e.Path, e.Status, e.Body)
}

// TransportError wraps a network-level failure (dial, TLS, timeout) for a
// request that never produced an HTTP status. Requests are never retried.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
