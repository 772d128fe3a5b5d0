// Package client talks to a drover master's remote management API: JSON
// over HTTPS, HTTP basic authentication, protocol version 2. Responses are
// materialized into dynamic Resource values instead of fixed structs, so
// the client keeps working as the master grows new fields.
package client

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	// APIVersion is the protocol generation this client speaks. The
	// master's /version endpoint must report the same value.
	APIVersion = 2

	// DefaultPort is the port the master's management API listens on.
	DefaultPort = 5080

	apiRoot = "/2"

	defaultTimeout = 60 * time.Second
)

// Client is an authenticated session against one drover master. It is
// read-only after New and safe for concurrent use.
type Client struct {
	baseURL  string
	username string
	password string
	version  int
	http     *http.Client
	logger   zerolog.Logger
}

// Option adjusts a Client before the version probe runs.
type Option func(*Client) error

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		c.http = hc
		return nil
	}
}

// WithInsecureTLS disables certificate verification, for clusters running
// on self-signed certificates.
func WithInsecureTLS() Option {
	return func(c *Client) error {
		c.http.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
		return nil
	}
}

// WithCAFile trusts the given PEM bundle for the master's certificate.
func WithCAFile(path string) Option {
	return func(c *Client) error {
		pem, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading CA bundle: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return fmt.Errorf("no certificates in %s", path)
		}
		c.http.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{RootCAs: pool},
		}
		return nil
	}
}

// WithLogger routes the client's debug logging to the given logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// New opens a session against the master at host:port (DefaultPort when
// port is zero) and probes its protocol version before returning.
// Credentials ride along on every request as HTTP basic auth.
func New(host string, port int, username, password string, opts ...Option) (*Client, error) {
	if port == 0 {
		port = DefaultPort
	}
	c := &Client{
		baseURL:  fmt.Sprintf("https://%s:%d", host, port),
		username: username,
		password: password,
		logger:   zerolog.Nop(),
	}
	c.http = &http.Client{
		Timeout: defaultTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Go drops the Authorization header on cross-host redirects.
			if len(via) > 0 {
				req.SetBasicAuth(c.username, c.password)
			}
			return nil
		},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	version, err := c.GetVersion()
	if err != nil {
		return nil, fmt.Errorf("probing master version: %w", err)
	}
	if version != APIVersion {
		return nil, fmt.Errorf("master speaks protocol version %d, this client needs %d", version, APIVersion)
	}
	c.version = version
	return c, nil
}

// Version returns the protocol version negotiated at connect time.
func (c *Client) Version() int { return c.version }

// sendRequest performs one HTTP exchange and hands back the status code
// and raw body. Failures that never produced a status surface as
// *TransportError; nothing is retried.
func (c *Client) sendRequest(method, path string, query url.Values, body []byte) (int, []byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, u, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Method: method, URL: u, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &TransportError{Method: method, URL: u, Err: err}
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	return resp.StatusCode, respBody, nil
}

// newHTTPError builds the error for a non-2xx reply, decoding the body
// when possible so the master's failure report survives intact.
func newHTTPError(status int, method, path string, body []byte) *HTTPError {
	var decoded any
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 {
		if v, err := decodeBody(trimmed); err == nil {
			decoded = v
		} else {
			decoded = truncate(string(trimmed), 200)
		}
	}
	return &HTTPError{Status: status, Method: method, Path: path, Body: decoded}
}

// doRequest performs the exchange and decodes the body. Non-2xx replies
// become *HTTPError; empty bodies decode to nil.
func (c *Client) doRequest(method, path string, query url.Values, body []byte) (any, error) {
	status, respBody, err := c.sendRequest(method, path, query, body)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, newHTTPError(status, method, path, respBody)
	}
	trimmed := bytes.TrimSpace(respBody)
	if len(trimmed) == 0 {
		return nil, nil
	}
	return decodeBody(trimmed)
}

// requestResource materializes a single-object reply.
func (c *Client) requestResource(kind, method, path string, query url.Values, body []byte) (*Resource, error) {
	v, err := c.doRequest(method, path, query, body)
	if err != nil {
		return nil, err
	}
	return Materialize(kind, v)
}

// requestResourceList materializes an array-of-objects reply.
func (c *Client) requestResourceList(kind, method, path string, query url.Values, body []byte) ([]*Resource, error) {
	v, err := c.doRequest(method, path, query, body)
	if err != nil {
		return nil, err
	}
	return MaterializeList(kind, v)
}

// requestString renders a scalar reply (job ids, role names) as text.
func (c *Client) requestString(method, path string, query url.Values, body []byte) (string, error) {
	v, err := c.doRequest(method, path, query, body)
	if err != nil {
		return "", err
	}
	return scalarString(v), nil
}

// requestStrings interprets an array-of-strings reply (tags, OS names).
func (c *Client) requestStrings(method, path string, query url.Values, body []byte) ([]string, error) {
	v, err := c.doRequest(method, path, query, body)
	if err != nil {
		return nil, err
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, &ShapeError{Op: method + " " + path, Want: "array of strings", Got: jsonTypeName(v)}
	}
	out := make([]string, 0, len(arr))
	for _, el := range arr {
		s, ok := el.(string)
		if !ok {
			return nil, &ShapeError{Op: method + " " + path, Want: "array of strings", Got: "array containing " + jsonTypeName(el)}
		}
		out = append(out, s)
	}
	return out, nil
}

// requestRaw returns the reply body as uninterpreted text after the
// status check.
func (c *Client) requestRaw(method, path string, query url.Values, body []byte) (string, error) {
	status, respBody, err := c.sendRequest(method, path, query, body)
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", newHTTPError(status, method, path, respBody)
	}
	return string(respBody), nil
}

// idList extracts the "id" of each element of a name-listing reply.
func idList(what string, v any) ([]string, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, &ShapeError{Op: "list " + what, Want: "array", Got: jsonTypeName(v)}
	}
	out := make([]string, 0, len(arr))
	for i, el := range arr {
		obj, ok := el.(*orderedmap.OrderedMap[string, any])
		if !ok {
			return nil, &ShapeError{Op: fmt.Sprintf("list %s[%d]", what, i), Want: "object", Got: jsonTypeName(el)}
		}
		id, ok := obj.Get("id")
		if !ok {
			return nil, &ShapeError{Op: fmt.Sprintf("list %s[%d]", what, i), Want: "object with an id", Got: "object"}
		}
		out = append(out, scalarString(id))
	}
	return out, nil
}

// boolValue renders a boolean the way the master's query parser reads it.
func boolValue(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// addFlag appends an optional query flag only when enabled.
func addFlag(query url.Values, name string, enabled bool) {
	if enabled {
		query.Set(name, "1")
	}
}

// tagQuery encodes a tag list as repeated tag= parameters.
func tagQuery(tags []string, dryRun bool) url.Values {
	query := url.Values{}
	for _, tag := range tags {
		query.Add("tag", tag)
	}
	addFlag(query, "dry-run", dryRun)
	return query
}
