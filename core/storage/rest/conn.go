package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"object-gateway/core/storage"
)

// maxErrorBody caps how much of an error response is kept in StatusError.
const maxErrorBody = 4 << 10

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options holds settings shared by every tenant connection.
type Options struct {
	// Client overrides the HTTP client; tests pass an httptest server client.
	Client Doer
	// TimeoutSeconds bounds a whole request when Client is nil.
	TimeoutSeconds int
	// Concurrency bounds parallel single deletes for dialects without a batch endpoint.
	Concurrency int
}

func (o Options) client() Doer {
	if o.Client != nil {
		return o.Client
	}
	timeout := o.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return &http.Client{
		Timeout: time.Duration(timeout) * time.Second,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			DialContext:         (&net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}

func (o Options) concurrency() int {
	if o.Concurrency <= 0 {
		return 8
	}
	return o.Concurrency
}

// StatusError reports a non-2xx response from the backend.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Conn is the per-tenant handle: a base URL, credentials and an HTTP client.
type Conn struct {
	base      *url.URL
	namespace string
	authorize func(*http.Request)
	client    Doer
}

func dial(cfg storage.Config, client Doer, authorize func(*http.Request)) (*Conn, error) {
	base, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("unsupported endpoint scheme %q", base.Scheme)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("endpoint %q has no host", cfg.URL)
	}
	return &Conn{
		base:      base,
		namespace: cfg.Namespace,
		authorize: authorize,
		client:    client,
	}, nil
}

// Namespace returns the tenant namespace, empty for dialects that do not use one.
func (c *Conn) Namespace() string {
	return c.namespace
}

// resolve appends segments to the base URL. Each segment is one path element:
// "/" inside it is escaped and nothing is cleaned, so an object key can never
// step out of its bucket or container.
func (c *Conn) resolve(segments []string) (*url.URL, error) {
	u := *c.base
	if len(segments) == 0 {
		return &u, nil
	}
	escaped := make([]string, len(segments))
	for i, s := range segments {
		if s == "." || s == ".." {
			return nil, storage.Validation("build request", s, "path element must not be a dot segment")
		}
		escaped[i] = url.PathEscape(s)
	}
	u.RawPath = strings.TrimSuffix(c.base.EscapedPath(), "/") + "/" + strings.Join(escaped, "/")
	path, err := url.PathUnescape(u.RawPath)
	if err != nil {
		return nil, fmt.Errorf("build request path: %w", err)
	}
	u.Path = path
	return &u, nil
}

func (c *Conn) newRequest(ctx context.Context, method string, query url.Values, body io.Reader, segments ...string) (*http.Request, error) {
	u, err := c.resolve(segments)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	c.authorize(req)
	return req, nil
}

func (c *Conn) do(req *http.Request) (*http.Response, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// doJSON sends in as a JSON body (when non-nil) and decodes a 2xx response into out (when non-nil).
func (c *Conn) doJSON(ctx context.Context, method string, query url.Values, in, out any, segments ...string) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, query, body, segments...)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(req, resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, req.URL.Path, err)
	}
	return nil
}

// exists issues a HEAD request: 2xx is true, 404 is false, anything else an error.
func (c *Conn) exists(ctx context.Context, segments ...string) (bool, error) {
	req, err := c.newRequest(ctx, http.MethodHead, nil, nil, segments...)
	if err != nil {
		return false, err
	}
	resp, err := c.do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if err := checkStatus(req, resp); err != nil {
		return false, err
	}
	return true, nil
}

// put uploads raw content with extra headers. Header names are kept verbatim
// so tag keys retain their case.
func (c *Conn) put(ctx context.Context, content []byte, contentType string, headers map[string]string, segments ...string) error {
	req, err := c.newRequest(ctx, http.MethodPut, nil, bytes.NewReader(content), segments...)
	if err != nil {
		return err
	}
	req.ContentLength = int64(len(content))
	req.Header.Set("Content-Type", contentType)
	for name, value := range headers {
		req.Header[name] = []string{value}
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(req, resp)
}

func (c *Conn) get(ctx context.Context, query url.Values, segments ...string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, query, nil, segments...)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(req, resp); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

// remove issues a DELETE; a 404 counts as already removed.
func (c *Conn) remove(ctx context.Context, segments ...string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, nil, nil, segments...)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	return checkStatus(req, resp)
}

func checkStatus(req *http.Request, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		Method:     req.Method,
		Path:       req.URL.Path,
		StatusCode: resp.StatusCode,
		Body:       string(bytes.TrimSpace(body)),
	}
}

func basicAuth(user, password string) func(*http.Request) {
	return func(req *http.Request) {
		req.SetBasicAuth(user, password)
	}
}

func bearerToken(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func versionQuery(name, versionID string) url.Values {
	if versionID == "" {
		return nil
	}
	return url.Values{name: {versionID}}
}
