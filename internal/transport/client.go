// Package transport provides the HTTP client shared by the update pipeline.
package transport

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	oerrors "github.com/appupdater/cli/internal/errors"
)

// MaxDocumentSize bounds metadata and changelog bodies.
const MaxDocumentSize = 1 << 20

// DefaultTimeout is used when Options.Timeout is zero.
const DefaultTimeout = 20 * time.Second

// Options configures a Client.
type Options struct {
	// Timeout bounds connecting, waiting for response headers and every
	// Fetch as a whole. Streaming callers of Get bound body reads themselves.
	Timeout time.Duration

	// UserAgent is sent with every request when set.
	UserAgent string
}

// Client issues GET requests for the update pipeline.
type Client struct {
	http      *http.Client
	userAgent string
	timeout   time.Duration
}

// NewClient creates a client with its own connection pool.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	dialer := &net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.DialContext = dialer.DialContext
	tr.TLSHandshakeTimeout = timeout
	tr.ResponseHeaderTimeout = timeout

	return &Client{
		http:      &http.Client{Transport: tr},
		userAgent: opts.UserAgent,
		timeout:   timeout,
	}
}

// Timeout returns the effective request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// RequestOption mutates an outgoing request.
type RequestOption func(*http.Request)

// NoCache forbids any cache between client and origin from answering the request.
func NoCache() RequestOption {
	return func(req *http.Request) {
		req.Header.Set("Cache-Control", "no-cache, no-store")
		req.Header.Set("Pragma", "no-cache")
	}
}

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %s", e.URL, e.Status)
}

// Get performs a GET and returns the response for a 2xx status.
// The caller must close the body. Every failure wraps ErrTransport.
func (c *Client) Get(ctx context.Context, url string, opts ...RequestOption) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, oerrors.Wrap(oerrors.ErrTransport, err, "building request")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for _, opt := range opts {
		opt(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, oerrors.Wrap(oerrors.ErrTransport, err, "requesting "+url)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
		return nil, oerrors.Wrap(oerrors.ErrTransport, &StatusError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}, "requesting "+url)
	}

	return resp, nil
}

// Fetch performs a GET and reads the whole body, which must not exceed limit bytes.
// The request, body included, must complete within the client timeout.
func (c *Client) Fetch(ctx context.Context, url string, limit int64, opts ...RequestOption) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.Get(ctx, url, opts...)
	if err != nil {
		return nil, err
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, oerrors.Wrap(oerrors.ErrTransport, err, "reading "+url)
	}
	if int64(len(data)) > limit {
		return nil, oerrors.Wrap(oerrors.ErrTransport, nil, fmt.Sprintf("reading %s: body exceeds %d bytes", url, limit))
	}

	return data, nil
}
