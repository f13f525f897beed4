// Package relay is the HTTP client for the clippy relay server, which stores
// clips pushed by one device and hands them out to the others.
package relay

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"go.klb.dev/clippy/internal/message"
)

const (
	pathClip            = "/v1/clip"
	pathClips           = "/v1/clips"
	pathLatestPerDevice = "/v1/latest_per_device"

	// maxErrorBody bounds how much of a failed response is kept for reporting.
	maxErrorBody = 500

	defaultConnectTimeout = 3 * time.Second
	defaultReadTimeout    = 10 * time.Second
	defaultPullLimit      = 50
)

// TransportError reports a request that never produced an HTTP response,
// or whose response could not be decoded.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("relay %s: %v", e.Op, e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// HTTPStatusError reports a response with an unexpected status code.
type HTTPStatusError struct {
	Op         string
	StatusCode int
	Body       string // truncated to 500 bytes
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("relay %s: http %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("relay %s: http %d: %s", e.Op, e.StatusCode, e.Body)
}

// Options tunes a Client. Zero values take defaults.
type Options struct {
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	PullLimit      int

	// TLSConfig verifies the relay certificate; nil means the system roots.
	TLSConfig *tls.Config

	// HTTPClient replaces the client built from the timeouts.
	HTTPClient *http.Client
}

// Client talks to one relay. Every request carries the bearer token. Failed
// requests are not retried.
type Client struct {
	baseURL   string
	token     string
	pullLimit int
	http      *http.Client
}

// New returns a Client for the relay at baseURL.
func New(baseURL, token string, opts Options) *Client {
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = defaultConnectTimeout
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = defaultReadTimeout
	}
	if opts.PullLimit <= 0 {
		opts.PullLimit = defaultPullLimit
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{
			Timeout: opts.ConnectTimeout + opts.ReadTimeout,
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				DialContext:           (&net.Dialer{Timeout: opts.ConnectTimeout}).DialContext,
				TLSClientConfig:       opts.TLSConfig,
				TLSHandshakeTimeout:   opts.ConnectTimeout,
				ResponseHeaderTimeout: opts.ReadTimeout,
			},
		}
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		token:     token,
		pullLimit: opts.PullLimit,
		http:      hc,
	}
}

// Push uploads one clip.
func (c *Client) Push(ctx context.Context, clip message.Clip) error {
	body, err := json.Marshal(clip)
	if err != nil {
		return &TransportError{Op: "push", Err: fmt.Errorf("encode: %w", err)}
	}
	req, err := c.newRequest(ctx, http.MethodPost, pathClip, nil, bytes.NewReader(body))
	if err != nil {
		return &TransportError{Op: "push", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return &TransportError{Op: "push", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError("push", resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Pull returns candidate clips newest-first, with content included. With
// latestPerDevice the relay returns only each device's newest clip;
// otherwise the most recent clips up to the configured limit.
func (c *Client) Pull(ctx context.Context, latestPerDevice bool) ([]message.RemoteClip, error) {
	path := pathClips
	q := url.Values{"include_content": {"1"}}
	if latestPerDevice {
		path = pathLatestPerDevice
	} else {
		q.Set("limit", strconv.Itoa(c.pullLimit))
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return nil, &TransportError{Op: "pull", Err: err}
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, &TransportError{Op: "pull", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("pull", resp)
	}

	var list message.List
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, &TransportError{Op: "pull", Err: fmt.Errorf("invalid response: %w", err)}
	}
	return list.Items, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, q url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		slog.Debug("relay request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"request_id", req.Header.Get("X-Request-Id"),
			"err", err,
		)
		return nil, err
	}
	slog.Debug("relay request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"request_id", req.Header.Get("X-Request-Id"),
		"took", time.Since(start).Round(time.Millisecond),
	)
	return resp, nil
}

func statusError(op string, resp *http.Response) *HTTPStatusError {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &HTTPStatusError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(b)),
	}
}
