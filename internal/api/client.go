// Package api is the REST client for the finance backend. Every call makes a
// single attempt; callers decide what to show when it fails.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"finance-tracker/internal/log"
)

// ErrUnauthorized is returned when the backend rejects the bearer token.
var ErrUnauthorized = errors.New("unauthorized")

// Error is a non-2xx response other than 401.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// TokenSource supplies the bearer token for authenticated calls.
// An empty token sends no Authorization header.
type TokenSource func() string

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	token      TokenSource
	logger     *log.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient = &http.Client{Timeout: d} }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.token = ts }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l.WithComponent(log.ComponentAPI) }
}

// New creates a client rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		token:      func() string { return "" },
		logger:     log.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// endpoint appends path, which callers have already escaped, to the base URL.
func (c *Client) endpoint(path string) (string, error) {
	u := *c.baseURL
	u.RawPath = u.EscapedPath() + path
	p, err := url.PathUnescape(u.RawPath)
	if err != nil {
		return "", err
	}
	u.Path = p
	return u.String(), nil
}

// do sends one request and decodes a JSON body into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	target, err := c.endpoint(path)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "Backend request failed",
			log.FieldEndpoint, path, log.FieldMethod, method, log.FieldError, err.Error())
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Backend request completed",
		log.FieldEndpoint, path, log.FieldMethod, method,
		log.FieldStatusCode, resp.StatusCode, log.FieldDuration, time.Since(start).Milliseconds())

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// errorMessage pulls "error" or "message" out of a JSON error body, falling back to the raw text.
func errorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &body) == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return strings.TrimSpace(string(raw))
}

// IsUnauthorized reports whether err means the session is no longer accepted.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
