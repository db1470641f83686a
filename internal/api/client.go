// Package api implements the authenticated MyMentor HTTP client.
//
// Every request carries Authorization: Bearer <token> when a token is
// available. Failures are classified into a small taxonomy (errors.go) and
// session-affecting ones fire the registered teardown hook before they
// propagate, so callers never have to remember to log the user out.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds every request. A timeout surfaces as ErrConnectivity,
// not an application error.
const DefaultTimeout = 30 * time.Second

// maxResponseSize limits response body reads.
const maxResponseSize = 10 << 20

// TokenSource supplies the bearer token attached to outbound requests. An
// empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Client wraps the backend REST API. It performs no retries; the one-shot
// 401 guard tears down and reports, it never replays.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	tokens        TokenSource
	onAuthFailure func()
}

// Option configures the client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New creates a client for the given base URL.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		tokens:     tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnAuthFailure registers the hook fired before a session-affecting error is
// returned. The session store installs its teardown here; keeping the hook
// injected avoids any global session state.
func (c *Client) OnAuthFailure(fn func()) {
	c.onAuthFailure = fn
}

// Do executes one JSON request against path. body and out may be nil; out is
// ignored when the response has no payload.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out, true)
}

// DoAnonymous executes a request with no session attached: the stored token
// is not sent and a 401 comes back as a plain *HTTPError instead of
// ErrSessionExpired, so a live session elsewhere is left alone. Login goes
// through here.
func (c *Client) DoAnonymous(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out, false)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, session bool) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			c.failSession()
			return fmt.Errorf("%w: encode body: %v", ErrRequestSetup, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		c.failSession()
		return fmt.Errorf("%w: %v", ErrRequestSetup, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if session {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.failSession()
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		c.failSession()
		return fmt.Errorf("%w: read body: %v", ErrConnectivity, err)
	}

	if resp.StatusCode == http.StatusUnauthorized && session {
		c.failSession()
		return ErrSessionExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{Status: resp.StatusCode, Message: errorMessage(data)}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) failSession() {
	if c.onAuthFailure != nil {
		c.onAuthFailure()
	}
}

// errorMessage digs the backend's error text out of a failure body. The API
// is inconsistent about the field name, so all known ones are checked.
func errorMessage(data []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Mensaje string `json:"mensaje"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		text := strings.TrimSpace(string(data))
		if len(text) > 200 {
			text = text[:200]
		}
		return text
	}
	for _, msg := range []string{payload.Error, payload.Mensaje, payload.Message} {
		if msg != "" {
			return msg
		}
	}
	return ""
}
