// Package api is the client's single authenticated HTTP pipeline.
//
// Every request picks up the stored access token. A 401 triggers one refresh
// through the refresh endpoint and one replay of the request with the new
// token. When the refresh fails, or the replay is rejected again, stored
// credentials are cleared and the Navigator is sent to the login route.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/dmitrijs2005/wealthwise/internal/common"
	"github.com/dmitrijs2005/wealthwise/internal/logging"
	"github.com/google/uuid"
)

// DefaultBaseURL is the development server's API root.
const DefaultBaseURL = "http://127.0.0.1:8000/api"

// RefreshPath is relative to the base URL.
const RefreshPath = "auth/token/refresh/"

const maxBodySize = 8 << 20

// TokenStore is the slice of the session store the pipeline needs.
type TokenStore interface {
	Tokens(ctx context.Context) (models.Tokens, error)
	SaveTokens(ctx context.Context, t models.Tokens) error
	Clear(ctx context.Context) error
}

// Request describes one API call. Path is relative to the base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

type Client struct {
	baseURL string
	http    *http.Client
	// bare client for the refresh call; it never goes through Do
	refresh   *http.Client
	tokens    TokenStore
	nav       Navigator
	log       logging.Logger
	requestID func() string
	timeout   *time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the transport used for API calls and refreshes.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
		c.refresh = hc
	}
}

// WithTimeout bounds each HTTP exchange. Zero means no client-side timeout.
// It applies to copies, so a client passed to WithHTTPClient is left as is.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = &d }
}

func WithNavigator(n Navigator) Option {
	return func(c *Client) { c.nav = n }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithRequestID overrides the X-Request-ID generator.
func WithRequestID(fn func() string) Option {
	return func(c *Client) { c.requestID = fn }
}

func New(baseURL string, tokens TokenStore, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{},
		refresh:   &http.Client{},
		tokens:    tokens,
		log:       logging.Discard(),
		requestID: uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	if c.timeout != nil {
		c.http = withTimeout(c.http, *c.timeout)
		c.refresh = withTimeout(c.refresh, *c.timeout)
	}
	return c, nil
}

func withTimeout(hc *http.Client, d time.Duration) *http.Client {
	cp := *hc
	cp.Timeout = d
	return &cp
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body}, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, out)
}

type response struct {
	status int
	body   []byte
}

// Do sends r and decodes a 2xx JSON body into out (when out is non-nil).
//
// Errors: *Error for non-2xx answers, ErrUnavailable for transport failures,
// *SessionExpiredError (matching ErrSessionExpired) when the one refresh
// attempt could not save the call.
func (c *Client) Do(ctx context.Context, r Request, out any) error {
	var payload []byte
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", r.Method, r.Path, err)
		}
		payload = b
	}

	tokens, err := c.tokens.Tokens(ctx)
	if err != nil {
		c.log.Warn(ctx, "reading stored tokens failed", "error", err)
	}

	resp, err := c.send(ctx, r, payload, tokens.Access)
	if err != nil {
		return err
	}

	if resp.status == http.StatusUnauthorized {
		first := decodeError(resp.status, resp.body)

		access, err := c.refreshTokens(ctx)
		if err != nil {
			c.log.Warn(ctx, "token refresh failed", "path", r.Path, "error", err)
			return c.expire(ctx, &SessionExpiredError{Rejected: first, Cause: err})
		}

		c.log.Debug(ctx, "replaying request with refreshed token", "method", r.Method, "path", r.Path)
		resp, err = c.send(ctx, r, payload, access)
		if err != nil {
			return err
		}
		if resp.status == http.StatusUnauthorized {
			c.log.Warn(ctx, "request rejected after refresh", "path", r.Path, "first", first.UserMessage())
			return c.expire(ctx, &SessionExpiredError{Rejected: decodeError(resp.status, resp.body)})
		}
	}

	if resp.status < 200 || resp.status > 299 {
		return decodeError(resp.status, resp.body)
	}

	if out == nil || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", r.Method, r.Path, err)
	}
	return nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) send(ctx context.Context, r Request, payload []byte, access string) (*response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, c.endpoint(r.Path, r.Query), body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", r.Method, r.Path, err)
	}

	id := c.requestID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, id)
	if access != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerToken(access))
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, c.transportError(ctx, err)
	}

	c.log.Debug(ctx, "api call",
		"request_id", id,
		"method", r.Method,
		"path", r.Path,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)
	return &response{status: resp.StatusCode, body: b}, nil
}

func (c *Client) transportError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// expire ends the session after an unrecoverable 401.
func (c *Client) expire(ctx context.Context, reason *SessionExpiredError) error {
	ctx = context.WithoutCancel(ctx)

	if err := c.tokens.Clear(ctx); err != nil {
		c.log.Error(ctx, "clearing stored credentials failed", "error", err)
	}

	if c.nav != nil {
		if current := c.nav.CurrentPath(); !IsPublicPath(current) {
			c.log.Info(ctx, "session expired, redirecting to login", "from", current)
			c.nav.Navigate(LoginPath)
		}
	}

	return reason
}
