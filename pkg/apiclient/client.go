// Package apiclient is the portal's client for the school REST backend. Every authenticated call
// carries the session's bearer token and recovers from one expired-token failure by refreshing
// and retrying once.
package apiclient

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

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	appErrors "github.com/noah-isme/eschool-portal/pkg/errors"
	"github.com/noah-isme/eschool-portal/pkg/middleware/requestid"
)

// Refresh outcomes reported to the observer.
const (
	RefreshSucceeded = "succeeded"
	RefreshFailed    = "failed"
	RefreshMissing   = "missing_refresh_token"
)

// TokenSource is the slice of the session the client needs.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	SetAccessToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Observer receives upstream call timings and refresh outcomes.
type Observer interface {
	ObserveUpstream(method, route string, status int, duration time.Duration)
	ObserveRefresh(outcome string)
}

// Request describes one backend call. Body is buffered so a retry resends identical bytes.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
	// Route labels the call in metrics; defaults to Path.
	Route string
}

// NewJSONRequest encodes payload as the request body.
func NewJSONRequest(method, path string, payload interface{}) (*Request, error) {
	req := &Request{Method: method, Path: path}
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		req.Body = body
	}
	return req, nil
}

// Options configures a Client.
type Options struct {
	BaseURL     string
	RefreshPath string
	Timeout     time.Duration
	HTTPClient  *http.Client
	Logger      *zap.Logger
	Observer    Observer
}

// Client issues requests against the backend.
type Client struct {
	baseURL     string
	refreshPath string
	http        *http.Client
	logger      *zap.Logger
	observer    Observer
	refreshes   singleflight.Group
}

// New constructs a client.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	refreshPath := opts.RefreshPath
	if refreshPath == "" {
		refreshPath = "/api/token/refresh/"
	}
	return &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		refreshPath: refreshPath,
		http:        httpClient,
		logger:      logger,
		observer:    opts.Observer,
	}
}

// BaseURL returns the resolved backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Do performs an authenticated request. A missing access token fails without touching the
// network. A 401 triggers exactly one refresh; when it succeeds the request is retried once
// and that response is returned as is. When it fails the session is cleared and
// ErrAuthenticationFailed is returned. Every other response is returned unmodified.
func (c *Client) Do(ctx context.Context, tokens TokenSource, req *Request) (*http.Response, error) {
	token, err := tokens.AccessToken(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read session")
	}
	if token == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthenticated, "")
	}

	resp, err := c.send(ctx, req, token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	drain(resp)

	fresh, err := c.refresh(ctx, tokens)
	if err != nil {
		c.logger.Warn("token refresh failed, clearing session",
			zap.String("path", req.Path),
			zap.String("request_id", requestid.FromContext(ctx)),
			zap.Error(err))
		if clearErr := tokens.Clear(ctx); clearErr != nil {
			c.logger.Error("failed to clear session after refresh failure", zap.Error(clearErr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrAuthenticationFailed.Code, appErrors.ErrAuthenticationFailed.Status, appErrors.ErrAuthenticationFailed.Message)
	}
	if err := tokens.SetAccessToken(ctx, fresh); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store refreshed token")
	}

	return c.send(ctx, req, fresh)
}

// Post issues an unauthenticated JSON request, used for login.
func (c *Client) Post(ctx context.Context, path string, payload interface{}) (*http.Response, error) {
	req, err := NewJSONRequest(http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, req, "")
}

func (c *Client) refresh(ctx context.Context, tokens TokenSource) (string, error) {
	refreshToken, err := tokens.RefreshToken(ctx)
	if err != nil {
		return "", err
	}
	if refreshToken == "" {
		c.observeRefresh(RefreshMissing)
		return "", errors.New("no refresh token available")
	}

	// Concurrent 401s on the same session share one exchange. The exchange is detached from
	// any single caller's cancellation and bounded by the HTTP client timeout instead.
	value, err, _ := c.refreshes.Do(refreshToken, func() (interface{}, error) {
		return c.exchange(context.WithoutCancel(ctx), refreshToken)
	})
	if err != nil {
		c.observeRefresh(RefreshFailed)
		return "", err
	}
	c.observeRefresh(RefreshSucceeded)
	return value.(string), nil
}

func (c *Client) exchange(ctx context.Context, refreshToken string) (string, error) {
	req, err := NewJSONRequest(http.MethodPost, c.refreshPath, map[string]string{"refresh": refreshToken})
	if err != nil {
		return "", err
	}
	resp, err := c.send(ctx, req, "")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("refresh rejected with status %d", resp.StatusCode)
	}
	var payload struct {
		Access string `json:"access"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode refresh response: %w", err)
	}
	if payload.Access == "" {
		return "", errors.New("refresh response carried no access token")
	}
	return payload.Access, nil
}

func (c *Client) send(ctx context.Context, req *Request, token string) (*http.Response, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build backend request")
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	if token != "" && httpReq.Header.Get("Authorization") == "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	if httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if id := requestid.FromContext(ctx); id != "" && httpReq.Header.Get(requestid.HeaderKey) == "" {
		httpReq.Header.Set(requestid.HeaderKey, id)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	duration := time.Since(start)
	route := req.Route
	if route == "" {
		route = req.Path
	}
	if err != nil {
		c.observeUpstream(method, route, 0, duration)
		if ctx.Err() != nil {
			return nil, appErrors.Wrap(ctx.Err(), appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "request cancelled")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, appErrors.ErrUnavailable.Message)
	}
	c.observeUpstream(method, route, resp.StatusCode, duration)
	return resp, nil
}

func (c *Client) observeUpstream(method, route string, status int, d time.Duration) {
	if c.observer != nil {
		c.observer.ObserveUpstream(method, route, status, d)
	}
}

func (c *Client) observeRefresh(outcome string) {
	if c.observer != nil {
		c.observer.ObserveRefresh(outcome)
	}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
