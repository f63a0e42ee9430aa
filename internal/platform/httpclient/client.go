// Copyright (c) 2026 Guidora. All rights reserved.
// Author: dev@guidora.app

/*
Package httpclient implements the outbound HTTP layer of the mobile core.

Every call to the Guidora backend flows through one [*Client], which owns:

  - The fixed base URL and the request timeout.
  - A mutable default-header map (the session layer writes the Authorization
    header here once, instead of threading the credential through every call).
  - A request hook that attaches correlation IDs and strips the Authorization
    header from the two unauthenticated endpoints (login, register).
  - A response hook that reacts to HTTP 401 by notifying the registered
    credential-invalidation callback, uniformly for all endpoints.
  - An outbound rate limiter, so a burst of UI-triggered calls cannot trip
    server-side throttling.
*/
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/guidora/mobile-core/internal/platform/apperr"
	"github.com/guidora/mobile-core/internal/platform/constants"
	"github.com/guidora/mobile-core/internal/platform/ctxutil"
)

// Envelope is the standard response shape of every Guidora backend endpoint.
//
// # Contract
//
// A 200 response with Status=false is a business-rule failure (wrong password,
// role request denied). The Message field carries the displayable reason and
// Data the payload, when present.
type Envelope struct {
	Status  bool           `json:"status"`
	Message string         `json:"message,omitempty"`
	Data    map[string]any `json:"data,omitempty"`

	// HTTPStatus is the transport-level status the envelope arrived with.
	HTTPStatus int `json:"-"`
}

// UnauthorizedHook is invoked when an authenticated request receives HTTP 401.
// failedCredential is the bearer value that was attached to the rejected call,
// so the session layer can clear it exactly once even under concurrent 401s.
type UnauthorizedHook func(ctx context.Context, failedCredential string)

// Config holds the construction parameters for a [*Client].
type Config struct {
	// BaseURL is the scheme://host[/prefix] all paths are appended to.
	BaseURL string

	// Timeout bounds each request. Zero selects the platform default.
	Timeout time.Duration

	// Logger receives per-request diagnostics. Nil selects slog.Default.
	Logger *slog.Logger

	// RateLimit and RateBurst tune the outbound limiter. Zero selects the
	// platform defaults.
	RateLimit float64
	RateBurst int
}

// Client is the shared outbound HTTP client of the mobile core.
//
// # Concurrency
//
// All methods are safe for concurrent use. Default headers are guarded by
// their own lock because UI flows mutate them (login/logout) while other
// requests are in flight.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	log     *slog.Logger

	headerMu       sync.RWMutex
	defaultHeaders map[string]string

	hookMu         sync.RWMutex
	onUnauthorized UnauthorizedHook
}

// New constructs a [*Client] from the given configuration.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}

	limit := cfg.RateLimit
	if limit <= 0 {
		limit = constants.DefaultRateLimitRPS
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = constants.DefaultRateLimitBurst
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		http:           &http.Client{Timeout: timeout},
		limiter:        rate.NewLimiter(rate.Limit(limit), burst),
		log:            logger,
		defaultHeaders: make(map[string]string),
	}
}

// # Default Headers

// SetDefaultHeader stores a header attached to every subsequent request.
func (c *Client) SetDefaultHeader(name, value string) {
	c.headerMu.Lock()
	defer c.headerMu.Unlock()
	c.defaultHeaders[name] = value
}

// DeleteDefaultHeader removes a previously stored default header.
func (c *Client) DeleteDefaultHeader(name string) {
	c.headerMu.Lock()
	defer c.headerMu.Unlock()
	delete(c.defaultHeaders, name)
}

// DefaultHeader returns the stored value of a default header, if any.
func (c *Client) DefaultHeader(name string) (string, bool) {
	c.headerMu.RLock()
	defer c.headerMu.RUnlock()
	value, ok := c.defaultHeaders[name]
	return value, ok
}

// # Hooks

// OnUnauthorized registers the callback fired when any authenticated request
// receives HTTP 401. Only one callback is supported; the session manager owns it.
func (c *Client) OnUnauthorized(hook UnauthorizedHook) {
	c.hookMu.Lock()
	defer c.hookMu.Unlock()
	c.onUnauthorized = hook
}

// skipAuth reports whether the path must be sent WITHOUT the Authorization
// header. Exactly two endpoints are unauthenticated by contract.
func skipAuth(path string) bool {
	return strings.HasSuffix(path, constants.PathLogin) ||
		strings.HasSuffix(path, constants.PathRegister)
}

// # Request Execution

// PostJSON sends a JSON POST to path (relative to the base URL) and decodes
// the standard response envelope.
//
// # Parameters
//   - ctx: Deadline/cancellation for the call.
//   - path: Endpoint path, e.g. "/user/login".
//   - body: Marshalled as the JSON request body. Nil sends an empty object.
//
// # Returns
//   - The decoded [*Envelope], including business failures (Status=false).
//   - An [*apperr.APIError] for transport failures, unreadable bodies, 401
//     rejections, and server errors without a parsable envelope.
func (c *Client) PostJSON(ctx context.Context, path string, body any) (*Envelope, error) {
	// ── 1. Outbound Rate Limiting ─────────────────────────────────────────

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperr.Transport(err)
	}

	// ── 2. Request Construction ───────────────────────────────────────────

	if body == nil {
		body = struct{}{}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, apperr.Decode(0, nil, err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, apperr.Transport(err)
	}

	// ── 3. Request Hook (headers, correlation, auth stripping) ────────────

	requestID := uuid.NewString()
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set(constants.HeaderRequestID, requestID)

	c.headerMu.RLock()
	for name, value := range c.defaultHeaders {
		request.Header.Set(name, value)
	}
	c.headerMu.RUnlock()

	if skipAuth(path) {
		request.Header.Del(constants.HeaderAuthorization)
	}
	attachedAuth := request.Header.Get(constants.HeaderAuthorization)

	logger := ctxutil.GetLogger(ctx)
	if logger == slog.Default() {
		logger = c.log
	}

	// ── 4. Execution ──────────────────────────────────────────────────────

	response, err := c.http.Do(request)
	if err != nil {
		logger.Warn("backend request failed",
			slog.String("path", path),
			slog.String("request_id", requestID),
			slog.Any("error", err),
		)
		return nil, apperr.Transport(err)
	}
	defer func() { _ = response.Body.Close() }()

	rawBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, apperr.Transport(err)
	}

	// ── 5. Response Hook (uniform 401 handling) ───────────────────────────

	if response.StatusCode == http.StatusUnauthorized && attachedAuth != "" {
		failedCredential := strings.TrimPrefix(attachedAuth, constants.BearerPrefix)

		c.hookMu.RLock()
		hook := c.onUnauthorized
		c.hookMu.RUnlock()

		if hook != nil {
			hook(ctx, failedCredential)
		}

		logger.Warn("credential rejected by backend",
			slog.String("path", path),
			slog.String("request_id", requestID),
		)
		return nil, apperr.Unauthorized(rawBody)
	}

	// ── 6. Envelope Decoding ──────────────────────────────────────────────

	envelope := &Envelope{}
	if err := json.Unmarshal(rawBody, envelope); err != nil {
		if response.StatusCode < 200 || response.StatusCode > 299 {
			return nil, apperr.Server(response.StatusCode, rawBody)
		}
		return nil, apperr.Decode(response.StatusCode, rawBody, err)
	}
	envelope.HTTPStatus = response.StatusCode

	return envelope, nil
}
