// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL matches the backend's development listen address.
	DefaultBaseURL = "http://localhost:4000"

	// DefaultTimeout bounds each request.
	DefaultTimeout = 15 * time.Second

	// MaxResponseSize caps how much of a response body is read.
	MaxResponseSize = 1 << 20

	// RequestIDHeader carries a per-request UUID for correlating with
	// backend logs.
	RequestIDHeader = "X-Request-ID"
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the client.
type ClientConfig struct {
	// BaseURL is the API base URL (default: http://localhost:4000)
	BaseURL string

	// Timeout for each request (default: 15s)
	Timeout time.Duration

	// RequestsPerSecond paces outbound requests; 0 disables pacing.
	RequestsPerSecond float64

	// Burst is the pacing token bucket size (default: 1 when pacing).
	Burst int

	// Logger receives one entry per request. Nil means no logging.
	Logger *zap.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the authentication backend.
//
// The Client is safe for concurrent use. Its cookie jar lives for the
// process lifetime and is never written to disk.
type Client struct {
	mu      sync.RWMutex
	baseURL string

	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewClient creates a client for baseURL with default settings.
func NewClient(baseURL string) *Client {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	return NewClientWithConfig(cfg)
}

// NewClientWithConfig creates a client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// cookiejar.New never returns an error.
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	var limiter *rate.Limiter
	if config.RequestsPerSecond > 0 {
		burst := config.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: config.Timeout,
			Jar:     jar,
		},
		limiter: limiter,
		logger:  logger.Named("api"),
	}
}

// BaseURL returns the current base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL switches the backend for subsequent requests. In-flight
// requests keep the URL they started with. Cookies are keyed by host, so a
// session established against the old backend is not sent to the new one.
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimSuffix(baseURL, "/")
}

// Jar exposes the cookie jar, mainly for tests.
func (c *Client) Jar() http.CookieJar {
	return c.httpClient.Jar
}

// =============================================================================
// ENDPOINTS
// =============================================================================

// IsAuth asks whether the session cookie identifies a logged-in user.
func (c *Client) IsAuth(ctx context.Context) (Envelope, error) {
	var env Envelope
	err := c.do(ctx, http.MethodGet, PathIsAuth, nil, &env)
	return env, err
}

// UserData fetches the current user's profile.
func (c *Client) UserData(ctx context.Context) (UserProfile, error) {
	var resp UserDataResponse
	if err := c.do(ctx, http.MethodGet, PathUserData, nil, &resp); err != nil {
		return UserProfile{}, err
	}
	if resp.UserData == nil {
		return UserProfile{}, &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: "response is missing userData",
		}
	}
	return *resp.UserData, nil
}

// VerifyAccount submits the email verification code.
func (c *Client) VerifyAccount(ctx context.Context, otp string) (Envelope, error) {
	var env Envelope
	err := c.do(ctx, http.MethodPost, PathVerifyAccount, VerifyAccountRequest{OTP: otp}, &env)
	return env, err
}

// SendVerifyOTP asks the backend to email a verification code to the
// logged-in user.
func (c *Client) SendVerifyOTP(ctx context.Context) (Envelope, error) {
	var env Envelope
	err := c.do(ctx, http.MethodPost, PathSendVerifyOTP, struct{}{}, &env)
	return env, err
}

// SendResetOTP asks the backend to email a password reset code.
func (c *Client) SendResetOTP(ctx context.Context, email string) (Envelope, error) {
	var env Envelope
	err := c.do(ctx, http.MethodPost, PathSendResetOTP, SendResetOTPRequest{Email: email}, &env)
	return env, err
}

// ResetPassword sets a new password. The OTP is validated here, not earlier.
func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) (Envelope, error) {
	var env Envelope
	body := ResetPasswordRequest{Email: email, OTP: otp, NewPassword: newPassword}
	err := c.do(ctx, http.MethodPost, PathResetPassword, body, &env)
	return env, err
}

// Login starts a session. The session cookie lands in the jar.
func (c *Client) Login(ctx context.Context, email, password string) (Envelope, error) {
	var env Envelope
	err := c.do(ctx, http.MethodPost, PathLogin, LoginRequest{Email: email, Password: password}, &env)
	return env, err
}

// Register creates an account and starts a session.
func (c *Client) Register(ctx context.Context, name, email, password string) (Envelope, error) {
	var env Envelope
	body := RegisterRequest{Name: name, Email: email, Password: password}
	err := c.do(ctx, http.MethodPost, PathRegister, body, &env)
	return env, err
}

// Logout ends the session.
func (c *Client) Logout(ctx context.Context) (Envelope, error) {
	var env Envelope
	err := c.do(ctx, http.MethodPost, PathLogout, struct{}{}, &env)
	return env, err
}

// =============================================================================
// TRANSPORT
// =============================================================================

// do performs one request and decodes the envelope into out. Any outcome
// other than a 2xx success:true response becomes a *ClientError.
func (c *Client) do(ctx context.Context, method, path string, body any, out enveloped) error {
	requestID := uuid.NewString()
	start := time.Now()
	log := c.logger.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)

	err := c.roundTrip(ctx, method, path, requestID, body, out)

	var ce *ClientError
	if errors.As(err, &ce) {
		log.Warn("request failed",
			zap.Stringer("type", ce.Type),
			zap.Int("status", ce.Status),
			zap.String("backend_message", ce.Backend),
			zap.Duration("duration", time.Since(start)),
			zap.NamedError("cause", ce.Cause),
		)
	} else {
		log.Debug("request succeeded", zap.Duration("duration", time.Since(start)))
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path, requestID string, body any, out enveloped) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return contextError(ctx, err)
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &ClientError{Type: ErrTypeUnknown, Message: "failed to encode request", Cause: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL()+path, reader)
	if err != nil {
		return &ClientError{Type: ErrTypeTransport, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return contextError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return contextError(ctx, err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if decodeErr := json.Unmarshal(data, out); decodeErr != nil {
		if !ok {
			return statusError(resp.StatusCode, "")
		}
		return &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: "failed to decode response",
			Status:  resp.StatusCode,
			Cause:   decodeErr,
		}
	}

	env := out.envelope()
	if !ok {
		return statusError(resp.StatusCode, env.Message)
	}
	if !env.Success {
		return rejectedError(resp.StatusCode, env.Message)
	}
	return nil
}

// contextError classifies a transport failure, preferring the caller's
// context state over the wrapped net error.
func contextError(ctx context.Context, err error) *ClientError {
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return &ClientError{Type: ErrTypeCanceled, Message: "request canceled", Cause: err}
	case errors.Is(err, context.DeadlineExceeded), isTimeout(err):
		return &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
	default:
		return &ClientError{Type: ErrTypeTransport, Message: "network error", Cause: err}
	}
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}
