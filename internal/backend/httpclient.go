// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	apperrors "examdesk/cli/internal/errors"
)

// Config configures the gateway.
type Config struct {
	// BaseURL is prepended to every descriptor path (e.g. "http://localhost:8000/api/v1").
	BaseURL string
	// Timeout bounds each attempt (default: 30s).
	Timeout time.Duration
	Retry   RetryPolicy
	// RateLimit caps requests per second; zero disables limiting.
	RateLimit float64
	// UserAgent string (default: "examdesk-cli").
	UserAgent string
	// Transport allows injecting a custom HTTP transport (for tests/stubs).
	Transport http.RoundTripper
}

// DefaultConfig returns the gateway defaults for baseURL.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:   baseURL,
		Timeout:   30 * time.Second,
		Retry:     DefaultRetryPolicy(),
		UserAgent: "examdesk-cli",
	}
}

// Client executes descriptors against the REST backend. It is safe for concurrent use.
type Client struct {
	baseURL string
	retry   RetryPolicy
	agent   string
	client  *http.Client
	limiter *rate.Limiter
	creds   Credentials
	log     *slog.Logger
}

// NewClient creates a gateway. A nil creds sends unauthenticated requests;
// a nil logger discards diagnostics.
func NewClient(cfg Config, creds Credentials, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "examdesk-cli"
	}
	if creds == nil {
		creds = noCredentials{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		retry:   cfg.Retry,
		agent:   cfg.UserAgent,
		client:  &http.Client{Timeout: cfg.Timeout, Transport: cfg.Transport},
		creds:   creds,
		log:     logger,
	}
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return c
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// Send executes d and returns the response body of the first 2xx answer.
// Server errors and transport failures are retried per the retry policy;
// client errors fail on the first attempt. A 401 clears the stored credentials.
// Every failure is returned as an *errors.E.
func (c *Client) Send(ctx context.Context, d Descriptor) ([]byte, error) {
	requestID := uuid.NewString()
	attempts := c.retry.attempts()

	var lastErr *apperrors.E
	for attempt := 1; attempt <= attempts; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, apperrors.Wrap(apperrors.Network, "rate limiter: "+err.Error(), err)
			}
		}

		body, err := c.doOnce(ctx, d, requestID)
		if err == nil {
			return body, nil
		}
		lastErr = err
		c.report(d, requestID, attempt, err)

		if err.Kind == apperrors.Unauthorized {
			if clearErr := c.creds.Clear(); clearErr != nil {
				c.log.Debug("clear credentials", "error", clearErr)
			}
		}
		if !err.Retryable() || attempt == attempts || ctx.Err() != nil {
			break
		}
		if werr := c.retry.wait(ctx); werr != nil {
			break
		}
		c.log.Debug("retrying request",
			"method", d.Method, "path", d.Path, "attempt", attempt+1, "request_id", requestID)
	}
	return nil, lastErr
}

// doOnce executes a single attempt.
func (c *Client) doOnce(ctx context.Context, d Descriptor, requestID string) ([]byte, *apperrors.E) {
	body, contentType, err := d.encodeBody()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Unknown, err.Error(), err)
	}

	req, err := http.NewRequestWithContext(ctx, d.Method, d.resolve(c.baseURL), body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Unknown, fmt.Sprintf("create request: %v", err), err)
	}
	c.setStandardHeaders(req, requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range d.Headers {
		req.Header.Set(k, v)
	}
	if token, ok := c.creds.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Network, transportMessage(err), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.E{Kind: apperrors.Network, Status: resp.StatusCode, Message: transportMessage(err), Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}
	return nil, &apperrors.E{
		Kind:    apperrors.KindForStatus(resp.StatusCode),
		Status:  resp.StatusCode,
		Message: apperrors.ExtractMessage(data, fmt.Sprintf("request failed with status code %d", resp.StatusCode)),
	}
}

// setStandardHeaders applies the JSON defaults shared by every request.
func (c *Client) setStandardHeaders(req *http.Request, requestID string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.agent)
	req.Header.Set("X-Request-ID", requestID)
}

// transportMessage strips the method and URL prefix that net/http adds.
func transportMessage(err error) string {
	var uerr *url.Error
	if stderrors.As(err, &uerr) && uerr.Err != nil && uerr.Err.Error() != "" {
		return uerr.Err.Error()
	}
	if s := err.Error(); s != "" {
		return s
	}
	return apperrors.FallbackMessage
}

// Do sends d and decodes the JSON response into T.
// An empty body (e.g. 204 No Content) yields the zero value.
func Do[T any](ctx context.Context, c *Client, d Descriptor) (T, error) {
	var out T
	body, err := c.Send(ctx, d)
	if err != nil {
		return out, err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, apperrors.Wrap(apperrors.Unknown, "decode response: "+err.Error(), err)
	}
	return out, nil
}
