// Package backend is the HTTP client for the question generator service.
package backend

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

	"go.uber.org/zap"

	"github.com/abhisek/mathgen/internal/config"
	"github.com/abhisek/mathgen/internal/questions"
)

// EndpointPath is the generate endpoint relative to the base URL.
const EndpointPath = "/api/generate-math-questions"

// RequestIDHeader carries the attempt id to the backend for correlation.
const RequestIDHeader = "X-Request-ID"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// Client issues generate requests to a single backend.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithTimeout bounds each request, including reading the body. It applies
// to a copy, so a shared client passed to WithHTTPClient is left alone.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.client
		hc.Timeout = d
		c.client = &hc
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client for the backend at baseURL, e.g. "http://localhost:8000".
// An empty or invalid baseURL is not rejected here; every Generate call
// fails with a KindConfig error instead.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: 2 * time.Minute},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Generate serializes cfg, issues exactly one POST, and decodes the
// questions. Every failure is a *RequestError.
func (c *Client) Generate(ctx context.Context, cfg config.Config) ([]questions.Question, error) {
	endpoint, err := c.endpoint()
	if err != nil {
		return nil, &RequestError{Kind: KindConfig, Err: err}
	}

	body, err := json.Marshal(cfg)
	if err != nil {
		return nil, &RequestError{Kind: KindTransport, Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &RequestError{Kind: KindTransport, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	requestID := RequestIDFrom(ctx)
	if requestID != "" {
		req.Header.Set(RequestIDHeader, requestID)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("generate request failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, &RequestError{Kind: KindTransport, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &RequestError{Kind: KindTransport, Err: fmt.Errorf("read body: %w", err)}
	}

	c.logger.Debug("generate response",
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{
			Kind:       KindStatus,
			StatusCode: resp.StatusCode,
			Detail:     errorDetail(data),
			Err:        fmt.Errorf("HTTP %d", resp.StatusCode),
		}
	}

	qs, err := questions.Decode(data)
	if err != nil {
		return nil, &RequestError{Kind: KindMalformed, StatusCode: resp.StatusCode, Err: err}
	}
	return qs, nil
}

func (c *Client) endpoint() (string, error) {
	if c.baseURL == "" {
		return "", ErrNoBaseURL
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q is not an http(s) URL", ErrNoBaseURL, c.baseURL)
	}
	return c.baseURL + EndpointPath, nil
}

// errorDetail extracts the "detail" message from an error body, if any.
func errorDetail(body []byte) string {
	var e struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	if s, ok := e.Detail.(string); ok {
		return s
	}
	return ""
}
