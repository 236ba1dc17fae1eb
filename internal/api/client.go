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

	"github.com/charmbracelet/log"
	"github.com/lowendtheory/dubplate/internal/shared"
)

// Param is one query parameter. Parameters are kept as an ordered slice so
// derived cache keys and request URLs are deterministic.
type Param struct {
	Key   string
	Value string
}

// Request describes one call for a named operation. The HTTP method and path
// template come from the endpoint table; the caller supplies path arguments,
// query parameters and an optional body.
type Request struct {
	Args  map[string]string
	Query []Param
	Body  any // marshalled to JSON; []byte and json.RawMessage pass through raw
}

// Doer is the calling surface shared by [Client] and [CachedClient].
type Doer interface {
	Call(ctx context.Context, op Operation, req Request) (json.RawMessage, error)
}

// Client performs resilient requests against the charts API. Safe for
// concurrent use; configuration is fixed at construction and in-progress
// calls keep their captured configuration.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	retry      RetryPolicy
	tokens     TokenStore
	logger     *log.Logger
	metrics    *MetricsCollector
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-attempt request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRetryPolicy sets the retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.retry = p }
}

// WithTokenStore sets the bearer token store.
func WithTokenStore(ts TokenStore) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger enables debug logging of the request lifecycle.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMetrics sets the Prometheus metrics collector.
func WithMetrics(m *MetricsCollector) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a Client for the given base URL. Defaults: ten second timeout,
// [DefaultRetryPolicy], in-memory token store.
func New(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		timeout:    10 * time.Second,
		retry:      DefaultRetryPolicy(),
		tokens:     NewMemoryTokenStore(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Tokens exposes the client's token store for login/logout call sites.
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

// Call performs the named operation and returns the decoded JSON body.
// Every failure is one of the [ClientError] types; nothing is swallowed.
func (c *Client) Call(ctx context.Context, op Operation, req Request) (json.RawMessage, error) {
	ep, err := Resolve(op)
	if err != nil {
		c.countError(err, op)
		return nil, err
	}

	path, err := ep.expand(op, req.Args)
	if err != nil {
		c.countError(err, op)
		return nil, err
	}

	fullURL := c.baseURL + path + encodeQuery(req.Query)

	body, err := encodeBody(op, req.Body)
	if err != nil {
		c.countError(err, op)
		return nil, err
	}

	header := make(http.Header)
	if body != nil {
		header.Set("Content-Type", "application/json")
	}

	if ep.RequiresAuth {
		token, terr := c.tokens.Token()
		if terr != nil {
			cerr := &ClientError{Type: ErrorTypeAuth, Message: "failed to read auth token", Op: op, Cause: terr}
			c.countError(cerr, op)
			return nil, cerr
		}
		if token == "" {
			cerr := &ClientError{Type: ErrorTypeAuth, Message: "operation requires authentication", Op: op}
			c.countError(cerr, op)
			return nil, cerr
		}
		header.Set("Authorization", "Bearer "+token)
	}

	requestID := shared.GenerateID()
	if c.logger != nil {
		c.logger.Debug("starting request", "requestID", requestID, "op", op, "method", ep.Method, "url", fullURL)
	}

	start := time.Now()
	data, err := c.doWithRetry(ctx, op, ep.Method, fullURL, body, header, requestID)
	if c.metrics != nil {
		status := 0
		var ce *ClientError
		if errors.As(err, &ce) {
			status = ce.StatusCode
		} else if err == nil {
			status = http.StatusOK
		}
		c.metrics.RecordRequest(string(op), ep.Method, status, time.Since(start))
	}
	if err != nil {
		c.countError(err, op)
		return nil, err
	}
	return data, nil
}

// doWithRetry runs the attempt loop. Attempts count from 1; the retry policy
// decides whether a failure earns another attempt and how long to wait.
func (c *Client) doWithRetry(ctx context.Context, op Operation, method, fullURL string, body []byte, header http.Header, requestID string) (json.RawMessage, error) {
	var lastErr error

	for attempt := 1; ; attempt++ {
		data, err := c.attempt(ctx, op, method, fullURL, body, header, attempt)
		if err == nil {
			return data, nil
		}
		lastErr = err

		if !IsTransient(err) {
			return nil, err
		}

		delay, retry := c.retry.ShouldRetry(err, attempt)
		if !retry {
			return nil, &ClientError{
				Type:      ErrorTypeRetryExhausted,
				Message:   fmt.Sprintf("all %d attempts failed", attempt),
				Op:        op,
				Attempt:   attempt,
				RequestID: requestID,
				Cause:     lastErr,
			}
		}

		if c.logger != nil {
			c.logger.Info("scheduling retry", "requestID", requestID, "op", op, "attempt", attempt+1, "backoff", delay)
		}
		if c.metrics != nil {
			c.metrics.RecordRetry(string(op), attempt)
		}

		if err := sleep(ctx, delay); err != nil {
			return nil, &ClientError{Type: ErrorTypeNetwork, Message: "request cancelled during backoff", Op: op, Attempt: attempt, Cause: err}
		}
	}
}

// attempt performs a single HTTP round trip under its own timeout. The
// timeout's cancel func is released on every exit path so no dangling timer
// fires after the attempt completes.
func (c *Client) attempt(ctx context.Context, op Operation, method, fullURL string, body []byte, header http.Header, attempt int) (json.RawMessage, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(attemptCtx, method, fullURL, reader)
	if err != nil {
		return nil, &ClientError{Type: ErrorTypeConfiguration, Message: "failed to build request", Op: op, Attempt: attempt, Cause: err}
	}
	for k, vs := range header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if attemptCtx.Err() == context.DeadlineExceeded {
			return nil, &ClientError{Type: ErrorTypeTimeout, Message: "request deadline exceeded", Op: op, Attempt: attempt, Cause: err}
		}
		return nil, &ClientError{Type: ErrorTypeNetwork, Message: "request failed", Op: op, Attempt: attempt, Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if attemptCtx.Err() == context.DeadlineExceeded {
			return nil, &ClientError{Type: ErrorTypeTimeout, Message: "response read deadline exceeded", Op: op, Attempt: attempt, Cause: err}
		}
		return nil, &ClientError{Type: ErrorTypeNetwork, Message: "failed to read response", Op: op, Attempt: attempt, Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ClientError{
			Type:       ErrorTypeHTTP,
			Message:    serverMessage(data, resp.Status),
			StatusCode: resp.StatusCode,
			Op:         op,
			Attempt:    attempt,
		}
	}

	if len(data) == 0 {
		return json.RawMessage("null"), nil
	}
	if !json.Valid(data) {
		return nil, &ClientError{Type: ErrorTypeDecode, Message: "response body is not valid JSON", Op: op, Attempt: attempt}
	}
	return json.RawMessage(data), nil
}

func (c *Client) countError(err error, op Operation) {
	if c.metrics == nil {
		return
	}
	var ce *ClientError
	if errors.As(err, &ce) {
		c.metrics.RecordError(ce.Type, string(op))
	}
}

// serverMessage extracts the backend's {"message": ...} payload when present,
// falling back to the HTTP status line.
func serverMessage(body []byte, status string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return status
}

// encodeQuery renders ordered query parameters, preserving caller order.
func encodeQuery(params []Param) string {
	if len(params) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range params {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

func encodeBody(op Operation, body any) ([]byte, error) {
	switch v := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case json.RawMessage:
		return v, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, &ClientError{Type: ErrorTypeConfiguration, Message: "failed to encode request body", Op: op, Cause: err}
		}
		return data, nil
	}
}

// sleep waits for d or until the context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
