// Package http implements the request dispatcher: it builds authenticated
// HTTP requests against the server's base URL, retries transport-level
// failures up to a configured bound, and classifies responses by status code
// into typed errors.
package http

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fluxwire-io/influx/internal/constants"
	"github.com/fluxwire-io/influx/pkg/influx"
)

// Request describes one HTTP call to the API.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    []byte
	Headers map[string]string

	// ExpectedStatus is the status code that counts as success. Zero means
	// any 2xx.
	ExpectedStatus int
}

// Response is the raw outcome of a successful call.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client dispatches requests with bounded retries. Retries apply to
// transport-level failures only (connection refused, timeout, DNS); an
// HTTP-level error status is a well-formed rejection and is surfaced
// immediately.
type Client struct {
	baseURL    string
	httpClient *retryablehttp.Client
	retries    int
	username   string
	password   string
	userAgent  string
	logger     influx.Logger
	debug      bool

	timeout         time.Duration
	retryWaitMin    time.Duration
	retryWaitMax    time.Duration
	insecureSkipTLS bool
	proxyURL        *url.URL
	transport       http.RoundTripper
}

// Option configures the client.
type Option func(*Client)

// WithBasicAuth attaches basic-auth credentials to every request.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout bounds each request attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRetryConfig sets the attempt count (floor 1) and backoff bounds.
func WithRetryConfig(retries int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		if retries < constants.MinRetries {
			retries = constants.MinRetries
		}

		c.retries = retries

		if waitMin > 0 {
			c.retryWaitMin = waitMin
		}

		if waitMax > 0 {
			c.retryWaitMax = waitMax
		}
	}
}

// WithLogger sets the structured logger used for request tracing and error
// diagnostics.
func WithLogger(logger influx.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging when a logger is set.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithTLSConfig controls certificate verification for https endpoints.
func WithTLSConfig(insecureSkipVerify bool) Option {
	return func(c *Client) {
		c.insecureSkipTLS = insecureSkipVerify
	}
}

// WithProxy routes requests through the given proxy URL.
func WithProxy(proxy *url.URL) Option {
	return func(c *Client) {
		c.proxyURL = proxy
	}
}

// WithTransport injects a custom RoundTripper, mainly for tests. It takes
// precedence over WithTLSConfig and WithProxy.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// NewClient creates a dispatcher for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		retries:      constants.DefaultRetries,
		timeout:      constants.DefaultHTTPTimeout,
		retryWaitMin: constants.DefaultRetryWaitMin,
		retryWaitMax: constants.DefaultRetryWaitMax,
		userAgent:    "influx-go-client",
	}

	for _, opt := range opts {
		opt(client)
	}

	client.httpClient = client.newRetryableClient()

	return client
}

// newRetryableClient assembles the retryablehttp client with a retry policy
// restricted to transport failures.
func (c *Client) newRetryableClient() *retryablehttp.Client {
	rc := retryablehttp.NewClient()
	// RetryMax counts retries after the first attempt.
	rc.RetryMax = c.retries - 1
	rc.RetryWaitMin = c.retryWaitMin
	rc.RetryWaitMax = c.retryWaitMax
	rc.CheckRetry = transportRetryPolicy
	rc.ErrorHandler = func(resp *http.Response, err error, numTries int) (*http.Response, error) {
		if resp != nil {
			_ = resp.Body.Close()
		}

		return nil, err
	}

	if c.logger != nil {
		rc.Logger = &leveledLogger{logger: c.logger}
	} else {
		rc.Logger = nil
	}

	transport := c.transport
	if transport == nil {
		transport = &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: c.insecureSkipTLS, // #nosec G402 -- mirrors the verify_ssl=false default of the API; enable via config
			},
		}

		if c.proxyURL != nil {
			transport.(*http.Transport).Proxy = http.ProxyURL(c.proxyURL)
		}
	}

	rc.HTTPClient = &http.Client{
		Timeout:   c.timeout,
		Transport: transport,
	}

	return rc
}

// transportRetryPolicy retries only when no HTTP response was obtained at
// all. Timeouts and connection refusals are retried identically; a received
// status code, whatever it is, never triggers a retry.
func transportRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return true, nil
	}

	return false, nil
}

// BaseURL returns the base URL requests are dispatched against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do dispatches the request and classifies the response.
//
// On success the raw response is returned. A 5xx becomes a
// *influx.ServerError, any other unexpected status a *influx.ClientError,
// both carrying the status code and the decoded server error message. If all
// retry attempts exhaust without a transport-level response, the call fails
// with a *influx.ConnectionError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.baseURL + "/" + strings.TrimPrefix(req.Path, "/")
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, req.Body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.username != "" {
		httpReq.SetBasicAuth(c.username, c.password)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("dispatching request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
			"body":   len(req.Body),
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request canceled: %w", ctx.Err())
		}

		return nil, &influx.ConnectionError{
			URL:      fullURL,
			Attempts: c.retries,
			Err:      err,
		}
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("received response", map[string]interface{}{
			"status": httpResp.StatusCode,
			"body":   len(body),
		})
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	return c.classify(req, resp)
}

// classify turns a transport-level success into either a usable response or
// a typed error carrying the server's diagnostic payload.
func (c *Client) classify(req *Request, resp *Response) (*Response, error) {
	if isExpected(req.ExpectedStatus, resp.StatusCode) {
		return resp, nil
	}

	message := decodeErrorMessage(resp.Body)

	if c.logger != nil {
		c.logger.Error("request rejected", map[string]interface{}{
			"status":  resp.StatusCode,
			"path":    req.Path,
			"message": message,
		})
	}

	if resp.StatusCode >= http.StatusInternalServerError && resp.StatusCode < 600 {
		return nil, &influx.ServerError{
			StatusCode: resp.StatusCode,
			Message:    message,
			Body:       resp.Body,
		}
	}

	return nil, &influx.ClientError{
		StatusCode: resp.StatusCode,
		Message:    message,
		Body:       resp.Body,
	}
}

// isExpected reports whether the status counts as success: the explicit
// expected status when set, otherwise any 2xx.
func isExpected(expected, actual int) bool {
	if expected != 0 {
		return actual == expected
	}

	return actual >= 200 && actual < 300
}

// decodeErrorMessage extracts the server's error message from a JSON error
// body. Undecodable bodies are returned trimmed so diagnostics are never
// lost.
func decodeErrorMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var payload struct {
		Error string `json:"error"`
	}

	err := json.Unmarshal(body, &payload)
	if err == nil && payload.Error != "" {
		return payload.Error
	}

	return strings.TrimSpace(string(body))
}

// Get dispatches a GET request expecting any 2xx.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post dispatches a POST request expecting any 2xx.
func (c *Client) Post(ctx context.Context, path string, query url.Values, body []byte) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Query: query, Body: body})
}

// leveledLogger adapts influx.Logger to retryablehttp's leveled logger so
// retry attempts appear in the caller's log stream.
type leveledLogger struct {
	logger influx.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, fieldsFromPairs(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, fieldsFromPairs(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, fieldsFromPairs(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, fieldsFromPairs(keysAndValues))
}

func fieldsFromPairs(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", keysAndValues[i])
		}

		fields[key] = keysAndValues[i+1]
	}

	return fields
}
