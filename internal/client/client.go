// Package client implements the influx.Client interface by composing the
// line-protocol encoder, the request dispatcher, and the result parser.
package client

import (
	"fmt"
	"net/url"
	"time"

	internalhttp "github.com/fluxwire-io/influx/internal/http"
	"github.com/fluxwire-io/influx/pkg/influx"
)

// Client implements the influx.Client interface. Configuration is read-only
// after construction, so one Client may serve any number of concurrent
// callers without locking.
type Client struct {
	httpClient *internalhttp.Client
	database   string
	logger     influx.Logger

	cache    influx.Cache
	cacheTTL time.Duration
}

var _ influx.Client = (*Client)(nil)

// New creates a client from the given configuration. The dispatcher is owned
// exclusively by the returned client for its lifetime.
func New(config *influx.Config) (*Client, error) {
	if config == nil {
		return nil, influx.ErrConfigRequired
	}

	baseURL := baseURLFromConfig(config)

	opts := []internalhttp.Option{
		internalhttp.WithBasicAuth(config.Username, config.Password),
		internalhttp.WithTLSConfig(!config.VerifySSL),
		internalhttp.WithRetryConfig(config.Retries, config.RetryWaitMin, config.RetryWaitMax),
	}

	if config.Timeout > 0 {
		opts = append(opts, internalhttp.WithTimeout(config.Timeout))
	}

	if config.Proxy != "" {
		proxyURL, err := url.Parse(config.Proxy)
		if err != nil || proxyURL.Host == "" {
			return nil, fmt.Errorf("%w: %s", influx.ErrProxyURLInvalid, config.Proxy)
		}

		opts = append(opts, internalhttp.WithProxy(proxyURL))
	}

	if config.UserAgent != "" {
		opts = append(opts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.Logger != nil {
		opts = append(opts, internalhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, internalhttp.WithDebug(true))
	}

	cache, err := influx.NewCacheFromConfig(config.QueryCache)
	if err != nil {
		return nil, fmt.Errorf("building query cache: %w", err)
	}

	var cacheTTL time.Duration
	if config.QueryCache != nil {
		cacheTTL = config.QueryCache.TTL
	}

	return &Client{
		httpClient: internalhttp.NewClient(baseURL, opts...),
		database:   config.Database,
		logger:     config.Logger,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}, nil
}

// NewWithHTTPClient creates a client around an existing dispatcher, mainly
// for tests.
func NewWithHTTPClient(httpClient *internalhttp.Client, database string) *Client {
	return &Client{
		httpClient: httpClient,
		database:   database,
		cache:      influx.NewNoOpCache(),
	}
}

// baseURLFromConfig derives scheme://host:port from the SSL flag and
// connection parameters.
func baseURLFromConfig(config *influx.Config) string {
	scheme := "http"
	if config.SSL {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s:%d", scheme, config.Host, config.Port)
}

// databaseFor resolves the per-call database override against the configured
// default.
func (c *Client) databaseFor(override string) string {
	if override != "" {
		return override
	}

	return c.database
}
