package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fluxwire-io/influx/internal/constants"
	internalhttp "github.com/fluxwire-io/influx/internal/http"
	"github.com/fluxwire-io/influx/pkg/influx"
)

// RawQuery implements influx.Client.RawQuery. The response body is validated
// as JSON but left unparsed for callers that want raw access.
func (c *Client) RawQuery(ctx context.Context, statement string, opts ...influx.QueryOption) (json.RawMessage, error) {
	if strings.TrimSpace(statement) == "" {
		return nil, influx.ErrEmptyStatement
	}

	options := applyQueryOptions(opts)

	if options.Epoch != "" && !options.Epoch.Valid() {
		return nil, influx.ErrInvalidPrecision
	}

	method := options.QueryMethod(statement)

	var params string

	if len(options.Params) > 0 {
		encoded, err := json.Marshal(options.Params)
		if err != nil {
			return nil, fmt.Errorf("encoding bound params: %w", err)
		}

		params = string(encoded)
	}

	// Only idempotent reads are served from the cache; statements submitted
	// with POST mutate server state and always hit the wire.
	cacheable := method == http.MethodGet
	cacheKey := c.cacheKey(statement, params, options)

	if cacheable {
		entry, err := c.cache.Get(ctx, cacheKey)
		if err == nil && !entry.Expired(c.cacheTTL) {
			return entry.Body, nil
		}
	}

	query := url.Values{}
	query.Set("q", statement)

	if database := c.databaseFor(options.Database); database != "" {
		query.Set("db", database)
	}

	if options.Epoch != "" {
		query.Set("epoch", string(options.Epoch))
	}

	if params != "" {
		query.Set("params", params)
	}

	req := &internalhttp.Request{
		Method:         method,
		Path:           "query",
		Query:          query,
		ExpectedStatus: constants.StatusQueryOK,
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	if !json.Valid(resp.Body) {
		return nil, &influx.ParseError{Err: fmt.Errorf("response is not valid JSON")}
	}

	if cacheable {
		_ = c.cache.Set(ctx, cacheKey, &influx.CacheEntry{
			Body:     resp.Body,
			StoredAt: time.Now(),
		})
	}

	return resp.Body, nil
}

// Query implements influx.Client.Query.
func (c *Client) Query(ctx context.Context, statement string, opts ...influx.QueryOption) ([]influx.ResultSet, error) {
	options := applyQueryOptions(opts)

	body, err := c.RawQuery(ctx, statement, opts...)
	if err != nil {
		return nil, err
	}

	return influx.ParseResults(body, !options.KeepStatementErrors)
}

// cacheKey identifies a query response by everything that shapes it: the
// database, the epoch, the statement, and the marshaled bound params.
// json.Marshal sorts map keys, so equal bindings always produce equal keys.
func (c *Client) cacheKey(statement, params string, options *influx.QueryOptions) string {
	return strings.Join([]string{
		c.databaseFor(options.Database),
		string(options.Epoch),
		statement,
		params,
	}, "|")
}

func applyQueryOptions(opts []influx.QueryOption) *influx.QueryOptions {
	options := &influx.QueryOptions{}

	for _, opt := range opts {
		opt(options)
	}

	return options
}
