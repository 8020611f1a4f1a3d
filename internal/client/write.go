package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fluxwire-io/influx/internal/constants"
	internalhttp "github.com/fluxwire-io/influx/internal/http"
	"github.com/fluxwire-io/influx/pkg/influx"
	"github.com/fluxwire-io/influx/pkg/lineprotocol"
)

// Write implements influx.Client.Write.
func (c *Client) Write(ctx context.Context, points []influx.Point, opts ...influx.WriteOption) error {
	if len(points) == 0 {
		return &influx.WriteError{Err: influx.ErrNoPoints}
	}

	options := applyWriteOptions(opts)

	if options.Precision != "" && !options.Precision.Valid() {
		return &influx.WriteError{Err: influx.ErrInvalidPrecision}
	}

	return c.writeEncoded(ctx, lineprotocol.NewPointEncoder(points, options.Precision), options)
}

// WriteLines implements influx.Client.WriteLines.
func (c *Client) WriteLines(ctx context.Context, lines []string, opts ...influx.WriteOption) error {
	if len(lines) == 0 {
		return &influx.WriteError{Err: influx.ErrNoPoints}
	}

	options := applyWriteOptions(opts)

	return c.writeEncoded(ctx, lineprotocol.NewLineEncoder(lines), options)
}

// writeEncoded serializes the payload and dispatches it to /write.
func (c *Client) writeEncoded(ctx context.Context, encoder lineprotocol.Encoder, options *influx.WriteOptions) error {
	database := c.databaseFor(options.Database)
	if database == "" {
		return &influx.WriteError{Err: influx.ErrDatabaseRequired}
	}

	body, err := encoder.Encode()
	if err != nil {
		return &influx.WriteError{Err: err}
	}

	query := url.Values{}
	query.Set("db", database)

	if options.Precision != "" {
		query.Set("precision", string(options.Precision))
	}

	if options.RetentionPolicy != "" {
		query.Set("rp", options.RetentionPolicy)
	}

	req := &internalhttp.Request{
		Method: http.MethodPost,
		Path:   "write",
		Query:  query,
		Body:   []byte(body),
		Headers: map[string]string{
			"Content-Type": "text/plain; charset=utf-8",
		},
		ExpectedStatus: constants.StatusWriteOK,
	}

	_, err = c.httpClient.Do(ctx, req)
	if err != nil {
		return &influx.WriteError{Err: err}
	}

	return nil
}

func applyWriteOptions(opts []influx.WriteOption) *influx.WriteOptions {
	options := &influx.WriteOptions{}

	for _, opt := range opts {
		opt(options)
	}

	return options
}
