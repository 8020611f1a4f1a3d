package client

import (
	"context"
	"net/http"

	"github.com/fluxwire-io/influx/internal/constants"
	internalhttp "github.com/fluxwire-io/influx/internal/http"
)

// Ping implements influx.Client.Ping. It checks connectivity against /ping
// and returns the server version advertised in the response headers.
func (c *Client) Ping(ctx context.Context) (string, error) {
	req := &internalhttp.Request{
		Method:         http.MethodGet,
		Path:           "ping",
		ExpectedStatus: constants.StatusPingOK,
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return "", err
	}

	return resp.Headers.Get("X-Influxdb-Version"), nil
}
