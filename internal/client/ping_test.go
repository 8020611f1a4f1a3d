package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxwire-io/influx/pkg/influx"
)

func TestClient_Ping(t *testing.T) {
	t.Parallel()

	t.Run("returns the advertised server version", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/ping", r.URL.Path)

			w.Header().Set("X-Influxdb-Version", "1.8.10")
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		c := newTestClient(t, server)

		version, err := c.Ping(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "1.8.10", version)
	})

	t.Run("unexpected status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		c := newTestClient(t, server)

		_, err := c.Ping(context.Background())
		require.Error(t, err)
		assert.True(t, influx.IsClientError(err))
	})
}
