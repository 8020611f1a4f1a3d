package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxwire-io/influx/internal/client"
	internalhttp "github.com/fluxwire-io/influx/internal/http"
	"github.com/fluxwire-io/influx/pkg/influx"
)

// statementRecorder captures the q parameter of each /query call and replies
// with an empty result.
func statementRecorder(statements *[]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*statements = append(*statements, r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"results":[{}]}`))
	}
}

func TestClient_CreateDatabase(t *testing.T) {
	t.Parallel()

	t.Run("quotes the database name", func(t *testing.T) {
		t.Parallel()

		var statements []string

		server := httptest.NewServer(statementRecorder(&statements))
		defer server.Close()

		c := newTestClient(t, server)

		require.NoError(t, c.CreateDatabase(context.Background(), "my db"))
		require.Len(t, statements, 1)
		assert.Equal(t, `CREATE DATABASE "my db"`, statements[0])
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		c := client.NewWithHTTPClient(internalhttp.NewClient("http://localhost:0"), "testdb")

		err := c.CreateDatabase(context.Background(), "")
		require.ErrorIs(t, err, influx.ErrIdentifierRequired)
	})
}

func TestClient_DropDatabase(t *testing.T) {
	t.Parallel()

	var statements []string

	server := httptest.NewServer(statementRecorder(&statements))
	defer server.Close()

	c := newTestClient(t, server)

	require.NoError(t, c.DropDatabase(context.Background(), "olddb"))
	require.Len(t, statements, 1)
	assert.Equal(t, `DROP DATABASE "olddb"`, statements[0])
}

func TestClient_ShowDatabases(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "SHOW DATABASES", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"results":[{"series":[{"name":"databases","columns":["name"],"values":[["_internal"],["testdb"],["metrics"]]}]}]}`))
	}))
	defer server.Close()

	c := newTestClient(t, server)

	names, err := c.ShowDatabases(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"_internal", "testdb", "metrics"}, names)
}

func TestClient_CreateRetentionPolicy(t *testing.T) {
	t.Parallel()

	t.Run("full statement", func(t *testing.T) {
		t.Parallel()

		var statements []string

		server := httptest.NewServer(statementRecorder(&statements))
		defer server.Close()

		c := newTestClient(t, server)

		err := c.CreateRetentionPolicy(context.Background(), influx.RetentionPolicy{
			Name:        "one_week",
			Database:    "metrics",
			Duration:    "7d",
			Replication: 2,
			Default:     true,
		})
		require.NoError(t, err)
		require.Len(t, statements, 1)
		assert.Equal(t, `CREATE RETENTION POLICY "one_week" ON "metrics" DURATION 7d REPLICATION 2 DEFAULT`, statements[0])
	})

	t.Run("defaults database and replication", func(t *testing.T) {
		t.Parallel()

		var statements []string

		server := httptest.NewServer(statementRecorder(&statements))
		defer server.Close()

		c := newTestClient(t, server)

		err := c.CreateRetentionPolicy(context.Background(), influx.RetentionPolicy{
			Name:     "forever",
			Duration: "INF",
		})
		require.NoError(t, err)
		require.Len(t, statements, 1)
		assert.Equal(t, `CREATE RETENTION POLICY "forever" ON "testdb" DURATION INF REPLICATION 1`, statements[0])
	})

	t.Run("invalid duration", func(t *testing.T) {
		t.Parallel()

		c := client.NewWithHTTPClient(internalhttp.NewClient("http://localhost:0"), "testdb")

		err := c.CreateRetentionPolicy(context.Background(), influx.RetentionPolicy{
			Name:     "bad",
			Duration: "7 days; DROP DATABASE x",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid retention duration")
	})

	t.Run("missing name", func(t *testing.T) {
		t.Parallel()

		c := client.NewWithHTTPClient(internalhttp.NewClient("http://localhost:0"), "testdb")

		err := c.CreateRetentionPolicy(context.Background(), influx.RetentionPolicy{Duration: "1h"})
		require.ErrorIs(t, err, influx.ErrIdentifierRequired)
	})

	t.Run("missing database", func(t *testing.T) {
		t.Parallel()

		c := client.NewWithHTTPClient(internalhttp.NewClient("http://localhost:0"), "")

		err := c.CreateRetentionPolicy(context.Background(), influx.RetentionPolicy{
			Name:     "p",
			Duration: "1h",
		})
		require.ErrorIs(t, err, influx.ErrDatabaseRequired)
	})
}

func TestClient_DropRetentionPolicy(t *testing.T) {
	t.Parallel()

	var statements []string

	server := httptest.NewServer(statementRecorder(&statements))
	defer server.Close()

	c := newTestClient(t, server)

	require.NoError(t, c.DropRetentionPolicy(context.Background(), "one_week", "metrics"))
	require.Len(t, statements, 1)
	assert.Equal(t, `DROP RETENTION POLICY "one_week" ON "metrics"`, statements[0])
}
