package influx_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxwire-io/influx/pkg/influx"
)

func TestParseResults(t *testing.T) {
	t.Parallel()

	t.Run("single series with one row", func(t *testing.T) {
		t.Parallel()

		body := `{"results":[{"series":[{"name":"test1","columns":["time","value"],"values":[["2023-01-01T00:00:00Z",10]]}]}]}`

		results, err := influx.ParseResults([]byte(body), true)
		require.NoError(t, err)
		require.Len(t, results, 1)
		require.Len(t, results[0].Series, 1)

		series := results[0].Series[0]
		assert.Equal(t, "test1", series.Name)
		assert.Equal(t, []string{"time", "value"}, series.Columns)
		require.Len(t, series.Values, 1)
		assert.Equal(t, []interface{}{"2023-01-01T00:00:00Z", float64(10)}, series.Values[0])
	})

	t.Run("empty results array", func(t *testing.T) {
		t.Parallel()

		results, err := influx.ParseResults([]byte(`{"results":[]}`), true)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("absent results key", func(t *testing.T) {
		t.Parallel()

		results, err := influx.ParseResults([]byte(`{}`), true)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("absent series yields empty series", func(t *testing.T) {
		t.Parallel()

		results, err := influx.ParseResults([]byte(`{"results":[{}]}`), true)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Empty(t, results[0].Series)
		assert.NoError(t, results[0].Err())
	})

	t.Run("statement error raised by default", func(t *testing.T) {
		t.Parallel()

		body := `{"results":[{"series":[]},{"error":"database not found: nope"}]}`

		_, err := influx.ParseResults([]byte(body), true)
		require.Error(t, err)
		assert.True(t, influx.IsStatementError(err))

		stmtErr := &influx.StatementError{}
		require.True(t, errors.As(err, &stmtErr))
		assert.Equal(t, 1, stmtErr.Index)
		assert.Equal(t, "database not found: nope", stmtErr.Message)
	})

	t.Run("statement error embedded when not raising", func(t *testing.T) {
		t.Parallel()

		body := `{"results":[{"error":"first failed"},{"series":[{"name":"ok","columns":["c"],"values":[[1]]}]}]}`

		results, err := influx.ParseResults([]byte(body), false)
		require.NoError(t, err)
		require.Len(t, results, 2)

		require.Error(t, results[0].Err())
		assert.Contains(t, results[0].Err().Error(), "first failed")

		assert.NoError(t, results[1].Err())
		assert.Equal(t, "ok", results[1].Series[0].Name)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		t.Parallel()

		_, err := influx.ParseResults([]byte(`{"results": [`), true)
		require.Error(t, err)
		assert.True(t, influx.IsParseError(err))
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		t.Parallel()

		body := []byte(`{"results":[{"series":[{"name":"s","tags":{"host":"a"},"columns":["time","v"],"values":[[1,2],[3,4]]}]}]}`)

		first, err := influx.ParseResults(body, true)
		require.NoError(t, err)

		second, err := influx.ParseResults(body, true)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestSeries_Rows(t *testing.T) {
	t.Parallel()

	series := influx.Series{
		Name:    "cpu",
		Columns: []string{"time", "value", "host"},
		Values: [][]interface{}{
			{"2023-01-01T00:00:00Z", float64(10), "server01"},
			{"2023-01-01T00:00:10Z", float64(12)},
		},
	}

	rows := series.Rows()
	require.Len(t, rows, 2)

	assert.Equal(t, influx.Row{
		"time":  "2023-01-01T00:00:00Z",
		"value": float64(10),
		"host":  "server01",
	}, rows[0])

	// Short rows omit missing columns rather than padding with nils.
	assert.Equal(t, influx.Row{
		"time":  "2023-01-01T00:00:10Z",
		"value": float64(12),
	}, rows[1])
}
