package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyValuePairs(t *testing.T) {
	t.Parallel()

	t.Run("valid pairs", func(t *testing.T) {
		t.Parallel()

		pairs, err := parseKeyValuePairs([]string{"host=server01", "region=us-west"})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"host": "server01", "region": "us-west"}, pairs)
	})

	t.Run("value containing equals", func(t *testing.T) {
		t.Parallel()

		pairs, err := parseKeyValuePairs([]string{"expr=a=b"})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"expr": "a=b"}, pairs)
	})

	t.Run("missing separator", func(t *testing.T) {
		t.Parallel()

		_, err := parseKeyValuePairs([]string{"nokey"})
		require.ErrorIs(t, err, ErrInvalidPairFormat)
	})

	t.Run("empty key", func(t *testing.T) {
		t.Parallel()

		_, err := parseKeyValuePairs([]string{"=value"})
		require.ErrorIs(t, err, ErrInvalidPairFormat)
	})
}

func TestParseFieldValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       string
		expected interface{}
	}{
		{"float", "0.64", 0.64},
		{"integer", "42", int64(42)},
		{"forced integer", "42i", int64(42)},
		{"bool true", "true", true},
		{"bool false", "false", false},
		{"quoted string", `"42"`, "42"},
		{"plain string", "server01", "server01"},
		{"trailing i but not numeric", "ni", "ni"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, parseFieldValue(tt.in))
		})
	}
}

func TestBuildPoint(t *testing.T) {
	t.Parallel()

	t.Run("full point", func(t *testing.T) {
		t.Parallel()

		point, err := buildPoint("cpu",
			[]string{"host=server01"},
			[]string{"value=0.64", "count=3i"},
			"2023-01-01T00:00:00Z")
		require.NoError(t, err)

		assert.Equal(t, "cpu", point.Measurement)
		assert.Equal(t, map[string]string{"host": "server01"}, point.Tags)
		assert.Equal(t, 0.64, point.Fields["value"])
		assert.Equal(t, int64(3), point.Fields["count"])
		assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), point.Time)
	})

	t.Run("missing measurement", func(t *testing.T) {
		t.Parallel()

		_, err := buildPoint("", nil, []string{"value=1"}, "")
		require.ErrorIs(t, err, ErrMeasurementRequired)
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()

		_, err := buildPoint("cpu", nil, nil, "")
		require.ErrorIs(t, err, ErrNoFields)
	})

	t.Run("bad timestamp", func(t *testing.T) {
		t.Parallel()

		_, err := buildPoint("cpu", nil, []string{"value=1"}, "yesterday")
		require.Error(t, err)
	})
}

func TestApplyConfigValue(t *testing.T) {
	t.Parallel()

	t.Run("known keys", func(t *testing.T) {
		t.Parallel()

		config := &Config{}

		require.NoError(t, applyConfigValue(config, "host", "db.example.com"))
		require.NoError(t, applyConfigValue(config, "port", "9999"))
		require.NoError(t, applyConfigValue(config, "ssl", "true"))
		require.NoError(t, applyConfigValue(config, "cache.type", "memory"))

		assert.Equal(t, "db.example.com", config.Host)
		assert.Equal(t, 9999, config.Port)
		assert.True(t, config.SSL)
		assert.Equal(t, "memory", config.Cache.Type)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		err := applyConfigValue(&Config{}, "color", "blue")
		require.ErrorIs(t, err, ErrUnknownConfigKey)
	})
}

func TestFormatCell(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", formatCell(nil))
	assert.Equal(t, "server01", formatCell("server01"))
	assert.Equal(t, "0.64", formatCell(0.64))
	assert.Equal(t, "10", formatCell(float64(10)))
	assert.Equal(t, "true", formatCell(true))
}
