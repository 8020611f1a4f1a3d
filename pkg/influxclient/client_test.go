package influxclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxwire-io/influx/pkg/influx"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := New(nil)
		require.ErrorIs(t, err, influx.ErrConfigRequired)
	})

	t.Run("empty config gets defaults", func(t *testing.T) {
		t.Parallel()

		c, err := New(&influx.Config{Database: "mydb"})
		require.NoError(t, err)
		require.NotNil(t, c)
	})

	t.Run("caller config is not mutated", func(t *testing.T) {
		t.Parallel()

		config := &influx.Config{Database: "mydb"}

		_, err := New(config)
		require.NoError(t, err)

		assert.Empty(t, config.Host)
		assert.Zero(t, config.Port)
		assert.Zero(t, config.Retries)
	})
}

func TestNewWithDatabase(t *testing.T) {
	t.Parallel()

	c, err := NewWithDatabase("influx.example.com", 8086, "metrics")
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestNewWithCredentials(t *testing.T) {
	t.Parallel()

	c, err := NewWithCredentials("influx.example.com", 8086, "metrics", "admin", "secret")
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestApplyDefaults(t *testing.T) {
	t.Parallel()

	t.Run("stock defaults", func(t *testing.T) {
		t.Parallel()

		config := &influx.Config{}
		applyDefaults(config)

		assert.Equal(t, "localhost", config.Host)
		assert.Equal(t, 8086, config.Port)
		assert.Equal(t, "root", config.Username)
		assert.Equal(t, "root", config.Password)
		assert.Equal(t, 3, config.Retries)
	})

	t.Run("explicit values kept", func(t *testing.T) {
		t.Parallel()

		config := &influx.Config{
			Host:     "db.example.com",
			Port:     9999,
			Username: "admin",
			Password: "secret",
			Retries:  5,
		}
		applyDefaults(config)

		assert.Equal(t, "db.example.com", config.Host)
		assert.Equal(t, 9999, config.Port)
		assert.Equal(t, "admin", config.Username)
		assert.Equal(t, "secret", config.Password)
		assert.Equal(t, 5, config.Retries)
	})

	t.Run("retries floored at one", func(t *testing.T) {
		t.Parallel()

		config := &influx.Config{Retries: -2}
		applyDefaults(config)

		assert.Equal(t, 1, config.Retries)
	})
}
