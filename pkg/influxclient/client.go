package influxclient

import (
	"github.com/fluxwire-io/influx/internal/client"
	"github.com/fluxwire-io/influx/internal/constants"
	"github.com/fluxwire-io/influx/pkg/influx"
)

// New creates a new InfluxDB client from the given configuration, applying
// the stock-installation defaults for anything unset. The config is copied;
// the caller's struct is not retained.
func New(config *influx.Config) (influx.Client, error) {
	if config == nil {
		return nil, influx.ErrConfigRequired
	}

	normalized := *config
	applyDefaults(&normalized)

	return client.New(&normalized)
}

// NewWithDatabase creates a client for the given host and database with
// default credentials.
func NewWithDatabase(host string, port int, database string) (influx.Client, error) {
	return New(&influx.Config{
		Host:     host,
		Port:     port,
		Database: database,
	})
}

// NewWithCredentials creates a client with explicit basic-auth credentials.
func NewWithCredentials(host string, port int, database, username, password string) (influx.Client, error) {
	return New(&influx.Config{
		Host:     host,
		Port:     port,
		Database: database,
		Username: username,
		Password: password,
	})
}

// applyDefaults fills unset fields with the server's stock defaults.
func applyDefaults(config *influx.Config) {
	if config.Host == "" {
		config.Host = constants.DefaultHost
	}

	if config.Port == 0 {
		config.Port = constants.DefaultPort
	}

	if config.Username == "" {
		config.Username = constants.DefaultUsername
	}

	if config.Password == "" {
		config.Password = constants.DefaultPassword
	}

	if config.Retries == 0 {
		config.Retries = constants.DefaultRetries
	}

	if config.Retries < constants.MinRetries {
		config.Retries = constants.MinRetries
	}
}
