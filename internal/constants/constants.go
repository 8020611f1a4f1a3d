// Package constants centralizes defaults shared across the client, CLI, and
// tests.
package constants

import "time"

// Connection defaults, matching the server's stock installation.
const (
	// DefaultHost is the default server hostname.
	DefaultHost = "localhost"

	// DefaultPort is the default HTTP API port.
	DefaultPort = 8086

	// DefaultUsername is the default basic-auth user.
	DefaultUsername = "root"

	// DefaultPassword is the default basic-auth password.
	DefaultPassword = "root"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout bounds a single request attempt.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations like ping.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry bounds.
const (
	// DefaultRetries is the default number of attempts for transport-level
	// failures.
	DefaultRetries = 3

	// MinRetries is the lowest permitted attempt count.
	MinRetries = 1

	// DefaultRetryWaitMin is the minimum backoff between attempts.
	DefaultRetryWaitMin = 100 * time.Millisecond

	// DefaultRetryWaitMax is the maximum backoff between attempts.
	DefaultRetryWaitMax = 2 * time.Second
)

// Expected success statuses per endpoint.
const (
	// StatusQueryOK is the success status for /query.
	StatusQueryOK = 200

	// StatusWriteOK is the success status for /write.
	StatusWriteOK = 204

	// StatusPingOK is the success status for /ping.
	StatusPingOK = 204
)

// File and directory permissions for CLI configuration.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)
