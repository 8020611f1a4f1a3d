package influx

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"strings"
	"time"
)

// Client is the public surface of the InfluxDB client. All methods are safe
// for concurrent use: the client holds no mutable per-call state, so
// concurrent calls are independent and require no locking.
type Client interface {
	// Write encodes points as line protocol and submits them to /write.
	Write(ctx context.Context, points []Point, opts ...WriteOption) error

	// WriteLines submits pre-encoded line protocol strings verbatim.
	WriteLines(ctx context.Context, lines []string, opts ...WriteOption) error

	// RawQuery executes a statement and returns the decoded but unparsed
	// response body.
	RawQuery(ctx context.Context, statement string, opts ...QueryOption) (json.RawMessage, error)

	// Query executes a statement and parses the response into result sets.
	// Statement-level errors are raised unless WithStatementErrors is given.
	Query(ctx context.Context, statement string, opts ...QueryOption) ([]ResultSet, error)

	// CreateDatabase creates a database. The name is identifier-quoted.
	CreateDatabase(ctx context.Context, name string) error

	// DropDatabase drops a database. The name is identifier-quoted.
	DropDatabase(ctx context.Context, name string) error

	// ShowDatabases returns the names of all databases visible to the user.
	ShowDatabases(ctx context.Context) ([]string, error)

	// CreateRetentionPolicy creates a retention policy on a database.
	CreateRetentionPolicy(ctx context.Context, policy RetentionPolicy) error

	// DropRetentionPolicy drops a retention policy from a database.
	DropRetentionPolicy(ctx context.Context, name, database string) error

	// Ping checks connectivity and returns the server version.
	Ping(ctx context.Context) (string, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building an influx.Client.
// It is owned exclusively by the client for its lifetime and immutable after
// construction.
type Config struct {
	// Host is the server hostname. Defaults to "localhost".
	Host string
	// Port is the HTTP API port. Defaults to 8086.
	Port int
	// Username for basic auth. Defaults to "root".
	Username string
	// Password for basic auth. Defaults to "root".
	Password string
	// Database is the default database for writes and queries. Most
	// operations fail without one; there is no default.
	Database string

	// SSL selects the https scheme when true. Defaults to false (http).
	SSL bool
	// VerifySSL enables TLS certificate verification. Defaults to false.
	VerifySSL bool
	// Proxy is an optional proxy URL applied to the transport.
	Proxy string

	// Timeout bounds each request attempt, not the overall call: with N
	// retries the worst-case wall time is N times this value.
	Timeout time.Duration
	// Retries is the number of attempts for transport-level failures.
	// Defaults to 3, floor 1. HTTP-level error statuses are never retried.
	Retries int
	// RetryWaitMin is the minimum backoff between attempts.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between attempts.
	RetryWaitMax time.Duration

	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Debug enables verbose request/response logging when a Logger is set.
	Debug bool
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger

	// QueryCache optionally configures a cache for read-query responses.
	QueryCache *CacheConfig
}

// WriteOptions holds the per-call options for a write.
type WriteOptions struct {
	// Precision is the timestamp resolution for encoded points.
	Precision Precision
	// Database overrides the client's configured database.
	Database string
	// RetentionPolicy targets a specific retention policy.
	RetentionPolicy string
}

// WriteOption configures a single write call.
type WriteOption func(*WriteOptions)

// WithPrecision sets the timestamp precision for the write.
func WithPrecision(precision Precision) WriteOption {
	return func(o *WriteOptions) {
		o.Precision = precision
	}
}

// WithWriteDatabase overrides the configured database for this write.
func WithWriteDatabase(database string) WriteOption {
	return func(o *WriteOptions) {
		o.Database = database
	}
}

// WithRetentionPolicy targets the named retention policy.
func WithRetentionPolicy(policy string) WriteOption {
	return func(o *WriteOptions) {
		o.RetentionPolicy = policy
	}
}

// QueryOptions holds the per-call options for a query.
type QueryOptions struct {
	// Database overrides the client's configured database.
	Database string
	// Epoch requests integer timestamps in the given precision instead of
	// RFC3339 text.
	Epoch Precision
	// Params are bound parameters submitted alongside the statement.
	Params map[string]interface{}
	// Method forces the HTTP method. Unset, the client uses GET for reads
	// and POST for statements that modify state.
	Method string
	// KeepStatementErrors embeds per-statement errors in the ResultSet
	// instead of failing the call.
	KeepStatementErrors bool
}

// QueryOption configures a single query call.
type QueryOption func(*QueryOptions)

// WithDatabase overrides the configured database for this query.
func WithDatabase(database string) QueryOption {
	return func(o *QueryOptions) {
		o.Database = database
	}
}

// WithEpoch requests epoch-formatted timestamps in the given precision.
func WithEpoch(precision Precision) QueryOption {
	return func(o *QueryOptions) {
		o.Epoch = precision
	}
}

// WithParams binds named parameters to the statement.
func WithParams(params map[string]interface{}) QueryOption {
	return func(o *QueryOptions) {
		o.Params = params
	}
}

// WithMethod forces the HTTP method for the query request.
func WithMethod(method string) QueryOption {
	return func(o *QueryOptions) {
		o.Method = method
	}
}

// WithStatementErrors embeds statement errors in the result sets instead of
// failing the call on the first one.
func WithStatementErrors() QueryOption {
	return func(o *QueryOptions) {
		o.KeepStatementErrors = true
	}
}

// WritesStatement reports whether an InfluxQL statement modifies server
// state and therefore must be submitted with POST.
func WritesStatement(statement string) bool {
	words := strings.Fields(strings.ToUpper(statement))
	if len(words) == 0 {
		return false
	}

	switch words[0] {
	case "ALTER", "CREATE", "DELETE", "DROP", "GRANT", "KILL", "REVOKE":
		return true
	case "SELECT":
		// SELECT ... INTO writes its result server-side.
		return slices.Contains(words, "INTO")
	}

	return false
}

// QueryMethod returns the HTTP method a statement should be submitted with,
// honoring an explicit override.
func (o *QueryOptions) QueryMethod(statement string) string {
	if o.Method != "" {
		return o.Method
	}

	if WritesStatement(statement) {
		return http.MethodPost
	}

	return http.MethodGet
}
