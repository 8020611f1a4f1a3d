package influx

import (
	"errors"
	"fmt"
)

// Static errors that can be wrapped with context.
var (
	ErrConfigRequired     = errors.New("config is required")
	ErrDatabaseRequired   = errors.New("database is required")
	ErrNoPoints           = errors.New("no points to write")
	ErrEmptyStatement     = errors.New("statement is empty")
	ErrInvalidPrecision   = errors.New("invalid precision (use ns, u, ms, s, m or h)")
	ErrInvalidRetries     = errors.New("retries must be at least 1")
	ErrIdentifierRequired = errors.New("identifier is required")
	ErrProxyURLInvalid    = errors.New("proxy URL is invalid")
)

// EncodingError reports a malformed point detected before anything is sent.
// Index is the position of the offending point in the encoded sequence.
type EncodingError struct {
	Index  int
	Reason string
}

// Error implements the error interface.
func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding point %d: %s", e.Index, e.Reason)
}

// ConnectionError reports that every retry attempt exhausted without a
// transport-level response.
type ConnectionError struct {
	URL      string
	Attempts int
	Err      error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to %s failed after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ClientError reports a 4xx response or a well-formed 2xx that did not match
// the expected status. The decoded server message and raw body are carried
// for diagnostics.
type ClientError struct {
	StatusCode int
	Message    string
	Body       []byte
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server rejected request with status %d", e.StatusCode)
	}

	return fmt.Sprintf("server rejected request with status %d: %s", e.StatusCode, e.Message)
}

// ServerError reports a 5xx response. The decoded server message and raw body
// are carried for diagnostics.
type ServerError struct {
	StatusCode int
	Message    string
	Body       []byte
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error with status %d", e.StatusCode)
	}

	return fmt.Sprintf("server error with status %d: %s", e.StatusCode, e.Message)
}

// ParseError reports an undecodable query response body.
type ParseError struct {
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing query response: %v", e.Err)
}

// Unwrap returns the underlying decode error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// StatementError reports a per-statement error embedded in an otherwise
// successful query response. Index is the statement's position in the
// results array.
type StatementError struct {
	Index   int
	Message string
}

// Error implements the error interface.
func (e *StatementError) Error() string {
	return fmt.Sprintf("statement %d failed: %s", e.Index, e.Message)
}

// WriteError wraps the dispatcher failure behind a write operation.
type WriteError struct {
	Err error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("writing points: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// IsConnectionError checks if the error is a transport-level failure after
// retries exhausted.
func IsConnectionError(err error) bool {
	connErr := &ConnectionError{}

	return errors.As(err, &connErr)
}

// IsClientError checks if the error is a 4xx or unexpected-status rejection.
func IsClientError(err error) bool {
	clientErr := &ClientError{}

	return errors.As(err, &clientErr)
}

// IsServerError checks if the error is a 5xx server failure.
func IsServerError(err error) bool {
	serverErr := &ServerError{}

	return errors.As(err, &serverErr)
}

// IsStatementError checks if the error is a per-statement query error.
func IsStatementError(err error) bool {
	stmtErr := &StatementError{}

	return errors.As(err, &stmtErr)
}

// IsEncodingError checks if the error came from point encoding.
func IsEncodingError(err error) bool {
	encErr := &EncodingError{}

	return errors.As(err, &encErr)
}

// IsParseError checks if the error came from decoding a query response.
func IsParseError(err error) bool {
	parseErr := &ParseError{}

	return errors.As(err, &parseErr)
}

// StatusCode extracts the HTTP status code from a ClientError or ServerError,
// or returns 0 when the error carries none.
func StatusCode(err error) int {
	clientErr := &ClientError{}
	if errors.As(err, &clientErr) {
		return clientErr.StatusCode
	}

	serverErr := &ServerError{}
	if errors.As(err, &serverErr) {
		return serverErr.StatusCode
	}

	return 0
}
