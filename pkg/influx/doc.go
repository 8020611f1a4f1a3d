// Package influx provides types, interfaces, and helpers for working with the
// InfluxDB 1.x HTTP API.
//
// # Overview
//
// The influx package defines the domain types (Point, ResultSet, Series) and
// the Client interface for writing time-series data and executing InfluxQL
// statements. A concrete implementation of the client is provided by the
// influxclient package, which wires configuration, transport, retries, and
// authentication. Most consumers should import influxclient to construct a
// client and then interact with the Client interface exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fluxwire-io/influx/pkg/influx"
//	  "github.com/fluxwire-io/influx/pkg/influxclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := influxclient.New(&influx.Config{Host: "localhost", Database: "metrics"})
//	  if err != nil { log.Fatal(err) }
//
//	  err = cli.Write(ctx, []influx.Point{{
//	    Measurement: "cpu",
//	    Tags:        map[string]string{"host": "server01"},
//	    Fields:      map[string]interface{}{"value": 0.64},
//	  }})
//	  if err != nil { log.Fatal(err) }
//	}
//
// # Queries
//
// Query executes an InfluxQL statement and returns the parsed result sets;
// RawQuery returns the decoded but unparsed JSON body for callers that want
// raw access. Statement-level errors reported by the server are raised by
// default and can instead be embedded in the ResultSet via
// WithStatementErrors.
//
//	results, err := cli.Query(ctx, "SELECT value FROM cpu WHERE time > now() - 1h")
//
// # Errors
//
// Failures are represented by typed errors (ClientError, ServerError,
// ConnectionError, ParseError, StatementError, EncodingError). Helpers such as
// IsServerError and IsStatementError make it easy to branch on the failure
// class while keeping the original status code and server message reachable.
//
// # Caching
//
// The package includes a small pluggable Cache abstraction (in-memory, NATS
// JetStream KV, or none) that the client can use to serve repeated read
// queries without a round trip. Caching is off unless configured.
package influx
