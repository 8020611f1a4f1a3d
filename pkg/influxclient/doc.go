// Package influxclient provides the primary entry point for constructing an
// InfluxDB client that implements the influx.Client interface.
//
// It layers configuration defaults, HTTP transport, bounded retries, and
// authentication on top of the types defined in the influx package. Most
// applications should import influxclient to build a client, then use the
// returned influx.Client to write points and execute statements.
//
// Quick start
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
//
//	  cli, err := influxclient.New(&influx.Config{
//	    Host:     "influxdb.example.com",
//	    Database: "metrics",
//	    Username: "writer",
//	    Password: "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  err = cli.Write(ctx, []influx.Point{{
//	    Measurement: "cpu",
//	    Fields:      map[string]interface{}{"value": 0.64},
//	  }})
//	  if err != nil { log.Fatal(err) }
//	}
//
// Unset fields fall back to the server's stock defaults: localhost:8086 with
// root/root credentials, three attempts per call, http scheme, certificate
// verification off.
//
// # Helpers
//
// The package also provides convenience constructors NewWithDatabase and
// NewWithCredentials that wrap New with the appropriate configuration.
package influxclient
