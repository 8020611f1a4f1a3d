package client

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/fluxwire-io/influx/pkg/influx"
)

// durationPattern matches the server's duration literals (1h, 90m, 7d, 4w,
// compound forms like 1h30m) and INF. Durations are embedded unquoted in the
// statement, so anything else is rejected up front.
var durationPattern = regexp.MustCompile(`^(?i:inf)$|^([0-9]+(ns|u|ms|s|m|h|d|w))+$`)

// CreateDatabase implements influx.Client.CreateDatabase.
func (c *Client) CreateDatabase(ctx context.Context, name string) error {
	if name == "" {
		return influx.ErrIdentifierRequired
	}

	_, err := c.Query(ctx, "CREATE DATABASE "+influx.QuoteIdent(name))

	return err
}

// DropDatabase implements influx.Client.DropDatabase.
func (c *Client) DropDatabase(ctx context.Context, name string) error {
	if name == "" {
		return influx.ErrIdentifierRequired
	}

	_, err := c.Query(ctx, "DROP DATABASE "+influx.QuoteIdent(name))

	return err
}

// ShowDatabases implements influx.Client.ShowDatabases.
func (c *Client) ShowDatabases(ctx context.Context) ([]string, error) {
	results, err := c.Query(ctx, "SHOW DATABASES")
	if err != nil {
		return nil, err
	}

	names := []string{}

	for _, result := range results {
		for _, series := range result.Series {
			for _, values := range series.Values {
				if len(values) == 0 {
					continue
				}

				if name, ok := values[0].(string); ok {
					names = append(names, name)
				}
			}
		}
	}

	return names, nil
}

// CreateRetentionPolicy implements influx.Client.CreateRetentionPolicy.
func (c *Client) CreateRetentionPolicy(ctx context.Context, policy influx.RetentionPolicy) error {
	if policy.Name == "" {
		return influx.ErrIdentifierRequired
	}

	database := c.databaseFor(policy.Database)
	if database == "" {
		return influx.ErrDatabaseRequired
	}

	if !durationPattern.MatchString(policy.Duration) {
		return fmt.Errorf("invalid retention duration %q", policy.Duration)
	}

	replication := policy.Replication
	if replication <= 0 {
		replication = 1
	}

	var b strings.Builder

	fmt.Fprintf(&b, "CREATE RETENTION POLICY %s ON %s DURATION %s REPLICATION %d",
		influx.QuoteIdent(policy.Name), influx.QuoteIdent(database), policy.Duration, replication)

	if policy.Default {
		b.WriteString(" DEFAULT")
	}

	_, err := c.Query(ctx, b.String())

	return err
}

// DropRetentionPolicy implements influx.Client.DropRetentionPolicy.
func (c *Client) DropRetentionPolicy(ctx context.Context, name, database string) error {
	if name == "" {
		return influx.ErrIdentifierRequired
	}

	database = c.databaseFor(database)
	if database == "" {
		return influx.ErrDatabaseRequired
	}

	_, err := c.Query(ctx, fmt.Sprintf("DROP RETENTION POLICY %s ON %s",
		influx.QuoteIdent(name), influx.QuoteIdent(database)))

	return err
}
