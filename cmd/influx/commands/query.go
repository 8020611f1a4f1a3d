package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fluxwire-io/influx/pkg/influx"
)

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	var (
		epoch      string
		raw        bool
		keepErrors bool
	)

	cmd := &cobra.Command{
		Use:   "query STATEMENT",
		Short: "Run an InfluxQL query",
		Long:  "Run one or more semicolon-separated InfluxQL statements against the server",
		Example: `  influx query -d mydb 'SELECT value FROM cpu WHERE time > now() - 1h'
  influx query -d mydb --output json 'SHOW MEASUREMENTS'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			statement := args[0]

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			var opts []influx.QueryOption
			if epoch != "" {
				opts = append(opts, influx.WithEpoch(influx.Precision(epoch)))
			}

			if keepErrors {
				opts = append(opts, influx.WithStatementErrors())
			}

			if raw {
				body, err := client.RawQuery(ctx, statement, opts...)
				if err != nil {
					return fmt.Errorf("query failed: %w", err)
				}

				_, _ = os.Stdout.Write(body)
				_, _ = os.Stdout.WriteString("\n")

				return nil
			}

			results, err := client.Query(ctx, statement, opts...)
			if err != nil {
				return fmt.Errorf("query failed: %w", err)
			}

			return renderResults(results)
		},
	}

	cmd.Flags().StringVar(&epoch, "epoch", "", "return timestamps as epoch values in this precision (ns, u, ms, s, m, h)")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the raw JSON response body")
	cmd.Flags().BoolVar(&keepErrors, "keep-errors", false, "report per-statement errors in the output instead of failing")

	return cmd
}
