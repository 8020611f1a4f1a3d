package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fluxwire-io/influx/pkg/influx"
)

// NewWriteCommand creates the write command.
func NewWriteCommand() *cobra.Command {
	var (
		measurement     string
		tags            []string
		fields          []string
		timestamp       string
		precision       string
		retentionPolicy string
		lines           []string
	)

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write points to the server",
		Long: `Write points to the server, either built from --measurement/--tag/--field
flags or passed verbatim in line protocol with --line.`,
		Example: `  influx write -d mydb --measurement cpu --tag host=server01 --field value=0.64
  influx write -d mydb --line 'cpu,host=server01 value=0.64'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			var opts []influx.WriteOption
			if precision != "" {
				opts = append(opts, influx.WithPrecision(influx.Precision(precision)))
			}

			if retentionPolicy != "" {
				opts = append(opts, influx.WithRetentionPolicy(retentionPolicy))
			}

			if len(lines) > 0 {
				err = client.WriteLines(ctx, lines, opts...)
				if err != nil {
					return fmt.Errorf("write failed: %w", err)
				}

				_, _ = fmt.Fprintf(os.Stdout, "Wrote %d line(s)\n", len(lines))

				return nil
			}

			point, err := buildPoint(measurement, tags, fields, timestamp)
			if err != nil {
				return err
			}

			err = client.Write(ctx, []influx.Point{point}, opts...)
			if err != nil {
				return fmt.Errorf("write failed: %w", err)
			}

			_, _ = os.Stdout.WriteString("Wrote 1 point\n")

			return nil
		},
	}

	cmd.Flags().StringVarP(&measurement, "measurement", "m", "", "measurement name")
	cmd.Flags().StringArrayVarP(&tags, "tag", "t", nil, "tag as key=value (repeatable)")
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "field as key=value (repeatable)")
	cmd.Flags().StringVar(&timestamp, "time", "", "point timestamp (RFC3339)")
	cmd.Flags().StringVarP(&precision, "precision", "p", "", "timestamp precision (ns, u, ms, s, m, h)")
	cmd.Flags().StringVar(&retentionPolicy, "rp", "", "target retention policy")
	cmd.Flags().StringArrayVarP(&lines, "line", "l", nil, "raw line protocol (repeatable, overrides point flags)")

	return cmd
}

// buildPoint assembles a point from CLI flags.
func buildPoint(measurement string, tagPairs, fieldPairs []string, timestamp string) (influx.Point, error) {
	if measurement == "" {
		return influx.Point{}, ErrMeasurementRequired
	}

	if len(fieldPairs) == 0 {
		return influx.Point{}, ErrNoFields
	}

	tags, err := parseKeyValuePairs(tagPairs)
	if err != nil {
		return influx.Point{}, fmt.Errorf("parsing tags: %w", err)
	}

	rawFields, err := parseKeyValuePairs(fieldPairs)
	if err != nil {
		return influx.Point{}, fmt.Errorf("parsing fields: %w", err)
	}

	fields := make(map[string]interface{}, len(rawFields))
	for key, value := range rawFields {
		fields[key] = parseFieldValue(value)
	}

	point := influx.Point{
		Measurement: measurement,
		Tags:        tags,
		Fields:      fields,
	}

	if timestamp != "" {
		ts, err := time.Parse(time.RFC3339Nano, timestamp)
		if err != nil {
			return influx.Point{}, fmt.Errorf("parsing timestamp: %w", err)
		}

		point.Time = ts
	}

	return point, nil
}
