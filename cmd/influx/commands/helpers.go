package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fluxwire-io/influx/pkg/influx"
	"github.com/fluxwire-io/influx/pkg/influxclient"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Common static errors used throughout the commands package.
var (
	ErrDatabaseNameRequired        = errors.New("database name is required")
	ErrRetentionPolicyNameRequired = errors.New("retention policy name is required")
	ErrMeasurementRequired         = errors.New("measurement is required (use --measurement)")
	ErrNoFields                    = errors.New("at least one field is required (use --field key=value)")
	ErrInvalidPairFormat           = errors.New("invalid format, expected key=value")
	ErrUnknownConfigKey            = errors.New("unknown configuration key")
)

// CreateClient builds a library client from the effective CLI configuration.
func CreateClient() (influx.Client, error) {
	config := &influx.Config{
		Host:      viper.GetString("host"),
		Port:      viper.GetInt("port"),
		Username:  viper.GetString("username"),
		Password:  viper.GetString("password"),
		Database:  viper.GetString("database"),
		SSL:       viper.GetBool("ssl"),
		VerifySSL: !viper.GetBool("skip_ssl_validation"),
		Debug:     viper.GetBool("verbose"),
	}

	if cacheType := viper.GetString("cache.type"); cacheType != "" {
		config.QueryCache = &influx.CacheConfig{
			Type:    influx.CacheType(cacheType),
			TTL:     viper.GetDuration("cache.ttl"),
			MaxSize: viper.GetInt("cache.max_size"),
		}

		if natsURL := viper.GetString("cache.nats_url"); natsURL != "" {
			config.QueryCache.NATS = &influx.NATSKVConfig{
				URL:         natsURL,
				Bucket:      viper.GetString("cache.nats_bucket"),
				Credentials: viper.GetString("cache.nats_credentials"),
			}
		}
	}

	client, err := influxclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// parseKeyValuePairs parses repeated key=value flags into a map.
func parseKeyValuePairs(pairs []string) (map[string]string, error) {
	result := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPairFormat, pair)
		}

		result[key] = value
	}

	return result, nil
}

// parseFieldValue converts a flag value into a typed field value. A trailing
// "i" forces an integer, quotes force a string; otherwise bool, integer, and
// float are tried in order.
func parseFieldValue(raw string) interface{} {
	if strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`) && len(raw) >= 2 {
		return raw[1 : len(raw)-1]
	}

	if strings.HasSuffix(raw, "i") {
		if i, err := strconv.ParseInt(strings.TrimSuffix(raw, "i"), 10, 64); err == nil {
			return i
		}
	}

	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}

	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}

	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}

	return raw
}

// renderEncoded writes data as indented JSON or YAML to stdout.
func renderEncoded(data interface{}, format string) error {
	switch format {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("encoding to JSON: %w", err)
		}

		return nil
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		err := encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("encoding to YAML: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// renderResults writes query results in the configured output format.
func renderResults(results []influx.ResultSet) error {
	output := viper.GetString("output")
	if output == OutputFormatJSON || output == OutputFormatYAML {
		return renderEncoded(results, output)
	}

	for _, result := range results {
		if err := result.Err(); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)

			continue
		}

		for _, series := range result.Series {
			if err := renderSeriesTable(series); err != nil {
				return err
			}
		}
	}

	return nil
}

// renderSeriesTable writes one series as a table headed by its name and tags.
func renderSeriesTable(series influx.Series) error {
	title := series.Name

	if len(series.Tags) > 0 {
		pairs := make([]string, 0, len(series.Tags))
		for key, value := range series.Tags {
			pairs = append(pairs, key+"="+value)
		}

		title += " {" + strings.Join(pairs, ", ") + "}"
	}

	if title != "" {
		fmt.Fprintln(os.Stdout, title)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header(toAnySlice(series.Columns)...)

	for _, values := range series.Values {
		row := make([]string, len(values))
		for i, value := range values {
			row[i] = formatCell(value)
		}

		_ = table.Append(row)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderKeyValueTable writes two-column rows as a table to stdout.
func renderKeyValueTable(keyHeader, valueHeader string, rows [][2]string) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header(keyHeader, valueHeader)

	for _, row := range rows {
		_ = table.Append(row[0], row[1])
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func toAnySlice(items []string) []interface{} {
	out := make([]interface{}, len(items))
	for i, item := range items {
		out[i] = item
	}

	return out
}

func formatCell(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
