package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// Config represents the CLI configuration persisted to disk.
type Config struct {
	Host              string `json:"host,omitempty"      yaml:"host,omitempty"`
	Port              int    `json:"port,omitempty"      yaml:"port,omitempty"`
	Database          string `json:"database,omitempty"  yaml:"database,omitempty"`
	Username          string `json:"username,omitempty"  yaml:"username,omitempty"`
	Password          string `json:"password,omitempty"  yaml:"password,omitempty"`
	SSL               bool   `json:"ssl"                 yaml:"ssl"`
	SkipSSLValidation bool   `json:"skip_ssl_validation" yaml:"skip_ssl_validation"`
	Output            string `json:"output,omitempty"    yaml:"output,omitempty"`

	Cache CacheSettings `json:"cache,omitempty" yaml:"cache,omitempty"`
}

// CacheSettings holds the query-cache section of the CLI configuration.
type CacheSettings struct {
	Type     string `json:"type,omitempty"      yaml:"type,omitempty"`
	TTL      string `json:"ttl,omitempty"       yaml:"ttl,omitempty"`
	MaxSize  int    `json:"max_size,omitempty"  yaml:"max_size,omitempty"`
	NATSURL  string `json:"nats_url,omitempty"  yaml:"nats_url,omitempty"`
	NATSCred string `json:"nats_credentials,omitempty" yaml:"nats_credentials,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage influx CLI configuration including connection settings",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())
	cmd.AddCommand(newConfigSetPasswordCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			output := viper.GetString("output")
			if output == OutputFormatJSON || output == OutputFormatYAML {
				shown := *config
				if shown.Password != "" {
					shown.Password = "***"
				}

				return renderEncoded(shown, output)
			}

			return displayConfigTable(config)
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a specific configuration value and persist it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]

			config := loadConfig()

			err := applyConfigValue(config, key, value)
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Set %s\n", key)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a specific configuration value and persist the change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			config := loadConfig()

			err := applyConfigValue(config, key, "")
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Unset %s\n", key)

			return nil
		},
	}
}

func newConfigSetPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-password",
		Short: "Set the stored password",
		Long:  "Prompt for a password without echoing and persist it in the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _ = os.Stdout.WriteString("Password: ")

			password, err := term.ReadPassword(int(os.Stdin.Fd()))

			_, _ = os.Stdout.WriteString("\n")

			if err != nil {
				return fmt.Errorf("reading password: %w", err)
			}

			return NewConfigPersister().UpdatePassword(string(password))
		},
	}
}

// loadConfig builds the effective configuration from viper (file, environment,
// and flags combined).
func loadConfig() *Config {
	return &Config{
		Host:              viper.GetString("host"),
		Port:              viper.GetInt("port"),
		Database:          viper.GetString("database"),
		Username:          viper.GetString("username"),
		Password:          viper.GetString("password"),
		SSL:               viper.GetBool("ssl"),
		SkipSSLValidation: viper.GetBool("skip_ssl_validation"),
		Output:            viper.GetString("output"),
		Cache: CacheSettings{
			Type:     viper.GetString("cache.type"),
			TTL:      viper.GetString("cache.ttl"),
			MaxSize:  viper.GetInt("cache.max_size"),
			NATSURL:  viper.GetString("cache.nats_url"),
			NATSCred: viper.GetString("cache.nats_credentials"),
		},
	}
}

// applyConfigValue sets one configuration key on the struct.
func applyConfigValue(config *Config, key, value string) error {
	switch key {
	case "host":
		config.Host = value
	case "port":
		port, err := strconv.Atoi(value)
		if err != nil && value != "" {
			return fmt.Errorf("parsing port: %w", err)
		}

		config.Port = port
	case "database":
		config.Database = value
	case "username":
		config.Username = value
	case "ssl":
		config.SSL = value == "true"
	case "skip_ssl_validation":
		config.SkipSSLValidation = value == "true"
	case "output":
		config.Output = value
	case "cache.type":
		config.Cache.Type = value
	case "cache.ttl":
		config.Cache.TTL = value
	case "cache.max_size":
		size, err := strconv.Atoi(value)
		if err != nil && value != "" {
			return fmt.Errorf("parsing cache.max_size: %w", err)
		}

		config.Cache.MaxSize = size
	case "cache.nats_url":
		config.Cache.NATSURL = value
	case "cache.nats_credentials":
		config.Cache.NATSCred = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}

	return nil
}

func displayConfigTable(config *Config) error {
	password := ""
	if config.Password != "" {
		password = "***"
	}

	rows := [][2]string{
		{"host", config.Host},
		{"port", strconv.Itoa(config.Port)},
		{"database", config.Database},
		{"username", config.Username},
		{"password", password},
		{"ssl", strconv.FormatBool(config.SSL)},
		{"skip_ssl_validation", strconv.FormatBool(config.SkipSSLValidation)},
		{"output", config.Output},
	}

	if config.Cache.Type != "" {
		rows = append(rows,
			[2]string{"cache.type", config.Cache.Type},
			[2]string{"cache.ttl", config.Cache.TTL})
	}

	return renderKeyValueTable("Setting", "Value", rows)
}
