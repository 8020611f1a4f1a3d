package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewDatabasesCommand creates the databases command group.
func NewDatabasesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "databases",
		Short: "Manage databases",
		Long:  "List, create, and drop databases",
	}

	cmd.AddCommand(newDatabasesListCommand())
	cmd.AddCommand(newDatabasesCreateCommand())
	cmd.AddCommand(newDatabasesDropCommand())

	return cmd
}

func newDatabasesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List databases",
		Long:  "List all databases on the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			names, err := client.ShowDatabases(context.Background())
			if err != nil {
				return fmt.Errorf("listing databases: %w", err)
			}

			output := viper.GetString("output")
			if output == OutputFormatJSON || output == OutputFormatYAML {
				return renderEncoded(names, output)
			}

			if len(names) == 0 {
				_, _ = os.Stdout.WriteString("No databases found\n")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Database")

			for _, name := range names {
				_ = table.Append(name)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newDatabasesCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create DATABASE_NAME",
		Short: "Create a database",
		Long:  "Create a new database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if name == "" {
				return ErrDatabaseNameRequired
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.CreateDatabase(context.Background(), name)
			if err != nil {
				return fmt.Errorf("failed to create database: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully created database '%s'\n", name)

			return nil
		},
	}
}

func newDatabasesDropCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "drop DATABASE_NAME",
		Short: "Drop a database",
		Long:  "Drop a database and all of its data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Really drop database '%s'? (y/N): ", name)

				var response string

				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					_, _ = os.Stdout.WriteString("Cancelled\n")

					return nil
				}
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.DropDatabase(context.Background(), name)
			if err != nil {
				return fmt.Errorf("failed to drop database: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully dropped database '%s'\n", name)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}
