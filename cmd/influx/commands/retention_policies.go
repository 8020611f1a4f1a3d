package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fluxwire-io/influx/pkg/influx"
)

// NewRetentionPoliciesCommand creates the retention-policies command group.
func NewRetentionPoliciesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "retention-policies",
		Aliases: []string{"rp"},
		Short:   "Manage retention policies",
		Long:    "Create and drop retention policies on a database",
	}

	cmd.AddCommand(newRetentionPolicyCreateCommand())
	cmd.AddCommand(newRetentionPolicyDropCommand())

	return cmd
}

func newRetentionPolicyCreateCommand() *cobra.Command {
	var (
		duration    string
		replication int
		isDefault   bool
	)

	cmd := &cobra.Command{
		Use:   "create POLICY_NAME",
		Short: "Create a retention policy",
		Long:  "Create a retention policy on the target database",
		Example: `  influx retention-policies create one_week -d mydb --duration 7d
  influx rp create forever -d mydb --duration INF --default`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if name == "" {
				return ErrRetentionPolicyNameRequired
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.CreateRetentionPolicy(context.Background(), influx.RetentionPolicy{
				Name:        name,
				Duration:    duration,
				Replication: replication,
				Default:     isDefault,
			})
			if err != nil {
				return fmt.Errorf("failed to create retention policy: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully created retention policy '%s'\n", name)

			return nil
		},
	}

	cmd.Flags().StringVar(&duration, "duration", "", "how long data is kept (e.g. 7d, 1h30m, INF)")
	cmd.Flags().IntVar(&replication, "replication", 1, "replication factor")
	cmd.Flags().BoolVar(&isDefault, "default", false, "make this the default retention policy")
	_ = cmd.MarkFlagRequired("duration")

	return cmd
}

func newRetentionPolicyDropCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "drop POLICY_NAME",
		Short: "Drop a retention policy",
		Long:  "Drop a retention policy and all data stored under it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Really drop retention policy '%s'? (y/N): ", name)

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

			err = client.DropRetentionPolicy(context.Background(), name, "")
			if err != nil {
				return fmt.Errorf("failed to drop retention policy: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully dropped retention policy '%s'\n", name)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}
