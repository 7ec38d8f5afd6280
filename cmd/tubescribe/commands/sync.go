// ABOUTME: Sync commands for Charm cloud synchronization
// ABOUTME: Provides status, now, wipe, and keys management for the charm backend
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/tubescribe/internal/charm"
	"github.com/harper/tubescribe/internal/config"
)

// NewSyncCmd creates the sync command group
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Manage Charm cloud synchronization",
		Long: `Manage synchronization with Charm cloud.

With STORE_BACKEND=charm, transcripts and cached chunks live in a Charm
KV database that syncs across devices linked to the same Charm account
via SSH keys. The sqlite and redis backends keep data local and ignore
these commands.`,
	}

	cmd.AddCommand(newSyncStatusCmd())
	cmd.AddCommand(newSyncNowCmd())
	cmd.AddCommand(newSyncWipeCmd())
	cmd.AddCommand(newSyncKeysCmd())

	return cmd
}

// openCharm connects with the configured host and database
func openCharm() (*charm.Client, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	client, err := charm.NewClient(&charm.Config{
		Host:     cfg.CharmHost,
		DBName:   cfg.CharmDBName,
		AutoSync: false,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to Charm: %w", err)
	}
	return client, cfg, nil
}

func newSyncStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show sync status and connection info",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := openCharm()
			if err != nil {
				return err
			}
			defer client.Close()

			out := cmd.OutOrStdout()
			id, err := client.ID()
			if err != nil {
				fmt.Fprintln(out, "Status: Not connected")
				fmt.Fprintln(out, "Run 'tubescribe sync keys' to check your SSH keys")
				return nil
			}

			fmt.Fprintln(out, "Status: Connected")
			fmt.Fprintf(out, "User ID: %s\n", id)
			fmt.Fprintf(out, "Host: %s\n", client.Host())
			fmt.Fprintf(out, "Database: %s\n", cfg.CharmDBName)
			if cfg.StoreBackend != config.BackendCharm {
				fmt.Fprintf(out, "Note: STORE_BACKEND is %s, so tubescribe is not using Charm\n", cfg.StoreBackend)
			}
			return nil
		},
	}
}

func newSyncNowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Force immediate sync with Charm cloud",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := openCharm()
			if err != nil {
				return err
			}
			defer client.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "Syncing...")
			if err := client.Sync(); err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Sync complete")
			return nil
		},
	}
}

func newSyncWipeCmd() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Wipe all local data (nuclear option)",
		Long: `Completely wipe all local Charm data.

WARNING: This deletes all locally cached data. Your cloud data
remains intact and will be re-synced on next access.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				fmt.Fprintln(cmd.OutOrStdout(), "This will wipe ALL local data!")
				fmt.Fprintln(cmd.OutOrStdout(), "Run with --confirm to proceed")
				return nil
			}

			client, _, err := openCharm()
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Reset(); err != nil {
				return fmt.Errorf("failed to wipe data: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Local data wiped successfully")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "Confirm the wipe operation")

	return cmd
}

func newSyncKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List authorized SSH keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := openCharm()
			if err != nil {
				return err
			}
			defer client.Close()

			keys, err := client.AuthorizedKeys()
			if err != nil {
				return fmt.Errorf("failed to get authorized keys: %w", err)
			}

			if keys == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No authorized keys found")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Authorized SSH keys:")
			fmt.Fprintln(cmd.OutOrStdout(), keys)
			return nil
		},
	}
}
