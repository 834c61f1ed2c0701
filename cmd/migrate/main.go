package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"apexfinance/internal/config"
	"apexfinance/internal/database"
	"apexfinance/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "Manage the Apex Finance database schema",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(upCmd())
	rootCmd.AddCommand(downCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

// databaseURL builds the golang-migrate URL from the environment.
func databaseURL() (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	return database.NewConfig(cfg).URL(), nil
}

func upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := databaseURL()
			if err != nil {
				return err
			}
			if err := database.MigrateUp(url); err != nil {
				return err
			}
			logger.Get().Info("Migrations applied successfully")
			return nil
		},
	}
}

func downCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "down [N]",
		Short: "Roll back the last N migrations (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return fmt.Errorf("invalid step count %q", args[0])
				}
				steps = n
			}
			if all {
				steps = 0
			}

			url, err := databaseURL()
			if err != nil {
				return err
			}
			if err := database.MigrateDown(url, steps); err != nil {
				return err
			}

			if all {
				logger.Get().Info("Rolled back all migrations")
			} else {
				logger.Get().Infof("Rolled back %d migration(s)", steps)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "roll back every migration")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := databaseURL()
			if err != nil {
				return err
			}
			version, dirty, err := database.MigrationVersion(url)
			if err != nil {
				return fmt.Errorf("failed to get version: %w", err)
			}
			logger.Get().Infof("Version: %d, Dirty: %v", version, dirty)
			return nil
		},
	}
}
