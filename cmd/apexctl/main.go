// Command apexctl inspects and feeds Apex Finance workspaces from the shell.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"apexfinance/internal/app"
	"apexfinance/internal/config"
	"apexfinance/internal/database"
	"apexfinance/internal/logger"
)

var (
	workspaceID string
	rootCmd     = &cobra.Command{
		Use:           "apexctl",
		Short:         "Apex Finance workspace tooling",
		Long:          `apexctl prints category trees and scores and imports transaction exports directly against the Apex Finance database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&workspaceID, "workspace", "w", "", "workspace ID")

	rootCmd.AddCommand(treeCmd())
	rootCmd.AddCommand(scoreCmd())
	rootCmd.AddCommand(importCSVCmd())
	rootCmd.AddCommand(snapshotCmd())
}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// requireWorkspace validates the --workspace flag and returns it normalized.
func requireWorkspace() (string, error) {
	if workspaceID == "" {
		return "", fmt.Errorf("--workspace is required")
	}
	id, err := uuid.Parse(workspaceID)
	if err != nil {
		return "", fmt.Errorf("invalid workspace ID %q", workspaceID)
	}
	return id.String(), nil
}

// openServices connects to the configured database and builds the service
// layer. The returned func closes the connection.
func openServices() (*app.Services, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	manager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	closeFn := func() {
		if err := manager.Close(); err != nil {
			logger.Get().Warnf("failed to close database: %v", err)
		}
	}
	return app.NewServices(manager.DB(), cfg), closeFn, nil
}
