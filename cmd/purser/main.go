package main

import (
	"os"

	"github.com/spf13/cobra"

	"purser/internal/interfaces/cli/migrate"
	"purser/internal/interfaces/cli/reconcile"
	"purser/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "purser",
		Short: "Purser - cruise group payment tracking",
		Long:  `Purser tracks cruise-group bookings and per-cabin payment ledgers for travel agencies, with subscription billing and team management.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		reconcile.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
