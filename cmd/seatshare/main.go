package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/seatshare-inc/seatshare/internal/interfaces/cli/migrate"
	"github.com/seatshare-inc/seatshare/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "seatshare",
		Short: "Seatshare - subscription seat marketplace",
		Long:  `Seatshare sells seats in shared subscription pools. This binary serves the HTTP API and manages database migrations.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
