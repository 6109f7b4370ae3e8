package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "farebot",
	Short: "Farebot is a trip-planning Telegram bot",
	Long: `Farebot collects trip dates and cities through a short dialogue,
resolves cities to airport codes, and replies with the cheapest
direct round-trip flights.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is a dev convenience; absence is fine.
		_ = godotenv.Load()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
