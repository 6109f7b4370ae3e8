package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/askarpov/farebot"
	"github.com/askarpov/farebot/internal/adapters/console"
	"github.com/askarpov/farebot/internal/config"
	"github.com/askarpov/farebot/internal/logging"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Run the dialogue on the local terminal",
	Long:  `Runs the trip interview against stdin/stdout, for development without a Telegram token.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if err := cfg.Validate(); err != nil {
			fmt.Printf("Invalid config: %v\n", err)
			os.Exit(1)
		}

		logger := logging.New(cfg.Level())

		app, err := farebot.New(cfg, farebot.WithLogger(logger))
		if err != nil {
			fmt.Printf("Error initializing farebot: %v\n", err)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := console.New(app.Engine(), console.WithLogger(logger)).Run(ctx); err != nil && ctx.Err() == nil {
			fmt.Printf("Console error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}
