package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/askarpov/farebot"
	opshttp "github.com/askarpov/farebot/internal/adapters/http"
	"github.com/askarpov/farebot/internal/config"
	"github.com/askarpov/farebot/internal/logging"
	"github.com/askarpov/farebot/pkg/adapters/telegram"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Telegram bot",
	Long:  `Starts the Telegram long-polling loop and the ops HTTP listener (healthz, metrics).`,
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
		if cfg.TelegramToken == "" {
			fmt.Println("FAREBOT_TELEGRAM_TOKEN is required for serve")
			os.Exit(1)
		}

		logger := logging.New(cfg.Level())

		app, err := farebot.New(cfg, farebot.WithLogger(logger))
		if err != nil {
			fmt.Printf("Error initializing farebot: %v\n", err)
			os.Exit(1)
		}

		bot, err := telegram.New(cfg.TelegramToken, app.Engine(), telegram.WithLogger(logger))
		if err != nil {
			fmt.Printf("Error connecting to Telegram: %v\n", err)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := &http.Server{
			Addr:    cfg.OpsAddr,
			Handler: opshttp.NewHandler(),
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("ops listener started", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		botDone := make(chan struct{})
		go func() {
			bot.Start(ctx)
			close(botDone)
		}()

		select {
		case err := <-serverErrors:
			logger.Error("ops listener failed", "err", err)
			stop()
		case <-ctx.Done():
			logger.Info("shutdown signal received")
		}

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("ops listener shutdown incomplete", "err", err)
			_ = srv.Close()
		}
		<-botDone
		logger.Info("farebot stopped gracefully")
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

