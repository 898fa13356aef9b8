package serve

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"audio2text/internal/api/server"
	"audio2text/internal/api/v1/services"
	"audio2text/internal/app"
	"audio2text/internal/app/session"
	"audio2text/internal/config"
)

var (
	host        string
	environment string
)

func init() {
	Cmd.Flags().StringVar(&host, "host", "", "interface to bind, empty binds all")
	Cmd.Flags().StringVar(&environment, "env", "development", "runtime environment (development or production)")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI and JSON API",
	Long: `Start the web UI and JSON API

- Serves the browser upload page on /
- Exposes the JSON API under /api/v1
- Reads its configuration from the environment, see .env.example`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

		history, err := app.InitializeHistory(cfg)
		if err != nil {
			return err
		}
		if history != nil {
			defer history.Close()
		}

		pipe, err := app.InitializePipeline(cfg, history, logger)
		if err != nil {
			return err
		}

		sessions := session.NewManager(session.DefaultTTL)
		service := services.NewTranscriptionService(pipe, sessions, history, logger)

		srv := server.NewServer(server.Config{
			Host: host,
			Port: cfg.Port,
			// Uploads block until the whole batch is transcribed, so
			// the write timeout has to cover long batches.
			ReadTimeout:  10 * time.Minute,
			WriteTimeout: 30 * time.Minute,
			IdleTimeout:  2 * time.Minute,
			Environment:  environment,
			SessionTTL:   session.DefaultTTL,
		}, service, logger)

		if err := srv.Start(); err != nil {
			return err
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
		return nil
	},
}
