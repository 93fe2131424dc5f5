package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	httpAdapter "github.com/lobalabs/lobabot/internal/adapters/http"
	"github.com/lobalabs/lobabot/internal/adapters/sheets"
	"github.com/lobalabs/lobabot/internal/adapters/whatsapp"
	"github.com/lobalabs/lobabot/internal/bridge"
	"github.com/lobalabs/lobabot/internal/config"
	"github.com/lobalabs/lobabot/internal/logging"
	"github.com/lobalabs/lobabot/internal/metrics"
	"github.com/lobalabs/lobabot/pkg/adapters/memory"
	redisAdapter "github.com/lobalabs/lobabot/pkg/adapters/redis"
	"github.com/lobalabs/lobabot/pkg/engine"
	"github.com/lobalabs/lobabot/pkg/persistence/middleware"
	"github.com/lobalabs/lobabot/pkg/ports"
	"github.com/lobalabs/lobabot/pkg/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the webhook server",
	Long:  `Starts the webhook server: verification handshake, inbound message processing, health, and metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		levelName, _ := cmd.Flags().GetString("log-level")
		logger := logging.New(parseLevel(levelName))

		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		if err := cfg.Validate(); err != nil {
			fmt.Printf("Invalid configuration: %v\n", err)
			os.Exit(1)
		}
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Port = port
		}

		// State store: Redis when configured, volatile memory otherwise.
		var store ports.ConversationStore
		var sessionOpts []session.Option
		if cfg.RedisAddr != "" {
			client := backend.NewClient(&backend.Options{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
			})
			redisStore := redisAdapter.NewFromClient(client)
			defer redisStore.Close()
			store = redisStore
			sessionOpts = append(sessionOpts, session.WithLocker(redisAdapter.NewLocker(client, "lobabot:")))
			logger.Info("using redis conversation store", "addr", cfg.RedisAddr)
		} else {
			store = memory.NewStore()
			logger.Warn("using in-memory conversation store; in-flight conversations are lost on restart")
		}
		if len(cfg.StateEncryptionKey) > 0 {
			store = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
				ActiveKey: cfg.StateEncryptionKey,
			})(store)
			logger.Info("conversation state encryption enabled")
		}
		sessionOpts = append(sessionOpts, session.WithLogger(logger))
		sessions := session.NewManager(store, sessionOpts...)

		eng := engine.New(
			engine.WithDistricts(cfg.Districts),
			engine.WithPrompts(cfg.Prompts),
			engine.WithLifecycleHooks(metrics.EngineHooks()),
			engine.WithLogger(logger),
		)

		messenger := whatsapp.NewClient(cfg.WhatsAppToken, cfg.PhoneNumberID, whatsapp.WithLogger(logger))
		sink := sheets.NewClient(cfg.SheetsWebAppURL, sheets.WithLogger(logger))

		b := bridge.New(sessions, eng, messenger, sink,
			bridge.WithOperatorNumber(cfg.OperatorNumber),
			bridge.WithLogger(logger),
		)

		handler := httpAdapter.NewHandler(b, cfg.VerifyToken, httpAdapter.WithLogger(logger))

		srv := &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting webhook server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "err", err)
				}
			}
			logger.Info("webhook server stopped")
		}
	},
}

func parseLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (overrides PORT)")
}
