package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	appconfig "github.com/skillpath-labs/lms-backend/internal/config"
	"github.com/skillpath-labs/lms-backend/internal/server"
	"github.com/skillpath-labs/lms-backend/pkg/config"
	"github.com/skillpath-labs/lms-backend/pkg/logger"
	"github.com/skillpath-labs/lms-backend/pkg/utils"
)

// ServerCommand returns a command for server operations
func ServerCommand() *cli.Command {
	return &cli.Command{
		Name:    "server",
		Aliases: []string{"s"},
		Usage:   "Server operations",
		Subcommands: []*cli.Command{
			{
				Name:   "start",
				Usage:  "Start the API server",
				Action: serverStartAction,
			},
		},
	}
}

func serverStartAction(ctx *cli.Context) error {
	log := getLogger(ctx)

	// Local development keeps agent IDs in a .env file; absence is fine
	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded environment from .env file")
	}

	cfg := &appconfig.AppConfig{}
	if err := config.GetConfig(cfg, ctx.String("config-file"), true); err != nil {
		log.Error("Failed to load config", logger.ErrorField(err))
		return fmt.Errorf("failed to load config: %w", err)
	}

	log.Info("Configuration loaded successfully")

	s, err := server.New(ctx.Context, cfg, log)
	if err != nil {
		log.Error("Failed to create server", logger.ErrorField(err))
		return fmt.Errorf("failed to create server: %w", err)
	}

	errChan, closer, gracefulCloser, err := s.Listen()
	if err != nil {
		log.Error("Failed to start server", logger.ErrorField(err))
		return fmt.Errorf("failed to start server: %w", err)
	}

	log.Info("HTTP service started successfully")

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Merge error channels
	mergedErrChan := utils.MergeErrorChans(errChan)

	// Wait for shutdown signal or error
	select {
	case sig := <-sigChan:
		log.Info("Received shutdown signal", logger.StringField("signal", sig.String()))
		gracefulCloser()
		log.Info("Server exited gracefully")
	case err := <-mergedErrChan:
		if err != nil {
			log.Error("Fatal server error occurred", logger.ErrorField(err))
			closer()
			return fmt.Errorf("server error: %w", err)
		}
		log.Info("Server exited normally")
	}

	return nil
}
