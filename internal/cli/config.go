package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	appconfig "github.com/skillpath-labs/lms-backend/internal/config"
	"github.com/skillpath-labs/lms-backend/pkg/config"
	"github.com/skillpath-labs/lms-backend/pkg/logger"
)

// ConfigCommand returns a command for configuration operations
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Configuration operations",
		Subcommands: []*cli.Command{
			{
				Name:   "validate",
				Usage:  "Validate configuration",
				Action: configValidateAction,
			},
		},
	}
}

func configValidateAction(ctx *cli.Context) error {
	log := getLogger(ctx)

	log.Info("Validating configuration")

	_ = godotenv.Load()

	// Load and validate configuration
	cfg := &appconfig.AppConfig{}
	if err := config.GetConfig(cfg, ctx.String("config-file"), true); err != nil {
		log.Error("Configuration validation failed", logger.ErrorField(err))
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	log.Info("Configuration validation passed")
	fmt.Println("Configuration is valid")
	return nil
}
