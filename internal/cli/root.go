package cli

import (
	"os"

	"github.com/spf13/cobra"

	"rag-assessment/internal/config"
	"rag-assessment/internal/logger"
)

var (
	port       string
	configPath string
	logMode    string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envPort := os.Getenv("PORT")
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:          "rag-assessment",
		Short:        "Red/Amber/Green self-assessment service and report tooling",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&port, "port", envPort, "port to listen on (overrides config)")
	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&logMode, "log-mode", "", "log encoder: dev or prod (overrides config)")
	cmd.AddCommand(NewStartCmd(&configPath, &port))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	cmd.AddCommand(NewSeedCmd(&configPath))
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewReportCmd(&configPath))
	return cmd
}

func newLogger(cfg config.Config) (*logger.Logger, error) {
	mode := logMode
	if mode == "" {
		mode = cfg.Log.Mode
	}
	return logger.New(mode)
}
