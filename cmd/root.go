package cmd

import (
	"fmt"
	"log"

	"github.com/newrelic/go-easy-modifiers/internal/config"
	"github.com/newrelic/go-easy-modifiers/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	defaultConfigPath = ""
	defaultDebug      = false
)

var (
	debug      bool
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "go-easy-modifiers",
	Short: "go-easy-modifiers edits declaration modifiers without disturbing formatting",
	Long:  "go-easy-modifiers inserts and normalizes declaration modifiers, and exports Go identifiers, while keeping comments and whitespace in place",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(configPath)
		if err != nil {
			return err
		}
		if debug {
			cfg.Debug = true
		}

		logger, err = logging.New(cfg.Debug)
		if err != nil {
			return err
		}
		logger.Debug("configuration loaded", zap.String("path", configPath), zap.Int("modifiers", len(cfg.Modifiers)))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
	},
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	c, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("--config \"%s\" is invalid: %w", path, err)
	}
	return c, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", defaultDebug, "enable debugging output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "path to a YAML or TOML modifier configuration file")
}
