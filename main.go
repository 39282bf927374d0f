package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"telegram-shift-bot/internal/config"
	"telegram-shift-bot/internal/logging"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "shiftbot",
	Short:         "Telegram bot that announces on-call shift handovers",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBot,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scheduleCmd)
}

func main() {
	_ = godotenv.Load() // TELEGRAM_BOT_TOKEN, ADMIN_IDS etc.

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "shiftbot:", err)
		os.Exit(1)
	}
}

// setup loads the config and builds the logger shared by all subcommands.
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	log, err := logging.New(level, cfg.Logging.File)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}
