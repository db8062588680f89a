package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/vestibule/internal/cli"
	"github.com/aretw0/vestibule/internal/config"
	"github.com/aretw0/vestibule/internal/logging"
	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vestibule",
	Short: "Vestibule walks a newcomer through choosing a guide",
	Long: `Vestibule is a narrative onboarding flow: a welcome, a shuffled roster of guides,
a confirmation and a reveal. The chosen guide is persisted as the visitor's selection.

It runs in the terminal, as an HTTP JSON API or as an MCP tool server.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "YAML config file (overrides VESTIBULE_* environment variables)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("store", "", "Storage backend: memory, file, redis or sqlite")
	rootCmd.PersistentFlags().String("roster", "", "Guide roster file (YAML or JSON)")
}

// loadConfig resolves configuration from the environment, the config file and flags,
// in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("store") {
		cfg.Store, _ = cmd.Flags().GetString("store")
	}
	if cmd.Flags().Changed("roster") {
		cfg.Roster, _ = cmd.Flags().GetString("roster")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newHost loads configuration and builds the engine. Logs go to stderr.
func newHost(cmd *cobra.Command, jsonLogs bool, hooks ...domain.LifecycleHooks) (*cli.Host, *config.Config, *slog.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := logging.NewWithWriter(os.Stderr, cfg.Level(), jsonLogs)
	host, err := cli.NewHost(cmd.Context(), cfg, logger, hooks...)
	if err != nil {
		return nil, nil, nil, err
	}
	return host, cfg, logger, nil
}
