// Package root contains the root command for the application
package root

import (
	"context"
	"errors"
	"fmt"

	"fjacquet/expense-ledger/internal/config"
	"fjacquet/expense-ledger/internal/container"
	"fjacquet/expense-ledger/internal/logging"

	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands. It is replaced by the
	// container's logger once configuration is loaded.
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppContainer holds the wired dependencies for the running command.
	// Tests may set it before executing a command.
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "expense-ledger",
		Short: "A personal ledger for dated incomes and expenses.",
		Long: `expense-ledger records dated income and expense transactions and
produces a financial report: the available balance, the income of every month,
the expenses of every month with their details and the overall totals, plus a
bar chart of monthly expenses.`,
		SilenceUsage:       true,
		PersistentPreRunE:  persistentPreRun,
		PersistentPostRunE: persistentPostRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// ConfigFile is an explicit configuration file path.
	ConfigFile string
	// DBPath overrides the SQLite database file and selects the sqlite driver.
	DBPath string
	// LogLevel overrides the configured log level.
	LogLevel string
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVar(&ConfigFile, "config", "", "Config file (default: config.yaml in $HOME/.expense-ledger, .expense-ledger or .)")
	Cmd.PersistentFlags().StringVar(&DBPath, "db", "", "SQLite database file (overrides store settings)")
	Cmd.PersistentFlags().StringVar(&LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
}

func persistentPreRun(cmd *cobra.Command, args []string) error {
	if AppContainer != nil {
		return nil
	}

	cfg, err := config.InitializeConfigFromFile(ConfigFile)
	if err != nil {
		return err
	}
	if DBPath != "" {
		cfg.Store.Driver = "sqlite"
		cfg.Store.SQLitePath = DBPath
	}
	if LogLevel != "" {
		cfg.Log.Level = LogLevel
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	c, err := container.NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	AppContainer = c
	Log = c.GetLogger()
	Log.Debug("Configuration loaded",
		logging.F(logging.FieldStoreDriver, cfg.Store.Driver))
	return nil
}

func persistentPostRun(cmd *cobra.Command, args []string) error {
	if AppContainer == nil {
		return nil
	}
	err := AppContainer.Close()
	AppContainer = nil
	if err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}

// GetContainer returns the initialized container.
func GetContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, errors.New("container not initialized")
	}
	return AppContainer, nil
}
