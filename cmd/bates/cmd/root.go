package cmd

import (
	"fmt"

	"github.com/SkouffyBates/BatesTrading-Vision/config"
	"github.com/SkouffyBates/BatesTrading-Vision/journal"
	"github.com/SkouffyBates/BatesTrading-Vision/pkg/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bates",
	Short: "Trading journal storage and legacy data migration",
	Long: `Bates manages the SQLite trading journal of BatesTrading Vision.

It provides tools for:
  - Migrating accounts, trades, macro events and the trading plan from
    the JSON files of the previous version of the app
  - Inspecting imported trades as Org-mode or CSV
  - Pruning old macro events and trades

Settings come from the config file (--config), then BATES_* environment
variables (a .env file is loaded when present), then command line flags.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	cfgFile  string
	dbPath   string
	logLevel string

	cfg    *config.Config
	logger *logrus.Logger
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to the SQLite journal (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides config)")
}

// setup resolves the configuration and logger for every subcommand.
func setup(cmd *cobra.Command, args []string) error {
	c := config.Default()
	if cfgFile != "" {
		loaded, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		c = loaded
	}
	if err := c.ApplyEnv(); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	if dbPath != "" {
		c.Database.Path = dbPath
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	l, err := logging.New(c.Log.Level, c.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	cfg, logger = c, l
	return nil
}

func openJournal() (*journal.SQLite, error) {
	j, err := journal.NewSQLite(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	logger.WithField("path", cfg.Database.Path).Debug("journal opened")
	return j, nil
}
