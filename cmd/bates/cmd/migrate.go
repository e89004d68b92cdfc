package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/SkouffyBates/BatesTrading-Vision/migrate"
	"github.com/SkouffyBates/BatesTrading-Vision/pkg/id"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [payload.json]",
	Short: "Import legacy data into the journal",
	Long: `Import accounts, trades, macro events and the trading plan into the
SQLite journal. Records already in the journal are skipped, so running the
migration again is safe.

The payload is a JSON object with any of the keys "accounts", "trades",
"macroEvents" and "plan". Without a payload file the legacy folder is read
instead (legacy.dir, or the swingtrade-pro folder under the user config
directory).

Examples:
  bates migrate export.json
  bates migrate --report migration.org`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

var migrateReport string

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().StringVarP(&migrateReport, "report", "r", "", "append an Org-mode report of the run to this file")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	runID := id.Prefixed("run_")
	log := logger.WithField("run_id", runID)
	m := migrate.New(j,
		migrate.WithLogger(log),
		migrate.WithMacroCutoff(cfg.MacroCutoff()),
		migrate.WithTradeCutoff(cfg.TradeCutoff()),
	)

	report := migrate.Report{
		RunID:       runID,
		Database:    cfg.Database.Path,
		MacroCutoff: cfg.Migration.MacroCutoff,
		TradeCutoff: cfg.Migration.TradeCutoff,
		Started:     time.Now(),
	}

	var res migrate.Result
	if len(args) == 1 {
		report.Source = args[0]
		p, err := readPayload(args[0])
		if err != nil {
			return err
		}
		res, err = m.Migrate(cmd.Context(), p)
		if err != nil {
			return err
		}
	} else {
		dir, err := legacyDir()
		if err != nil {
			return err
		}
		report.Source = dir
		res, err = m.MigrateLegacyFolder(cmd.Context(), dir)
		if errors.Is(err, migrate.ErrNoLegacyData) {
			fmt.Fprintf(cmd.OutOrStdout(), "Nothing to migrate: %v\n", err)
			return nil
		}
		if err != nil {
			return err
		}
	}
	report.Finished = time.Now()
	report.Result = res

	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", res)

	if migrateReport != "" {
		if err := appendReport(migrateReport, report); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  Report: %s\n", migrateReport)
	}
	return nil
}

func readPayload(path string) (migrate.Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return migrate.Payload{}, fmt.Errorf("open payload: %w", err)
	}
	defer f.Close()

	p, err := migrate.DecodePayload(f)
	if err != nil {
		return migrate.Payload{}, fmt.Errorf("decode payload %s: %w", path, err)
	}
	return p, nil
}

func legacyDir() (string, error) {
	if cfg.Legacy.Dir != "" {
		return cfg.Legacy.Dir, nil
	}
	return migrate.DefaultLegacyDir()
}

func appendReport(path string, r migrate.Report) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open report: %w", err)
	}
	if err := r.WriteOrg(f); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}
