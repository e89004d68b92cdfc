package cmd

import (
	"errors"
	"fmt"

	"github.com/SkouffyBates/BatesTrading-Vision/migrate"
	"github.com/spf13/cobra"
)

var legacyCmd = &cobra.Command{
	Use:   "legacy",
	Short: "Show what the legacy folder holds without migrating it",
	Args:  cobra.NoArgs,
	RunE:  runLegacy,
}

func init() {
	rootCmd.AddCommand(legacyCmd)
}

func runLegacy(cmd *cobra.Command, args []string) error {
	dir, err := legacyDir()
	if err != nil {
		return err
	}

	p, err := migrate.LoadLegacyFolder(dir, logger)
	if errors.Is(err, migrate.ErrNoLegacyData) {
		fmt.Fprintf(cmd.OutOrStdout(), "No legacy data in %s\n", dir)
		return nil
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Legacy folder: %s\n", dir)
	fmt.Fprintf(out, "  Accounts:     %d\n", len(p.Accounts))
	fmt.Fprintf(out, "  Trades:       %d\n", len(p.Trades))
	fmt.Fprintf(out, "  Macro events: %d\n", len(p.MacroEvents))
	fmt.Fprintf(out, "  Plan:         %t\n", p.Plan != nil)
	return nil
}
