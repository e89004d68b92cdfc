package cmd

import (
	"fmt"

	"github.com/SkouffyBates/BatesTrading-Vision/migrate"
	"github.com/spf13/cobra"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete macro events (and optionally trades) older than a date",
	Long: `Delete journal rows dated strictly before --before.

Examples:
  bates prune --before 2024-01-01
  bates prune --before 2023-01-01 --trades`,
	Args: cobra.NoArgs,
	RunE: runPrune,
}

var (
	pruneBefore string
	pruneTrades bool
)

func init() {
	rootCmd.AddCommand(pruneCmd)

	pruneCmd.Flags().StringVar(&pruneBefore, "before", "", "cutoff date YYYY-MM-DD (required)")
	pruneCmd.Flags().BoolVar(&pruneTrades, "trades", false, "also delete trades opened before the cutoff")
	pruneCmd.MarkFlagRequired("before")
}

func runPrune(cmd *cobra.Command, args []string) error {
	cut, err := migrate.ParseCutoff(pruneBefore)
	if err != nil || !cut.Enabled() {
		return fmt.Errorf("--before: want YYYY-MM-DD, got %q", pruneBefore)
	}

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	n, err := j.PruneMacroEventsBefore(cmd.Context(), string(cut))
	if err != nil {
		return fmt.Errorf("prune macro events: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %d macro events deleted\n", n)

	if pruneTrades {
		n, err := j.PruneTradesBefore(cmd.Context(), string(cut))
		if err != nil {
			return fmt.Errorf("prune trades: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %d trades deleted\n", n)
	}
	return nil
}
