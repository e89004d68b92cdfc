package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/SkouffyBates/BatesTrading-Vision/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query trade journal data",
	Long: `Query and display trade journal records from the SQLite database.

Subcommands:
  trade   - Get details of a specific trade by ID
  trades  - List every trade, newest first

Examples:
  bates journal trade 42
  bates journal trades
  bates journal trades --csv trades.csv`,
}

var journalTradeCmd = &cobra.Command{
	Use:   "trade <trade-id>",
	Short: "Get details of a specific trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTrade,
}

var journalTradesCmd = &cobra.Command{
	Use:   "trades",
	Short: "List trades, newest first",
	Args:  cobra.NoArgs,
	RunE:  runJournalTrades,
}

var journalCSV string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalTradeCmd)
	journalCmd.AddCommand(journalTradesCmd)

	journalTradesCmd.Flags().StringVar(&journalCSV, "csv", "", "write the trades as CSV to this file instead")
}

func runJournalTrade(cmd *cobra.Command, args []string) error {
	tradeID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("trade id %q: %w", args[0], err)
	}

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	rec, err := j.GetTrade(cmd.Context(), tradeID)
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(rec))
	return nil
}

func runJournalTrades(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ListTrades(cmd.Context())
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	if journalCSV == "" {
		fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradesOrg(recs))
		return nil
	}

	f, err := os.Create(journalCSV)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	if err := journal.WriteTradesCSV(f, recs); err != nil {
		f.Close()
		return fmt.Errorf("write csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %d trades written to %s\n", len(recs), journalCSV)
	return nil
}
