package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns what it printed.
// Flag variables are package globals, so they are reset first.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfgFile, dbPath, logLevel = "", "", ""
	migrateReport, journalCSV, pruneBefore = "", "", ""
	pruneTrades = false

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

const cliPayload = `{
	"accounts": [{"id": "acc_1", "name": "Main", "balance": 10000}],
	"trades": [
		{"id": 1, "accountId": "acc_1", "openDate": "2023-06-01", "pair": "EURUSD", "direction": "Long", "pnl": 50},
		{"id": 2, "accountId": "acc_1", "openDate": "2025-02-01", "pair": "GBPUSD", "direction": "Short", "pnl": -20, "risk": 40}
	],
	"macroEvents": [
		{"date": "2024-03-08", "event": "Non-Farm Payrolls", "category": "Employment", "impact": "High"},
		{"date": "2025-03-07", "event": "Non-Farm Payrolls", "category": "Employment", "impact": "High"}
	]
}`

func TestCLIMigrateAndInspect(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "journal.db")
	payload := filepath.Join(dir, "export.json")
	report := filepath.Join(dir, "migration.org")
	require.NoError(t, os.WriteFile(payload, []byte(cliPayload), 0644))

	out, err := execute(t, "--db", db, "migrate", payload, "--report", report)
	require.NoError(t, err)
	assert.Contains(t, out, "1 accounts, 2 trades, 2 macro events imported")

	org, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(org), "* MIGRATION: "+payload))

	out, err = execute(t, "--db", db, "migrate", payload)
	require.NoError(t, err)
	assert.Contains(t, out, "0 accounts, 0 trades, 0 macro events imported (5 skipped)")

	out, err = execute(t, "--db", db, "journal", "trade", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "** Trade: GBPUSD Short")

	csvPath := filepath.Join(dir, "trades.csv")
	out, err = execute(t, "--db", db, "journal", "trades", "--csv", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "2 trades written")
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 3)

	out, err = execute(t, "--db", db, "prune", "--before", "2025-01-01", "--trades")
	require.NoError(t, err)
	assert.Contains(t, out, "1 macro events deleted")
	assert.Contains(t, out, "1 trades deleted")

	_, err = execute(t, "--db", db, "journal", "trade", "1")
	assert.Error(t, err)
}

func TestCLIMigrateLegacyFolder(t *testing.T) {
	legacy := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(legacy, "accounts.json"), []byte(`[{"id": "acc_1"}]`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(legacy, "plan.json"), []byte(`{"goals": "Consistency"}`), 0644))
	t.Setenv("BATES_LEGACY_DIR", legacy)

	db := filepath.Join(t.TempDir(), "journal.db")

	out, err := execute(t, "--db", db, "legacy")
	require.NoError(t, err)
	assert.Contains(t, out, "Accounts:     1")
	assert.Contains(t, out, "Plan:         true")

	out, err = execute(t, "--db", db, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "1 accounts, 0 trades, 0 macro events imported, trading plan replaced")
}

func TestCLINoLegacyData(t *testing.T) {
	t.Setenv("BATES_LEGACY_DIR", filepath.Join(t.TempDir(), "missing"))
	db := filepath.Join(t.TempDir(), "journal.db")

	out, err := execute(t, "--db", db, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to migrate")
}

func TestCLIRejectsBadInput(t *testing.T) {
	db := filepath.Join(t.TempDir(), "journal.db")

	_, err := execute(t, "--db", db, "prune", "--before", "last year")
	assert.Error(t, err)

	_, err = execute(t, "--db", db, "journal", "trade", "abc")
	assert.Error(t, err)

	_, err = execute(t, "--db", db, "--log-level", "chatty", "version")
	assert.ErrorContains(t, err, "invalid config")
}

func TestCLIConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bates.yaml")

	out, err := execute(t, "config", "init", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	out, err = execute(t, "config", "validate", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Macro cutoff: 2024-01-01")
	assert.Contains(t, out, "Trade cutoff: (none)")
}

func TestCLIVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "bates version "+version)
}
