package commands

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/cashbook/internal/aggregate"
	"github.com/cleared-dev/cashbook/internal/config"
	"github.com/cleared-dev/cashbook/internal/gitops"
	"github.com/cleared-dev/cashbook/internal/ledger"
	"github.com/cleared-dev/cashbook/internal/store"
)

func TestSum(t *testing.T) {
	out, err := runCashbook(t, "sum", "--dir", sampleLedger(t))
	require.NoError(t, err)
	assert.Equal(t, "100\n", out)
}

func TestSum_Filters(t *testing.T) {
	dir := sampleLedger(t)

	out, err := runCashbook(t, "sum", "--dir", dir, "--filter", "direction==incoming")
	require.NoError(t, err)
	assert.Equal(t, "180\n", out)

	out, err = runCashbook(t, "sum", "--dir", dir, "--filter", "direction==incoming", "--filter", "month==2025-02")
	require.NoError(t, err)
	assert.Equal(t, "50\n", out)

	out, err = runCashbook(t, "sum", "--dir", dir, "--filter", "rel_months==0")
	require.NoError(t, err)
	assert.Equal(t, "30\n", out, "relative months count from today")
}

func TestSum_Negative(t *testing.T) {
	dir := t.TempDir()
	writeLedger(t, dir, map[string]string{
		"incoming-2025": "10\t2025-01-01\tseed\n",
		"outgoing-2025": "11\t2025-01-02\toverspent\n",
	})
	_, err := runCashbook(t, "sum", "--dir", dir)
	assert.ErrorIs(t, err, aggregate.ErrNegativeBalance)
}

func TestSum_Errors(t *testing.T) {
	dir := sampleLedger(t)

	_, err := runCashbook(t, "sum", "--dir", filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, store.ErrMissingDirectory)

	_, err = runCashbook(t, "sum", "--dir", dir, "--filter", "colour==red")
	assert.ErrorIs(t, err, ledger.ErrUnknownField)

	_, err = runCashbook(t, "sum", "--dir", dir, "--log-level", "loud")
	assert.Error(t, err)

	_, err = runCashbook(t, "sum", "--dir", dir, "--split", "--nosplit")
	assert.Error(t, err)
}

func TestSum_EnvDir(t *testing.T) {
	t.Setenv("CASHBOOK_DIR", sampleLedger(t))
	out, err := runCashbook(t, "sum")
	require.NoError(t, err)
	assert.Equal(t, "100\n", out)
}

func TestParty(t *testing.T) {
	out, err := runCashbook(t, "party", "--dir", sampleLedger(t))
	require.NoError(t, err)
	assert.Equal(t, "Success\n", out)

	dir := t.TempDir()
	writeLedger(t, dir, map[string]string{"incoming-2025": ""})
	out, err = runCashbook(t, "party", "--dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "Fail\n", out)
}

func splitLedger(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeLedger(t, dir, map[string]string{
		"incoming-2025": "100\t2025-01-01\tseed\n",
		"outgoing-2025": "90\t2025-01-05\t#rent for:2025-01..2025-03\n",
	})
	return dir
}

func TestSplit(t *testing.T) {
	dir := splitLedger(t)

	out, err := runCashbook(t, "csv", "--dir", dir, "--filter", "month==2025-02")
	require.NoError(t, err)
	assert.Contains(t, out, "-30,2025-02-01,#rent\n")

	out, err = runCashbook(t, "csv", "--dir", dir, "--nosplit", "--filter", "month==2025-02")
	require.NoError(t, err)
	assert.Equal(t, "Value,Date,Comment\n\nSum\n0\n", out)

	out, err = runCashbook(t, "sum", "--dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "10\n", out, "splitting keeps the total")
}

func TestSplit_ConfigOff(t *testing.T) {
	dir := splitLedger(t)
	cfg := config.Default()
	cfg.Split = false
	require.NoError(t, config.Save(filepath.Join(dir, config.FileName), cfg))

	out, err := runCashbook(t, "csv", "--dir", dir, "--filter", "month==2025-02")
	require.NoError(t, err)
	assert.NotContains(t, out, "#rent")

	out, err = runCashbook(t, "csv", "--dir", dir, "--split", "--filter", "month==2025-02")
	require.NoError(t, err)
	assert.Contains(t, out, "#rent")
}

func TestTopay(t *testing.T) {
	out, err := runCashbook(t, "topay", "--dir", sampleLedger(t))
	require.NoError(t, err)

	assert.Contains(t, out, "Date: 2025-01\nBill\t\tPrice\tPay Date\n")
	assert.Contains(t, out, "Rent           \t60\t2025-01-05\n")
	assert.Contains(t, out, "Electricity    \t$0\tNot yet\n")
	assert.Contains(t, out, "Date: 2025-03\n")
	assert.Equal(t, 3, strings.Count(out, "Date: "))
	assert.Less(t, strings.Index(out, "Electricity"), strings.Index(out, "Rent"))
}

func TestTopay_ConfiguredPayables(t *testing.T) {
	dir := sampleLedger(t)
	cfg := config.Default()
	cfg.Payables = []string{"water"}
	cfgPath := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, config.Save(cfgPath, cfg))

	out, err := runCashbook(t, "topay", "--dir", dir, "--config", cfgPath)
	require.NoError(t, err)
	assert.NotContains(t, out, "Rent")
	assert.Contains(t, out, "Water          \t20\t2025-02-10\n")
}

func TestTopayHTML(t *testing.T) {
	out, err := runCashbook(t, "topay_html", "--dir", sampleLedger(t))
	require.NoError(t, err)
	assert.Contains(t, out, "<h2>Date: <i>2025-02</i></h2>")
	assert.Contains(t, out, "<tr><td>Water</td><td>20</td><td>2025-02-10</td></tr>")
	assert.Contains(t, out, "<tr><td>Rent</td><td>$0</td><td>Not yet</td></tr>")
}

func TestCSV_Out(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	out, err := runCashbook(t, "csv", "--dir", sampleLedger(t), "--out", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	assert.Equal(t, "Value,Date,Comment", lines[0])
	assert.Equal(t, "100,2025-01-02,#dues:alice", lines[1])
	assert.Equal(t, "-60,2025-01-05,#rent", lines[2])
	assert.Equal(t, []string{"", "Sum", "100"}, lines[len(lines)-3:])
}

func TestGrid(t *testing.T) {
	dir := sampleLedger(t)

	out, err := runCashbook(t, "grid", "--dir", dir)
	require.NoError(t, err)
	for _, want := range []string{"2025-01", "2025-03", "Dues:alice", "Dues:bob", "Rent", "Water", "Subtotal", "Balance"} {
		assert.Contains(t, out, want)
	}
	assert.True(t, strings.HasSuffix(out, "Total: 100\n"))

	out, err = runCashbook(t, "grid", "--dir", dir, "--filter_hack", "0")
	require.NoError(t, err)
	assert.NotContains(t, out, "2025-01")
	assert.NotContains(t, out, "Rent")
	assert.Contains(t, out, "2025-03")
	assert.True(t, strings.HasSuffix(out, "Total: 100\n"))

	out, err = runCashbook(t, "grid", "--dir", dir, "--separate_inout")
	require.NoError(t, err)
	assert.Contains(t, out, "Rent (out)")
	assert.Contains(t, out, "Dues:alice (in)")
}

func TestJSONPayments(t *testing.T) {
	out, err := runCashbook(t, "json_payments", "--dir", sampleLedger(t))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"dues:alice": "2025-02-02",
		"dues:bob": "2025-03-01",
		"rent": "2025-01-05",
		"water": "2025-02-10"
	}`, out)
}

func TestStats(t *testing.T) {
	dir := sampleLedger(t)
	cfg := config.Default()
	cfg.Dues.Rate = "20"
	require.NoError(t, config.Save(filepath.Join(dir, config.FileName), cfg))

	out, err := runCashbook(t, "stats", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "MonthTD")
	assert.Contains(t, out, "Months: 2\n")
	// 80 spent over 2 months at 20 a head.
	assert.Contains(t, out, "Members needed at 20 per month: 2\n")
	assert.Contains(t, out, "Dues needed per month with 1 members: 40\n")
}

func TestStatsTSV(t *testing.T) {
	out, err := runCashbook(t, "statstsv", "--dir", sampleLedger(t))
	require.NoError(t, err)

	var rows []string
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		if !strings.HasPrefix(line, "#") {
			rows = append(rows, line)
		}
	}
	require.Len(t, rows, 6)
	assert.Equal(t, "2025-01\t100\t-60\t100\t0\t1\t100\t40\t40", rows[1])
	assert.Equal(t, "2025-02\t50\t-20\t50\t0\t1\t50\t30\t70", rows[2])
	assert.True(t, strings.HasPrefix(rows[4], "MonthTD\t30\t0\t30\t0\t1\t30\t30\t"))
}

func TestMakeBalance(t *testing.T) {
	dir := sampleLedger(t)

	out, err := runCashbook(t, "make_balance", "--dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "100\t2025-03-15\tbalance\n", out)

	outDir := t.TempDir()
	out, err = runCashbook(t, "make_balance", "--dir", dir, "--out", outDir)
	require.NoError(t, err)
	path := filepath.Join(outDir, "incoming-balance-2025-03-15")
	assert.Equal(t, path+"\n", out)

	out, err = runCashbook(t, "sum", "--dir", outDir)
	require.NoError(t, err)
	assert.Equal(t, "100\n", out, "the balance file replaces the history")
}

func TestMakeBalance_Commit(t *testing.T) {
	if !gitops.Available() {
		t.Skip("git not available, skipping")
	}
	dir := sampleLedger(t)

	outDir := t.TempDir()
	_, err := runCashbook(t, "init", outDir, "--git")
	require.NoError(t, err)

	_, err = runCashbook(t, "make_balance", "--dir", dir, "--out", outDir, "--commit")
	require.NoError(t, err)

	status := exec.Command("git", "status", "--porcelain")
	status.Dir = outDir
	st, err := status.Output()
	require.NoError(t, err)
	assert.Empty(t, string(st), "balance file is committed")

	_, err = runCashbook(t, "make_balance", "--dir", dir, "--commit")
	assert.Error(t, err)

	_, err = runCashbook(t, "make_balance", "--dir", dir, "--out", t.TempDir(), "--commit")
	assert.ErrorIs(t, err, gitops.ErrNotRepo)
}

func TestTopay_TwoTagsInOneRecord(t *testing.T) {
	dir := t.TempDir()
	writeLedger(t, dir, map[string]string{
		"incoming-2025": "100\t2025-01-01\tseed\n",
		"outgoing-2025": "60\t2025-01-05\t#rent #water\n",
	})
	_, err := runCashbook(t, "topay", "--dir", dir)
	assert.ErrorIs(t, err, ledger.ErrAmbiguousTag)
	_, err = runCashbook(t, "topay_html", "--dir", dir)
	assert.ErrorIs(t, err, ledger.ErrAmbiguousTag)
}

func TestLogging_LedgerFields(t *testing.T) {
	dir := sampleLedger(t)
	out, logs, err := runCashbookLogged(t, "sum", "--dir", dir, "--log-level", "debug", "--log-format", "json",
		"--filter", "direction==incoming")
	require.NoError(t, err)
	assert.Equal(t, "180\n", out, "logs stay off stdout")

	assert.Contains(t, logs, `"message":"loaded ledger"`)
	assert.Contains(t, logs, `"command":"sum"`)
	assert.Contains(t, logs, `"dir":"`+dir+`"`)
	assert.Contains(t, logs, `"records":5`)
	assert.Contains(t, logs, `"filters":["direction==incoming"]`)
}

func TestGrid_WindowFromConfig(t *testing.T) {
	dir := sampleLedger(t)
	cfg := config.Default()
	cfg.Grid.WindowDays = 20
	require.NoError(t, config.Save(filepath.Join(dir, config.FileName), cfg))

	out, err := runCashbook(t, "grid", "--dir", dir)
	require.NoError(t, err)
	assert.NotContains(t, out, "2025-01")
	assert.Contains(t, out, "2025-02")
	assert.Contains(t, out, "2025-03")

	out, err = runCashbook(t, "grid", "--dir", dir, "--filter_hack", "640")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-01", "the flag wins over the config")
}

func TestGrid_FlagHelp(t *testing.T) {
	grid, _, err := NewRootCommand().Find([]string{"grid"})
	require.NoError(t, err)
	flag := grid.Flags().Lookup("filter_hack")
	require.NotNil(t, flag)
	assert.Equal(t, "0", flag.DefValue)
	assert.Contains(t, flag.Usage, "grid.window_days")
}
