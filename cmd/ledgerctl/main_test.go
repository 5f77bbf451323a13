package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/networth/src/config"
	"github.com/username/networth/src/model"
	"github.com/username/networth/src/security"
	"github.com/username/networth/src/services"
	"github.com/username/networth/src/store"
)

func runCmd(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	return runCmdWithInput(t, "", args...)
}

func runCmdWithInput(t *testing.T, input string, args ...string) (int, string, string) {
	t.Helper()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	code := run(args, strings.NewReader(input), stdout, stderr)
	return code, stdout.String(), stderr.String()
}

func seededSnapshot(t *testing.T, file string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), file)
	s := store.New(store.WithCodec(store.CodecFor(path)))
	require.NoError(t, services.SeedDefaultUser(s))
	_, err := s.AddUser("Jane", "Roe", 41, "jane.roe@example.com")
	require.NoError(t, err)
	require.NoError(t, s.SaveSnapshot(path))
	return path
}

func TestList(t *testing.T) {
	for _, file := range []string{"users.json", "users.db"} {
		t.Run(file, func(t *testing.T) {
			path := seededSnapshot(t, file)

			code, out, stderr := runCmd(t, "-snapshot", path, "list")
			require.Equal(t, int(subcommands.ExitSuccess), code, stderr)

			lines := strings.Split(strings.TrimSpace(out), "\n")
			require.Len(t, lines, 3)
			assert.Contains(t, lines[0], "NET WORTH")
			assert.Contains(t, lines[1], "john.doe@gmail.com")
			assert.Contains(t, lines[1], "John Doe")
			assert.Contains(t, lines[1], "£39.60")
			assert.Contains(t, lines[2], "jane.roe@example.com")
			assert.True(t, strings.HasSuffix(lines[2], "-"))
		})
	}
}

func TestListMissingSnapshot(t *testing.T) {
	code, _, stderr := runCmd(t, "-snapshot", filepath.Join(t.TempDir(), "users.json"), "list")
	assert.Equal(t, int(subcommands.ExitFailure), code)
	assert.Contains(t, stderr, "Error loading snapshot")
}

func TestShowRaw(t *testing.T) {
	path := seededSnapshot(t, "users.json")

	code, out, stderr := runCmd(t, "-snapshot", path, "show", "-email", "john.doe@gmail.com", "-raw")
	require.Equal(t, int(subcommands.ExitSuccess), code, stderr)

	assert.Contains(t, out, "# John Doe")
	assert.Contains(t, out, "- Age: 29")
	assert.Contains(t, out, "## Portfolio (GBP, ")
	assert.Contains(t, out, "| **Total assets** | £452.00 |")
	assert.Contains(t, out, "| **Total liabilities** | £412.40 |")
	assert.Contains(t, out, "| **Net worth** | £39.60 |")
	assert.Contains(t, out, "- TestUse: £70.00")

	code, out, _ = runCmd(t, "-snapshot", path, "show", "-email", "jane.roe@example.com", "-raw")
	require.Equal(t, int(subcommands.ExitSuccess), code)
	assert.Contains(t, out, "_No portfolio recorded._")
}

func TestShowRendered(t *testing.T) {
	path := seededSnapshot(t, "users.json")

	code, out, stderr := runCmd(t, "-snapshot", path, "show", "-email", "john.doe@gmail.com")
	require.Equal(t, int(subcommands.ExitSuccess), code, stderr)
	assert.Contains(t, out, "John Doe")
	assert.NotContains(t, out, "|:---|")
}

func TestShowErrors(t *testing.T) {
	path := seededSnapshot(t, "users.json")

	code, _, _ := runCmd(t, "-snapshot", path, "show")
	assert.Equal(t, int(subcommands.ExitUsageError), code)

	code, _, stderr := runCmd(t, "-snapshot", path, "show", "-email", "nobody@example.com")
	assert.Equal(t, int(subcommands.ExitFailure), code)
	assert.Contains(t, stderr, "user not found")
}

func TestAddUserCreatesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.db")

	code, out, stderr := runCmd(t, "-snapshot", path, "add-user", "-first", "Ada", "-last", "Lovelace", "-age", "36", "-email", "ada@example.com")
	require.Equal(t, int(subcommands.ExitSuccess), code, stderr)
	assert.Contains(t, out, "Added Ada Lovelace <ada@example.com>")

	s := store.New(store.WithCodec(store.SQLiteCodec{}))
	require.NoError(t, s.LoadSnapshot(path))
	u, err := s.GetUser("ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, 36, u.Age)

	code, _, stderr = runCmd(t, "-snapshot", path, "add-user", "-first", "Ada", "-last", "L", "-age", "36", "-email", "ada@example.com")
	assert.Equal(t, int(subcommands.ExitFailure), code)
	assert.Contains(t, stderr, "email already registered")
}

func TestAddUserMissingFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	code, _, stderr := runCmd(t, "-snapshot", path, "add-user", "-first", "Ada")
	assert.Equal(t, int(subcommands.ExitUsageError), code)
	assert.Contains(t, stderr, "required")

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSetPortfolio(t *testing.T) {
	path := seededSnapshot(t, "users.json")
	portfolioFile := filepath.Join(t.TempDir(), "portfolio.json")
	require.NoError(t, os.WriteFile(portfolioFile, []byte(`{
		"currency": "USD",
		"cash": {"checking": 1000},
		"longTermLiabilities": {"studentLoans": 300}
	}`), 0o644))

	code, out, stderr := runCmd(t, "-snapshot", path, "set-portfolio", "-email", "jane.roe@example.com", "-file", portfolioFile)
	require.Equal(t, int(subcommands.ExitSuccess), code, stderr)
	assert.Contains(t, out, "$700.00")

	s := store.New()
	require.NoError(t, s.LoadSnapshot(path))
	u, err := s.GetUser("jane.roe@example.com")
	require.NoError(t, err)
	require.NotNil(t, u.Portfolio)
	assert.Equal(t, model.USD, u.Portfolio.Currency)
	assert.False(t, u.Portfolio.Timestamp.IsZero())
	assert.True(t, model.NewAmount(700).Equal(u.Portfolio.NetWorth()))
}

func TestSetPortfolioRejectsBadCurrency(t *testing.T) {
	path := seededSnapshot(t, "users.json")
	portfolioFile := filepath.Join(t.TempDir(), "portfolio.json")
	require.NoError(t, os.WriteFile(portfolioFile, []byte(`{"currency":"JPY"}`), 0o644))

	code, _, stderr := runCmd(t, "-snapshot", path, "set-portfolio", "-email", "john.doe@gmail.com", "-file", portfolioFile)
	assert.Equal(t, int(subcommands.ExitFailure), code)
	assert.Contains(t, stderr, "invalid currency")
}

// keyHashFromLine extracts the hash from an ADMIN_KEY_HASH='...' line.
func keyHashFromLine(t *testing.T, out string) string {
	t.Helper()
	line := strings.TrimSpace(out)
	require.True(t, strings.HasPrefix(line, "ADMIN_KEY_HASH='"), line)
	require.True(t, strings.HasSuffix(line, "'"), line)
	return strings.TrimSuffix(strings.TrimPrefix(line, "ADMIN_KEY_HASH='"), "'")
}

func TestHashKey(t *testing.T) {
	code, out, stderr := runCmd(t, "hash-key", "-key", "operator")
	require.Equal(t, int(subcommands.ExitSuccess), code, stderr)
	assert.NoError(t, security.NewAdminAuth(keyHashFromLine(t, out)).Verify("operator"))
}

func TestHashKeyFromStdin(t *testing.T) {
	code, out, stderr := runCmdWithInput(t, "piped-key\n", "hash-key")
	require.Equal(t, int(subcommands.ExitSuccess), code, stderr)
	assert.Contains(t, stderr, "Admin key:")
	assert.NoError(t, security.NewAdminAuth(keyHashFromLine(t, out)).Verify("piped-key"))

	code, _, stderr = runCmdWithInput(t, "", "hash-key")
	assert.Equal(t, int(subcommands.ExitFailure), code)
	assert.Contains(t, stderr, "Error reading key")
}

func TestHashKeyLineLoadsFromDotEnv(t *testing.T) {
	code, out, stderr := runCmd(t, "hash-key", "-key", "operator")
	require.Equal(t, int(subcommands.ExitSuccess), code, stderr)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(out), 0o600))
	t.Chdir(dir)
	t.Setenv("ADMIN_KEY_HASH", "")
	os.Unsetenv("ADMIN_KEY_HASH")

	cfg := config.LoadConfig()

	auth := security.NewAdminAuth(cfg.AdminKeyHash)
	require.True(t, auth.Enabled())
	assert.NoError(t, auth.Verify("operator"))
	assert.ErrorIs(t, auth.Verify("intruder"), security.ErrInvalidKey)
}

func TestDefaultSnapshotFollowsStorageSettings(t *testing.T) {
	path := seededSnapshot(t, "users.db")
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_PATH", filepath.Dir(path))
	t.Setenv("SNAPSHOT_FORMAT", "sqlite")

	code, out, stderr := runCmd(t, "list")
	require.Equal(t, int(subcommands.ExitSuccess), code, stderr)
	assert.Contains(t, out, "john.doe@gmail.com")
}

func TestNoSubcommand(t *testing.T) {
	code, _, _ := runCmd(t)
	assert.Equal(t, int(subcommands.ExitUsageError), code)
}
