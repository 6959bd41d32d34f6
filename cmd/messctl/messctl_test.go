package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs messctl against dbPath and returns its standard output.
func execute(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--db", dbPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestMigrate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "messbook.db")

	out, err := execute(t, dbPath, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "up to date")

	// Re-running is a no-op.
	_, err = execute(t, dbPath, "migrate")
	require.NoError(t, err)
}

func TestMemberCommands(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "messbook.db")

	out, err := execute(t, dbPath, "member", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No members yet")

	out, err = execute(t, dbPath, "member", "add", "--name", "asha", "--passcode", "correct-horse")
	require.NoError(t, err)
	assert.Contains(t, out, `Added member "asha" (id 1)`)

	_, err = execute(t, dbPath, "member", "add", "--name", "ravi", "--passcode", "correct-horse")
	require.NoError(t, err)

	_, err = execute(t, dbPath, "member", "add", "--name", "asha", "--passcode", "correct-horse")
	require.Error(t, err, "duplicate names are rejected")

	_, err = execute(t, dbPath, "member", "add", "--name", "kiran", "--passcode", "short")
	require.Error(t, err, "weak passcodes are rejected")

	out, err = execute(t, dbPath, "member", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "asha")
	assert.Contains(t, lines[2], "ravi")
}

func TestAdminAdd(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "messbook.db")

	out, err := execute(t, dbPath, "admin", "add", "--name", "root", "--passcode", "correct-horse")
	require.NoError(t, err)
	assert.Contains(t, out, `Added admin "root"`)

	_, err = execute(t, dbPath, "admin", "add", "--name", "root")
	require.Error(t, err, "passcode flag is required")
}

func TestSummaryAndPeriods(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "messbook.db")

	out, err := execute(t, dbPath, "periods")
	require.NoError(t, err)
	assert.Contains(t, out, "No data recorded yet")

	_, err = execute(t, dbPath, "member", "add", "--name", "asha", "--passcode", "correct-horse")
	require.NoError(t, err)

	out, err = execute(t, dbPath, "summary", "--period", "2024-03")
	require.NoError(t, err)
	assert.Contains(t, out, "Period 2024-03: total 0.00 over 0 meals, 0.00 per meal")
	assert.Contains(t, out, "asha")
	assert.NotContains(t, out, "Suggested transfers")

	_, err = execute(t, dbPath, "summary", "--period", "March")
	require.Error(t, err)
}
