package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/envfix/internal/model"
)

// TestFormatCheckStep covers pass and fail rendering.
func TestFormatCheckStep(t *testing.T) {
	pass := &model.CheckStep{Name: "Basic Query", Detail: "42"}
	assert.Equal(t, "  [4/7] Basic Query: 42", formatCheckStep(4, 7, pass))

	fail := &model.CheckStep{Name: "Write Permissions", Err: errors.New("read-only database")}
	assert.Equal(t, "  [7/7] Write Permissions: FAILED (read-only database)", formatCheckStep(7, 7, fail))
}

// TestRunCheck_MissingDatabaseURL errors with the env exit code when
// neither the environment nor the env file provides DATABASE_URL.
func TestRunCheck_MissingDatabaseURL(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATABASE_URL", "")

	err := runCheck(context.Background(), &bytes.Buffer{})
	require.Error(t, err)

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitEnvError, cliErr.Code)
}

// TestRunCheck_MalformedURL errors with the env exit code and points the
// user at the edit command.
func TestRunCheck_MalformedURL(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATABASE_URL", "mysql://root@localhost/db")

	err := runCheck(context.Background(), &bytes.Buffer{})
	require.Error(t, err)

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitEnvError, cliErr.Code)
	assert.Contains(t, cliErr.Message, "envfix edit")
}

// TestRunCheck_SQLiteEndToEnd runs the whole flow against a throwaway
// SQLite database configured through a real .env file.
func TestRunCheck_SQLiteEndToEnd(t *testing.T) {
	chdir(t, t.TempDir())
	// t.Setenv registers restoration; unset so the .env file provides
	// the value (a set-but-empty variable would shadow the file).
	t.Setenv("DATABASE_URL", "placeholder")
	require.NoError(t, os.Unsetenv("DATABASE_URL"))
	require.NoError(t, os.WriteFile(".env", []byte("DATABASE_URL=sqlite:///./check.db\n"), 0o644))

	buf := &bytes.Buffer{}
	require.NoError(t, runCheck(context.Background(), buf))

	out := buf.String()
	assert.Contains(t, out, "Connection string (masked): sqlite:///./check.db")
	assert.Contains(t, out, "[1/7] Database Version: SQLite")
	assert.Contains(t, out, "[4/7] Basic Query: 42")
	assert.Contains(t, out, "All checks passed.")
}

// TestRunInit_SQLiteEndToEnd initializes a throwaway SQLite database and
// verifies the application tables are reported.
func TestRunInit_SQLiteEndToEnd(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATABASE_URL", "sqlite:///./init.db")

	buf := &bytes.Buffer{}
	require.NoError(t, runInit(context.Background(), buf))

	out := buf.String()
	assert.Contains(t, out, "Database initialized successfully.")
	for _, table := range model.SchemaTableNames() {
		assert.Contains(t, out, "- "+table+" (")
	}
}
