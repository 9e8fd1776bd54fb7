package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/envfix/internal/dsn"
	"github.com/mmr-tortoise/envfix/internal/model"
)

// openTestEngine opens a throwaway SQLite database in a temp directory.
// SQLite exercises the whole engine surface without a server.
func openTestEngine(t *testing.T) *Engine {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	info, err := dsn.Parse("sqlite:///" + path)
	require.NoError(t, err)

	e, err := Open(context.Background(), info)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

// TestOpen_SQLite verifies open, ping, and scheme reporting.
func TestOpen_SQLite(t *testing.T) {
	e := openTestEngine(t)
	assert.Equal(t, model.SchemeSQLite, e.Scheme())
	assert.NoError(t, e.Ping(context.Background()))
}

// TestEngine_Migrate creates the application schema and verifies every
// expected table exists with at least one column.
func TestEngine_Migrate(t *testing.T) {
	e := openTestEngine(t)
	require.NoError(t, e.Migrate())

	tables, err := e.Tables()
	require.NoError(t, err)

	byName := make(map[string]model.TableInfo, len(tables))
	for _, tab := range tables {
		byName[tab.Name] = tab
	}

	for _, want := range model.SchemaTableNames() {
		tab, ok := byName[want]
		require.True(t, ok, "table %s not created", want)
		assert.Greater(t, tab.ColumnCount, 0, "table %s has no columns", want)
	}
}

// TestEngine_Migrate_Idempotent verifies a second migration run succeeds
// against an already-initialized database.
func TestEngine_Migrate_Idempotent(t *testing.T) {
	e := openTestEngine(t)
	require.NoError(t, e.Migrate())
	require.NoError(t, e.Migrate())
}

// TestEngine_RunChecks_EmptyDatabase runs the full battery against a
// fresh database: every probe passes and the inventory reports emptiness.
func TestEngine_RunChecks_EmptyDatabase(t *testing.T) {
	e := openTestEngine(t)

	report := e.RunChecks(context.Background())
	require.NotNil(t, report)

	assert.True(t, report.Passed(), "failed steps: %v", report.FailedSteps())
	require.Len(t, report.Steps, 7)

	names := make([]string, 0, len(report.Steps))
	for _, s := range report.Steps {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		"Database Version",
		"Current Database",
		"Server Time",
		"Basic Query",
		"Existing Tables",
		"Connected User",
		"Write Permissions",
	}, names)

	assert.Contains(t, report.Steps[0].Detail, "SQLite")
	assert.Equal(t, "42", report.Steps[3].Detail)
	assert.Contains(t, report.Steps[4].Detail, "no tables found")
}

// TestEngine_RunChecks_AfterMigration verifies the inventory probe sees
// the migrated tables.
func TestEngine_RunChecks_AfterMigration(t *testing.T) {
	e := openTestEngine(t)
	require.NoError(t, e.Migrate())

	report := e.RunChecks(context.Background())
	assert.True(t, report.Passed(), "failed steps: %v", report.FailedSteps())
	assert.Contains(t, report.Steps[4].Detail, "users")
	assert.Contains(t, report.Steps[4].Detail, "columns")
}

// TestOpen_SQLite_MissingDirectory fails cleanly when the database file
// cannot be created.
func TestOpen_SQLite_MissingDirectory(t *testing.T) {
	info, err := dsn.Parse("sqlite:///" + filepath.Join(t.TempDir(), "nope", "deep", "test.db"))
	require.NoError(t, err)

	_, err = Open(context.Background(), info)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitDatabaseUnreachable, cliErr.Code)
}
