package database

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/envfix/internal/model"
)

// TestTroubleshoot_GenericPostgres verifies the checklist shape for a
// plain network-level failure.
func TestTroubleshoot_GenericPostgres(t *testing.T) {
	lines := Troubleshoot(model.SchemePostgres, errors.New("dial tcp: connection refused"))

	require.NotEmpty(t, lines)
	assert.Equal(t, "Troubleshooting steps:", lines[0])
	assert.Contains(t, lines[1], "DATABASE_URL is correct")
	assert.Len(t, lines, 6)
}

// TestTroubleshoot_SQLite uses the file-database checklist.
func TestTroubleshoot_SQLite(t *testing.T) {
	lines := Troubleshoot(model.SchemeSQLite, errors.New("unable to open database file"))

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "directory exists and is writable")
	assert.Contains(t, joined, "lock on the database file")
	assert.NotContains(t, joined, "internet connection")
}

// TestTroubleshoot_PgError surfaces the SQLSTATE code and the targeted
// hint for authentication failures, even through error wrapping.
func TestTroubleshoot_PgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "28P01", Message: "password authentication failed for user \"alice\""}
	wrapped := fmt.Errorf("connect: %w", pgErr)

	lines := Troubleshoot(model.SchemePostgres, wrapped)

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "SQLSTATE 28P01")
	assert.Contains(t, joined, "username or password")
	assert.Contains(t, joined, "Troubleshooting steps:")
}

// TestPgHint covers the code-to-advice mapping.
func TestPgHint(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"28P01", "username or password"},
		{"28000", "username or password"},
		{"3D000", "does not exist"},
		{"57P03", "starting up"},
		{"53300", "too many connections"},
		{"42P01", ""}, // no hint for arbitrary codes
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			hint := pgHint(tt.code)
			if tt.want == "" {
				assert.Empty(t, hint)
			} else {
				assert.Contains(t, hint, tt.want)
			}
		})
	}
}
