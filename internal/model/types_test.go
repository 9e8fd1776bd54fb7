package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScheme_String verifies that Scheme values produce the expected
// string representations for CLI output and JSON serialization.
func TestScheme_String(t *testing.T) {
	assert.Equal(t, "postgres", SchemePostgres.String())
	assert.Equal(t, "sqlite", SchemeSQLite.String())
}

// TestScheme_IsValid checks that only defined scheme values pass validation.
func TestScheme_IsValid(t *testing.T) {
	assert.True(t, SchemePostgres.IsValid())
	assert.True(t, SchemeSQLite.IsValid())
	assert.False(t, Scheme("mysql").IsValid())
	assert.False(t, Scheme("").IsValid())
}

// TestParseScheme verifies string-to-scheme conversion, including the
// spelling variants and error cases.
func TestParseScheme(t *testing.T) {
	tests := []struct {
		input    string
		expected Scheme
		hasError bool
	}{
		{"postgres", SchemePostgres, false},
		{"postgresql", SchemePostgres, false},
		{"POSTGRESQL", SchemePostgres, false}, // case insensitive
		{"sqlite", SchemeSQLite, false},
		{"sqlite3", SchemeSQLite, false},
		{"mysql", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseScheme(tt.input)
			if tt.hasError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

// TestCheckReport_Passed covers empty, all-pass, and partial-failure
// reports.
func TestCheckReport_Passed(t *testing.T) {
	empty := &CheckReport{}
	assert.False(t, empty.Passed(), "empty report means the check never ran")

	passing := &CheckReport{}
	passing.AddStep("Database Version", "PostgreSQL 16.3", nil)
	passing.AddStep("Basic Query", "42", nil)
	assert.True(t, passing.Passed())
	assert.Empty(t, passing.FailedSteps())

	failing := &CheckReport{}
	failing.AddStep("Database Version", "PostgreSQL 16.3", nil)
	failing.AddStep("Write Permissions", "", errors.New("read-only"))
	assert.False(t, failing.Passed())
	assert.Equal(t, []string{"Write Permissions"}, failing.FailedSteps())
}

// TestCheckReport_AddStep mirrors the error into ErrString for JSON.
func TestCheckReport_AddStep(t *testing.T) {
	r := &CheckReport{}
	r.AddStep("Server Time", "", errors.New("timeout"))

	require.Len(t, r.Steps, 1)
	assert.True(t, r.Steps[0].Failed())
	assert.Equal(t, "timeout", r.Steps[0].ErrString)
}

// TestCLIError verifies message formatting and unwrapping.
func TestCLIError(t *testing.T) {
	plain := NewCLIError(ExitEnvError, "DATABASE_URL not found")
	assert.Equal(t, "DATABASE_URL not found", plain.Error())
	assert.Nil(t, plain.Unwrap())

	inner := errors.New("no such file")
	wrapped := WrapCLIError(ExitEditorFailed, "failed to launch editor vi", inner)
	assert.Equal(t, "failed to launch editor vi: no such file", wrapped.Error())
	assert.True(t, errors.Is(wrapped, inner))
	assert.Equal(t, ExitEditorFailed, wrapped.Code)
}

// TestSchemaModels_MatchesTableNames keeps the model list and the table
// name list in lockstep.
func TestSchemaModels_MatchesTableNames(t *testing.T) {
	assert.Equal(t, len(SchemaModels()), len(SchemaTableNames()))
}

// TestTableNameOverrides pins the table names that differ from gorm's
// default pluralization.
func TestTableNameOverrides(t *testing.T) {
	assert.Equal(t, "user_progress", UserProgress{}.TableName())
	assert.Equal(t, "chat_history", ChatHistory{}.TableName())
	assert.Equal(t, "analytics", Analytics{}.TableName())
	assert.Equal(t, "translation_cache", TranslationCache{}.TableName())
}
