// Package cli — initdb.go implements the "envfix init" command.
//
// init verifies the connection and then creates the backend's
// application tables via auto-migration. It is safe to re-run: existing
// tables are updated in place and data is preserved.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/envfix/internal/database"
	"github.com/mmr-tortoise/envfix/internal/model"
)

// NewInitCommand creates the "init" cobra command.
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the application's database tables",
		Long: `Connect to the database named by DATABASE_URL and create the backend's
application tables. Running init against an already-initialized database
is safe: tables are updated in place.

Examples:
  envfix init
  envfix init --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.Context(), cmd.OutOrStdout())
		},
	}

	return cmd
}

// runInit is the orchestration for the init command: connect, migrate,
// report what exists afterwards.
func runInit(ctx context.Context, out io.Writer) error {
	info, err := loadConnectionInfo()
	if err != nil {
		return err
	}

	if !IsJSONOutput() {
		fmt.Fprintf(out, "Connection string (masked): %s\n", info.Masked())
		fmt.Fprintln(out, "Step 1: Testing database connection...")
	}

	engine, err := database.Open(ctx, info)
	if err != nil {
		if !IsJSONOutput() {
			printTroubleshooting(out, info.Scheme, err)
		}
		return err
	}
	defer func() { _ = engine.Close() }()

	if !IsJSONOutput() {
		fmt.Fprintln(out, "Connection established.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Step 2: Creating database tables...")
	}

	if err := engine.Migrate(); err != nil {
		return err
	}

	tables, err := engine.Tables()
	if err != nil {
		return model.WrapCLIError(model.ExitMigrationFailed,
			"migration finished but table inventory failed", err)
	}

	if IsJSONOutput() {
		result := struct {
			Scheme model.Scheme      `json:"scheme"`
			Tables []model.TableInfo `json:"tables"`
		}{Scheme: info.Scheme, Tables: tables}
		data, merr := json.MarshalIndent(result, "", "  ")
		if merr != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to encode result", merr)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintln(out, "Database initialized successfully.")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "The following tables are present:")
	for _, t := range tables {
		fmt.Fprintf(out, "  - %s (%d columns)\n", t.Name, t.ColumnCount)
	}
	return nil
}
