// Package cli — check.go implements the "envfix check" command.
//
// check loads the env file, parses DATABASE_URL, connects to the
// configured database, and runs the connection check battery. The
// password is masked everywhere; on failure the command prints
// targeted troubleshooting advice and exits nonzero.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/envfix/internal/config"
	"github.com/mmr-tortoise/envfix/internal/database"
	"github.com/mmr-tortoise/envfix/internal/dsn"
	"github.com/mmr-tortoise/envfix/internal/envfile"
	"github.com/mmr-tortoise/envfix/internal/model"
)

// NewCheckCommand creates the "check" cobra command.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Test the database connection configured in .env",
		Long: `Load the env file, connect to the database named by DATABASE_URL, and run
a battery of probes: server version, current database, server time, a
basic query, table inventory, connected user, and write permissions.

The connection string is always displayed with the password masked.

Examples:
  envfix check
  envfix check --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), cmd.OutOrStdout())
		},
	}

	return cmd
}

// runCheck is the orchestration for the check command.
func runCheck(ctx context.Context, out io.Writer) error {
	info, err := loadConnectionInfo()
	if err != nil {
		return err
	}

	if !IsJSONOutput() {
		fmt.Fprintf(out, "Connection string (masked): %s\n", info.Masked())
		fmt.Fprintf(out, "Connecting to %s database...\n\n", info.Scheme)
	}

	engine, err := database.Open(ctx, info)
	if err != nil {
		if !IsJSONOutput() {
			printTroubleshooting(out, info.Scheme, err)
		}
		return err
	}
	defer func() { _ = engine.Close() }()

	report := engine.RunChecks(ctx)

	if IsJSONOutput() {
		data, merr := json.MarshalIndent(report, "", "  ")
		if merr != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to encode report", merr)
		}
		fmt.Fprintln(out, string(data))
	} else {
		printCheckReport(out, report)
	}

	if !report.Passed() {
		for i := range report.Steps {
			if report.Steps[i].Failed() {
				if !IsJSONOutput() {
					printTroubleshooting(out, info.Scheme, report.Steps[i].Err)
				}
				return model.WrapCLIError(model.ExitDatabaseUnreachable,
					fmt.Sprintf("connection check failed at step %q", report.Steps[i].Name),
					report.Steps[i].Err)
			}
		}
	}
	return nil
}

// loadConnectionInfo loads the env file per settings and parses
// DATABASE_URL. Shared by check and init.
func loadConnectionInfo() (*dsn.Info, error) {
	settings, err := config.Load(".")
	if err != nil {
		return nil, err
	}

	// A missing env file is fine as long as DATABASE_URL is already in
	// the environment; the error below covers both absences.
	if envfile.Exists(settings.EnvFile) {
		if err := envfile.Load(settings.EnvFile); err != nil {
			return nil, err
		}
	}

	raw, err := envfile.DatabaseURL()
	if err != nil {
		return nil, err
	}

	info, err := dsn.Parse(raw)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitEnvError,
			"DATABASE_URL is malformed — run 'envfix edit' to fix it", err)
	}
	return info, nil
}

// printCheckReport renders the battery results as numbered lines.
func printCheckReport(out io.Writer, report *model.CheckReport) {
	total := len(report.Steps)
	for i := range report.Steps {
		fmt.Fprintln(out, formatCheckStep(i+1, total, &report.Steps[i]))
	}
	fmt.Fprintln(out)
	if report.Passed() {
		fmt.Fprintln(out, "All checks passed. The database connection is working correctly.")
	} else {
		fmt.Fprintf(out, "Checks failed: %d of %d steps did not pass.\n",
			len(report.FailedSteps()), total)
	}
}

// formatCheckStep renders one probe outcome as "[n/total] Name: detail".
func formatCheckStep(n, total int, step *model.CheckStep) string {
	if step.Failed() {
		return fmt.Sprintf("  [%d/%d] %s: FAILED (%v)", n, total, step.Name, step.Err)
	}
	return fmt.Sprintf("  [%d/%d] %s: %s", n, total, step.Name, step.Detail)
}

// printTroubleshooting renders the advice block for a failure.
func printTroubleshooting(out io.Writer, scheme model.Scheme, err error) {
	fmt.Fprintln(out)
	for _, line := range database.Troubleshoot(scheme, err) {
		fmt.Fprintln(out, line)
	}
}
