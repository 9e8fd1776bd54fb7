// Package cli — doctor.go implements the "envfix doctor" command.
//
// doctor triages the database environment without requiring a working
// connection: it reports whether the env file exists, whether
// DATABASE_URL parses, and whether any local database containers are
// running. Findings are informational; doctor exits zero unless it
// cannot even gather them.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/envfix/internal/config"
	"github.com/mmr-tortoise/envfix/internal/dockerprobe"
	"github.com/mmr-tortoise/envfix/internal/dsn"
	"github.com/mmr-tortoise/envfix/internal/envfile"
	"github.com/mmr-tortoise/envfix/internal/model"
)

// doctorReport aggregates the triage findings for output.
type doctorReport struct {
	EnvFile        string                    `json:"envFile"`
	EnvFileFound   bool                      `json:"envFileFound"`
	DatabaseURLSet bool                      `json:"databaseUrlSet"`
	MaskedURL      string                    `json:"maskedUrl,omitempty"`
	Scheme         model.Scheme              `json:"scheme,omitempty"`
	URLProblem     string                    `json:"urlProblem,omitempty"`
	DockerOK       bool                      `json:"dockerOk"`
	DockerProblem  string                    `json:"dockerProblem,omitempty"`
	Containers     []model.DatabaseContainer `json:"containers,omitempty"`
}

// NewDoctorCommand creates the "doctor" cobra command.
func NewDoctorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the database environment",
		Long: `Inspect the local environment without connecting to the database:
whether the env file exists, whether DATABASE_URL is set and parseable,
and whether a local database container is running in Docker.

Examples:
  envfix doctor
  envfix doctor --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd.Context(), cmd.OutOrStdout())
		},
	}

	return cmd
}

// runDoctor gathers findings and renders them.
func runDoctor(ctx context.Context, out io.Writer) error {
	settings, err := config.Load(".")
	if err != nil {
		return err
	}

	report := &doctorReport{EnvFile: settings.EnvFile}
	report.EnvFileFound = envfile.Exists(settings.EnvFile)
	if report.EnvFileFound {
		// Load errors are findings here, not fatal: doctor keeps going.
		if err := envfile.Load(settings.EnvFile); err != nil {
			report.URLProblem = err.Error()
		}
	}

	if raw, err := envfile.DatabaseURL(); err == nil {
		report.DatabaseURLSet = true
		if info, perr := dsn.Parse(raw); perr == nil {
			report.MaskedURL = info.Masked()
			report.Scheme = info.Scheme
		} else {
			report.URLProblem = perr.Error()
		}
	}

	probeDocker(ctx, report)

	if IsJSONOutput() {
		data, merr := json.MarshalIndent(report, "", "  ")
		if merr != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to encode report", merr)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	printDoctorReport(out, report)
	return nil
}

// probeDocker fills in the Docker findings. Docker being unavailable is
// recorded, not treated as an error.
func probeDocker(ctx context.Context, report *doctorReport) {
	cli, err := dockerprobe.NewClient()
	if err != nil {
		report.DockerProblem = err.Error()
		return
	}
	defer func() { _ = cli.Close() }()

	if err := cli.Ping(ctx); err != nil {
		report.DockerProblem = err.Error()
		return
	}

	containers, err := dockerprobe.FindDatabaseContainers(ctx, cli)
	if err != nil {
		report.DockerProblem = err.Error()
		return
	}
	report.DockerOK = true
	report.Containers = containers
}

// printDoctorReport renders findings as aligned text lines.
func printDoctorReport(out io.Writer, report *doctorReport) {
	if report.EnvFileFound {
		fmt.Fprintf(out, "Env file:      found (%s)\n", report.EnvFile)
	} else {
		fmt.Fprintf(out, "Env file:      missing (%s) — run 'envfix edit' to create it\n", report.EnvFile)
	}

	switch {
	case !report.DatabaseURLSet:
		fmt.Fprintln(out, "DATABASE_URL:  not set")
	case report.URLProblem != "":
		fmt.Fprintf(out, "DATABASE_URL:  malformed — %s\n", report.URLProblem)
	default:
		fmt.Fprintf(out, "DATABASE_URL:  %s (%s)\n", report.MaskedURL, report.Scheme)
	}

	switch {
	case report.DockerProblem != "":
		fmt.Fprintf(out, "Docker:        unavailable — %s\n", report.DockerProblem)
	case len(report.Containers) == 0:
		fmt.Fprintln(out, "Docker:        reachable, no database containers found")
	default:
		fmt.Fprintf(out, "Docker:        %d database container(s) found\n", len(report.Containers))
		for _, c := range report.Containers {
			fmt.Fprintf(out, "  %s\n", formatContainerLine(c))
		}
	}
}

// formatContainerLine renders one container as "name  image  state  ports".
func formatContainerLine(c model.DatabaseContainer) string {
	ports := "-"
	if len(c.PublishedPorts) > 0 {
		parts := make([]string, 0, len(c.PublishedPorts))
		for _, p := range c.PublishedPorts {
			parts = append(parts, fmt.Sprintf("%d", p))
		}
		ports = strings.Join(parts, ",")
	}
	return fmt.Sprintf("%-20s %-24s %-8s ports: %s", c.Name, c.Image, c.State, ports)
}
