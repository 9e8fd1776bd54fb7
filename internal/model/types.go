package model

import (
	"fmt"
	"strings"
	"time"
)

// Scheme identifies the database engine addressed by a connection URL.
// Only the engines the backend actually supports are represented; anything
// else is rejected at parse time so the user gets a clear message instead
// of a driver error.
type Scheme string

const (
	// SchemePostgres covers "postgres://" and "postgresql://" URLs,
	// the production configuration (hosted PostgreSQL).
	SchemePostgres Scheme = "postgres"

	// SchemeSQLite covers "sqlite://" and "sqlite3://" URLs, the local
	// development configuration backed by a file on disk.
	SchemeSQLite Scheme = "sqlite"
)

// String returns the string representation of Scheme.
// This method satisfies the fmt.Stringer interface, enabling
// human-readable output in CLI commands and logging.
func (s Scheme) String() string {
	return string(s)
}

// IsValid checks whether the Scheme value is one of the supported engines.
func (s Scheme) IsValid() bool {
	switch s {
	case SchemePostgres, SchemeSQLite:
		return true
	default:
		return false
	}
}

// ParseScheme converts a URL scheme string to a Scheme. It accepts the
// spelling variants each engine is commonly addressed by.
func ParseScheme(s string) (Scheme, error) {
	switch strings.ToLower(s) {
	case "postgres", "postgresql":
		return SchemePostgres, nil
	case "sqlite", "sqlite3":
		return SchemeSQLite, nil
	default:
		return "", fmt.Errorf("unsupported database scheme: %q (valid: postgres, postgresql, sqlite, sqlite3)", s)
	}
}

// CheckStep is the outcome of a single probe in the connection check
// battery. A step with a nil Err passed; Detail carries the value the
// probe observed (server version, current user, and so on).
type CheckStep struct {
	// Name is the short human-readable label for the probe,
	// e.g. "Database Version".
	Name string `json:"name"`

	// Detail is the observed value or result summary. Empty when the
	// probe failed before producing anything.
	Detail string `json:"detail,omitempty"`

	// Err holds the probe failure, if any. It is not serialized
	// directly; ErrString carries it in JSON output.
	Err error `json:"-"`

	// ErrString mirrors Err for JSON output.
	ErrString string `json:"error,omitempty"`
}

// Failed reports whether this step failed.
func (s *CheckStep) Failed() bool {
	return s.Err != nil
}

// CheckReport aggregates the results of a full connection check run.
type CheckReport struct {
	// MaskedURL is the connection string with the password replaced,
	// safe to display and log.
	MaskedURL string `json:"maskedUrl"`

	// Scheme is the database engine the check ran against.
	Scheme Scheme `json:"scheme"`

	// Steps holds each probe outcome in execution order.
	Steps []CheckStep `json:"steps"`

	// StartedAt is when the check run began.
	StartedAt time.Time `json:"startedAt"`
}

// AddStep records a probe outcome. The error, if any, is duplicated into
// ErrString so JSON output carries it.
func (r *CheckReport) AddStep(name, detail string, err error) {
	step := CheckStep{Name: name, Detail: detail, Err: err}
	if err != nil {
		step.ErrString = err.Error()
	}
	r.Steps = append(r.Steps, step)
}

// Passed reports whether every step in the battery succeeded.
// An empty report has not passed: it means the check never ran.
func (r *CheckReport) Passed() bool {
	if len(r.Steps) == 0 {
		return false
	}
	for i := range r.Steps {
		if r.Steps[i].Failed() {
			return false
		}
	}
	return true
}

// FailedSteps returns the names of all failed steps, in order.
func (r *CheckReport) FailedSteps() []string {
	var failed []string
	for i := range r.Steps {
		if r.Steps[i].Failed() {
			failed = append(failed, r.Steps[i].Name)
		}
	}
	return failed
}

// TableInfo describes one user table found during the check battery's
// inventory probe.
type TableInfo struct {
	// Name is the table name within the default schema.
	Name string `json:"name"`

	// ColumnCount is the number of columns the table defines.
	ColumnCount int `json:"columnCount"`
}

// ExitCode defines the CLI exit codes. These codes allow scripts and CI
// systems to programmatically determine the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitEnvError indicates the .env file or the DATABASE_URL variable
	// is missing or malformed.
	ExitEnvError ExitCode = 2

	// ExitDatabaseUnreachable indicates the database connection or one
	// of the connection check probes failed.
	ExitDatabaseUnreachable ExitCode = 3

	// ExitMigrationFailed indicates schema initialization did not complete.
	ExitMigrationFailed ExitCode = 4

	// ExitEditorFailed indicates the default text editor could not be
	// launched.
	ExitEditorFailed ExitCode = 5

	// ExitDockerUnreachable indicates the Docker daemon is not accessible
	// during a doctor probe.
	ExitDockerUnreachable ExitCode = 6
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// DatabaseContainer holds runtime information about a Docker container
// that looks like a local database server. This data is fetched from the
// Docker API by the doctor command, not persisted anywhere.
type DatabaseContainer struct {
	// ID is the Docker container identifier (hash prefix).
	ID string `json:"id"`

	// Name is the human-readable container name without the leading "/".
	Name string `json:"name"`

	// Image is the image reference the container was created from.
	Image string `json:"image"`

	// State is the short Docker state string ("running", "exited", ...).
	State string `json:"state"`

	// PublishedPorts lists host ports the container publishes.
	PublishedPorts []int `json:"publishedPorts,omitempty"`
}
