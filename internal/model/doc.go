// Package model defines the domain types and value objects for the
// envfix CLI.
//
// This package contains pure data structures with no dependencies beyond
// gorm struct tags: connection-string schemes, connection check reports,
// and the application database schema that the init command migrates.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
