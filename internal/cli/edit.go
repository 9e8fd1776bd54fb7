// Package cli — edit.go implements the "envfix edit" command.
//
// edit is the interactive repair flow: print the fixed DATABASE_URL
// guidance block, then open the env file in the user's default editor.
// Unlike the fix-env binary, the subcommand form accepts options
// (a custom env file path and a print-only mode).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/envfix/internal/config"
	"github.com/mmr-tortoise/envfix/internal/editor"
	"github.com/mmr-tortoise/envfix/internal/envfile"
	"github.com/mmr-tortoise/envfix/internal/model"
)

// editFlags holds the flag values for the edit command.
type editFlags struct {
	file      string // --file: env file to open instead of the configured one
	printOnly bool   // --print-only: print the guidance without launching an editor
}

// NewEditCommand creates the "edit" cobra command.
func NewEditCommand() *cobra.Command {
	flags := &editFlags{}

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Print DATABASE_URL guidance and open the .env file in your editor",
		Long: `Print the DATABASE_URL format guidance and open the env file in your
default text editor ($EDITOR, $VISUAL, or the platform default).

The file is handed to the editor as-is: envfix never reads or rewrites
its contents.

Examples:
  envfix edit
  envfix edit --file config/.env.local
  envfix edit --print-only`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.file, "file", "", "Env file to open (default: from .envfix.yaml, else .env)")
	cmd.Flags().BoolVar(&flags.printOnly, "print-only", false, "Print the guidance without launching an editor")

	return cmd
}

// runEdit prints the guidance block and launches the editor.
func runEdit(cmd *cobra.Command, flags *editFlags) error {
	out := cmd.OutOrStdout()

	cwd, err := os.Getwd()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
	}
	settings, err := config.Load(cwd)
	if err != nil {
		return err
	}

	path := flags.file
	if path == "" {
		path = settings.EnvFile
	}

	fmt.Fprint(out, envfile.Notice())
	fmt.Fprintln(out, envfile.OpeningLine(path))

	if flags.printOnly {
		return nil
	}

	launcher := editor.NewLauncher()
	launcher.Override = settings.Editor
	return launcher.Open(path)
}
