// Package editor launches the user's default text editor on a file.
//
// Resolution order: explicit override (tool settings), $EDITOR, $VISUAL,
// then a platform fallback — notepad on Windows, vi elsewhere. The
// editor runs attached to the caller's terminal, so console editors work
// interactively and the command blocks until the editor exits.
package editor

import (
	"os"
	"os/exec"
	"runtime"

	"github.com/mmr-tortoise/envfix/internal/model"
)

// Runner abstracts process execution so launches can be observed in tests
// without spawning real editors.
type Runner interface {
	// Run starts the named program with args attached to the current
	// terminal and waits for it to exit.
	Run(name string, args ...string) error
}

// execRunner is the production Runner backed by os/exec.
type execRunner struct{}

func (execRunner) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Launcher resolves and launches the default editor.
type Launcher struct {
	// Override, when non-empty, is used as the editor command and
	// skips environment resolution. Set from tool settings.
	Override string

	runner    Runner
	lookupEnv func(string) string
	goos      string
}

// NewLauncher creates a Launcher using the real process environment
// and os/exec.
func NewLauncher() *Launcher {
	return &Launcher{
		runner:    execRunner{},
		lookupEnv: os.Getenv,
		goos:      runtime.GOOS,
	}
}

// Resolve returns the editor command that Open will invoke.
func (l *Launcher) Resolve() string {
	if l.Override != "" {
		return l.Override
	}
	if ed := l.lookupEnv("EDITOR"); ed != "" {
		return ed
	}
	if ed := l.lookupEnv("VISUAL"); ed != "" {
		return ed
	}
	if l.goos == "windows" {
		return "notepad"
	}
	return "vi"
}

// Open launches the resolved editor on path and waits for it to exit.
// The file is handed to the editor as an opaque path: it is not read,
// created, or checked for existence here — editors handle missing files
// themselves, typically by creating them on save.
func (l *Launcher) Open(path string) error {
	ed := l.Resolve()
	if err := l.runner.Run(ed, path); err != nil {
		return model.WrapCLIError(model.ExitEditorFailed,
			"failed to launch editor "+ed, err)
	}
	return nil
}
