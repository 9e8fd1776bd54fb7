// Package main is the fix-env binary: print the DATABASE_URL guidance
// block, then open .env in the user's default editor.
//
// The behavior is deliberately fixed. There are no flags, no environment
// lookups beyond editor resolution, and arguments are ignored entirely;
// the richer, configurable form of this flow lives in "envfix edit".
// The .env file itself is never read or written here — it is handed to
// the editor as an opaque path.
package main

import (
	"fmt"
	"os"

	"github.com/mmr-tortoise/envfix/internal/editor"
	"github.com/mmr-tortoise/envfix/internal/envfile"
	"github.com/mmr-tortoise/envfix/internal/model"
)

func main() {
	fmt.Print(envfile.Notice())
	fmt.Println(envfile.OpeningLine(envfile.DefaultPath))

	if err := editor.NewLauncher().Open(envfile.DefaultPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(model.ExitEditorFailed))
	}
}
