// Package config loads the optional .envfix.yaml settings file.
//
// The file customizes toolkit behavior only — which env file to manage
// and which editor to prefer. The fix-env binary never reads it: its
// behavior is fixed. A missing settings file yields the defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/envfix/internal/envfile"
	"github.com/mmr-tortoise/envfix/internal/model"
)

// SettingsFileName is the settings file looked up in the working directory.
const SettingsFileName = ".envfix.yaml"

// Settings holds toolkit-wide options.
type Settings struct {
	// EnvFile is the env file the toolkit manages.
	// Defaults to ".env".
	EnvFile string `yaml:"envFile"`

	// Editor overrides editor resolution when non-empty.
	Editor string `yaml:"editor"`
}

// defaults returns the settings used when no file is present.
func defaults() *Settings {
	return &Settings{EnvFile: envfile.DefaultPath}
}

// Load reads .envfix.yaml from dir if it exists. Absence is not an
// error; a present but unreadable or invalid file is.
func Load(dir string) (*Settings, error) {
	s := defaults()

	path := filepath.Join(dir, SettingsFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("could not read %s", SettingsFileName), err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("invalid %s", SettingsFileName), err)
	}
	if s.EnvFile == "" {
		s.EnvFile = envfile.DefaultPath
	}
	return s, nil
}
