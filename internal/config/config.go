// Package config locates the user configuration script and watches it
// for changes.
package config

import (
	"os"
	"path/filepath"
)

// Source names the user configuration file and whether a load failure
// is fatal. A file passed explicitly on the command line is required;
// the discovered default degrades to built-in behavior.
type Source struct {
	Path     string
	Required bool
}

// DefaultUserConfigPath returns the conventional location of the user
// script: $XDG_CONFIG_HOME/parley/config.lua, falling back to
// ~/.config/parley/config.lua.
func DefaultUserConfigPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "parley", "config.lua"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "parley", "config.lua"), nil
}

// Resolve picks the user script source. An explicit flag path wins
// and is required. Otherwise the default location is used if a file
// exists there; an empty Path means no user layer.
func Resolve(flagPath string) (Source, error) {
	if flagPath != "" {
		return Source{Path: flagPath, Required: true}, nil
	}
	path, err := DefaultUserConfigPath()
	if err != nil {
		return Source{}, err
	}
	if _, err := os.Stat(path); err != nil {
		return Source{}, nil
	}
	return Source{Path: path}, nil
}
