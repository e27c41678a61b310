package config

import (
	"errors"
	"os"
	"path/filepath"
)

const DefaultFileName = "wtj.yml"

// EnsureUserConfig writes the default config to path unless a file is
// already there. It returns whether a new file was written.
func EnsureUserConfig(path string) (bool, error) {
	if path == "" {
		path = DefaultFileName
	}
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	if err := SaveAtomic(path, Default()); err != nil {
		return false, err
	}
	return true, nil
}
