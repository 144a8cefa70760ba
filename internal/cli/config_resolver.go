package cli

import (
	"os"
	"path/filepath"

	"github.com/toyz/apilint/internal/config"
	apierrors "github.com/toyz/apilint/internal/errors"
)

// ConfigResolver locates the configuration of a lint run
type ConfigResolver struct {
	startDir string
}

// NewConfigResolver creates a resolver searching upward from dir. An empty
// dir means the working directory.
func NewConfigResolver(dir string) *ConfigResolver {
	return &ConfigResolver{startDir: dir}
}

// Resolve loads the explicit config file when one is given, otherwise the
// nearest config file in the start directory or its parents. Defaults are
// returned when none exists. The returned path names the file used.
func (r *ConfigResolver) Resolve(explicit string) (*config.Config, string, error) {
	if explicit != "" {
		cfg, err := config.LoadConfig(explicit)
		return cfg, explicit, err
	}

	currentDir := r.startDir
	if currentDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, "", apierrors.WrapFileSystemError("locate", ".", err)
		}
		currentDir = wd
	}
	currentDir, err := filepath.Abs(currentDir)
	if err != nil {
		return nil, "", apierrors.WrapFileSystemError("locate", currentDir, err)
	}

	for {
		cfg, path, err := config.LoadConfigFromDir(currentDir)
		if err != nil || path != "" {
			return cfg, path, err
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return config.Default(), "", nil
		}
		currentDir = parentDir
	}
}
