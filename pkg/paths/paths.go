package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/libtour/libtour/pkg/errors"
)

const (
	// AppName names libtour's directory under each XDG base directory
	AppName = "libtour"

	// ConfigFileName is the user config file inside ConfigDir
	ConfigFileName = "config.toml"

	// LogFileName is the log file inside StateDir
	LogFileName = "libtour.log"

	// EnvHome is the fallback when the home directory cannot be looked up
	EnvHome = "HOME"
)

// ConfigDir returns $XDG_CONFIG_HOME/libtour.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// StateDir returns $XDG_STATE_HOME/libtour.
func StateDir() string {
	return filepath.Join(xdg.StateHome, AppName)
}

// UserConfigFile returns the per-user config file path.
func UserConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// LogFile returns the log file path.
func LogFile() string {
	return filepath.Join(StateDir(), LogFileName)
}

// HomeDir returns the user's home directory
func HomeDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrap(err, errors.ErrFileRead, "failed to get home directory")
	}
	return homeDir, nil
}

// ExpandHome expands a leading ~ or ~/ to the home directory. Other paths,
// including ~user forms, are returned unchanged.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) > 1 && path[1] != '/' && path[1] != filepath.Separator {
		return path
	}

	homeDir, err := HomeDir()
	if err != nil {
		return path
	}
	if len(path) == 1 {
		return homeDir
	}
	return filepath.Join(homeDir, path[2:])
}
