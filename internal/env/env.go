package env

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
)

const (
	defaultXDGConfigDirname = ".config"
	defaultXDGDataDirname   = ".local/share"
)

var (
	TT_CONFIG_PATH string

	TT_LOG_PATH string
)

func init() {
	// https://github.com/charmbracelet/log/issues/35
	os.Setenv("CLICOLOR_FORCE", "1")

	// Follow https://specifications.freedesktop.org/basedir-spec/latest/
	TT_CONFIG_PATH = os.Getenv("TT_CONFIG_PATH")
	if TT_CONFIG_PATH == "" {
		configDir := os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			configDir = filepath.Join(homeOrEmpty(), defaultXDGConfigDirname)
		}
		TT_CONFIG_PATH = filepath.Join(configDir, "tt", "config.yaml")
	}

	TT_LOG_PATH = os.Getenv("TT_LOG_PATH")
	if TT_LOG_PATH == "" {
		dataDir := os.Getenv("XDG_DATA_HOME")
		if dataDir == "" {
			dataDir = filepath.Join(homeOrEmpty(), defaultXDGDataDirname)
		}
		TT_LOG_PATH = filepath.Join(dataDir, "tt", "debug.log")
	}
}

func homeOrEmpty() string {
	home, _ := HomeDir()
	return home
}

// ErrNoHomeDir is returned when neither $HOME nor the user database
// knows where the calling user lives.
var ErrNoHomeDir = errors.New("cannot determine home directory")

// HomeDir finds the calling user's home directory.
// $HOME is checked first, falling back to the user database entry
// of the effective uid.
func HomeDir() (string, error) {
	if home := os.Getenv("HOME"); home != "" {
		return home, nil
	}

	u, err := user.LookupId(strconv.Itoa(os.Geteuid()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoHomeDir, err)
	}
	if u.HomeDir == "" {
		return "", ErrNoHomeDir
	}
	return u.HomeDir, nil
}

// HomeTrashPath returns the root of the home trash.
// XDG places it at $XDG_DATA_HOME/Trash, which most distros leave
// undefined, hence the $HOME/.local/share/Trash fallback.
func HomeTrashPath(home string) string {
	if dataDir := os.Getenv("XDG_DATA_HOME"); dataDir != "" {
		return filepath.Join(dataDir, "Trash")
	}
	return filepath.Join(home, defaultXDGDataDirname, "Trash")
}
