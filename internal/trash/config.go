package trash

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config is the process-wide state the trash code depends on. It is
// computed once at startup and not modified afterwards.
type Config struct {
	// HomeTrashDir is the root of the home trash (e.g., ~/.local/share/Trash)
	HomeTrashDir string

	// UID names the per-user topdir trash ($topdir/.Trash-$uid)
	UID int

	// MountTable lists the mounted filesystems; nil means the system table
	MountTable MountTable

	// Guard lists paths that must not be trashed
	Guard GuardOptions
}

// NewDefaultConfig creates a new Config with default values
func NewDefaultConfig(homeTrashDir string) *Config {
	return &Config{
		HomeTrashDir: homeTrashDir,
		UID:          os.Getuid(),
		MountTable:   SystemMountTable{},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.HomeTrashDir == "" {
		return fmt.Errorf("home trash directory is not set")
	}
	if !filepath.IsAbs(c.HomeTrashDir) {
		return fmt.Errorf("home trash directory must be an absolute path: %s", c.HomeTrashDir)
	}
	if c.UID < 0 {
		return fmt.Errorf("invalid uid: %d", c.UID)
	}
	if c.MountTable == nil {
		c.MountTable = SystemMountTable{}
	}
	return nil
}
