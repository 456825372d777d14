package trash

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Locator picks the trash directory a path should be sent to
type Locator struct {
	home      *Directory
	homeMount MountPoint
	registry  *Registry
	uid       int
}

// NewLocator creates a Locator. home is assumed to be a valid,
// initialized trash directory.
func NewLocator(home *Directory, registry *Registry, uid int) (*Locator, error) {
	homeMount, err := registry.FindOwner(home.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to find mount point of home trash: %w", err)
	}

	return &Locator{
		home:      home,
		homeMount: homeMount,
		registry:  registry,
		uid:       uid,
	}, nil
}

// Home returns the home trash
func (l *Locator) Home() *Directory {
	return l.home
}

// Locate returns the trash directory for path, which must be absolute.
//
// Paths on the same mount as the home trash go to the home trash. For any
// other mount the shared $topdir/.Trash is used when it is a working trash
// directory, then $topdir/.Trash-$uid, which is created on the spot when
// missing. A $topdir/.Trash-$uid that exists but is broken is an error.
func (l *Locator) Locate(path string) (*Directory, error) {
	owner, err := l.registry.FindOwner(path)
	if err != nil {
		return nil, err
	}

	if owner.Prefix == l.homeMount.Prefix {
		slog.Debug("using home trash", "path", path, "trash", l.home.Root)
		return l.home, nil
	}

	return l.topdirTrash(owner)
}

func (l *Locator) topdirTrash(m MountPoint) (*Directory, error) {
	shared, err := Checked(filepath.Join(m.Prefix, ".Trash"))
	if err == nil {
		slog.Debug("using shared topdir trash", "trash", shared.Root)
		return shared, nil
	}
	if !IsTrashDirectoryMissing(err) {
		return nil, err
	}

	root := filepath.Join(m.Prefix, fmt.Sprintf(".Trash-%d", l.uid))
	d, err := Checked(root)
	if err == nil {
		slog.Debug("using user topdir trash", "trash", d.Root)
		return d, nil
	}
	if !IsTrashDirectoryMissing(err) {
		return nil, err
	}

	if _, statErr := os.Lstat(root); statErr == nil {
		// never fall back to something we cannot trust
		return nil, err
	} else if !os.IsNotExist(statErr) {
		return nil, NewStorageError("locate", root, statErr)
	}

	slog.Info("creating topdir trash", "mountpoint", m.Prefix, "root", root)
	return Init(root, true)
}
