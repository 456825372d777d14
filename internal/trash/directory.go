// Package trash sends files to XDG trash directories
package trash

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ttrash/tt/internal/core/probe"
)

const (
	filesDirName    = "files"
	infoDirName     = "info"
	ledgerFileName  = "directorysizes"
	infoFileExt     = ".trashinfo"
	trashDirPerm    = 0700
	trashLedgerPerm = 0600
)

// Directory is a trash directory: a root holding files/, info/ and the
// directorysizes ledger.
//
// files/ and info/ must exist before the directory is used. The ledger
// came with XDG trash 1.0, so it may legitimately be missing until the
// first directory is trashed.
type Directory struct {
	// Root is the trash root (e.g., ~/.local/share/Trash or /media/disk/.Trash-1000)
	Root string

	// FilesDir holds the trashed files and directories
	FilesDir string

	// InfoDir holds one .trashinfo file per entry of FilesDir
	InfoDir string

	// LedgerPath is the directorysizes cache
	LedgerPath string
}

// FromRoot builds the trash directory rooted at root.
// It performs no I/O, so the directories may not exist.
func FromRoot(root string) (*Directory, error) {
	if err := checkEncoding(root); err != nil {
		return nil, err
	}

	return &Directory{
		Root:       root,
		FilesDir:   filepath.Join(root, filesDirName),
		InfoDir:    filepath.Join(root, infoDirName),
		LedgerPath: filepath.Join(root, ledgerFileName),
	}, nil
}

// Checked builds the trash directory rooted at root and verifies that
// files/ and info/ exist.
//
// Ownership and permission bits of shared trash directories are not
// validated.
func Checked(root string) (*Directory, error) {
	d, err := FromRoot(root)
	if err != nil {
		return nil, err
	}
	if !probe.Exists(d.FilesDir) || !probe.Exists(d.InfoDir) {
		return nil, &TrashDirError{Root: root}
	}
	return d, nil
}

// Init creates the root, files/ and info/ with mode 0700. When withLedger
// is set an empty ledger is created too. Existing entries are left as is.
func Init(root string, withLedger bool) (*Directory, error) {
	d, err := FromRoot(root)
	if err != nil {
		return nil, err
	}

	for _, dir := range []string{d.Root, d.FilesDir, d.InfoDir} {
		if err := os.MkdirAll(dir, trashDirPerm); err != nil {
			return nil, NewStorageError("init", dir, err)
		}
	}

	if withLedger {
		f, err := os.OpenFile(d.LedgerPath, os.O_WRONLY|os.O_CREATE, trashLedgerPerm)
		if err != nil {
			return nil, NewStorageError("init", d.LedgerPath, err)
		}
		if err := f.Close(); err != nil {
			return nil, NewStorageError("init", d.LedgerPath, err)
		}
	}

	slog.Debug("initialized trash directory", "root", d.Root, "ledger", withLedger)
	return d, nil
}

// InfoPath returns the info file path for an entry named name in FilesDir
func (d *Directory) InfoPath(name string) string {
	return filepath.Join(d.InfoDir, name+infoFileExt)
}

// FilePath returns the path of an entry named name in FilesDir
func (d *Directory) FilePath(name string) string {
	return filepath.Join(d.FilesDir, name)
}

func (d *Directory) String() string {
	return d.Root
}

// checkEncoding rejects paths that cannot be handed to the kernel
func checkEncoding(path string) error {
	if strings.IndexByte(path, 0) >= 0 {
		return fmt.Errorf("%w: %q", ErrPathEncoding, path)
	}
	return nil
}
