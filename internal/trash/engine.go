package trash

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/ttrash/tt/internal/core/atomic"
	"github.com/ttrash/tt/internal/core/probe"
)

// TrashedEntry describes an item that was sent to a trash directory
type TrashedEntry struct {
	// OriginalPath is where the item used to live
	OriginalPath string

	// Name is the name chosen for the item in files/
	Name string

	// DeletedAt is the deletion time in epoch seconds
	DeletedAt int64

	// IsDir is set when the item is a directory
	IsDir bool

	// Size is the total size of the directory, only meaningful with IsDir
	Size uint64

	// Trash is the trash directory the item went to
	Trash *Directory
}

// TrashPath returns the location of the item inside the trash
func (e *TrashedEntry) TrashPath() string {
	return e.Trash.FilePath(e.Name)
}

// Engine moves files into trash directories
type Engine struct {
	now     func() time.Time
	newUUID func() string
	move    func(src, dst string) error
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithClock replaces the clock used for deletion dates
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// WithUUID replaces the generator used to make colliding names unique
func WithUUID(f func() string) EngineOption {
	return func(e *Engine) {
		e.newUUID = f
	}
}

// NewEngine creates an Engine
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		now:     time.Now,
		newUUID: uuid.NewString,
		move:    relocate,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SendToTrash moves path, which must be absolute, into d.
//
// The info file is written and synced before the item is moved, so a
// crash never leaves a trashed item without metadata. If the move fails
// the info file is removed again, unless a cross-device move left a
// complete copy in files/ and only failed to remove the source: the item
// is then trashed and the entry is returned together with the error.
// For directories a line is appended to the directorysizes ledger; when
// that fails the entry is also returned with the error.
//
// Choosing the name is racy: two concurrent calls trashing items with the
// same base name may both pick it, and the second rename replaces the
// first item.
func (e *Engine) SendToTrash(d *Directory, path string) (*TrashedEntry, error) {
	if err := checkEncoding(path); err != nil {
		return nil, err
	}

	now := e.now()
	if now.Before(time.Unix(0, 0)) {
		return nil, fmt.Errorf("%w: %v", ErrClock, now)
	}

	baseName, err := fileName(path)
	if err != nil {
		return nil, err
	}

	entry := &TrashedEntry{
		OriginalPath: path,
		DeletedAt:    now.Unix(),
		Trash:        d,
	}

	st, err := probe.Lstat(path)
	if err != nil {
		return nil, NewStorageError("stat", path, err)
	}
	if st.IsDir() {
		size, err := DirectorySize(path)
		if err != nil {
			return nil, err
		}
		entry.IsDir = true
		entry.Size = size
	}

	entry.Name = baseName
	if _, err := os.Lstat(d.FilePath(baseName)); err == nil {
		entry.Name = baseName + "-" + e.newUUID()
		slog.Debug("name taken in trash, renaming", "name", baseName, "new", entry.Name)
	} else if !os.IsNotExist(err) {
		return nil, NewStorageError("stat", d.FilePath(baseName), err)
	}

	infoPath, err := WriteInfo(d, path, entry.Name, entry.DeletedAt)
	if err != nil {
		return nil, err
	}

	dst := d.FilePath(entry.Name)
	var moveErr error
	if err := e.move(path, dst); err != nil {
		if !atomic.IsSourceNotRemoved(err) {
			if rmErr := os.Remove(infoPath); rmErr != nil {
				slog.Warn("failed to roll back info file", "path", infoPath, "error", rmErr)
			}
			return nil, NewStorageError("relocate", path, err)
		}
		slog.Warn("trashed a copy but could not remove the source", "from", path, "to", dst, "error", err)
		moveErr = NewStorageError("relocate", path, err)
	} else {
		slog.Debug("sent to trash", "from", path, "to", dst, "dir", entry.IsDir)
	}

	if entry.IsDir {
		if err := AppendDirectorySize(d, entry.Size, entry.Name, uint64(entry.DeletedAt)); err != nil {
			return entry, errors.Join(moveErr, err)
		}
	}

	return entry, moveErr
}

func relocate(src, dst string) error {
	return atomic.Move(src, dst, atomic.MoveOptions{AllowCrossDev: true})
}

// fileName returns the final component of path
func fileName(path string) (string, error) {
	name := filepath.Base(filepath.Clean(path))
	switch name {
	case "", ".", "..", string(filepath.Separator):
		return "", fmt.Errorf("%w: %s", ErrMissingFileName, path)
	}
	return name, nil
}
