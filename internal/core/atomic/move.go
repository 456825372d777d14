package atomic

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	cp "github.com/otiai10/copy"
)

// replaced in tests to simulate cross-device moves and removal failures
var (
	rename    = os.Rename
	remove    = os.Remove
	removeAll = os.RemoveAll
)

// MoveOptions specifies options for move operations
type MoveOptions struct {
	AllowCrossDev bool // Fall back to copy and delete when rename(2) fails
}

// Move renames src to dst. When the rename fails (typically EXDEV because
// src and dst live on different filesystems) and cross-device moves are
// allowed, src is copied to dst and then removed. That fallback is not
// atomic.
//
// dst is not checked for existence: an existing dst is replaced by the
// rename, the same as rename(2) does.
//
// An error matching ErrSourceNotRemoved means dst holds a complete copy
// and only the removal of src failed. Any other error leaves dst absent.
func Move(src, dst string, opts MoveOptions) error {
	if err := validatePaths(src, dst); err != nil {
		return err
	}

	err := rename(src, dst)
	if err == nil {
		slog.Debug("file renamed", "from", src, "to", dst)
		return nil
	}
	if !opts.AllowCrossDev {
		return NewMoveError("rename", src, dst, err)
	}

	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		slog.Debug("rename failed, falling back to copy and delete",
			"from", src, "to", dst, "error", linkErr.Err)
	}
	return copyAndDelete(src, dst)
}

// copyAndDelete copies a file or directory (recursively) and then deletes the original
func copyAndDelete(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return NewMoveError("stat", src, dst, err)
	}

	opts := cp.Options{
		// a trashed symlink stays a symlink
		OnSymlink: func(string) cp.SymlinkAction {
			return cp.Shallow
		},
		PreserveTimes: true,
		Sync:          true,
	}

	if err := cp.Copy(src, dst, opts); err != nil {
		if rmErr := os.RemoveAll(dst); rmErr != nil {
			slog.Warn("failed to remove partial copy", "path", dst, "error", rmErr)
		}
		return NewMoveError("copy", src, dst, err)
	}

	if !info.IsDir() {
		if err := remove(src); err != nil {
			// src is untouched, drop the copy so the item is not duplicated
			if rmErr := remove(dst); rmErr != nil {
				return NewMoveError("cleanup", src, dst,
					fmt.Errorf("%w: %w (destination kept: %v)", ErrSourceNotRemoved, err, rmErr))
			}
			return NewMoveError("remove_source", src, dst, err)
		}
		return nil
	}

	// RemoveAll may fail halfway through, so the copy is the only complete
	// version of the tree and is kept
	if err := removeAll(src); err != nil {
		return NewMoveError("remove_source", src, dst, fmt.Errorf("%w: %w", ErrSourceNotRemoved, err))
	}
	return nil
}

func validatePaths(src, dst string) error {
	if src == "" || dst == "" {
		return ErrInvalidPath
	}

	if _, err := os.Lstat(src); err != nil {
		if os.IsNotExist(err) {
			return NewMoveError("stat", src, dst, ErrSourceNotFound)
		}
		return NewMoveError("stat", src, dst, err)
	}

	return nil
}
