package trash

import (
	"os"
	"path/filepath"

	"github.com/ttrash/tt/internal/core/probe"
)

// DirectorySize adds up the bytes held by the tree rooted at path.
//
// Regular files count their lstat size, subdirectories are walked and
// everything else (symlinks, devices, sockets) counts as zero. Symlinks
// are never followed, so the walk cannot loop. When path is not a
// directory its own lstat size is returned.
func DirectorySize(path string) (uint64, error) {
	st, err := probe.Lstat(path)
	if err != nil {
		return 0, NewStorageError("size", path, err)
	}
	if !st.IsDir() {
		return uint64(st.Size), nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return 0, NewStorageError("size", path, err)
	}

	var size uint64
	for _, entry := range entries {
		child := filepath.Join(path, entry.Name())
		switch {
		case entry.Type().IsRegular():
			st, err := probe.Lstat(child)
			if err != nil {
				return 0, NewStorageError("size", child, err)
			}
			size += uint64(st.Size)
		case entry.IsDir():
			n, err := DirectorySize(child)
			if err != nil {
				return 0, err
			}
			size += n
		}
	}

	return size, nil
}
