package trash

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func asTrashDirError(err error, target **TrashDirError) bool {
	return errors.As(err, target)
}

// fixedClock returns a clock frozen at sec
func fixedClock(sec int64) func() time.Time {
	return func() time.Time { return time.Unix(sec, 0) }
}

// writeFile creates path with content and mode, parents included
func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(path, mode); err != nil {
		t.Fatal(err)
	}
}

// newTrash initializes a trash directory in a temporary directory
func newTrash(t *testing.T) *Directory {
	t.Helper()
	d, err := Init(filepath.Join(t.TempDir(), "Trash"), false)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

// loadInfo parses the .trashinfo file at path
func loadInfo(path string) (*TrashInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseInfo(f)
}

// unwrapAll returns the innermost error of a chain
func unwrapAll(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
