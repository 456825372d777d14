package atomic

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// SafeWriter stages writes in a temporary file that only becomes visible
// at its destination through a single rename(2). Readers of the
// destination therefore see either the previous content or the complete
// new content.
//
// The temporary file must live on the same filesystem as the destination
// for the final rename to be atomic.
type SafeWriter struct {
	path      string
	file      *os.File
	finished  bool
	committed bool
	cleanErr  error
}

// NewSafeWriter creates a fresh temporary file named
// "<prefix>.<uuid>.tmp" inside dir
func NewSafeWriter(dir, prefix string) (*SafeWriter, error) {
	path := filepath.Join(dir, fmt.Sprintf("%s.%s.tmp", prefix, uuid.NewString()))

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	return &SafeWriter{
		path: path,
		file: f,
	}, nil
}

// Path returns the path to the temporary file
func (w *SafeWriter) Path() string {
	return w.path
}

// Write writes data to the temporary file
func (w *SafeWriter) Write(p []byte) (n int, err error) {
	if w.finished {
		return 0, ErrWriterFinished
	}
	return w.file.Write(p)
}

// Commit syncs the temporary file and renames it over dst
func (w *SafeWriter) Commit(dst string) error {
	if w.finished {
		return ErrWriterFinished
	}
	w.finished = true

	if err := w.file.Sync(); err != nil {
		return fmt.Errorf("sync file: %w", err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}

	if err := os.Rename(w.path, dst); err != nil {
		return fmt.Errorf("rename to destination: %w", err)
	}
	w.committed = true

	return nil
}

// Cleanup removes the temporary file unless it was committed.
// It is safe to defer right after NewSafeWriter.
func (w *SafeWriter) Cleanup() {
	if w.committed {
		return
	}
	w.finished = true
	_ = w.file.Close()
	if err := os.Remove(w.path); err != nil && !os.IsNotExist(err) {
		w.cleanErr = NewCleanupError(w.path, err)
	}
}

// CleanupErr returns the error of the last Cleanup, if any
func (w *SafeWriter) CleanupErr() error {
	return w.cleanErr
}
