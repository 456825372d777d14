package atomic

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceNotFound indicates that the source file does not exist
	ErrSourceNotFound = errors.New("source file not found")

	// ErrInvalidPath indicates an empty source or destination
	ErrInvalidPath = errors.New("invalid path specified")

	// ErrWriterFinished indicates a SafeWriter used after Commit
	ErrWriterFinished = errors.New("writer already committed")

	// ErrSourceNotRemoved indicates a cross-device move that left a complete
	// copy at the destination but could not remove the source
	ErrSourceNotRemoved = errors.New("source not removed after copy")
)

// MoveError represents an error that occurred during a move operation
type MoveError struct {
	Op  string // Operation being performed
	Src string // Source path
	Dst string // Destination path
	Err error  // Underlying error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move operation failed: %s from %q to %q: %v", e.Op, e.Src, e.Dst, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// NewMoveError creates a new MoveError
func NewMoveError(op, src, dst string, err error) error {
	return &MoveError{
		Op:  op,
		Src: src,
		Dst: dst,
		Err: err,
	}
}

// CleanupError represents an error that occurred during cleanup
type CleanupError struct {
	Path string // Path being cleaned up
	Err  error  // Underlying error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("cleanup failed for %q: %v", e.Path, e.Err)
}

func (e *CleanupError) Unwrap() error {
	return e.Err
}

// NewCleanupError creates a new CleanupError
func NewCleanupError(path string, err error) error {
	return &CleanupError{
		Path: path,
		Err:  err,
	}
}

// IsSourceNotRemoved reports whether err comes from a move whose
// destination holds a complete copy while the source is still (partly) there
func IsSourceNotRemoved(err error) bool {
	return errors.Is(err, ErrSourceNotRemoved)
}
