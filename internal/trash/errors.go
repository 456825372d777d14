package trash

import "errors"

// Common errors returned while sending files to a trash directory
var (
	// ErrMissingFileName is returned when the path has no final component (e.g. "/")
	ErrMissingFileName = errors.New("path has no file name")

	// ErrMountTableUnavailable is returned when the mount table cannot be read
	ErrMountTableUnavailable = errors.New("failed to obtain mount points")

	// ErrNoOwningMountPoint is returned when no mount point contains the path
	ErrNoOwningMountPoint = errors.New("no mount point contains path")

	// ErrTrashDirectoryMissing is returned when a trash root lacks files/ or info/
	ErrTrashDirectoryMissing = errors.New("does not contain a working trash directory")

	// ErrClock is returned when the system clock reports a time before the epoch
	ErrClock = errors.New("clock went backwards")

	// ErrPathEncoding is returned when a path cannot be represented as a C string
	ErrPathEncoding = errors.New("interior nul byte found in path")

	// ErrProtected is returned when a path is refused by the guard rules
	ErrProtected = errors.New("path is protected")
)

// StorageError wraps a filesystem failure with the operation it happened in
type StorageError struct {
	// Op is the operation that failed (e.g., "write-info", "relocate", "ledger")
	Op string

	// Path is the path of the file that caused the error
	Path string

	// Err is the underlying error
	Err error
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new StorageError
func NewStorageError(op, path string, err error) error {
	return &StorageError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// TrashDirError reports the root of a trash directory that failed validation
type TrashDirError struct {
	Root string
}

func (e *TrashDirError) Error() string {
	return "path " + e.Root + " " + ErrTrashDirectoryMissing.Error()
}

func (e *TrashDirError) Unwrap() error {
	return ErrTrashDirectoryMissing
}

// IsMissingFileName returns true if the error is ErrMissingFileName
func IsMissingFileName(err error) bool {
	return errors.Is(err, ErrMissingFileName)
}

// IsTrashDirectoryMissing returns true if the error is ErrTrashDirectoryMissing
func IsTrashDirectoryMissing(err error) bool {
	return errors.Is(err, ErrTrashDirectoryMissing)
}

// IsMountTableUnavailable returns true if the error is ErrMountTableUnavailable
func IsMountTableUnavailable(err error) bool {
	return errors.Is(err, ErrMountTableUnavailable)
}

// IsNoOwningMountPoint returns true if the error is ErrNoOwningMountPoint
func IsNoOwningMountPoint(err error) bool {
	return errors.Is(err, ErrNoOwningMountPoint)
}

// IsClock returns true if the error is ErrClock
func IsClock(err error) bool {
	return errors.Is(err, ErrClock)
}

// IsPathEncoding returns true if the error is ErrPathEncoding
func IsPathEncoding(err error) bool {
	return errors.Is(err, ErrPathEncoding)
}

// IsProtected returns true if the error is ErrProtected
func IsProtected(err error) bool {
	return errors.Is(err, ErrProtected)
}

// IsStorage returns true if the error wraps a filesystem failure
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
