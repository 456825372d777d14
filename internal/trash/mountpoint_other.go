//go:build !linux

package trash

import (
	"errors"
	"io"
)

// ReaderMountTable parses a table in /proc/self/mountinfo format.
// Only Linux has that format.
type ReaderMountTable struct {
	R io.Reader
}

func (t ReaderMountTable) Mounts() ([]MountPoint, error) {
	return nil, errors.New("mountinfo format is only available on linux")
}
