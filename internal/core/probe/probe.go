// Package probe reports file metadata without following symlinks.
package probe

import (
	"fmt"
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

// Stat is the subset of lstat(2) the trash code cares about
type Stat struct {
	Mode     uint32
	Size     int64
	Blocks   int64
	Accessed time.Time
	Modified time.Time
	UID      uint32
	GID      uint32
}

// Lstat probes path without following a trailing symlink
func Lstat(path string) (*Stat, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return nil, &fs.PathError{Op: "lstat", Path: path, Err: err}
	}

	return &Stat{
		Mode:     uint32(st.Mode),
		Size:     st.Size,
		Blocks:   st.Blocks,
		Accessed: time.Unix(st.Atim.Unix()),
		Modified: time.Unix(st.Mtim.Unix()),
		UID:      st.Uid,
		GID:      st.Gid,
	}, nil
}

// Perm returns the permission bits, including setuid, setgid and sticky
func (s *Stat) Perm() uint32 {
	return s.Mode & 07777
}

func (s *Stat) IsDir() bool {
	return s.Mode&unix.S_IFMT == unix.S_IFDIR
}

func (s *Stat) IsRegular() bool {
	return s.Mode&unix.S_IFMT == unix.S_IFREG
}

func (s *Stat) IsSymlink() bool {
	return s.Mode&unix.S_IFMT == unix.S_IFLNK
}

func (s *Stat) String() string {
	return fmt.Sprintf("mode=%o size=%d blocks=%d uid=%d gid=%d", s.Mode, s.Size, s.Blocks, s.UID, s.GID)
}

// Exists reports whether path exists. It only asks access(2) with F_OK,
// so it is cheaper than a full stat and does not care about file types.
func Exists(path string) bool {
	return unix.Access(path, unix.F_OK) == nil
}
