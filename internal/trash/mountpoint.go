package trash

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/moby/sys/mountinfo"
	"github.com/samber/lo"
)

// MountPoint is a mounted filesystem
type MountPoint struct {
	// Name is the mount source, e.g. /dev/sda2 or tmpfs
	Name string

	// Prefix is where the filesystem is mounted. Always absolute.
	Prefix string

	// FSType is the filesystem type, informational only
	FSType string
}

// Contains reports whether path lies inside this mount point.
// The match is done on whole path components, so /home does not contain
// /homework.
func (m MountPoint) Contains(path string) bool {
	path = filepath.Clean(path)
	if m.Prefix == "/" {
		return filepath.IsAbs(path)
	}
	return path == m.Prefix || strings.HasPrefix(path, m.Prefix+"/")
}

// MountTable enumerates the mounted filesystems
type MountTable interface {
	Mounts() ([]MountPoint, error)
}

// the underlying enumeration is not guaranteed to be reentrant on every
// platform
var systemMountsMu sync.Mutex

// SystemMountTable reads the mount table of the running system
type SystemMountTable struct{}

func (SystemMountTable) Mounts() ([]MountPoint, error) {
	systemMountsMu.Lock()
	defer systemMountsMu.Unlock()

	infos, err := mountinfo.GetMounts(nil)
	if err != nil {
		return nil, err
	}
	return fromInfos(infos), nil
}

// StaticMountTable is a fixed list of mount points
type StaticMountTable []MountPoint

func (t StaticMountTable) Mounts() ([]MountPoint, error) {
	return slices.Clone(t), nil
}

func fromInfos(infos []*mountinfo.Info) []MountPoint {
	return lo.Map(infos, func(info *mountinfo.Info, _ int) MountPoint {
		return MountPoint{
			Name:   info.Source,
			Prefix: info.Mountpoint,
			FSType: info.FSType,
		}
	})
}

// Registry holds mount points ordered from the most specific (longest
// prefix) to the least specific
type Registry struct {
	points []MountPoint
}

// Probe reads table and builds a registry from it
func Probe(table MountTable) (*Registry, error) {
	points, err := table.Mounts()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMountTableUnavailable, err)
	}
	return NewRegistry(points), nil
}

// NewRegistry orders points by prefix length, longest first.
// When two mount points share the same prefix, the one listed later in
// the table comes first: it is the one stacked on top.
func NewRegistry(points []MountPoint) *Registry {
	points = lo.FilterMap(points, func(m MountPoint, _ int) (MountPoint, bool) {
		if !filepath.IsAbs(m.Prefix) {
			slog.Debug("skipping mount point with relative prefix", "name", m.Name, "prefix", m.Prefix)
			return m, false
		}
		m.Prefix = filepath.Clean(m.Prefix)
		return m, true
	})

	points = lo.Reverse(points)
	slices.SortStableFunc(points, func(a, b MountPoint) int {
		return len(b.Prefix) - len(a.Prefix)
	})

	return &Registry{points: points}
}

// MountPoints returns the ordered mount points
func (r *Registry) MountPoints() []MountPoint {
	return slices.Clone(r.points)
}

// FindOwner returns the most specific mount point containing path
func (r *Registry) FindOwner(path string) (MountPoint, error) {
	for _, m := range r.points {
		if m.Contains(path) {
			slog.Debug("found mount point", "path", path, "mountpoint", m.Prefix, "source", m.Name)
			return m, nil
		}
	}
	return MountPoint{}, fmt.Errorf("%w: %s", ErrNoOwningMountPoint, path)
}
