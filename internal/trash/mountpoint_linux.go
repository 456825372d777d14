package trash

import (
	"io"

	"github.com/moby/sys/mountinfo"
)

// ReaderMountTable parses a table in /proc/self/mountinfo format
type ReaderMountTable struct {
	R io.Reader
}

func (t ReaderMountTable) Mounts() ([]MountPoint, error) {
	infos, err := mountinfo.GetMountsFromReader(t.R, nil)
	if err != nil {
		return nil, err
	}
	return fromInfos(infos), nil
}
