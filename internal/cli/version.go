package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Version holds the build metadata injected with -ldflags
type Version struct {
	AppName   string
	Version   string
	Revision  string
	BuildDate string
}

// resolve fills the fields left empty by the linker from the module and
// VCS information embedded by go build
func (v Version) resolve() Version {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}

	switch v.Version {
	case "", "unset", "unknown", "develop":
		v.Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && v.Revision == "":
			v.Revision = s.Value
		case s.Key == "vcs.time" && v.BuildDate == "":
			v.BuildDate = s.Value
		}
	}
	return v
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// Print renders the version block shown by --version
func (v Version) Print() string {
	v = v.resolve()

	var s strings.Builder
	fmt.Fprintf(&s, "%s - send files to the XDG trash\n\n", v.AppName)
	fmt.Fprintf(&s, "version:   %s\n", orUnknown(v.Version))
	fmt.Fprintf(&s, "revision:  %s\n", orUnknown(v.Revision))
	fmt.Fprintf(&s, "buildDate: %s\n", orUnknown(v.BuildDate))
	fmt.Fprintf(&s, "platform:  %s/%s (%s)\n", runtime.GOOS, runtime.GOARCH, runtime.Version())
	return s.String()
}
