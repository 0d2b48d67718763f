// Package buildinfo reports which boardtree build is running.
//
// Release builds stamp the variables through ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/boardtree/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/boardtree/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/boardtree/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Unstamped builds (go install, go run) fall back to the module version and
// VCS settings recorded by the Go toolchain.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"sync"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the resolved build description.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go"`
	Modified  bool   `json:"modified,omitempty"`
}

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

var (
	once   sync.Once
	cached Info
)

// Get returns the build description, reading embedded module data once.
func Get() Info {
	once.Do(func() { cached = resolve() })
	return cached
}

func resolve() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "none" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "unknown" {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// ShortCommit returns the first 12 characters of the commit hash.
func (i Info) ShortCommit() string {
	if len(i.Commit) > 12 {
		return i.Commit[:12]
	}
	return i.Commit
}

func (i Info) String() string {
	commit := i.ShortCommit()
	if i.Modified {
		commit += "-dirty"
	}
	s := fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", i.Version, commit, i.Date)
	if i.GoVersion != "" {
		s += "\ngo: " + i.GoVersion
	}
	return s
}

// Template returns the version template string for cobra.
func Template() string {
	return "{{.Name}} " + Get().String() + "\n"
}
