package layer

import (
	"fmt"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// Version is a supported game version.
type Version int

const (
	MC1_7 Version = iota
	MC1_8
	MC1_9
	MC1_10
	MC1_11
	MC1_12
	MC1_13
	MC1_13_2
	MC1_14
	MC1_15
)

var versionNames = [...]string{"1.7", "1.8", "1.9", "1.10", "1.11", "1.12", "1.13", "1.13.2", "1.14", "1.15"}

var parsedVersions = func() []*goversion.Version {
	vs := make([]*goversion.Version, len(versionNames))
	for i, name := range versionNames {
		vs[i] = goversion.Must(goversion.NewVersion(name))
	}
	return vs
}()

// Versions returns every supported version, oldest first.
func Versions() []Version {
	vs := make([]Version, len(versionNames))
	for i := range vs {
		vs[i] = Version(i)
	}
	return vs
}

func (v Version) String() string {
	if v < 0 || int(v) >= len(versionNames) {
		return "UNKNOWN"
	}
	return versionNames[v]
}

// AtLeast reports whether v is o or newer.
func (v Version) AtLeast(o Version) bool {
	return parsedVersions[v].GreaterThanOrEqual(parsedVersions[o])
}

// ParseVersion resolves a version name such as "1.13.2".
func ParseVersion(s string) (Version, error) {
	want, err := goversion.NewVersion(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse version %q: %w", s, err)
	}
	for i, v := range parsedVersions {
		if v.Equal(want) {
			return Version(i), nil
		}
	}
	return 0, fmt.Errorf("unsupported version %q (supported: %s)", s, strings.Join(versionNames[:], ", "))
}
