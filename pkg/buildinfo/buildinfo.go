// Package buildinfo reports the versions libtour was built with: its own,
// the Go toolchain's and every linked module's.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/libtour/libtour/pkg/errors"
)

// Version is a parsed major.minor.patch triple.
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
	// Raw is the string the version was parsed from.
	Raw string
}

func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += v.Prerelease
	}
	return s
}

// ParseVersion accepts semantic versions with or without a leading "v"
// ("1.8.0", "v0.0.0-2025...") and Go release names ("go1.24", "go1.24.3").
func ParseVersion(raw string) (Version, error) {
	v := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(v, "go"):
		v = "v" + strings.TrimPrefix(v, "go")
	case !strings.HasPrefix(v, "v"):
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return Version{}, errors.Newf(errors.ErrInvalidInput, "%q is not a version", raw)
	}

	// Canonical fills missing minor/patch and drops build metadata
	canon := semver.Canonical(v)
	pre := semver.Prerelease(canon)
	parts := strings.SplitN(strings.TrimSuffix(strings.TrimPrefix(canon, "v"), pre), ".", 3)

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, errors.Wrapf(err, errors.ErrInvalidInput, "%q has a non-numeric component", raw)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2], Prerelease: pre, Raw: raw}, nil
}

// Module is a linked dependency.
type Module struct {
	Path    string
	Version string
	// Parsed is nil when Version is not a semantic version, e.g. "(devel)".
	Parsed *Version
}

// Report is what `libtour version` prints.
type Report struct {
	Tool      string
	Commit    string
	Date      string
	GoVersion string
	Go        *Version
	Main      string
	Modules   []Module
}

// Collect builds a Report for the running binary. Tool, commit and date
// come from the caller since they are injected at link time.
func Collect(tool, commit, date string) Report {
	r := Report{Tool: tool, Commit: commit, Date: date, GoVersion: runtime.Version()}
	if v, err := ParseVersion(r.GoVersion); err == nil {
		r.Go = &v
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return r
	}
	r.Main = info.Main.Path
	for _, dep := range info.Deps {
		mod := dep
		if dep.Replace != nil {
			mod = dep.Replace
		}
		m := Module{Path: dep.Path, Version: mod.Version}
		if v, err := ParseVersion(mod.Version); err == nil {
			m.Parsed = &v
		}
		r.Modules = append(r.Modules, m)
	}
	return r
}
