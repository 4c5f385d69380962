package label

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version represents a validated OSGi bundle version.
// Format: MAJOR[.MINOR[.MICRO[.QUALIFIER]]]
// Missing numeric parts default to zero; the qualifier is compared lexically.
type Version struct {
	raw       string
	numeric   *semver.Version
	qualifier string
}

// versionRegex matches OSGi versions. The qualifier may contain letters,
// digits, underscores and hyphens.
var versionRegex = regexp.MustCompile(`^(\d+)(?:\.(\d+)(?:\.(\d+)(?:\.([A-Za-z0-9_-]+))?)?)?$`)

// NewVersion creates a validated Version from a string.
// An empty string yields the empty version, which sorts lowest.
func NewVersion(s string) (Version, error) {
	if s == "" {
		return Version{}, nil
	}

	matches := versionRegex.FindStringSubmatch(s)
	if matches == nil {
		return Version{}, fmt.Errorf("invalid version %q: must match MAJOR[.MINOR[.MICRO[.QUALIFIER]]]", s)
	}

	numeric := matches[1]
	if matches[2] != "" {
		numeric += "." + matches[2]
	}
	if matches[3] != "" {
		numeric += "." + matches[3]
	}
	sv, err := semver.NewVersion(numeric)
	if err != nil {
		return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
	}

	return Version{raw: s, numeric: sv, qualifier: matches[4]}, nil
}

// MustVersion creates a Version or panics. Use only for constants/tests.
func MustVersion(s string) Version {
	v, err := NewVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version string as written.
func (v Version) String() string {
	return v.raw
}

// IsEmpty returns true if this is a zero-value Version.
func (v Version) IsEmpty() bool {
	return v.numeric == nil
}

// Major returns the major version number.
func (v Version) Major() uint64 {
	if v.numeric == nil {
		return 0
	}
	return v.numeric.Major()
}

// Minor returns the minor version number.
func (v Version) Minor() uint64 {
	if v.numeric == nil {
		return 0
	}
	return v.numeric.Minor()
}

// Micro returns the micro version number.
func (v Version) Micro() uint64 {
	if v.numeric == nil {
		return 0
	}
	return v.numeric.Patch()
}

// Qualifier returns the optional qualifier.
func (v Version) Qualifier() string {
	return v.qualifier
}

// Compare returns -1, 0 or 1. The empty version sorts before every other version.
func (v Version) Compare(other Version) int {
	switch {
	case v.numeric == nil && other.numeric == nil:
		return 0
	case v.numeric == nil:
		return -1
	case other.numeric == nil:
		return 1
	}
	if c := v.numeric.Compare(other.numeric); c != 0 {
		return c
	}
	return strings.Compare(v.qualifier, other.qualifier)
}

// CompareStrings compares two version strings. Unparseable versions sort
// before parseable ones and are ordered lexically among themselves.
func CompareStrings(a, b string) int {
	va, errA := NewVersion(a)
	vb, errB := NewVersion(b)
	switch {
	case errA != nil && errB != nil:
		return strings.Compare(a, b)
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}
	return va.Compare(vb)
}
