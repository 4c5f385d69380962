package label

import (
	"fmt"
	"strings"
)

// Range is an OSGi version range.
//
// Accepted forms:
//   - "" matches every version
//   - "1.2" matches 1.2 and anything above it
//   - "[1.2,2.0)" with inclusive '[' ']' and exclusive '(' ')' bounds
type Range struct {
	raw            string
	floor          Version
	ceiling        Version
	floorInclusive bool
	ceilInclusive  bool
	bounded        bool
}

// NewRange parses a version range.
func NewRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{floorInclusive: true}, nil
	}

	if s[0] != '[' && s[0] != '(' {
		floor, err := NewVersion(s)
		if err != nil {
			return Range{}, fmt.Errorf("invalid version range %q: %w", s, err)
		}
		return Range{raw: s, floor: floor, floorInclusive: true}, nil
	}

	last := s[len(s)-1]
	if last != ']' && last != ')' {
		return Range{}, fmt.Errorf("invalid version range %q: missing closing bracket", s)
	}
	bounds := strings.Split(s[1:len(s)-1], ",")
	if len(bounds) != 2 {
		return Range{}, fmt.Errorf("invalid version range %q: expected two bounds", s)
	}
	floor, err := NewVersion(strings.TrimSpace(bounds[0]))
	if err != nil {
		return Range{}, fmt.Errorf("invalid version range %q: %w", s, err)
	}
	ceiling, err := NewVersion(strings.TrimSpace(bounds[1]))
	if err != nil {
		return Range{}, fmt.Errorf("invalid version range %q: %w", s, err)
	}
	if !ceiling.IsEmpty() && ceiling.Compare(floor) < 0 {
		return Range{}, fmt.Errorf("invalid version range %q: ceiling below floor", s)
	}

	return Range{
		raw:            s,
		floor:          floor,
		ceiling:        ceiling,
		floorInclusive: s[0] == '[',
		ceilInclusive:  last == ']',
		bounded:        !ceiling.IsEmpty(),
	}, nil
}

// MustRange creates a Range or panics. Use only for constants/tests.
func MustRange(s string) Range {
	r, err := NewRange(s)
	if err != nil {
		panic(err)
	}
	return r
}

// String returns the range as written.
func (r Range) String() string {
	return r.raw
}

// IsAny reports whether the range accepts every version.
func (r Range) IsAny() bool {
	return r.raw == ""
}

// Contains reports whether v falls inside the range.
func (r Range) Contains(v Version) bool {
	if r.IsAny() {
		return true
	}
	c := v.Compare(r.floor)
	if c < 0 || (c == 0 && !r.floorInclusive) {
		return false
	}
	if !r.bounded {
		return true
	}
	c = v.Compare(r.ceiling)
	return c < 0 || (c == 0 && r.ceilInclusive)
}
