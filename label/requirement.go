package label

import (
	"fmt"
	"strings"
)

// Requirement is a single Require-Bundle or Import-Package entry.
type Requirement struct {
	Name     SymbolicName
	Range    Range
	Optional bool
}

// ParseRequirement parses an entry of the form
//
//	name[;version=RANGE][;bundle-version=RANGE][;resolution:=optional]
//
// Quotes around the range are stripped. Unknown attributes are ignored.
func ParseRequirement(s string) (Requirement, error) {
	parts := strings.Split(s, ";")
	name, err := NewSymbolicName(strings.TrimSpace(parts[0]))
	if err != nil {
		return Requirement{}, err
	}

	req := Requirement{Name: name}
	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		switch {
		case strings.HasPrefix(part, "resolution:="):
			req.Optional = strings.TrimPrefix(part, "resolution:=") == "optional"
		case strings.HasPrefix(part, "version="), strings.HasPrefix(part, "bundle-version="):
			raw := part[strings.Index(part, "=")+1:]
			r, err := NewRange(strings.Trim(raw, `"`))
			if err != nil {
				return Requirement{}, fmt.Errorf("requirement %q: %w", s, err)
			}
			req.Range = r
		}
	}
	return req, nil
}

// String formats the requirement back into its entry form.
func (r Requirement) String() string {
	s := r.Name.String()
	if !r.Range.IsAny() {
		s += ";version=" + r.Range.String()
	}
	if r.Optional {
		s += ";resolution:=optional"
	}
	return s
}
