package repository

import (
	"fmt"
	"path"
	"strings"
)

// DefaultType is the artifact type used when a coordinate omits it.
const DefaultType = "jar"

// Coordinate identifies an artifact in a repository.
type Coordinate struct {
	Group      string
	ID         string
	Type       string
	Classifier string
	Version    string
}

// ParseCoordinate parses "group:id:version", "group:id:type:version" or
// "group:id:type:classifier:version".
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(s, ":")
	var c Coordinate
	switch len(parts) {
	case 3:
		c = Coordinate{Group: parts[0], ID: parts[1], Type: DefaultType, Version: parts[2]}
	case 4:
		c = Coordinate{Group: parts[0], ID: parts[1], Type: parts[2], Version: parts[3]}
	case 5:
		c = Coordinate{Group: parts[0], ID: parts[1], Type: parts[2], Classifier: parts[3], Version: parts[4]}
	default:
		return Coordinate{}, fmt.Errorf("invalid coordinate %q: expected group:id[:type[:classifier]]:version", s)
	}
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}

// MustParseCoordinate parses a coordinate or panics. Use only for constants/tests.
func MustParseCoordinate(s string) Coordinate {
	c, err := ParseCoordinate(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate checks that the required parts are present.
func (c Coordinate) Validate() error {
	switch {
	case c.Group == "":
		return fmt.Errorf("invalid coordinate %q: group is empty", c.String())
	case c.ID == "":
		return fmt.Errorf("invalid coordinate %q: id is empty", c.String())
	case c.Version == "":
		return fmt.Errorf("invalid coordinate %q: version is empty", c.String())
	}
	return nil
}

// String returns the canonical group:id:type[:classifier]:version form.
func (c Coordinate) String() string {
	typ := c.Type
	if typ == "" {
		typ = DefaultType
	}
	if c.Classifier != "" {
		return strings.Join([]string{c.Group, c.ID, typ, c.Classifier, c.Version}, ":")
	}
	return strings.Join([]string{c.Group, c.ID, typ, c.Version}, ":")
}

// FileName returns {id}-{version}[-{classifier}].{type}.
func (c Coordinate) FileName() string {
	typ := c.Type
	if typ == "" {
		typ = DefaultType
	}
	name := c.ID + "-" + c.Version
	if c.Classifier != "" {
		name += "-" + c.Classifier
	}
	return name + "." + typ
}

// Path returns the slash-separated path of the artifact relative to a repository root.
func (c Coordinate) Path() string {
	return path.Join(strings.ReplaceAll(c.Group, ".", "/"), c.ID, c.Version, c.FileName())
}
