// Package label provides strongly-typed, validated identifiers for OSGi bundles.
//
// All types in this package are immutable and validate their values at construction time.
// Zero values are generally invalid - use the constructor functions (NewSymbolicName,
// NewVersion, NewRange, ParseRequirement) to create valid instances.
//
// # Types
//
// The main types are:
//   - [SymbolicName]: A bundle symbolic name or exported package name (e.g., "org.slf4j.api")
//   - [Version]: An OSGi version (e.g., "1.5.8", "3.6.0.v20100517")
//   - [Range]: An OSGi version range (e.g., "[1.0,2.0)")
//   - [Requirement]: A parsed require/import entry (e.g., "org.slf4j.api;version=[1.5,2)")
//
// # Validation Patterns
//
// Symbolic names must match: [A-Za-z0-9_-]+(\.[A-Za-z0-9_-]+)*
package label

import (
	"fmt"
	"regexp"
)

// SymbolicName represents a validated bundle symbolic name or package name.
type SymbolicName struct {
	name string
}

var symbolicNameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+(\.[A-Za-z0-9_-]+)*$`)

// NewSymbolicName creates a validated SymbolicName from a string.
func NewSymbolicName(name string) (SymbolicName, error) {
	if name == "" {
		return SymbolicName{}, fmt.Errorf("symbolic name cannot be empty")
	}
	if !symbolicNameRegex.MatchString(name) {
		return SymbolicName{}, fmt.Errorf("invalid symbolic name %q: must be dot-separated segments of [A-Za-z0-9_-]", name)
	}
	return SymbolicName{name: name}, nil
}

// MustSymbolicName creates a SymbolicName or panics. Use only for constants/tests.
func MustSymbolicName(name string) SymbolicName {
	n, err := NewSymbolicName(name)
	if err != nil {
		panic(err)
	}
	return n
}

// String returns the name.
func (n SymbolicName) String() string {
	return n.name
}

// IsEmpty returns true if this is a zero-value SymbolicName.
func (n SymbolicName) IsEmpty() bool {
	return n.name == ""
}
