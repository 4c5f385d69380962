package bundledeps

import (
	"errors"
	"fmt"
)

// Sentinel errors for collection failures.
var (
	// ErrUnsupportedConfiguration indicates a project declares more than one
	// bundle packaging, so its manifest cannot be determined.
	ErrUnsupportedConfiguration = errors.New("unsupported configuration")

	// ErrUnknownRef indicates a reference whose kind the collector does not handle.
	ErrUnknownRef = errors.New("unknown reference kind")

	// ErrNilProject indicates a collection was requested without a project.
	ErrNilProject = errors.New("project is nil")

	// ErrProjectNotFound indicates a project name is not part of the workspace.
	ErrProjectNotFound = errors.New("project not found")
)

// ProjectError records a collection failure for a single workspace project.
type ProjectError struct {
	Project string
	Err     error
}

func (e *ProjectError) Error() string {
	return fmt.Sprintf("project %s: %v", e.Project, e.Err)
}

func (e *ProjectError) Unwrap() error {
	return e.Err
}
