package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the artifact is not present in the repository.
var ErrNotFound = errors.New("artifact not found")

// UploadError describes a rejected upload.
type UploadError struct {
	Coordinate Coordinate
	URL        string
	StatusCode int
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s to %s: status %d", e.Coordinate, e.URL, e.StatusCode)
}
