package repository

import (
	"context"
	_ "crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/opencontainers/go-digest"
)

// checksumSuffix is appended to an installed artifact's path to hold its digest.
const checksumSuffix = ".sha256"

// Local is a repository rooted at a directory on the local file system.
type Local struct {
	rootPath string
}

// NewLocal creates a local repository rooted at rootPath.
// The directory is created on first install.
func NewLocal(rootPath string) *Local {
	return &Local{rootPath: filepath.Clean(rootPath)}
}

// Root returns the repository root directory.
func (r *Local) Root() string {
	return r.rootPath
}

// Locate returns the path an artifact with the given coordinate is (or would be) installed at.
func (r *Local) Locate(c Coordinate) string {
	return filepath.Join(r.rootPath, filepath.FromSlash(c.Path()))
}

// Resolve returns the path of an installed artifact, or ErrNotFound.
func (r *Local) Resolve(ctx context.Context, c Coordinate) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p := r.Locate(c)
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("resolve %s: %w", c, ErrNotFound)
		}
		return "", fmt.Errorf("resolve %s: %w", c, err)
	}
	return p, nil
}

// Install copies source into the repository at the coordinate's location and
// records its digest next to it. An existing artifact is replaced.
func (r *Local) Install(ctx context.Context, c Coordinate, source string) (digest.Digest, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	target := r.Locate(c)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("install %s: %w", c, err)
	}

	dgst, err := copyFile(source, target)
	if err != nil {
		return "", fmt.Errorf("install %s: %w", c, err)
	}
	if err := os.WriteFile(target+checksumSuffix, []byte(dgst.Encoded()+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("install %s: write checksum: %w", c, err)
	}
	return dgst, nil
}

// Remove deletes an installed artifact and its checksum. Missing files are not an error.
func (r *Local) Remove(c Coordinate) error {
	target := r.Locate(c)
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("remove %s: %w", c, err)
	}
	if err := os.RemoveAll(target + checksumSuffix); err != nil {
		return fmt.Errorf("remove %s: %w", c, err)
	}
	return nil
}

// copyFile copies src to dst through a temporary file in dst's directory and
// returns the sha256 digest of the copied content.
func copyFile(src, dst string) (digest.Digest, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".install-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	digester := digest.Canonical.Digester()
	if _, err := io.Copy(io.MultiWriter(tmp, digester.Hash()), in); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", err
	}
	return digester.Digest(), nil
}
