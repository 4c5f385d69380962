package install

import (
	"archive/zip"
	_ "crypto/sha256"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gobwas/glob"
	"github.com/opencontainers/go-digest"
)

// DefaultNestedArchivePattern selects the archives inside an exploded bundle
// whose entries are flattened into the repacked archive.
const DefaultNestedArchivePattern = "**.jar"

// entryTime is stamped on every entry so repacking is reproducible.
var entryTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// repacker turns exploded bundle directories into archives.
type repacker struct {
	tempDir string
	nested  glob.Glob
}

func newRepacker(tempDir, pattern string) (*repacker, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("invalid nested archive pattern %q: %w", pattern, err)
	}
	return &repacker{tempDir: tempDir, nested: g}, nil
}

// repack writes the contents of dir to a new archive in the temporary
// directory and returns its path. Nothing that already exists there is
// replaced, so dir may itself live in the temporary directory.
//
// Files under dir are added under their path relative to dir in lexical
// order. Files matching the nested pattern are not added themselves; once
// every other file is in, their non-directory entries are added at the
// archive root in the same order. An entry name is written once: files of
// dir take precedence over flattened entries, and among nested archives the
// first one wins.
func (r *repacker) repack(dir string) (string, error) {
	if err := os.MkdirAll(r.tempDir, 0o755); err != nil {
		return "", err
	}

	var files, nested []string
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if r.nested.Match(filepath.ToSlash(rel)) {
			nested = append(nested, path)
		} else {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		return "", fmt.Errorf("repack %s: %w", dir, walkErr)
	}

	out, err := os.CreateTemp(r.tempDir, filepath.Base(dir)+"-*.jar")
	if err != nil {
		return "", err
	}
	target := out.Name()
	zw := &archiveWriter{w: zip.NewWriter(out), seen: make(map[string]struct{})}

	writeErr := func() error {
		for _, path := range files {
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			if err := zw.addFile(filepath.ToSlash(rel), path); err != nil {
				return err
			}
		}
		for _, path := range nested {
			if err := zw.flatten(path); err != nil {
				return err
			}
		}
		return nil
	}()

	closeErr := zw.w.Close()
	fileErr := out.Close()
	for _, err := range []error{writeErr, closeErr, fileErr} {
		if err != nil {
			_ = os.Remove(target)
			return "", fmt.Errorf("repack %s: %w", dir, err)
		}
	}
	return target, nil
}

type archiveWriter struct {
	w    *zip.Writer
	seen map[string]struct{}
}

func (a *archiveWriter) create(name string) (io.Writer, bool, error) {
	if _, dup := a.seen[name]; dup {
		return nil, false, nil
	}
	a.seen[name] = struct{}{}
	w, err := a.w.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: entryTime,
	})
	return w, err == nil, err
}

func (a *archiveWriter) addFile(name, path string) error {
	w, ok, err := a.create(name)
	if err != nil || !ok {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

// flatten copies the non-directory entries of the archive at path.
func (a *archiveWriter) flatten(path string) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("open nested archive %s: %w", path, err)
	}
	defer zr.Close()

	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		if err := a.copyEntry(entry); err != nil {
			return fmt.Errorf("nested archive %s: %w", path, err)
		}
	}
	return nil
}

func (a *archiveWriter) copyEntry(entry *zip.File) error {
	w, ok, err := a.create(entry.Name)
	if err != nil || !ok {
		return err
	}
	rc, err := entry.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	_, err = io.Copy(w, rc)
	return err
}

func digestOf(path string) (digest.Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return digest.Canonical.FromReader(f)
}
