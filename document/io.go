package document

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// documentPermissions is the file permission mode for the dependencies document.
const documentPermissions = 0o644

// FillFunc populates the entry of one project before the document is written.
type FillFunc func(project string, entry *Entry)

// Write builds a document with one entry per project name, lets fill populate
// each entry, and writes the whole document to path, replacing any previous file.
// A nil fill writes empty entries.
func Write(path string, projects []string, fill FillFunc) (*Document, error) {
	doc := New()
	for _, name := range projects {
		var e Entry
		if fill != nil {
			fill(name, &e)
		}
		doc.Projects[name] = Entry{
			Dependencies: normalize(e.Dependencies),
			Projects:     normalize(e.Projects),
		}
	}
	if err := doc.WriteFile(path); err != nil {
		return nil, err
	}
	return doc, nil
}

// Clean rewrites the document at path with an empty entry for every project.
func Clean(path string, projects []string) error {
	_, err := Write(path, projects, nil)
	return err
}

// Read reads and parses the document at path.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dependencies document: %w", err)
	}
	return Parse(data)
}

// ReadOrEmpty reads the document at path, returning an empty document if the
// file does not exist.
func ReadOrEmpty(path string) (*Document, error) {
	doc, err := Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	return doc, err
}

// Parse parses document YAML.
func Parse(data []byte) (*Document, error) {
	projects := make(map[string]Entry)
	if err := yaml.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("failed to parse dependencies document: %w", err)
	}
	if projects == nil {
		projects = make(map[string]Entry)
	}
	return &Document{Projects: projects}, nil
}

// Marshal serializes the document. Project keys are emitted in sorted order.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.Projects); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes the document to path, creating parent directories.
func (d *Document) WriteFile(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to write dependencies document: %w", err)
	}
	if err := os.WriteFile(path, data, documentPermissions); err != nil {
		return fmt.Errorf("failed to write dependencies document: %w", err)
	}
	return nil
}

// Exists returns true if a document exists at the given path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// DefaultPath returns the document path for a workspace root.
func DefaultPath(workspaceRoot string) string {
	if workspaceRoot == "" {
		return FileName
	}
	return filepath.Join(workspaceRoot, FileName)
}
