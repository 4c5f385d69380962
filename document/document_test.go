package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadDependencies(t *testing.T) {
	path := DefaultPath(t.TempDir())

	_, err := Write(path, []string{"core", "util", "app"}, func(name string, e *Entry) {
		switch name {
		case "core":
			e.Dependencies = []string{"org.slf4j:org.slf4j.api:jar:1.5.8", "g:b:jar:1.0", "g:b:jar:1.0"}
			e.Projects = []string{"util", "util"}
		case "app":
			e.Projects = []string{"util", "core"}
		}
	})
	require.NoError(t, err)

	doc, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"app", "core", "util"}, doc.Names())

	assert.Equal(t, []string{"g:b:jar:1.0", "org.slf4j:org.slf4j.api:jar:1.5.8", "util"}, doc.Dependencies("core"))
	assert.Equal(t, []string{"core", "util"}, doc.Dependencies("app"))
	assert.Empty(t, doc.Dependencies("util"))
	assert.True(t, doc.Has("util"))
	assert.Empty(t, doc.Dependencies("unknown"))
	assert.False(t, doc.Has("unknown"))
}

func TestWrite_OmitsEmptyLists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	_, err := Write(path, []string{"b", "a"}, func(name string, e *Entry) {
		if name == "b" {
			e.Dependencies = []string{"z:z:jar:1", "a:a:jar:1"}
		}
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a: {}\nb:\n  dependencies:\n    - a:a:jar:1\n    - z:z:jar:1\n", string(data))
}

func TestWrite_Overwrites(t *testing.T) {
	path := DefaultPath(t.TempDir())

	_, err := Write(path, []string{"old"}, func(_ string, e *Entry) {
		e.Projects = []string{"x"}
	})
	require.NoError(t, err)
	_, err = Write(path, []string{"new"}, nil)
	require.NoError(t, err)

	doc, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, doc.Names())
	assert.False(t, doc.Has("old"))
}

func TestClean(t *testing.T) {
	path := DefaultPath(t.TempDir())
	_, err := Write(path, []string{"core"}, func(_ string, e *Entry) {
		e.Dependencies = []string{"g:a:jar:1.0"}
	})
	require.NoError(t, err)

	require.NoError(t, Clean(path, []string{"core", "root"}))

	doc, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"core", "root"}, doc.Names())
	for _, name := range doc.Names() {
		assert.True(t, doc.Entry(name).IsEmpty(), name)
	}
}

func TestRead_Errors(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	doc, err := ReadOrEmpty(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Empty(t, doc.Names())

	_, err = Parse([]byte("core: [unclosed"))
	assert.Error(t, err)
}

func TestParse_Empty(t *testing.T) {
	doc, err := Parse(nil)
	require.NoError(t, err)
	assert.NotNil(t, doc.Projects)
	assert.False(t, Exists(filepath.Join(t.TempDir(), FileName)))
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, FileName, DefaultPath(""))
	assert.Equal(t, filepath.Join("ws", FileName), DefaultPath("ws"))
}
