package bundledeps

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertocavalcante/go-bundledeps/document"
)

func openSample(t *testing.T, opts ...Option) *Session {
	t.Helper()
	path := filepath.Join(t.TempDir(), WorkspaceFileName)
	require.NoError(t, os.WriteFile(path, []byte(sampleWorkspace), 0o644))
	s, err := Open(path, opts...)
	require.NoError(t, err)
	return s
}

func TestOpen_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), WorkspaceFileName)
	require.NoError(t, os.WriteFile(path, []byte(`bundle(name = "a", version = "one")`), 0o644))

	_, err := Open(path)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
	assert.ErrorContains(t, err, "parse workspace")

	_, err = Open(filepath.Join(t.TempDir(), "missing.bazel"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpen_InvalidOption(t *testing.T) {
	path := filepath.Join(t.TempDir(), WorkspaceFileName)
	require.NoError(t, os.WriteFile(path, []byte(sampleWorkspace), 0o644))

	_, err := Open(path, WithConcurrency(-1))
	assert.Error(t, err)
}

func TestSession_ResolveAndClean(t *testing.T) {
	s := openSample(t)
	ctx := context.Background()

	doc, err := s.Resolve(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"core", "demo", "ui"}, doc.Names())
	assert.Equal(t, []string{"core"}, doc.Entry("ui").Projects)

	onDisk, err := document.Read(s.Workspace.DocumentPath())
	require.NoError(t, err)
	assert.True(t, document.Compare(doc, onDisk).IsEmpty())

	deps, err := s.Workspace.Dependencies("core")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"javax:javax.servlet:jar:2.5.0",
		"osgi:org.slf4j.api:jar:1.6.1",
		"osgi:org.slf4j.impl:jar:1.5.8",
	}, deps)

	require.NoError(t, s.Clean())
	deps, err = s.Workspace.Dependencies("core")
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestSession_InstallSet(t *testing.T) {
	s := openSample(t)

	bundles, err := s.InstallSet(context.Background())
	require.NoError(t, err)

	names := make([]string, len(bundles))
	for i, b := range bundles {
		names[i] = b.String()
	}
	assert.Equal(t, []string{
		"javax:javax.servlet:jar:2.5.0",
		"osgi:org.slf4j.api:jar:1.6.1",
		"osgi:org.slf4j.impl:jar:1.5.8",
	}, names)
}

func TestSession_Collect(t *testing.T) {
	s := openSample(t)

	_, err := s.Collect(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrProjectNotFound)

	coll, err := s.Collect(context.Background(), "ui")
	require.NoError(t, err)
	assert.Equal(t, []string{"core"}, projectNames(coll.Projects))
	assert.Positive(t, s.Cache.Len())
}
