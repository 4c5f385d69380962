package bundledeps

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleWorkspace = `
workspace(name = "demo", release_to = "release")

project(
    name = "demo",
    root = True,
    packaging = [],
)

project(
    name = "core",
    symbolic_name = "com.example.core",
    version = "1.0.0",
    requires = ['org.slf4j.api;bundle-version="[1.5,2.0)"'],
    imports = ["javax.servlet;version=2.5;resolution:=optional"],
    exports = ["com.example.core"],
    artifact = "core/target/core-1.0.0.jar",
    manifest = {"Bundle-RequiredExecutionEnvironment": "JavaSE-1.6, J2SE-1.5"},
)

project(
    name = "ui",
    symbolic_name = "com.example.ui",
    version = "1.0.0",
    requires = ["com.example.core"],
    uses = ["core"],
    artifact = "ui/target/ui-1.0.0.jar",
)

bundle(name = "org.slf4j.api", version = "1.5.8", file = "lib/slf4j-api-1.5.8.jar", exports = ["org.slf4j"])
bundle(name = "org.slf4j.api", version = "1.6.1", file = "lib/slf4j-api-1.6.1.jar", exports = ["org.slf4j"])
bundle(name = "javax.servlet", version = "2.5.0", group = "javax", exports = ["javax.servlet"])
fragment(name = "org.slf4j.impl", host = "org.slf4j.api", version = "1.5.8", file = "lib/slf4j-impl.jar")
`

func TestParseWorkspaceContent(t *testing.T) {
	ws, err := ParseWorkspaceContent(WorkspaceFileName, []byte(sampleWorkspace), "/ws")
	require.NoError(t, err)

	assert.Equal(t, "demo", ws.Name)
	assert.Equal(t, "/ws", ws.Dir)
	assert.Equal(t, filepath.Join("/ws", "release"), ws.ReleaseTo)
	require.NotNil(t, ws.Root)
	assert.Equal(t, "demo", ws.Root.Name)
	assert.Empty(t, ws.Root.Packagings)
	assert.Equal(t, []string{"core", "ui", "demo"}, ws.ProjectNames())

	core := ws.Project("core")
	require.NotNil(t, core)
	require.NotNil(t, core.Bundle)
	assert.Equal(t, "com.example.core", core.Bundle.SymbolicName)
	assert.Equal(t, filepath.Join("/ws", "core"), core.Dir)
	assert.Equal(t, filepath.Join("/ws", "core/target/core-1.0.0.jar"), core.Artifact)
	assert.Equal(t, []Packaging{{Kind: PackagingBundle}}, core.Packagings)
	require.Len(t, core.Bundle.Requires, 1)
	assert.Equal(t, "org.slf4j.api", core.Bundle.Requires[0].Name)
	assert.Equal(t, "[1.5,2.0)", core.Bundle.Requires[0].Range.String())
	require.Len(t, core.Bundle.Imports, 1)
	assert.True(t, core.Bundle.Imports[0].Optional)

	ui := ws.Project("ui")
	require.Len(t, ui.Uses, 1)
	assert.Same(t, core, ui.Uses[0])

	require.Len(t, ws.Bundles, 4)
	for _, b := range ws.Bundles[:2] {
		require.Len(t, b.Fragments, 1)
		assert.Equal(t, "org.slf4j.impl", b.Fragments[0].SymbolicName)
	}
	assert.True(t, ws.Bundles[3].IsFragment())
	assert.Equal(t, "javax:javax.servlet:jar:2.5.0", ws.Bundles[2].String())
}

func TestParseWorkspaceContent_Collect(t *testing.T) {
	ws, err := ParseWorkspaceContent(WorkspaceFileName, []byte(sampleWorkspace), "/ws")
	require.NoError(t, err)
	s := testSession(t, ws)

	core, err := s.Collect(context.Background(), "core")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"javax:javax.servlet:jar:2.5.0",
		"osgi:org.slf4j.api:jar:1.6.1",
		"osgi:org.slf4j.impl:jar:1.5.8",
	}, core.Strings())

	ui, err := s.Collect(context.Background(), "ui")
	require.NoError(t, err)
	assert.Equal(t, []string{"core"}, ui.Strings())
}

func TestParseWorkspaceContent_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantLine int
	}{
		{
			name:     "syntax error",
			content:  "project(name = ",
			wantLine: 0,
		},
		{
			name:     "project without name",
			content:  "\nproject(symbolic_name = \"a\")",
			wantLine: 2,
		},
		{
			name:     "duplicate project",
			content:  "project(name = \"a\")\nproject(name = \"a\")",
			wantLine: 2,
		},
		{
			name:     "bad requirement",
			content:  "bundle(name = \"a\", version = \"1.0\", requires = [\"b;version=[2,1)\"])",
			wantLine: 1,
		},
		{
			name:     "bad version",
			content:  "bundle(name = \"a\", version = \"one\")",
			wantLine: 1,
		},
		{
			name:     "fragment without host",
			content:  "fragment(name = \"f\", version = \"1.0\")",
			wantLine: 1,
		},
		{
			name:     "unknown used project",
			content:  "project(name = \"a\", uses = [\"ghost\"])",
			wantLine: 1,
		},
		{
			name:     "two roots",
			content:  "project(name = \"a\", root = True)\nproject(name = \"b\", root = True)",
			wantLine: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWorkspaceContent(WorkspaceFileName, []byte(tt.content), "/ws")
			require.Error(t, err)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.wantLine, perr.Line)
			assert.Contains(t, err.Error(), WorkspaceFileName)
		})
	}
}

func TestParseWorkspaceFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, WorkspaceFileName)
	require.NoError(t, os.WriteFile(path, []byte(sampleWorkspace), 0o644))

	ws, err := ParseWorkspaceFile(path)
	require.NoError(t, err)
	assert.Equal(t, dir, ws.Dir)
	assert.Equal(t, filepath.Join(dir, "lib", "slf4j-api-1.5.8.jar"), ws.Bundles[0].File)

	_, err = ParseWorkspaceFile(filepath.Join(dir, "missing.bazel"))
	assert.Error(t, err)
}
