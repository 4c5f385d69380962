package install

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bundledeps "github.com/albertocavalcante/go-bundledeps"
)

func TestDeployProjects(t *testing.T) {
	src := t.TempDir()
	release := filepath.Join(t.TempDir(), "release")
	projects := []*bundledeps.Project{
		{
			Name:       "core",
			Packagings: []bundledeps.Packaging{{Kind: bundledeps.PackagingBundle}},
			Artifact:   writeFile(t, filepath.Join(src, "core", "target", "core-1.0.0.jar"), "core"),
		},
		{
			Name:       "docs",
			Packagings: []bundledeps.Packaging{{Kind: "zip"}},
			Artifact:   filepath.Join(src, "docs.zip"),
		},
		{
			Name:       "ui",
			Packagings: []bundledeps.Packaging{{Kind: bundledeps.PackagingBundle}},
			Artifact:   writeFile(t, filepath.Join(src, "ui", "target", "ui-1.0.0.jar"), "ui"),
		},
	}

	deployed, err := DeployProjects(context.Background(), release, projects)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(release, "plugins", "core-1.0.0.jar"),
		filepath.Join(release, "plugins", "ui-1.0.0.jar"),
	}, deployed)

	data, err := os.ReadFile(deployed[1])
	require.NoError(t, err)
	assert.Equal(t, "ui", string(data))
}

func TestDeployProjects_Errors(t *testing.T) {
	_, err := DeployProjects(context.Background(), "", nil)
	assert.Error(t, err)

	projects := []*bundledeps.Project{{
		Name:       "missing",
		Packagings: []bundledeps.Packaging{{Kind: bundledeps.PackagingBundle}},
		Artifact:   filepath.Join(t.TempDir(), "nope.jar"),
	}}
	_, err = DeployProjects(context.Background(), t.TempDir(), projects)
	assert.ErrorIs(t, err, os.ErrNotExist)

	projects[0].Artifact = ""
	_, err = DeployProjects(context.Background(), t.TempDir(), projects)
	assert.ErrorContains(t, err, "no artifact")
}
