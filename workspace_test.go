package bundledeps

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertocavalcante/go-bundledeps/document"
)

func sampleModel(dir string) *Workspace {
	core := testProject("core", "a")
	ui := testProject("ui", "core", "b")
	ui.Uses = []*Project{core}
	broken := &Project{
		Name:       "broken",
		Packagings: []Packaging{{Kind: PackagingBundle}, {Kind: PackagingBundle}},
	}
	root := &Project{Name: "root", Uses: []*Project{core, ui}}
	return &Workspace{
		Name:     "root",
		Dir:      dir,
		Root:     root,
		Projects: []*Project{core, ui, broken},
		Bundles: []*Bundle{
			testBundle("a", "1.0.0", "c"),
			testBundle("b", "1.0.0", "c"),
			testBundle("c", "1.0.0"),
		},
	}
}

func TestWorkspace_CollectRecordsUnsupportedProjects(t *testing.T) {
	ws := sampleModel(t.TempDir())
	s := testSession(t, ws)

	res, err := ws.Collect(context.Background(), s.Collector)
	require.NoError(t, err)
	require.Len(t, res.Results, 4)

	failed := res.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "broken", failed[0].Project.Name)
	assert.ErrorIs(t, res.Err(), ErrUnsupportedConfiguration)

	var perr *ProjectError
	require.ErrorAs(t, res.Err(), &perr)
	assert.Equal(t, "broken", perr.Project)

	assert.Equal(t, []string{"core", "osgi:b:jar:1.0.0", "osgi:c:jar:1.0.0"}, res.Collection("ui").Strings())
	assert.Equal(t, []string{"core", "ui"}, res.Collection("root").Strings())
}

func TestResolveWorkspace_WritesDocument(t *testing.T) {
	ws := sampleModel(t.TempDir())
	s := testSession(t, ws)

	doc, err := s.Resolve(context.Background())
	require.ErrorIs(t, err, ErrUnsupportedConfiguration)
	require.NotNil(t, doc)

	assert.Equal(t, []string{"core", "root", "ui"}, doc.Names())
	assert.False(t, doc.Has("broken"))
	assert.Equal(t, []string{"osgi:a:jar:1.0.0", "osgi:c:jar:1.0.0"}, doc.Entry("core").Dependencies)
	assert.Equal(t, []string{"core"}, doc.Entry("ui").Projects)

	onDisk, err := document.Read(ws.DocumentPath())
	require.NoError(t, err)
	assert.Equal(t, doc, onDisk)

	deps, err := ws.Dependencies("ui")
	require.NoError(t, err)
	assert.Equal(t, []string{"core", "osgi:b:jar:1.0.0", "osgi:c:jar:1.0.0"}, deps)

	_, err = ws.Dependencies("ghost")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestCleanWorkspace(t *testing.T) {
	ws := sampleModel(t.TempDir())
	s := testSession(t, ws)
	_, _ = s.Resolve(context.Background())

	require.NoError(t, s.Clean())

	doc, err := document.Read(ws.DocumentPath())
	require.NoError(t, err)
	assert.Equal(t, []string{"broken", "core", "root", "ui"}, doc.Names())
	for _, name := range doc.Names() {
		assert.True(t, doc.Entry(name).IsEmpty(), name)
	}

	deps, err := ws.Dependencies("core")
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestWorkspace_DependenciesWithoutDocument(t *testing.T) {
	ws := sampleModel(t.TempDir())
	deps, err := ws.Dependencies("core")
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestWorkspace_InstallSet(t *testing.T) {
	ws := sampleModel(t.TempDir())
	s := testSession(t, ws)

	_, err := s.InstallSet(context.Background())
	require.ErrorIs(t, err, ErrUnsupportedConfiguration)

	ws.Projects = ws.Projects[:2]
	bundles, err := s.InstallSet(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, symbolicNames(bundles))
}

func TestWorkspace_CollectConcurrentKeepsOrder(t *testing.T) {
	ws := sampleModel(t.TempDir())
	ws.Projects = ws.Projects[:2]

	var mu sync.Mutex
	var events []ProgressEvent
	s := testSession(t, ws, WithConcurrency(4), WithProgress(func(e ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e)
	}))

	res, err := ws.Collect(context.Background(), s.Collector)
	require.NoError(t, err)

	var names []string
	for _, r := range res.Results {
		names = append(names, r.Project.Name)
	}
	assert.Equal(t, []string{"core", "ui", "root"}, names)
	assert.Len(t, events, 6)
}

func TestWorkspace_CollectCancelled(t *testing.T) {
	ws := sampleModel(t.TempDir())
	s := testSession(t, ws)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ws.Collect(ctx, s.Collector)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWorkspace_DeployableProjects(t *testing.T) {
	ws := sampleModel(t.TempDir())
	ws.Projects = append(ws.Projects, &Project{Name: "plain", Packagings: []Packaging{{Kind: "jar"}}})

	assert.Equal(t, []string{"core", "ui", "broken"}, projectNames(ws.DeployableProjects()))
}
