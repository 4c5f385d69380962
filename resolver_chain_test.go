package bundledeps

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainResolver_BundleFirstMatchWins(t *testing.T) {
	ref := RequireBundle(BundleRef{Name: "a"})
	workspace := testBundle("a", "1.0.0")
	platform := testBundle("a", "9.0.0")

	second := NewCountingResolver(StaticResolver{ref.Key(): {BundleTarget(platform)}})
	chain := NewChainResolver(
		StaticResolver{ref.Key(): {BundleTarget(workspace)}},
		second,
	)

	targets, err := chain.Resolve(context.Background(), ref)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Same(t, workspace, targets[0].Bundle())
	assert.Equal(t, 0, second.Total())
}

func TestChainResolver_BundleFallsThrough(t *testing.T) {
	ref := RequireBundle(BundleRef{Name: "a"})
	platform := testBundle("a", "9.0.0")
	chain := NewChainResolver(StaticResolver{}, nil, StaticResolver{ref.Key(): {BundleTarget(platform)}})

	assert.Equal(t, 2, chain.Len())
	targets, err := chain.Resolve(context.Background(), ref)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Same(t, platform, targets[0].Bundle())
}

func TestChainResolver_PackageConcatenates(t *testing.T) {
	ref := ImportPackage(PackageRef{Name: "org.shared"})
	a := testBundle("a", "1.0.0")
	b := testBundle("b", "1.0.0")
	chain := NewChainResolver(
		StaticResolver{ref.Key(): {BundleTarget(a)}},
		StaticResolver{ref.Key(): {BundleTarget(a), BundleTarget(b)}},
	)

	targets, err := chain.Resolve(context.Background(), ref)
	require.NoError(t, err)
	require.Len(t, targets, 2)
	assert.Same(t, a, targets[0].Bundle())
	assert.Same(t, b, targets[1].Bundle())
}

func TestChainResolver_ErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	chain := NewChainResolver(StaticResolver{}, NewFailingResolver(boom))

	_, err := chain.Resolve(context.Background(), RequireBundle(BundleRef{Name: "a"}))
	assert.ErrorIs(t, err, boom)
}

func TestNewSession_PlatformResolver(t *testing.T) {
	root := testProject("app", "org.platform")
	ws := &Workspace{Projects: []*Project{root}}
	platform := &Workspace{Bundles: []*Bundle{testBundle("org.platform", "4.2.0")}}

	s := testSession(t, ws, WithResolvers(NewIndex(platform)))
	coll, err := s.Collect(context.Background(), "app")
	require.NoError(t, err)
	assert.Equal(t, []string{"org.platform"}, symbolicNames(coll.Bundles))

	_, err = s.Collect(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}
