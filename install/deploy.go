package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	bundledeps "github.com/albertocavalcante/go-bundledeps"
)

// PluginsDir is the directory below a release root that receives deployed bundles.
const PluginsDir = "plugins"

// DeployProjects copies the artifact of every bundle-packaged project into
// <releaseRoot>/plugins, keeping the artifact's file name. It stops at the
// first project whose artifact cannot be copied and returns the paths
// deployed so far.
func DeployProjects(ctx context.Context, releaseRoot string, projects []*bundledeps.Project) ([]string, error) {
	if releaseRoot == "" {
		return nil, errors.New("release root is not set")
	}
	logger := loggerFrom(ctx)
	dir := filepath.Join(releaseRoot, PluginsDir)
	logger.InfoContext(ctx, "deploy directory", "dir", dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	var deployed []string
	for _, p := range projects {
		if len(p.BundlePackagings()) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return deployed, err
		}
		if p.Artifact == "" {
			return deployed, fmt.Errorf("project %s: no artifact", p.Name)
		}
		target := filepath.Join(dir, filepath.Base(p.Artifact))
		if err := copyArtifact(p.Artifact, target); err != nil {
			return deployed, fmt.Errorf("project %s: %w", p.Name, err)
		}
		logger.InfoContext(ctx, "deployed bundle", "project", p.Name, "artifact", target)
		deployed = append(deployed, target)
	}
	return deployed, nil
}

func copyArtifact(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
