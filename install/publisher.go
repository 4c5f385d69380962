package install

import (
	"context"
	"path/filepath"

	"github.com/opencontainers/go-digest"

	"github.com/albertocavalcante/go-bundledeps/repository"
)

// Publisher publishes one bundle archive under a repository coordinate.
type Publisher interface {
	// Name identifies the publisher in logs and metrics.
	Name() string
	Publish(ctx context.Context, c repository.Coordinate, file string) (digest.Digest, error)
}

// Compile-time interface compliance checks
var _ Publisher = (*LocalPublisher)(nil)
var _ Publisher = (*RemotePublisher)(nil)

// LocalPublisher installs archives into a local repository, replacing any
// artifact already installed under the same coordinate.
type LocalPublisher struct {
	repo *repository.Local
}

// NewLocalPublisher creates a publisher for repo.
func NewLocalPublisher(repo *repository.Local) *LocalPublisher {
	return &LocalPublisher{repo: repo}
}

// Name returns "install".
func (p *LocalPublisher) Name() string {
	return "install"
}

// Publish removes the stale artifact and installs file in its place.
func (p *LocalPublisher) Publish(ctx context.Context, c repository.Coordinate, file string) (digest.Digest, error) {
	target := p.repo.Locate(c)
	if same, err := samePath(target, file); err == nil && same {
		// Already installed from the repository itself.
		return digestOf(file)
	}
	if err := p.repo.Remove(c); err != nil {
		return "", err
	}
	return p.repo.Install(ctx, c, file)
}

// RemotePublisher uploads archives to a remote repository.
type RemotePublisher struct {
	repo *repository.Remote
}

// NewRemotePublisher creates a publisher for repo.
func NewRemotePublisher(repo *repository.Remote) *RemotePublisher {
	return &RemotePublisher{repo: repo}
}

// Name returns "upload".
func (p *RemotePublisher) Name() string {
	return "upload"
}

// Publish uploads file.
func (p *RemotePublisher) Publish(ctx context.Context, c repository.Coordinate, file string) (digest.Digest, error) {
	return p.repo.Upload(ctx, c, file)
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return absA == absB, nil
}
