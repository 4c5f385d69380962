package install

import (
	"errors"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/albertocavalcante/go-bundledeps/repository"
)

// Option configures a Pipeline.
type Option func(*config) error

type config struct {
	tempDir    string
	pattern    string
	lookup     *repository.Local
	registerer prometheus.Registerer
	logger     *slog.Logger
}

// WithTempDir sets where repacked archives are written. Defaults to os.TempDir().
func WithTempDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return errors.New("temp dir cannot be empty")
		}
		c.tempDir = dir
		return nil
	}
}

// WithNestedArchivePattern sets the glob selecting nested archives to
// flatten when repacking. Paths are slash-separated and relative to the
// bundle directory.
func WithNestedArchivePattern(pattern string) Option {
	return func(c *config) error {
		if pattern == "" {
			return errors.New("nested archive pattern cannot be empty")
		}
		c.pattern = pattern
		return nil
	}
}

// WithLookup sets the repository used to find bundles that have no backing file.
func WithLookup(repo *repository.Local) Option {
	return func(c *config) error {
		c.lookup = repo
		return nil
	}
}

// WithRegisterer registers the pipeline metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *config) error {
		c.registerer = reg
		return nil
	}
}

// WithLogger sets the logger. Without it the logger carried by the context
// passed to Run is used.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) error {
		c.logger = l
		return nil
	}
}

func newConfig(opts ...Option) (*config, error) {
	c := &config{
		tempDir: os.TempDir(),
		pattern: DefaultNestedArchivePattern,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}
