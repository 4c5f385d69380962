package bundledeps

import (
	"context"
	"errors"
	"log/slog"
)

// Option configures collection behavior.
type Option func(*config) error

// config holds all collection configuration.
type config struct {
	strategy    Strategy
	manifests   ManifestSource
	concurrency int
	onProgress  func(ProgressEvent)
	resolvers   []Resolver

	// logger is the structured logger for debug output.
	// If nil, logging is disabled (silent mode).
	logger *slog.Logger
}

// ProgressStage identifies a point in a workspace collection.
type ProgressStage string

const (
	// ProgressProjectStarted fires before a project's closure is computed.
	ProgressProjectStarted ProgressStage = "project_started"
	// ProgressProjectDone fires after a project's closure is computed.
	ProgressProjectDone ProgressStage = "project_done"
	// ProgressProjectFailed fires when a project is recorded as failed.
	ProgressProjectFailed ProgressStage = "project_failed"
)

// ProgressEvent reports workspace collection progress.
type ProgressEvent struct {
	Stage   ProgressStage
	Project string
	Bundles int
	Err     error
}

// WithLogger sets a structured logger for collection diagnostics.
// If not set, logging is disabled (silent mode).
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With("component", "bundledeps")
//	collector, err := NewCollector(cache, WithLogger(logger))
func WithLogger(l *slog.Logger) Option {
	return func(c *config) error {
		c.logger = l
		return nil
	}
}

// WithStrategy replaces the resolve and children functions the walk uses.
func WithStrategy(s Strategy) Option {
	return func(c *config) error {
		if s == nil {
			return errors.New("strategy cannot be nil")
		}
		c.strategy = s
		return nil
	}
}

// WithManifestSource replaces how direct dependencies of a project are read.
func WithManifestSource(m ManifestSource) Option {
	return func(c *config) error {
		if m == nil {
			return errors.New("manifest source cannot be nil")
		}
		c.manifests = m
		return nil
	}
}

// WithConcurrency sets how many projects a workspace collection processes at
// once. Zero or one means sequential.
func WithConcurrency(n int) Option {
	return func(c *config) error {
		c.concurrency = n
		return nil
	}
}

// WithProgress sets a callback for workspace collection progress events.
// The callback may be invoked from several goroutines when concurrency is enabled.
func WithProgress(fn func(ProgressEvent)) Option {
	return func(c *config) error {
		c.onProgress = fn
		return nil
	}
}

// WithResolvers adds resolvers consulted after the workspace index, in
// priority order. Used by NewSession.
func WithResolvers(resolvers ...Resolver) Option {
	return func(c *config) error {
		c.resolvers = append(c.resolvers, resolvers...)
		return nil
	}
}

// validate checks the configuration for logical consistency.
func (c *config) validate() error {
	if c.concurrency < 0 {
		return errors.New("concurrency must not be negative")
	}
	return nil
}

// log returns the configured logger, or a no-op logger if none was set.
func (c *config) log() *slog.Logger {
	return loggerOrDiscard(c.logger)
}

func (c *config) progress(e ProgressEvent) {
	if c.onProgress != nil {
		c.onProgress(e)
	}
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.New(discardHandler{})
}

// discardHandler is a slog.Handler that discards all log records.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// newConfig applies the given options and validates the result.
func newConfig(opts ...Option) (*config, error) {
	c := &config{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}
