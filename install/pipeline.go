package install

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/opencontainers/go-digest"
	slogcontext "github.com/veqryn/slog-context"

	bundledeps "github.com/albertocavalcante/go-bundledeps"
)

// ErrNoSource indicates a bundle has no backing file and no lookup
// repository could provide one.
var ErrNoSource = errors.New("bundle has no backing file")

// Stage names the pipeline step a failure happened in.
type Stage string

const (
	StageLocate  Stage = "locate"
	StageRepack  Stage = "repack"
	StagePublish Stage = "publish"
)

// Result describes one published bundle.
type Result struct {
	Bundle *bundledeps.Bundle
	// Source is the archive that was published. It differs from Bundle.File
	// when the bundle was repacked or looked up. A repacked archive is
	// removed once published.
	Source   string
	Digest   digest.Digest
	Repacked bool
}

// Failure records why one bundle could not be published.
type Failure struct {
	Bundle *bundledeps.Bundle
	Stage  Stage
	Err    error
}

func (f Failure) Error() string {
	return fmt.Sprintf("error installing the artifact %s (%s): %v", f.Bundle, f.Stage, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Report is the outcome of a pipeline run.
type Report struct {
	Installed []Result
	Failures  []Failure
}

// Err joins the failures, or returns nil.
func (r *Report) Err() error {
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Pipeline publishes bundles through a single Publisher.
type Pipeline struct {
	publisher Publisher
	repacker  *repacker
	cfg       *config
	metrics   *Metrics
}

// New creates a pipeline bound to publisher.
func New(publisher Publisher, opts ...Option) (*Pipeline, error) {
	if publisher == nil {
		return nil, errors.New("publisher cannot be nil")
	}
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	rp, err := newRepacker(cfg.tempDir, cfg.pattern)
	if err != nil {
		return nil, err
	}
	m, err := NewMetrics(cfg.registerer)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	return &Pipeline{publisher: publisher, repacker: rp, cfg: cfg, metrics: m}, nil
}

// Metrics returns the pipeline's counters.
func (p *Pipeline) Metrics() *Metrics {
	return p.metrics
}

// Run publishes bundles in the given order. Every bundle either ends up in
// Report.Installed or produces exactly one entry in Report.Failures; a
// failure never stops the batch. Bundles are not modified.
func (p *Pipeline) Run(ctx context.Context, bundles []*bundledeps.Bundle) *Report {
	logger := p.logger(ctx).With("publisher", p.publisher.Name())
	report := &Report{}

	for _, b := range bundles {
		start := time.Now()
		res, stage, err := p.publish(ctx, b)
		p.metrics.Duration.WithLabelValues(p.publisher.Name()).Observe(time.Since(start).Seconds())
		if err != nil {
			p.metrics.FailedTotal.WithLabelValues(p.publisher.Name(), string(stage)).Inc()
			logger.ErrorContext(ctx, "error installing the artifact",
				"bundle", b.String(),
				"stage", stage,
				"error", err)
			report.Failures = append(report.Failures, Failure{Bundle: b, Stage: stage, Err: err})
			continue
		}

		p.metrics.InstalledTotal.WithLabelValues(p.publisher.Name()).Inc()
		if res.Repacked {
			p.metrics.RepackedTotal.Inc()
		}
		logger.InfoContext(ctx, "published bundle",
			"bundle", b.String(),
			"digest", res.Digest.String())
		report.Installed = append(report.Installed, res)
	}
	return report
}

func (p *Pipeline) publish(ctx context.Context, b *bundledeps.Bundle) (Result, Stage, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, StageLocate, err
	}
	res := Result{Bundle: b}

	source, err := p.locate(ctx, b)
	if err != nil {
		return res, StageLocate, err
	}
	info, err := os.Stat(source)
	if err != nil {
		return res, StageLocate, err
	}
	if info.IsDir() {
		source, err = p.repacker.repack(source)
		if err != nil {
			return res, StageRepack, err
		}
		defer os.Remove(source)
		res.Repacked = true
	}
	res.Source = source

	dgst, err := p.publisher.Publish(ctx, b.Coordinate(), source)
	if err != nil {
		return res, StagePublish, err
	}
	res.Digest = dgst
	return res, "", nil
}

func (p *Pipeline) locate(ctx context.Context, b *bundledeps.Bundle) (string, error) {
	if b.File != "" {
		return b.File, nil
	}
	if p.cfg.lookup == nil {
		return "", ErrNoSource
	}
	return p.cfg.lookup.Resolve(ctx, b.Coordinate())
}

func (p *Pipeline) logger(ctx context.Context) *slog.Logger {
	if p.cfg.logger != nil {
		return p.cfg.logger
	}
	return loggerFrom(ctx)
}

// loggerFrom returns the logger carried by ctx, or one that discards
// everything when ctx carries none.
func loggerFrom(ctx context.Context) *slog.Logger {
	if l := slogcontext.FromCtx(ctx); l != slog.Default() {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
