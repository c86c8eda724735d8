// Package pipeline orchestrates the load, merge and denormalize stages of a
// snapshot run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/larsivik/snomed-catalog/internal/denorm"
	"github.com/larsivik/snomed-catalog/internal/domain"
	"github.com/larsivik/snomed-catalog/internal/release"
)

// allStages defines the canonical execution order.
var allStages = []string{
	"load-international",
	"load-national",
	"check-dependency",
	"merge",
	"denormalize",
	"attach-parents",
	"definitions",
}

// Config holds the settings for one pipeline run.
type Config struct {
	// InputDir is scanned recursively for both release packages.
	InputDir string

	// ExpectedDependencyVersion is the international release the national
	// extension declares as its base. Empty skips the dependency check.
	ExpectedDependencyVersion string

	// AllowVersionMismatch downgrades a failed dependency check to a warning.
	AllowVersionMismatch bool

	Limit    int
	IDFilter []domain.SCTID
}

// StageResult holds the outcome of a single pipeline stage.
type StageResult struct {
	Rows     int
	Duration time.Duration
}

// Result is the complete output of one run.
type Result struct {
	// Version is the national release date stamp the output was built from.
	Version string

	Records     []domain.ConceptRecord
	Definitions []domain.DefinitionRecord
	Stats       denorm.Stats
}

// Pipeline runs the snapshot stages in order and records per-stage outcomes.
type Pipeline struct {
	log     *slog.Logger
	cfg     Config
	results map[string]StageResult
}

// New creates a new Pipeline.
func New(log *slog.Logger, cfg Config) *Pipeline {
	return &Pipeline{
		log:     log,
		cfg:     cfg,
		results: make(map[string]StageResult, len(allStages)),
	}
}

// Results returns stage results after Run completes.
func (p *Pipeline) Results() map[string]StageResult {
	return p.results
}

// Run executes all stages in order. The first failing stage aborts the run;
// data anomalies found while denormalizing are counted in the result instead
// of failing.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	opts := release.Options{Limit: p.cfg.Limit, IDFilter: p.cfg.IDFilter}

	var intl, nat, merged *release.Set
	res := &Result{}

	err := p.stage(ctx, "load-international", func() (int, error) {
		var err error
		intl, err = release.Load(p.cfg.InputDir, domain.PackageInternational, opts)
		if err != nil {
			return 0, err
		}
		return setRows(intl), nil
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, "load-national", func() (int, error) {
		var err error
		nat, err = release.Load(p.cfg.InputDir, domain.PackageNational, opts)
		if err != nil {
			return 0, err
		}
		return setRows(nat), nil
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, "check-dependency", func() (int, error) {
		return 0, p.checkDependency(intl)
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, "merge", func() (int, error) {
		merged = release.Merge(intl, nat)
		res.Version = merged.Version
		return setRows(merged), nil
	})
	if err != nil {
		return nil, err
	}
	intl, nat = nil, nil

	err = p.stage(ctx, "denormalize", func() (int, error) {
		res.Records, res.Stats = denorm.Denormalize(merged)
		return len(res.Records), nil
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, "attach-parents", func() (int, error) {
		denorm.AttachParents(res.Records, merged)
		return len(res.Records), nil
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, "definitions", func() (int, error) {
		res.Definitions = denorm.DenormalizeDefinitions(merged)
		return len(res.Definitions), nil
	})
	if err != nil {
		return nil, err
	}

	if res.Stats.OrphanRefsetEntries > 0 || res.Stats.InactiveComponentRefs > 0 {
		p.log.Warn("data consistency warnings",
			slog.Int("orphan_refset_entries", res.Stats.OrphanRefsetEntries),
			slog.Int("inactive_component_refs", res.Stats.InactiveComponentRefs),
		)
	}

	p.log.Info("pipeline completed",
		slog.String("version", res.Version),
		slog.Int("records", len(res.Records)),
		slog.Int("definitions", len(res.Definitions)),
		slog.Int("multi_preferred", res.Stats.MultiPreferred),
	)
	return res, nil
}

// stage runs one stage with timing, logging and context cancellation checks.
func (p *Pipeline) stage(ctx context.Context, name string, fn func() (int, error)) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("stage %s: %w", name, err)
	}

	start := time.Now()
	p.log.Info("starting stage", slog.String("stage", name))

	rows, err := fn()
	result := StageResult{Rows: rows, Duration: time.Since(start)}
	p.results[name] = result

	if err != nil {
		p.log.Error("stage failed",
			slog.String("stage", name),
			slog.String("error", err.Error()),
			slog.Duration("duration", result.Duration),
		)
		return fmt.Errorf("stage %s: %w", name, err)
	}

	p.log.Info("stage completed",
		slog.String("stage", name),
		slog.Int("rows", result.Rows),
		slog.Duration("duration", result.Duration),
	)
	return nil
}

// checkDependency enforces the national extension's declared base release.
func (p *Pipeline) checkDependency(intl *release.Set) error {
	if p.cfg.ExpectedDependencyVersion == "" {
		p.log.Warn("no expected dependency version configured, skipping check")
		return nil
	}

	err := release.ValidateDependency(intl, p.cfg.ExpectedDependencyVersion)
	if err == nil {
		return nil
	}
	if p.cfg.AllowVersionMismatch {
		p.log.Warn("dependency version mismatch overridden",
			slog.String("expected", p.cfg.ExpectedDependencyVersion),
			slog.String("actual", intl.Version),
		)
		return nil
	}
	return err
}

func setRows(s *release.Set) int {
	return len(s.Concepts) + len(s.Descriptions) + len(s.Definitions) +
		len(s.Relationships) + len(s.LanguageMembers)
}
