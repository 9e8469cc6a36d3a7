package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FlagBrew/local-dex/internal/database"
	"github.com/apex/log"
)

var ErrInvalidPlan = errors.New("invalid ingestion plan")

// Step produces one or more kinds. Run returning an error aborts the rest of
// the step's phase.
type Step struct {
	Name      string
	Produces  []database.Kind
	DependsOn []database.Kind
	Run       func(ctx context.Context, p *Pipeline) (Stats, error)
}

type Phase struct {
	Name  string
	Steps []Step
}

// ValidatePlan checks that every dependency is produced by an earlier step
// and that no kind is produced twice.
func ValidatePlan(phases []Phase) error {
	produced := map[database.Kind]string{}

	for _, phase := range phases {
		for _, step := range phase.Steps {
			if step.Run == nil {
				return fmt.Errorf("%w: step %s/%s has nothing to run", ErrInvalidPlan, phase.Name, step.Name)
			}
			for _, dep := range step.DependsOn {
				if _, ok := produced[dep]; !ok {
					return fmt.Errorf("%w: step %s/%s depends on %s before it is produced", ErrInvalidPlan, phase.Name, step.Name, dep)
				}
			}
			for _, kind := range step.Produces {
				if by, ok := produced[kind]; ok {
					return fmt.Errorf("%w: %s is produced by both %s and %s/%s", ErrInvalidPlan, kind, by, phase.Name, step.Name)
				}
				produced[kind] = phase.Name + "/" + step.Name
			}
		}
	}
	return nil
}

type StepReport struct {
	Phase    string        `json:"phase"`
	Step     string        `json:"step"`
	Stats    Stats         `json:"stats"`
	Err      error         `json:"-"`
	Skipped  bool          `json:"skipped"`
	Duration time.Duration `json:"duration"`
}

type Report struct {
	Steps   []StepReport `json:"steps"`
	Aborted []string     `json:"aborted"`
}

// Failed reports whether any phase was aborted. Skipped items and rolled
// back chunks are partial success.
func (r *Report) Failed() bool {
	return len(r.Aborted) > 0
}

func (r *Report) Totals() Stats {
	var total Stats
	for _, s := range r.Steps {
		total.Add(s.Stats)
	}
	return total
}

// Pipeline runs an ingestion plan against one store.
type Pipeline struct {
	db       *database.Client
	fetcher  *Fetcher
	resolver *Resolver
	runner   *Runner
	plan     []Phase
}

type PipelineOption func(*Pipeline)

// WithPlan replaces the default plan.
func WithPlan(phases []Phase) PipelineOption {
	return func(p *Pipeline) {
		p.plan = phases
	}
}

func NewPipeline(db *database.Client, fetcher *Fetcher, chunkSize int, opts ...PipelineOption) *Pipeline {
	resolver := NewResolver()
	p := &Pipeline{
		db:       db,
		fetcher:  fetcher,
		resolver: resolver,
		runner:   NewRunner(db, fetcher, resolver, chunkSize),
	}
	p.plan = DefaultPlan()
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// keyKinds are the kinds whose key sets a step needs loaded. Kinds without an
// id of their own are only tracked in memory.
func keyKinds(step Step) []database.Kind {
	var kinds []database.Kind
	for _, k := range append(append([]database.Kind{}, step.Produces...), step.DependsOn...) {
		if !k.Keyed() {
			continue
		}
		kinds = append(kinds, k)
	}
	return kinds
}

// Run executes every phase in order. The returned error is only set when the
// plan itself is invalid; everything else is described by the report.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	if err := ValidatePlan(p.plan); err != nil {
		return nil, err
	}

	logger := log.FromContext(ctx)
	report := &Report{}
	start := time.Now()

	for _, phase := range p.plan {
		plog := logger.WithField("phase", phase.Name)
		plog.Info("starting phase")

		var aborted bool
		for _, step := range phase.Steps {
			sr := StepReport{Phase: phase.Name, Step: step.Name}
			if aborted {
				sr.Skipped = true
				report.Steps = append(report.Steps, sr)
				continue
			}

			slog := plog.WithField("step", step.Name)
			stepStart := time.Now()

			err := p.resolver.Load(ctx, p.db, keyKinds(step)...)
			if err != nil {
				err = fmt.Errorf("load key sets: %w", err)
			} else {
				sr.Stats, err = step.Run(log.NewContext(ctx, slog), p)
			}
			sr.Duration = time.Since(stepStart)

			if err != nil {
				sr.Err = err
				aborted = true
				slog.WithError(err).Error("step failed, aborting phase")
			} else {
				slog.WithFields(log.Fields{
					"targets":      sr.Stats.Targets,
					"present":      sr.Stats.Present,
					"written":      sr.Stats.Written,
					"skipped":      sr.Stats.Skipped,
					"failed":       sr.Stats.Failed + sr.Stats.FetchFailed,
					"chunk_errors": sr.Stats.ChunksFailed,
					"duration":     sr.Duration.Round(time.Millisecond),
				}).Info("step complete")
			}
			report.Steps = append(report.Steps, sr)
		}

		if aborted {
			report.Aborted = append(report.Aborted, phase.Name)
		}
	}

	total := report.Totals()
	logger.WithFields(log.Fields{
		"written":  total.Written,
		"failed":   total.Failed + total.FetchFailed,
		"aborted":  len(report.Aborted),
		"duration": time.Since(start).Round(time.Millisecond),
	}).Info("ingestion complete")

	return report, nil
}

// pending filters a listing down to the detail URLs of resources whose id is
// not already stored for kind.
func (p *Pipeline) pending(kind database.Kind, listing []Listed) ([]string, int) {
	set := p.resolver.Set(kind)

	var urls []string
	present := 0
	for _, l := range listing {
		if set.Has(l.ID) {
			present++
			continue
		}
		urls = append(urls, l.URL)
	}
	return urls, present
}
