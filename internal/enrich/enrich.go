// Package enrich decorates stored documents with data held in other collections
package enrich

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ismail-dev-code/career-linker-server/internal/config"
	"github.com/ismail-dev-code/career-linker-server/internal/database"
	"github.com/ismail-dev-code/career-linker-server/internal/model"
)

// Pipeline adds the referenced job's display fields to each application.
// Output order always matches input order and the input documents are left untouched.
type Pipeline interface {
	Enrich(ctx context.Context, applications []model.Document) ([]model.Document, error)
}

// New picks the pipeline implementation for strategy
func New(strategy string, jobs database.JobStore, concurrency int) Pipeline {
	if strategy == config.StrategyBatch {
		return &Batched{Jobs: jobs}
	}
	return &FanOut{Jobs: jobs, Concurrency: concurrency}
}

// FanOut looks each referenced job up concurrently
type FanOut struct {
	Jobs database.JobStore
	// Concurrency bounds in-flight lookups. Zero or less means unbounded.
	Concurrency int
}

// Enrich issues one FindJob per application
func (p *FanOut) Enrich(ctx context.Context, applications []model.Document) ([]model.Document, error) {
	out := make([]model.Document, len(applications))

	g, gctx := errgroup.WithContext(ctx)
	if p.Concurrency > 0 {
		g.SetLimit(p.Concurrency)
	}

	for i, app := range applications {
		g.Go(func() error {
			jobID := app.String(model.FieldJobID)
			if jobID == "" {
				out[i] = app.Clone()
				return nil
			}

			job, err := p.Jobs.FindJob(gctx, jobID)
			switch {
			case err == nil:
				out[i] = merge(app, job)
			case isDangling(err):
				out[i] = app.Clone()
			default:
				return fmt.Errorf("lookup job %s: %w", jobID, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Batched resolves every referenced job with a single FindJobs call
type Batched struct {
	Jobs database.JobStore
}

// Enrich issues one FindJobs for the distinct job ids
func (p *Batched) Enrich(ctx context.Context, applications []model.Document) ([]model.Document, error) {
	ids := make([]string, 0, len(applications))
	for _, app := range applications {
		if id := app.String(model.FieldJobID); id != "" {
			ids = append(ids, id)
		}
	}

	jobs := map[string]model.Document{}
	if len(ids) > 0 {
		var err error
		jobs, err = p.Jobs.FindJobs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("lookup jobs: %w", err)
		}
	}

	out := make([]model.Document, len(applications))
	for i, app := range applications {
		if job, ok := jobs[app.String(model.FieldJobID)]; ok {
			out[i] = merge(app, job)
		} else {
			out[i] = app.Clone()
		}
	}
	return out, nil
}

func isDangling(err error) bool {
	return errors.Is(err, database.ErrNotFound) || errors.Is(err, database.ErrInvalidID)
}

// merge copies the enriched fields of job onto a clone of app.
// A field the job lacks is removed, so stale values on the application never leak through.
func merge(app, job model.Document) model.Document {
	out := app.Clone()
	for _, field := range model.EnrichedJobFields {
		if v, ok := job[field]; ok {
			out[field] = v
		} else {
			delete(out, field)
		}
	}
	return out
}
