package enrich

import (
	"context"
	"fmt"

	"github.com/ismail-dev-code/career-linker-server/internal/config"
	"github.com/ismail-dev-code/career-linker-server/internal/database"
	"github.com/ismail-dev-code/career-linker-server/internal/model"
)

// Counter annotates each job with the number of applications that reference it
type Counter interface {
	WithCounts(ctx context.Context, jobs []model.Document) ([]model.Document, error)
}

// NewCounter picks the counter implementation for strategy
func NewCounter(strategy string, applications database.ApplicationStore) Counter {
	if strategy == config.StrategyBatch {
		return &GroupedCounter{Applications: applications}
	}
	return &SequentialCounter{Applications: applications}
}

// SequentialCounter issues one count query per job, in listing order
type SequentialCounter struct {
	Applications database.ApplicationStore
}

// WithCounts returns clones of jobs carrying application_count
func (c *SequentialCounter) WithCounts(ctx context.Context, jobs []model.Document) ([]model.Document, error) {
	out := make([]model.Document, 0, len(jobs))
	for _, job := range jobs {
		n, err := c.Applications.CountApplicationsByJob(ctx, job.ID())
		if err != nil {
			return nil, fmt.Errorf("count applications for job %s: %w", job.ID(), err)
		}
		counted := job.Clone()
		counted[model.FieldApplicationCount] = n
		out = append(out, counted)
	}
	return out, nil
}

// GroupedCounter counts every job in one grouped query
type GroupedCounter struct {
	Applications database.ApplicationStore
}

// WithCounts returns clones of jobs carrying application_count
func (c *GroupedCounter) WithCounts(ctx context.Context, jobs []model.Document) ([]model.Document, error) {
	out := make([]model.Document, 0, len(jobs))
	if len(jobs) == 0 {
		return out, nil
	}

	ids := make([]string, len(jobs))
	for i, job := range jobs {
		ids[i] = job.ID()
	}
	counts, err := c.Applications.CountApplicationsByJobs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}

	for _, job := range jobs {
		counted := job.Clone()
		counted[model.FieldApplicationCount] = counts[job.ID()]
		out = append(out, counted)
	}
	return out, nil
}
