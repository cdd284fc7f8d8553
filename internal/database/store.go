package database

import (
	"context"
	"errors"

	"github.com/ismail-dev-code/career-linker-server/internal/model"
)

var (
	// ErrNotFound is returned when no document has the requested id
	ErrNotFound = errors.New("document not found")
	// ErrInvalidID is returned when an id is not a store-native identifier
	ErrInvalidID = errors.New("invalid document id")
)

// JobStore is the jobs collection
type JobStore interface {
	ListJobs(ctx context.Context) ([]model.Document, error)
	ListJobsByEmployer(ctx context.Context, email string) ([]model.Document, error)
	FindJob(ctx context.Context, id string) (model.Document, error)
	// FindJobs looks up several jobs at once. Ids that are malformed or missing are absent from the result.
	FindJobs(ctx context.Context, ids []string) (map[string]model.Document, error)
	InsertJob(ctx context.Context, doc model.Document) (model.InsertResult, error)
}

// ApplicationStore is the applications collection
type ApplicationStore interface {
	ListApplicationsByApplicant(ctx context.Context, email string) ([]model.Document, error)
	ListApplicationsByJob(ctx context.Context, jobID string) ([]model.Document, error)
	InsertApplication(ctx context.Context, doc model.Document) (model.InsertResult, error)
	UpdateApplicationStatus(ctx context.Context, id string, status string) (model.UpdateResult, error)
	DeleteApplication(ctx context.Context, id string) (model.DeleteResult, error)
	CountApplicationsByJob(ctx context.Context, jobID string) (int64, error)
	// CountApplicationsByJobs counts applications for every given job id in one pass.
	// Every requested id is present in the result, with 0 when nothing references it.
	CountApplicationsByJobs(ctx context.Context, jobIDs []string) (map[string]int64, error)
}

// Store represents a service that interacts with the document store.
type Store interface {
	JobStore
	ApplicationStore

	// Health returns a map of health status information.
	Health(ctx context.Context) map[string]string

	// Close terminates the store connection.
	Close() error
}
