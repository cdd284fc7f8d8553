package database

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/ismail-dev-code/career-linker-server/internal/model"
)

type memoryRecord struct {
	id  string
	doc model.Document
}

// MemoryStore keeps both collections in process memory, in insertion order.
// Each instance is isolated, which makes it the store of choice for handler tests.
type MemoryStore struct {
	mu           sync.RWMutex
	jobs         []memoryRecord
	applications []memoryRecord
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// ListJobs returns every job in insertion order
func (s *MemoryStore) ListJobs(_ context.Context) ([]model.Document, error) {
	return s.filter(&s.jobs, func(model.Document) bool { return true }), nil
}

// ListJobsByEmployer returns the jobs posted by the given hr_email
func (s *MemoryStore) ListJobsByEmployer(_ context.Context, email string) ([]model.Document, error) {
	return s.filter(&s.jobs, func(d model.Document) bool {
		return d.String(model.FieldHREmail) == email
	}), nil
}

// FindJob fetches one job by id
func (s *MemoryStore) FindJob(_ context.Context, id string) (model.Document, error) {
	if _, err := parseID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.jobs {
		if rec.id == id {
			return rec.doc.WithID(rec.id), nil
		}
	}
	return nil, ErrNotFound
}

// FindJobs fetches several jobs at once
func (s *MemoryStore) FindJobs(_ context.Context, ids []string) (map[string]model.Document, error) {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	out := make(map[string]model.Document)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.jobs {
		if _, ok := wanted[rec.id]; ok {
			out[rec.id] = rec.doc.WithID(rec.id)
		}
	}
	return out, nil
}

// InsertJob stores a new job
func (s *MemoryStore) InsertJob(_ context.Context, doc model.Document) (model.InsertResult, error) {
	return s.insert(&s.jobs, doc)
}

// ListApplicationsByApplicant returns the applications submitted by email
func (s *MemoryStore) ListApplicationsByApplicant(_ context.Context, email string) ([]model.Document, error) {
	return s.filter(&s.applications, func(d model.Document) bool {
		return d.String(model.FieldApplicantEmail) == email
	}), nil
}

// ListApplicationsByJob returns the applications whose jobId equals jobID
func (s *MemoryStore) ListApplicationsByJob(_ context.Context, jobID string) ([]model.Document, error) {
	return s.filter(&s.applications, func(d model.Document) bool {
		return jsonText(d[model.FieldJobID]) == jobID
	}), nil
}

// InsertApplication stores a new application
func (s *MemoryStore) InsertApplication(_ context.Context, doc model.Document) (model.InsertResult, error) {
	return s.insert(&s.applications, doc)
}

// UpdateApplicationStatus sets the status field of one application
func (s *MemoryStore) UpdateApplicationStatus(_ context.Context, id string, status string) (model.UpdateResult, error) {
	if _, err := parseID(id); err != nil {
		return model.UpdateResult{}, err
	}

	result := model.UpdateResult{Acknowledged: true}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rec := range s.applications {
		if rec.id != id {
			continue
		}
		result.MatchedCount = 1
		if current, ok := rec.doc[model.FieldStatus].(string); ok && current == status {
			return result, nil
		}
		updated := rec.doc.Clone()
		updated[model.FieldStatus] = status
		s.applications[i].doc = updated
		result.ModifiedCount = 1
		return result, nil
	}
	return result, nil
}

// DeleteApplication removes one application
func (s *MemoryStore) DeleteApplication(_ context.Context, id string) (model.DeleteResult, error) {
	if _, err := parseID(id); err != nil {
		return model.DeleteResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rec := range s.applications {
		if rec.id == id {
			s.applications = append(s.applications[:i], s.applications[i+1:]...)
			return model.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return model.DeleteResult{Acknowledged: true}, nil
}

// CountApplicationsByJob counts the applications referencing jobID
func (s *MemoryStore) CountApplicationsByJob(ctx context.Context, jobID string) (int64, error) {
	counts, err := s.CountApplicationsByJobs(ctx, []string{jobID})
	if err != nil {
		return 0, err
	}
	return counts[jobID], nil
}

// CountApplicationsByJobs counts applications for several jobs in one pass
func (s *MemoryStore) CountApplicationsByJobs(_ context.Context, jobIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(jobIDs))
	for _, id := range jobIDs {
		out[id] = 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.applications {
		jobID := jsonText(rec.doc[model.FieldJobID])
		if _, ok := out[jobID]; ok {
			out[jobID]++
		}
	}
	return out, nil
}

// Health always reports up
func (s *MemoryStore) Health(_ context.Context) map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]string{
		"status":       "up",
		"message":      "It's healthy",
		"driver":       "memory",
		"jobs":         strconv.Itoa(len(s.jobs)),
		"applications": strconv.Itoa(len(s.applications)),
	}
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}

// Truncate removes every job and application document
func (s *MemoryStore) Truncate(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = nil
	s.applications = nil
	return nil
}

func (s *MemoryStore) insert(collection *[]memoryRecord, doc model.Document) (model.InsertResult, error) {
	normalized, err := normalize(doc.WithoutID())
	if err != nil {
		return model.InsertResult{}, err
	}

	id := uuid.NewString()
	s.mu.Lock()
	*collection = append(*collection, memoryRecord{id: id, doc: normalized})
	s.mu.Unlock()

	return model.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (s *MemoryStore) filter(collection *[]memoryRecord, keep func(model.Document) bool) []model.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Document, 0, len(*collection))
	for _, rec := range *collection {
		if keep(rec.doc) {
			out = append(out, rec.doc.WithID(rec.id))
		}
	}
	return out
}

// normalize round-trips doc through JSON, the way a jsonb column would store it,
// so stored values never alias the caller's maps.
func normalize(doc model.Document) (model.Document, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	out := model.Document{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// jsonText mirrors postgres ->> extraction for the scalar kinds a jobId can hold
func jsonText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
