package enrich

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ismail-dev-code/career-linker-server/internal/config"
	"github.com/ismail-dev-code/career-linker-server/internal/database"
	"github.com/ismail-dev-code/career-linker-server/internal/model"
)

var errStoreDown = errors.New("store down")

// flakyJobs fails every lookup and counts the calls it receives
type flakyJobs struct {
	database.JobStore
	findCalls  atomic.Int64
	batchCalls atomic.Int64
}

func (f *flakyJobs) FindJob(context.Context, string) (model.Document, error) {
	f.findCalls.Add(1)
	return nil, errStoreDown
}

func (f *flakyJobs) FindJobs(context.Context, []string) (map[string]model.Document, error) {
	f.batchCalls.Add(1)
	return nil, errStoreDown
}

// delayedJobs answers FindJob from the wrapped store after the delay set for that id
type delayedJobs struct {
	database.JobStore
	delays map[string]time.Duration
}

func (d *delayedJobs) FindJob(ctx context.Context, id string) (model.Document, error) {
	select {
	case <-time.After(d.delays[id]):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return d.JobStore.FindJob(ctx, id)
}

type fixture struct {
	store        *database.MemoryStore
	applications []model.Document
	jobID        string
}

// newFixture stores one job and builds applications referencing it, a missing job,
// a malformed id, no job at all and an uppercase spelling of the stored id
func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := database.NewMemoryStore()

	res, err := store.InsertJob(ctx, model.Document{
		"title":          "Backend Engineer",
		"company":        "Acme",
		"company_logo":   "https://acme.test/logo.png",
		"referralSource": "LinkedIn",
		"hr_email":       "hr@acme.test",
	})
	require.NoError(t, err)

	return fixture{
		store: store,
		jobID: res.InsertedID,
		applications: []model.Document{
			{"_id": "a1", "jobId": res.InsertedID, "applicantEmail": "dev@mail.test"},
			{"_id": "a2", "jobId": uuid.NewString(), "applicantEmail": "dev@mail.test"},
			{"_id": "a3", "jobId": "not-a-uuid", "applicantEmail": "dev@mail.test"},
			{"_id": "a4", "applicantEmail": "dev@mail.test", "company": "stale"},
			{"_id": "a5", "jobId": res.InsertedID, "applicantEmail": "dev@mail.test", "title": "old"},
			{"_id": "a6", "jobId": strings.ToUpper(res.InsertedID), "applicantEmail": "dev@mail.test"},
		},
	}
}

func pipelines(jobs database.JobStore) map[string]Pipeline {
	return map[string]Pipeline{
		"fanout":           &FanOut{Jobs: jobs, Concurrency: 2},
		"fanout unbounded": &FanOut{Jobs: jobs},
		"batched":          &Batched{Jobs: jobs},
	}
}

func TestPipelines_Enrich(t *testing.T) {
	for name, p := range pipelines(nil) {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			setJobs(p, f.store)

			out, err := p.Enrich(context.Background(), f.applications)
			require.NoError(t, err)
			require.Len(t, out, len(f.applications))

			for i, doc := range out {
				assert.Equal(t, f.applications[i].ID(), doc.ID(), "order must follow input")
			}

			for _, i := range []int{0, 4} {
				assert.Equal(t, "Backend Engineer", out[i].String("title"))
				assert.Equal(t, "Acme", out[i].String("company"))
				assert.Equal(t, "https://acme.test/logo.png", out[i].String("company_logo"))
				assert.Equal(t, "LinkedIn", out[i].String("referralSource"))
				assert.NotContains(t, out[i], "hr_email")
			}

			assert.Equal(t, f.applications[1], out[1])
			assert.Equal(t, f.applications[2], out[2])
			assert.Equal(t, f.applications[3], out[3])
			assert.Equal(t, f.applications[5], out[5])
		})
	}
}

func setJobs(p Pipeline, jobs database.JobStore) {
	switch v := p.(type) {
	case *FanOut:
		v.Jobs = jobs
	case *Batched:
		v.Jobs = jobs
	}
}

func TestFanOut_KeepsOrderWhenEarlyLookupsAreSlow(t *testing.T) {
	ctx := context.Background()
	store := database.NewMemoryStore()
	jobs := &delayedJobs{JobStore: store, delays: map[string]time.Duration{}}

	const n = 5
	apps := make([]model.Document, n)
	for i := 0; i < n; i++ {
		res, err := store.InsertJob(ctx, model.Document{"title": fmt.Sprintf("job-%d", i)})
		require.NoError(t, err)
		// the first application resolves last
		jobs.delays[res.InsertedID] = time.Duration(n-i) * 30 * time.Millisecond
		apps[i] = model.Document{"_id": fmt.Sprintf("a%d", i), "jobId": res.InsertedID}
	}

	out, err := (&FanOut{Jobs: jobs}).Enrich(ctx, apps)
	require.NoError(t, err)
	require.Len(t, out, n)
	for i, doc := range out {
		assert.Equal(t, fmt.Sprintf("a%d", i), doc.ID())
		assert.Equal(t, fmt.Sprintf("job-%d", i), doc.String("title"))
	}
}

func TestPipelines_DoNotMutateInput(t *testing.T) {
	for name, p := range pipelines(nil) {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			setJobs(p, f.store)
			before := make([]model.Document, len(f.applications))
			for i, app := range f.applications {
				before[i] = app.Clone()
			}

			_, err := p.Enrich(context.Background(), f.applications)
			require.NoError(t, err)
			assert.Equal(t, before, f.applications)
		})
	}
}

func TestPipelines_MissingFieldIsRemoved(t *testing.T) {
	ctx := context.Background()
	for name, p := range pipelines(nil) {
		t.Run(name, func(t *testing.T) {
			store := database.NewMemoryStore()
			setJobs(p, store)
			res, err := store.InsertJob(ctx, model.Document{"title": "Only title"})
			require.NoError(t, err)

			out, err := p.Enrich(ctx, []model.Document{{"jobId": res.InsertedID, "company": "stale"}})
			require.NoError(t, err)
			assert.Equal(t, model.Document{"jobId": res.InsertedID, "title": "Only title"}, out[0])
		})
	}
}

func TestPipelines_EmptyInput(t *testing.T) {
	for name, p := range pipelines(database.NewMemoryStore()) {
		t.Run(name, func(t *testing.T) {
			out, err := p.Enrich(context.Background(), nil)
			require.NoError(t, err)
			assert.NotNil(t, out)
			assert.Empty(t, out)
		})
	}
}

func TestPipelines_LookupFailure(t *testing.T) {
	apps := []model.Document{{"jobId": uuid.NewString()}, {"jobId": uuid.NewString()}}

	t.Run("fanout", func(t *testing.T) {
		jobs := &flakyJobs{}
		out, err := (&FanOut{Jobs: jobs, Concurrency: 1}).Enrich(context.Background(), apps)
		assert.ErrorIs(t, err, errStoreDown)
		assert.Nil(t, out)
	})

	t.Run("batched", func(t *testing.T) {
		jobs := &flakyJobs{}
		out, err := (&Batched{Jobs: jobs}).Enrich(context.Background(), apps)
		assert.ErrorIs(t, err, errStoreDown)
		assert.Nil(t, out)
		assert.Equal(t, int64(1), jobs.batchCalls.Load())
	})
}

func TestBatched_SkipsLookupWithoutReferences(t *testing.T) {
	jobs := &flakyJobs{}
	out, err := (&Batched{Jobs: jobs}).Enrich(context.Background(), []model.Document{{"applicantEmail": "x"}})
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, int64(0), jobs.batchCalls.Load())
}

func TestPipelines_Equivalent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	fan, err := (&FanOut{Jobs: f.store, Concurrency: 3}).Enrich(ctx, f.applications)
	require.NoError(t, err)
	batch, err := (&Batched{Jobs: f.store}).Enrich(ctx, f.applications)
	require.NoError(t, err)
	assert.Equal(t, fan, batch)
}

func TestNew(t *testing.T) {
	store := database.NewMemoryStore()
	assert.IsType(t, &Batched{}, New(config.StrategyBatch, store, 4))
	fan, ok := New(config.StrategyFanOut, store, 4).(*FanOut)
	require.True(t, ok)
	assert.Equal(t, 4, fan.Concurrency)
}
