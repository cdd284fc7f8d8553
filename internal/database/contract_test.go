package database

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ismail-dev-code/career-linker-server/internal/model"
)

func parseDoc(t *testing.T, raw string) model.Document {
	t.Helper()
	doc := model.Document{}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

// runStoreContract checks the behavior every Store implementation must share.
// newStore must return an empty store.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("insert then find job", func(t *testing.T) {
		s := newStore(t)
		posted := parseDoc(t, `{
			"title": "Backend Engineer",
			"company": "Acme",
			"hr_email": "hr@acme.test",
			"salaryRange": {"min": 1000, "max": 2000, "currency": "usd"},
			"requirements": ["go", "sql"]
		}`)

		res, err := s.InsertJob(ctx, posted)
		require.NoError(t, err)
		assert.True(t, res.Acknowledged)
		require.NotEmpty(t, res.InsertedID)

		found, err := s.FindJob(ctx, res.InsertedID)
		require.NoError(t, err)
		assert.Equal(t, posted.WithID(res.InsertedID), found)
	})

	t.Run("client id is discarded", func(t *testing.T) {
		s := newStore(t)
		res, err := s.InsertJob(ctx, model.Document{"_id": "mine", "title": "Ops"})
		require.NoError(t, err)
		assert.NotEqual(t, "mine", res.InsertedID)

		found, err := s.FindJob(ctx, res.InsertedID)
		require.NoError(t, err)
		assert.Equal(t, res.InsertedID, found.ID())
	})

	t.Run("find job errors", func(t *testing.T) {
		s := newStore(t)
		_, err := s.FindJob(ctx, uuid.NewString())
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = s.FindJob(ctx, "not-an-id")
		assert.ErrorIs(t, err, ErrInvalidID)
	})

	t.Run("non-canonical ids are rejected everywhere", func(t *testing.T) {
		s := newStore(t)
		job, err := s.InsertJob(ctx, model.Document{"title": "Ops"})
		require.NoError(t, err)
		app, err := s.InsertApplication(ctx, model.Document{"jobId": job.InsertedID, "status": "pending"})
		require.NoError(t, err)

		for _, variant := range []string{
			strings.ToUpper(job.InsertedID),
			"{" + job.InsertedID + "}",
			"urn:uuid:" + job.InsertedID,
			strings.ReplaceAll(job.InsertedID, "-", ""),
		} {
			_, err := s.FindJob(ctx, variant)
			assert.ErrorIs(t, err, ErrInvalidID, variant)
		}

		found, err := s.FindJobs(ctx, []string{strings.ToUpper(job.InsertedID)})
		require.NoError(t, err)
		assert.Empty(t, found)

		upper := strings.ToUpper(app.InsertedID)
		_, err = s.UpdateApplicationStatus(ctx, upper, "hired")
		assert.ErrorIs(t, err, ErrInvalidID)
		_, err = s.DeleteApplication(ctx, upper)
		assert.ErrorIs(t, err, ErrInvalidID)

		apps, err := s.ListApplicationsByJob(ctx, job.InsertedID)
		require.NoError(t, err)
		require.Len(t, apps, 1)
		assert.Equal(t, "pending", apps[0].String("status"))
	})

	t.Run("list jobs keeps insertion order and filters by employer", func(t *testing.T) {
		s := newStore(t)
		var ids []string
		for _, hr := range []string{"a@hr.test", "b@hr.test", "a@hr.test"} {
			res, err := s.InsertJob(ctx, model.Document{"hr_email": hr})
			require.NoError(t, err)
			ids = append(ids, res.InsertedID)
		}

		all, err := s.ListJobs(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		for i, doc := range all {
			assert.Equal(t, ids[i], doc.ID())
		}

		mine, err := s.ListJobsByEmployer(ctx, "a@hr.test")
		require.NoError(t, err)
		require.Len(t, mine, 2)
		assert.Equal(t, ids[0], mine[0].ID())
		assert.Equal(t, ids[2], mine[1].ID())

		none, err := s.ListJobsByEmployer(ctx, "nobody@hr.test")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("find jobs in batch", func(t *testing.T) {
		s := newStore(t)
		first, err := s.InsertJob(ctx, model.Document{"title": "one"})
		require.NoError(t, err)
		second, err := s.InsertJob(ctx, model.Document{"title": "two"})
		require.NoError(t, err)

		found, err := s.FindJobs(ctx, []string{first.InsertedID, "garbage", uuid.NewString(), second.InsertedID, first.InsertedID})
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "one", found[first.InsertedID].String("title"))
		assert.Equal(t, "two", found[second.InsertedID].String("title"))

		empty, err := s.FindJobs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("application lifecycle", func(t *testing.T) {
		s := newStore(t)
		jobID := uuid.NewString()

		res, err := s.InsertApplication(ctx, model.Document{
			"applicantEmail": "dev@mail.test",
			"jobId":          jobID,
			"status":         "pending",
			"linkedin":       "https://linkedin.test/dev",
		})
		require.NoError(t, err)
		appID := res.InsertedID

		_, err = s.InsertApplication(ctx, model.Document{"applicantEmail": "other@mail.test", "jobId": jobID})
		require.NoError(t, err)

		mine, err := s.ListApplicationsByApplicant(ctx, "dev@mail.test")
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, appID, mine[0].ID())

		byJob, err := s.ListApplicationsByJob(ctx, jobID)
		require.NoError(t, err)
		assert.Len(t, byJob, 2)

		updated, err := s.UpdateApplicationStatus(ctx, appID, "interview")
		require.NoError(t, err)
		assert.Equal(t, model.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, updated)

		again, err := s.UpdateApplicationStatus(ctx, appID, "interview")
		require.NoError(t, err)
		assert.Equal(t, int64(1), again.MatchedCount)
		assert.Equal(t, int64(0), again.ModifiedCount)

		mine, err = s.ListApplicationsByApplicant(ctx, "dev@mail.test")
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, model.Document{
			"_id":            appID,
			"applicantEmail": "dev@mail.test",
			"jobId":          jobID,
			"status":         "interview",
			"linkedin":       "https://linkedin.test/dev",
		}, mine[0])

		missing, err := s.UpdateApplicationStatus(ctx, uuid.NewString(), "hired")
		require.NoError(t, err)
		assert.Equal(t, int64(0), missing.MatchedCount)

		_, err = s.UpdateApplicationStatus(ctx, "bad", "hired")
		assert.ErrorIs(t, err, ErrInvalidID)

		deleted, err := s.DeleteApplication(ctx, appID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted.DeletedCount)

		deleted, err = s.DeleteApplication(ctx, appID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), deleted.DeletedCount)

		_, err = s.DeleteApplication(ctx, "bad")
		assert.ErrorIs(t, err, ErrInvalidID)
	})

	t.Run("count applications", func(t *testing.T) {
		s := newStore(t)
		busy, quiet := uuid.NewString(), uuid.NewString()
		for i := 0; i < 2; i++ {
			_, err := s.InsertApplication(ctx, model.Document{"jobId": busy})
			require.NoError(t, err)
		}
		_, err := s.InsertApplication(ctx, model.Document{"jobId": uuid.NewString()})
		require.NoError(t, err)

		n, err := s.CountApplicationsByJob(ctx, busy)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		n, err = s.CountApplicationsByJob(ctx, quiet)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)

		counts, err := s.CountApplicationsByJobs(ctx, []string{busy, quiet})
		require.NoError(t, err)
		assert.Equal(t, map[string]int64{busy: 2, quiet: 0}, counts)
	})

	t.Run("health", func(t *testing.T) {
		s := newStore(t)
		stats := s.Health(ctx)
		assert.Equal(t, "up", stats["status"])
		assert.Equal(t, "It's healthy", stats["message"])
	})
}
