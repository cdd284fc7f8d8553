package application

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ismail-dev-code/career-linker-server/internal/auth"
	"github.com/ismail-dev-code/career-linker-server/internal/config"
	"github.com/ismail-dev-code/career-linker-server/internal/database"
	"github.com/ismail-dev-code/career-linker-server/internal/enrich"
	"github.com/ismail-dev-code/career-linker-server/internal/middleware"
	"github.com/ismail-dev-code/career-linker-server/internal/model"
	"github.com/ismail-dev-code/career-linker-server/internal/testutil"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

// tokens maps bearer tokens to the email the fake identity provider resolves them to
var tokens = map[string]string{
	"dev-token":   "dev@mail.test",
	"other-token": "other@mail.test",
}

var fakeOracle = auth.VerifierFunc(func(_ context.Context, token string) (auth.Principal, error) {
	email, ok := tokens[token]
	if !ok {
		return auth.Principal{}, auth.ErrInvalidToken
	}
	return auth.Principal{Email: email, Strategy: auth.StrategyBearer}, nil
})

func newRouter(t *testing.T, strategy string) (*gin.Engine, *database.MemoryStore) {
	t.Helper()
	store := database.NewMemoryStore()
	ac := NewApplicationController(store, enrich.New(strategy, store, 4))

	r := gin.New()
	r.GET("/applications", middleware.Authenticate(middleware.BearerToken(fakeOracle)), ac.ListByApplicantHandler)
	r.POST("/applications", ac.CreateApplicationHandler)
	r.GET("/applications/job/:job_id", ac.ListByJobHandler)
	r.PATCH("/applications/:id", ac.UpdateStatusHandler)
	r.DELETE("/applications/:id", ac.DeleteApplicationHandler)
	return r, store
}

func postApplication(t *testing.T, r http.Handler, body map[string]interface{}) string {
	t.Helper()
	rec := testutil.MakeJSONRequest(r, http.MethodPost, "/applications", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := testutil.DecodeJSON[model.InsertResult](t, rec)
	require.True(t, res.Acknowledged)
	return res.InsertedID
}

func TestListByApplicant_Enriched(t *testing.T) {
	for _, strategy := range []string{config.StrategyFanOut, config.StrategyBatch} {
		t.Run(strategy, func(t *testing.T) {
			r, store := newRouter(t, strategy)
			job, err := store.InsertJob(context.Background(), model.Document{
				"title":          "Backend Engineer",
				"company":        "Acme",
				"company_logo":   "https://acme.test/logo.png",
				"referralSource": "LinkedIn",
			})
			require.NoError(t, err)

			first := postApplication(t, r, map[string]interface{}{"applicantEmail": "dev@mail.test", "jobId": job.InsertedID, "status": "pending"})
			postApplication(t, r, map[string]interface{}{"applicantEmail": "other@mail.test", "jobId": job.InsertedID})
			dangling := postApplication(t, r, map[string]interface{}{"applicantEmail": "dev@mail.test", "jobId": uuid.NewString()})

			rec := testutil.MakeJSONRequest(r, http.MethodGet, "/applications?email=dev@mail.test", nil, testutil.WithBearer("dev-token"))
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			apps := testutil.DecodeJSON[[]map[string]interface{}](t, rec)
			require.Len(t, apps, 2)

			assert.Equal(t, first, apps[0]["_id"])
			assert.Equal(t, "Acme", apps[0]["company"])
			assert.Equal(t, "Backend Engineer", apps[0]["title"])
			assert.Equal(t, "https://acme.test/logo.png", apps[0]["company_logo"])
			assert.Equal(t, "LinkedIn", apps[0]["referralSource"])
			assert.Equal(t, "pending", apps[0]["status"])

			assert.Equal(t, dangling, apps[1]["_id"])
			assert.NotContains(t, apps[1], "company")
		})
	}
}

func TestListByApplicant_Rejections(t *testing.T) {
	r, _ := newRouter(t, config.StrategyFanOut)

	tests := []struct {
		name       string
		url        string
		options    []testutil.RequestOption
		wantStatus int
		wantKey    string
	}{
		{"no token", "/applications?email=dev@mail.test", nil, http.StatusUnauthorized, "message"},
		{"rejected token", "/applications?email=dev@mail.test", []testutil.RequestOption{testutil.WithBearer("forged")}, http.StatusUnauthorized, "message"},
		{"email mismatch", "/applications?email=dev@mail.test", []testutil.RequestOption{testutil.WithBearer("other-token")}, http.StatusForbidden, "message"},
		{"missing email", "/applications", []testutil.RequestOption{testutil.WithBearer("dev-token")}, http.StatusForbidden, "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.MakeJSONRequest(r, http.MethodGet, tt.url, nil, tt.options...)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, testutil.DecodeJSON[map[string]string](t, rec), tt.wantKey)
		})
	}
}

func TestListByApplicant_Empty(t *testing.T) {
	r, _ := newRouter(t, config.StrategyFanOut)
	rec := testutil.MakeJSONRequest(r, http.MethodGet, "/applications?email=dev@mail.test", nil, testutil.WithBearer("dev-token"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestUpdateStatus_ReflectedByJobListing(t *testing.T) {
	r, _ := newRouter(t, config.StrategyFanOut)
	jobID := uuid.NewString()
	posted := map[string]interface{}{
		"applicantEmail": "dev@mail.test",
		"jobId":          jobID,
		"status":         "pending",
		"linkedin":       "https://linkedin.test/dev",
		"resume":         "https://cv.test/dev.pdf",
	}
	id := postApplication(t, r, posted)

	rec := testutil.MakeJSONRequest(r, http.MethodPatch, "/applications/"+id, map[string]string{"status": "interview"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, model.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, testutil.DecodeJSON[model.UpdateResult](t, rec))

	rec = testutil.MakeJSONRequest(r, http.MethodGet, "/applications/job/"+jobID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	apps := testutil.DecodeJSON[[]map[string]interface{}](t, rec)
	require.Len(t, apps, 1)

	posted["_id"] = id
	posted["status"] = "interview"
	assert.Equal(t, posted, apps[0])
}

func TestUpdateStatus_BadRequests(t *testing.T) {
	r, _ := newRouter(t, config.StrategyFanOut)
	id := postApplication(t, r, map[string]interface{}{"jobId": "x"})

	rec := testutil.MakeJSONRequest(r, http.MethodPatch, "/applications/"+id, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = testutil.MakeJSONRequest(r, http.MethodPatch, "/applications/not-an-id", map[string]string{"status": "hired"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = testutil.MakeJSONRequest(r, http.MethodPatch, "/applications/"+uuid.NewString(), map[string]string{"status": "hired"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(0), testutil.DecodeJSON[model.UpdateResult](t, rec).MatchedCount)
}

func TestListByJob_StringCompare(t *testing.T) {
	r, _ := newRouter(t, config.StrategyFanOut)
	postApplication(t, r, map[string]interface{}{"jobId": "legacy-id"})

	rec := testutil.MakeJSONRequest(r, http.MethodGet, "/applications/job/legacy-id", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, testutil.DecodeJSON[[]map[string]interface{}](t, rec), 1)

	rec = testutil.MakeJSONRequest(r, http.MethodGet, "/applications/job/unknown", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestDeleteApplication(t *testing.T) {
	r, _ := newRouter(t, config.StrategyFanOut)
	id := postApplication(t, r, map[string]interface{}{"jobId": "x"})

	rec := testutil.MakeJSONRequest(r, http.MethodDelete, "/applications/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.DeleteResult{Acknowledged: true, DeletedCount: 1}, testutil.DecodeJSON[model.DeleteResult](t, rec))

	rec = testutil.MakeJSONRequest(r, http.MethodDelete, "/applications/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(0), testutil.DecodeJSON[model.DeleteResult](t, rec).DeletedCount)

	rec = testutil.MakeJSONRequest(r, http.MethodDelete, "/applications/bad", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateApplication_RejectsNonObject(t *testing.T) {
	r, _ := newRouter(t, config.StrategyFanOut)
	rec := testutil.MakeJSONRequest(r, http.MethodPost, "/applications", `["x"]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
