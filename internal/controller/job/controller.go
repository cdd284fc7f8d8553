// Package job provides HTTP handlers for job listing operations.
package job

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ismail-dev-code/career-linker-server/internal/controller"
	"github.com/ismail-dev-code/career-linker-server/internal/database"
	"github.com/ismail-dev-code/career-linker-server/internal/enrich"
	"github.com/ismail-dev-code/career-linker-server/internal/middleware"
	"github.com/ismail-dev-code/career-linker-server/internal/utilities"
)

// JobController handles job related endpoints
type JobController struct {
	Store   database.JobStore
	Counter enrich.Counter
}

// NewJobController creates a new instance of JobController
func NewJobController(store database.JobStore, counter enrich.Counter) *JobController {
	return &JobController{
		Store:   store,
		Counter: counter,
	}
}

// ListJobsHandler returns every job.
// @Summary List all jobs
// @Description The email query is accepted for compatibility but does not filter the result
// @Tags Job
// @Produce json
// @Param email query string false "Ignored"
// @Success 200 {array} model.Document "All jobs in insertion order"
// @Failure 500 {object} utilities.ErrorResponse "Store error"
// @Router /jobs [get]
func (jc *JobController) ListJobsHandler(c *gin.Context) {
	jobs, err := jc.Store.ListJobs(c.Request.Context())
	if err != nil {
		controller.RespondStoreError(c, err, "list jobs")
		return
	}
	controller.RespondList(c, jobs)
}

// GetJobHandler returns one job by id.
// @Summary Get a job
// @Tags Job
// @Produce json
// @Param id path string true "Job id"
// @Success 200 {object} model.Document "The job"
// @Failure 400 {object} utilities.ErrorResponse "Malformed id"
// @Failure 404 {object} utilities.ErrorResponse "No job with this id"
// @Failure 500 {object} utilities.ErrorResponse "Store error"
// @Router /jobs/{id} [get]
func (jc *JobController) GetJobHandler(c *gin.Context) {
	job, err := jc.Store.FindJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		controller.RespondStoreError(c, err, "get job")
		return
	}
	c.JSON(http.StatusOK, job)
}

// CreateJobHandler stores the posted job document as is.
// @Summary Create a job
// @Description Any client supplied _id is discarded
// @Tags Job
// @Accept json
// @Produce json
// @Param job body model.Document true "Job document"
// @Success 200 {object} model.InsertResult "Store acknowledgement"
// @Failure 400 {object} utilities.ErrorResponse "Body is not a JSON object"
// @Failure 500 {object} utilities.ErrorResponse "Store error"
// @Router /jobs [post]
func (jc *JobController) CreateJobHandler(c *gin.Context) {
	doc, ok := controller.BindDocument(c)
	if !ok {
		return
	}

	res, err := jc.Store.InsertJob(c.Request.Context(), doc)
	if err != nil {
		controller.RespondStoreError(c, err, "create job")
		return
	}
	c.JSON(http.StatusOK, res)
}

// RecruiterJobsHandler returns the jobs posted by the session owner with their application counts.
// @Summary List recruiter jobs with application counts
// @Description Requires the session cookie. An email query, when present, must match the session email
// @Tags Job
// @Produce json
// @Param email query string false "Must equal the session email"
// @Success 200 {array} model.Document "Jobs with application_count"
// @Failure 401 {object} utilities.MessageResponse "Missing or invalid session"
// @Failure 403 {object} utilities.MessageResponse "Email query does not match the session"
// @Failure 500 {object} utilities.ErrorResponse "Store error"
// @Router /jobs/applications [get]
func (jc *JobController) RecruiterJobsHandler(c *gin.Context) {
	claims, ok := middleware.SessionClaims(c)
	if !ok {
		utilities.AbortWithMessage(c, http.StatusUnauthorized, "unauthorized access")
		return
	}

	if email, given := c.GetQuery("email"); given && email != claims.Email {
		utilities.AbortWithMessage(c, http.StatusForbidden, "forbidden access")
		return
	}

	ctx := c.Request.Context()
	jobs, err := jc.Store.ListJobsByEmployer(ctx, claims.Email)
	if err != nil {
		controller.RespondStoreError(c, err, "list recruiter jobs")
		return
	}

	counted, err := jc.Counter.WithCounts(ctx, jobs)
	if err != nil {
		controller.RespondStoreError(c, err, "count applications")
		return
	}
	controller.RespondList(c, counted)
}
