// Package application provides HTTP handlers for job application operations.
package application

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ismail-dev-code/career-linker-server/internal/controller"
	"github.com/ismail-dev-code/career-linker-server/internal/database"
	"github.com/ismail-dev-code/career-linker-server/internal/enrich"
	"github.com/ismail-dev-code/career-linker-server/internal/middleware"
	"github.com/ismail-dev-code/career-linker-server/internal/model"
	"github.com/ismail-dev-code/career-linker-server/internal/utilities"
)

// ApplicationController handles job application related endpoints
type ApplicationController struct {
	Store    database.ApplicationStore
	Pipeline enrich.Pipeline
}

// NewApplicationController creates a new instance of ApplicationController
func NewApplicationController(store database.ApplicationStore, pipeline enrich.Pipeline) *ApplicationController {
	return &ApplicationController{
		Store:    store,
		Pipeline: pipeline,
	}
}

// ListByApplicantHandler returns the applicant's applications decorated with job details.
// @Summary List my applications
// @Description Requires a bearer token whose verified email equals the email query
// @Tags Application
// @Produce json
// @Param Authorization header string true "Identity provider access token" default(Bearer <your access token>)
// @Param email query string true "Applicant email"
// @Success 200 {array} model.Document "Applications with company, title, company_logo and referralSource"
// @Failure 401 {object} utilities.MessageResponse "Missing or rejected token"
// @Failure 403 {object} utilities.MessageResponse "Email query is missing or does not match the token owner"
// @Failure 502 {object} utilities.MessageResponse "Identity provider unavailable"
// @Failure 500 {object} utilities.ErrorResponse "Store error"
// @Router /applications [get]
func (ac *ApplicationController) ListByApplicantHandler(c *gin.Context) {
	verified, ok := middleware.VerifiedEmail(c)
	if !ok {
		utilities.AbortWithMessage(c, http.StatusUnauthorized, "unauthorized access")
		return
	}

	email := c.Query("email")
	if email != verified {
		utilities.AbortWithMessage(c, http.StatusForbidden, "forbidden access")
		return
	}

	ctx := c.Request.Context()
	apps, err := ac.Store.ListApplicationsByApplicant(ctx, email)
	if err != nil {
		controller.RespondStoreError(c, err, "list applications")
		return
	}

	enriched, err := ac.Pipeline.Enrich(ctx, apps)
	if err != nil {
		controller.RespondStoreError(c, err, "enrich applications")
		return
	}
	controller.RespondList(c, enriched)
}

// CreateApplicationHandler stores the posted application document as is.
// @Summary Submit an application
// @Tags Application
// @Accept json
// @Produce json
// @Param application body model.Document true "Application document, jobId references a job"
// @Success 200 {object} model.InsertResult "Store acknowledgement"
// @Failure 400 {object} utilities.ErrorResponse "Body is not a JSON object"
// @Failure 500 {object} utilities.ErrorResponse "Store error"
// @Router /applications [post]
func (ac *ApplicationController) CreateApplicationHandler(c *gin.Context) {
	doc, ok := controller.BindDocument(c)
	if !ok {
		return
	}

	res, err := ac.Store.InsertApplication(c.Request.Context(), doc)
	if err != nil {
		controller.RespondStoreError(c, err, "create application")
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListByJobHandler returns every application referencing a job.
// @Summary List applications for a job
// @Tags Application
// @Produce json
// @Param job_id path string true "Job id, compared as a string"
// @Success 200 {array} model.Document "Applications"
// @Failure 500 {object} utilities.ErrorResponse "Store error"
// @Router /applications/job/{job_id} [get]
func (ac *ApplicationController) ListByJobHandler(c *gin.Context) {
	apps, err := ac.Store.ListApplicationsByJob(c.Request.Context(), c.Param("job_id"))
	if err != nil {
		controller.RespondStoreError(c, err, "list applications")
		return
	}
	controller.RespondList(c, apps)
}

// UpdateStatusHandler sets the status field of an application.
// @Summary Update application status
// @Tags Application
// @Accept json
// @Produce json
// @Param id path string true "Application id"
// @Param status body model.StatusUpdate true "New status"
// @Success 200 {object} model.UpdateResult "Store acknowledgement"
// @Failure 400 {object} utilities.ErrorResponse "Malformed id or body"
// @Failure 500 {object} utilities.ErrorResponse "Store error"
// @Router /applications/{id} [patch]
func (ac *ApplicationController) UpdateStatusHandler(c *gin.Context) {
	var body model.StatusUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "status is required"})
		return
	}

	res, err := ac.Store.UpdateApplicationStatus(c.Request.Context(), c.Param("id"), body.Status)
	if err != nil {
		controller.RespondStoreError(c, err, "update application")
		return
	}
	c.JSON(http.StatusOK, res)
}

// DeleteApplicationHandler removes an application.
// @Summary Delete an application
// @Tags Application
// @Produce json
// @Param id path string true "Application id"
// @Success 200 {object} model.DeleteResult "Store acknowledgement"
// @Failure 400 {object} utilities.ErrorResponse "Malformed id"
// @Failure 500 {object} utilities.ErrorResponse "Store error"
// @Router /applications/{id} [delete]
func (ac *ApplicationController) DeleteApplicationHandler(c *gin.Context) {
	res, err := ac.Store.DeleteApplication(c.Request.Context(), c.Param("id"))
	if err != nil {
		controller.RespondStoreError(c, err, "delete application")
		return
	}
	c.JSON(http.StatusOK, res)
}
