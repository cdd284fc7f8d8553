// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ismail-dev-code/career-linker-server/internal/auth"
	"github.com/ismail-dev-code/career-linker-server/internal/controller/application"
	"github.com/ismail-dev-code/career-linker-server/internal/controller/job"
	"github.com/ismail-dev-code/career-linker-server/internal/enrich"
	"github.com/ismail-dev-code/career-linker-server/internal/middleware"
	"github.com/ismail-dev-code/career-linker-server/internal/relay"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *Server) RegisterRoutes() http.Handler {
	r := gin.New()

	r.Use(
		middleware.Recovery(s.logger),
		middleware.RequestLogger(s.logger),
		middleware.Metrics(s.metrics),
		middleware.SafeHeader(s.cfg.IsProduction()),
		cors.New(s.corsConfig()),
		middleware.SizeLimit(s.cfg.Server.MaxBodyBytes),
	)

	pipelineCfg := s.cfg.Pipeline
	jobs := job.NewJobController(s.store, enrich.NewCounter(pipelineCfg.Strategy, s.store))
	applications := application.NewApplicationController(s.store, enrich.New(pipelineCfg.Strategy, s.store, pipelineCfg.Concurrency))
	sessions := auth.NewSessionController(s.sessions, s.cfg.Auth.CookieName, s.cfg.Auth.CookieSecure)

	requireSession := middleware.Authenticate(middleware.SessionCookie(s.sessions, s.cfg.Auth.CookieName))
	requireBearer := middleware.Authenticate(middleware.BearerToken(s.verifier))

	r.GET("/", s.rootHandler)
	r.GET("/health", s.healthHandler)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	r.GET("/ws", relay.NewHandler(s.hub, s.cfg.Server.AllowOrigins).ServeWS)

	r.POST("/jwt", sessions.IssueHandler)
	r.POST("/logout", sessions.LogoutHandler)

	jobRoute := r.Group("/jobs")
	{
		jobRoute.GET("", jobs.ListJobsHandler)
		jobRoute.POST("", jobs.CreateJobHandler)
		jobRoute.GET("/applications", requireSession, jobs.RecruiterJobsHandler)
		jobRoute.GET("/:id", jobs.GetJobHandler)
	}

	applicationRoute := r.Group("/applications")
	{
		applicationRoute.GET("", requireBearer, applications.ListByApplicantHandler)
		applicationRoute.POST("", applications.CreateApplicationHandler)
		applicationRoute.GET("/job/:job_id", applications.ListByJobHandler)
		applicationRoute.PATCH("/:id", applications.UpdateStatusHandler)
		applicationRoute.DELETE("/:id", applications.DeleteApplicationHandler)
	}

	return r
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	origins := s.cfg.Server.AllowOrigins
	for _, origin := range origins {
		if origin == "*" {
			// Echo the caller's origin; a literal "*" is rejected by browsers on credentialed requests.
			cfg.AllowOriginFunc = func(string) bool { return true }
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}

// rootHandler answers liveness probes with plain text
func (s *Server) rootHandler(c *gin.Context) {
	c.String(http.StatusOK, "Career server is running:")
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Health(c.Request.Context()))
}
