// Package api exposes the query surface over HTTP. It is a thin layer: all
// matching, merging and pagination logic lives in the core packages.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/OctavioMinteguia/jobhub/internal/aggregate"
	"github.com/OctavioMinteguia/jobhub/internal/alert"
	"github.com/OctavioMinteguia/jobhub/internal/model"
)

// Server wires the HTTP routes to the aggregation core.
type Server struct {
	store      model.JobStore
	aggregator *aggregate.Aggregator
	dispatcher *alert.Dispatcher
	logger     *slog.Logger
	engine     *gin.Engine
}

// NewServer builds the router and its handlers.
func NewServer(store model.JobStore, aggregator *aggregate.Aggregator, dispatcher *alert.Dispatcher, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		store:      store,
		aggregator: aggregator,
		dispatcher: dispatcher,
		logger:     logger,
		engine:     engine,
	}

	api := engine.Group("/api")
	api.POST("/jobs", s.createJob)
	api.GET("/jobs/search", s.searchJobs)
	api.GET("/jobs/:id", s.getJob)
	api.DELETE("/jobs/:id", s.deleteJob)
	api.POST("/alerts", s.createAlert)
	api.GET("/alerts", s.listAlerts)
	api.DELETE("/alerts/:id", s.deleteAlert)
	engine.GET("/health", s.health)

	return s
}

// Handler returns the root http.Handler for mounting in an http.Server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
