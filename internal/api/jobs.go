package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/OctavioMinteguia/jobhub/internal/model"
	"github.com/OctavioMinteguia/jobhub/internal/search"
)

// jobRequest is the POST /api/jobs payload.
type jobRequest struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Salary      string   `json:"salary"`
	Type        string   `json:"type"`
	Level       string   `json:"level"`
	Tags        []string `json:"tags"`
	Remote      bool     `json:"remote"`
}

func (s *Server) createJob(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	job, err := model.NewJob(model.JobParams{
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
		Location:    req.Location,
		Salary:      req.Salary,
		Type:        req.Type,
		Level:       req.Level,
		Tags:        req.Tags,
		Remote:      req.Remote,
	})
	if err != nil {
		var vErr *model.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := s.store.SaveJob(c.Request.Context(), job); err != nil {
		s.logger.Error("saving job failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// The alert pass runs after the job is durably created; dispatch failures
	// are logged per subscriber and never fail the request.
	alerts, err := s.store.FindActiveAlerts(c.Request.Context())
	if err != nil {
		s.logger.Error("loading active alerts failed", "job_id", job.ID, "error", err)
	} else {
		s.dispatcher.NotifyNewJob(c.Request.Context(), job, alerts)
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": job})
}

func (s *Server) searchJobs(c *gin.Context) {
	query := search.Query{
		Text:     c.Query("q"),
		Company:  c.Query("company"),
		Location: c.Query("location"),
		Type:     c.Query("type"),
		Level:    c.Query("level"),
		Remote:   search.RemoteFlag(c.Query("remote")),
		Source:   c.Query("source"),
	}

	limit := intQuery(c, "limit", 0)
	offset := intQuery(c, "offset", 0)

	result, err := s.aggregator.Search(c.Request.Context(), query, limit, offset)
	if err != nil {
		s.logger.Error("search failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Jobs,
		"pagination": gin.H{
			"total":    result.Total,
			"limit":    result.Limit,
			"offset":   result.Offset,
			"has_more": result.HasMore,
		},
	})
}

func (s *Server) getJob(c *gin.Context) {
	job, err := s.store.FindJobByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.logger.Error("finding job failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": job})
}

func (s *Server) deleteJob(c *gin.Context) {
	id := c.Param("id")
	job, err := s.store.FindJobByID(c.Request.Context(), id)
	if err != nil {
		s.logger.Error("finding job failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	if err := s.store.DeleteJob(c.Request.Context(), id); err != nil {
		s.logger.Error("deleting job failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// intQuery parses an integer query parameter, falling back on absence or
// garbage. Range clamping is the aggregator's job.
func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
