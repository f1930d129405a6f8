package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OctavioMinteguia/jobhub/internal/model"
	"github.com/OctavioMinteguia/jobhub/internal/search"
)

// alertRequest is the POST /api/alerts payload. The remote filter arrives as
// text ("true"/"yes"/...) and is coerced to a boolean exactly once, here at
// the boundary.
type alertRequest struct {
	Email         string              `json:"email"`
	SearchPattern string              `json:"searchPattern"`
	Filters       alertFiltersRequest `json:"filters"`
}

type alertFiltersRequest struct {
	Company  string `json:"company"`
	Location string `json:"location"`
	Type     string `json:"type"`
	Level    string `json:"level"`
	Remote   string `json:"remote"`
}

func (s *Server) createAlert(c *gin.Context) {
	var req alertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	a, err := model.NewAlert(req.Email, req.SearchPattern, model.AlertFilters{
		Company:  req.Filters.Company,
		Location: req.Filters.Location,
		Type:     req.Filters.Type,
		Level:    req.Filters.Level,
		Remote:   search.RemoteFlag(req.Filters.Remote),
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

	if err := s.store.SaveAlert(c.Request.Context(), a); err != nil {
		s.logger.Error("saving alert failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": a})
}

func (s *Server) listAlerts(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}

	alerts, err := s.store.FindAlertsByEmail(c.Request.Context(), email)
	if err != nil {
		s.logger.Error("listing alerts failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if alerts == nil {
		alerts = []model.Alert{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": alerts})
}

// deleteAlert deactivates the subscription; the row stays for audit and
// possible reactivation.
func (s *Server) deleteAlert(c *gin.Context) {
	a, err := s.store.FindAlertByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.logger.Error("finding alert failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if a == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
		return
	}

	a.Deactivate()
	if err := s.store.SaveAlert(c.Request.Context(), *a); err != nil {
		s.logger.Error("deactivating alert failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
