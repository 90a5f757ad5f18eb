package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListStatuses(c *gin.Context) {
	statuses, err := s.statuses.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	defaultID, _ := s.coordinator.Default()
	c.JSON(http.StatusOK, gin.H{
		"data":              statuses,
		"default_status_id": defaultID,
	})
}

type setDefaultStatusRequest struct {
	StatusID string `json:"status_id"`
}

func (s *Server) SetDefaultStatus(c *gin.Context) {
	var req setDefaultStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.coordinator.SetDefault(c.Request.Context(), strings.TrimSpace(req.StatusID)); err != nil {
		AbortWithError(c, err)
		return
	}

	defaultID, _ := s.coordinator.Default()
	c.JSON(http.StatusOK, gin.H{"default_status_id": defaultID})
}
