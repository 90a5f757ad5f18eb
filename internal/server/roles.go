package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListRoles exposes the upstream role directory so clients can enumerate
// which roles carry settings.
func (s *Server) ListRoles(c *gin.Context) {
	roles, err := s.roles.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": roles})
}
