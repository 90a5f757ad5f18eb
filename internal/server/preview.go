package server

import (
	"net/http"
	"strings"

	rolesettingdomain "github.com/fossecrm/fosse/internal/rolesetting/domain"
	"github.com/gin-gonic/gin"
)

// PreviewRoleSetting marks the role as actively previewed and fetches a
// bounded sample page for its current settings. An explicit order query
// parameter overrides the record's default order for this fetch only.
func (s *Server) PreviewRoleSetting(c *gin.Context) {
	roleID := strings.TrimSpace(c.Param("roleId"))
	if roleID == "" {
		AbortWithError(c, rolesettingdomain.ErrInvalidRole)
		return
	}

	setting, ok := s.store.Get(roleID)
	if !ok {
		setting = s.store.LoadOne(c.Request.Context(), roleID)
	}

	override := rolesettingdomain.OrderNone
	if raw := strings.TrimSpace(c.Query("order")); raw != "" {
		override = rolesettingdomain.ParseOrder(raw)
	}

	s.previews.SetActive(roleID)
	contacts := s.previews.Preview(c.Request.Context(), setting, override)
	c.JSON(http.StatusOK, gin.H{"data": contacts})
}
