package server

import (
	"net/http"
	"strings"

	"github.com/fossecrm/fosse/internal/column"
	rolesettingdomain "github.com/fossecrm/fosse/internal/rolesetting/domain"
	"github.com/fossecrm/fosse/internal/rolesetting/filterspec"
	"github.com/gin-gonic/gin"
)

type filterMutationRequest struct {
	// Type is "open", "defined", or "clear".
	Type   string   `json:"type"`
	Values []string `json:"values"`
}

// MutateRoleFilter changes one column's forced filter through the filter
// state transitions and persists the resulting set like any settings update.
func (s *Server) MutateRoleFilter(c *gin.Context) {
	roleID := strings.TrimSpace(c.Param("roleId"))
	if roleID == "" {
		AbortWithError(c, rolesettingdomain.ErrInvalidRole)
		return
	}
	columnID := strings.TrimSpace(c.Param("columnId"))
	if _, ok := column.Lookup(columnID); !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	var req filterMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	setting, ok := s.store.Get(roleID)
	if !ok {
		setting = s.store.LoadOne(c.Request.Context(), roleID)
	}

	var filters rolesettingdomain.FilterSet
	switch req.Type {
	case "open":
		filters = filterspec.SetOpen(setting.ForcedFilters, columnID)
	case "defined":
		filters = filterspec.SetDefined(setting.ForcedFilters, columnID, req.Values)
	case "clear":
		filters = filterspec.Clear(setting.ForcedFilters, columnID)
	default:
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	result := s.store.Update(c.Request.Context(), roleID, rolesettingdomain.UpdateChanges{
		ForcedFilters: &filters,
	})
	resp := gin.H{
		"data":        result.Setting,
		"rolled_back": result.RolledBack,
	}
	if result.Notice != "" {
		resp["notice"] = result.Notice
	}
	c.JSON(http.StatusOK, resp)
}
