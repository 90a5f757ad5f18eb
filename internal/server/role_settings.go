package server

import (
	"net/http"
	"strings"

	rolesettingdomain "github.com/fossecrm/fosse/internal/rolesetting/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListRoleSettings(c *gin.Context) {
	if err := s.store.LoadAll(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": s.store.All()})
}

func (s *Server) GetRoleSetting(c *gin.Context) {
	roleID := strings.TrimSpace(c.Param("roleId"))
	if roleID == "" {
		AbortWithError(c, rolesettingdomain.ErrInvalidRole)
		return
	}
	setting := s.store.LoadOne(c.Request.Context(), roleID)
	c.JSON(http.StatusOK, gin.H{"data": setting})
}

type updateRoleSettingRequest struct {
	ForcedColumns   *[]string                    `json:"forced_columns"`
	ForcedFilters   *rolesettingdomain.FilterSet `json:"forced_filters"`
	DefaultOrder    *string                      `json:"default_order"`
	DefaultStatusID *string                      `json:"default_status_id"`
}

func (s *Server) UpdateRoleSetting(c *gin.Context) {
	roleID := strings.TrimSpace(c.Param("roleId"))
	if roleID == "" {
		AbortWithError(c, rolesettingdomain.ErrInvalidRole)
		return
	}

	var req updateRoleSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	changes := rolesettingdomain.UpdateChanges{
		ForcedColumns:   req.ForcedColumns,
		ForcedFilters:   req.ForcedFilters,
		DefaultStatusID: req.DefaultStatusID,
	}
	if req.DefaultOrder != nil {
		order := rolesettingdomain.ParseOrder(*req.DefaultOrder)
		changes.DefaultOrder = &order
	}
	if changes.Empty() {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	// Make sure a record exists so the pre-image for rollback is real.
	if _, ok := s.store.Get(roleID); !ok {
		s.store.LoadOne(c.Request.Context(), roleID)
	}

	result := s.store.Update(c.Request.Context(), roleID, changes)
	resp := gin.H{
		"data":        result.Setting,
		"rolled_back": result.RolledBack,
	}
	if result.Notice != "" {
		resp["notice"] = result.Notice
	}
	c.JSON(http.StatusOK, resp)
}
