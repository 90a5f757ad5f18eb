package server

import (
	"net/http"

	"github.com/fossecrm/fosse/internal/column"
	"github.com/gin-gonic/gin"
)

type columnResponse struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Options   string `json:"options,omitempty"`
	NameKeyed bool   `json:"name_keyed"`
}

// ListColumns exposes the static filter-column catalog, with the current
// option entries resolved for multi-valued columns.
func (s *Server) ListColumns(c *gin.Context) {
	cols := column.All()
	out := make([]gin.H, 0, len(cols))
	for _, col := range cols {
		entry := gin.H{"column": columnResponse{
			ID:        col.ID,
			Kind:      string(col.Kind),
			Options:   string(col.Options),
			NameKeyed: col.NameKeyed,
		}}
		if col.Options != column.OptionsNone {
			entry["options"] = s.resolver.Options(c.Request.Context(), col.Options)
		}
		out = append(out, entry)
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}
