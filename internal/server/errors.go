package server

import (
	"errors"
	"net/http"

	rolesettingdomain "github.com/fossecrm/fosse/internal/rolesetting/domain"
	statusdomain "github.com/fossecrm/fosse/internal/status/domain"
	"github.com/fossecrm/fosse/internal/upstream"
	"github.com/gin-gonic/gin"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var ErrInvalidRequest = errors.New("invalid_request")

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, rolesettingdomain.ErrInvalidRole),
		errors.Is(err, statusdomain.ErrUnknownStatus):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_request",
			Message: err.Error(),
		}
	case errors.Is(err, rolesettingdomain.ErrNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	}

	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		// Upstream rejections pass through with their message; everything
		// else is a gateway-side failure.
		if upstream.Classify(err) == upstream.ClassDefinite {
			return apiErr.Status, errorPayload{
				Type:    "upstream_rejected",
				Message: apiErr.Message,
			}
		}
		return http.StatusBadGateway, errorPayload{
			Type:    "upstream_unavailable",
			Message: "upstream request failed",
		}
	}

	return http.StatusInternalServerError, errorPayload{
		Type:    "internal_error",
		Message: "internal server error",
	}
}
