package routers

import (
	"github.com/gin-gonic/gin"

	"github.com/abdhfz93/sipdesk/pkg/middleware/auth"
	"github.com/abdhfz93/sipdesk/pkg/middleware/render"
	"github.com/abdhfz93/sipdesk/server/portal/internal/service"
)

// handleServiceError maps a service error to the matching HTTP response.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case service.IsValidation(err):
		render.BadRequest(c, err.Error())
	case service.IsNotFound(err):
		render.NotFound(c, err.Error())
	case service.IsUnavailable(err):
		render.ServiceUnavailable(c, err.Error())
	default:
		render.InternalServerError(c, err.Error())
	}
}

// callerIdentity returns the authenticated user set by the auth middleware,
// preferring the email for readability in audit logs.
func callerIdentity(c *gin.Context) string {
	if email := c.GetString(auth.ContextEmail); email != "" {
		return email
	}
	return c.GetString(auth.ContextUserID)
}
