package routers

import (
	"github.com/gin-gonic/gin"

	"github.com/abdhfz93/sipdesk/pkg/middleware/render"
	"github.com/abdhfz93/sipdesk/server/portal/internal/service"
)

// LookupHandler serves suggested values for record form fields.
type LookupHandler struct {
	service *service.LookupService
}

// NewLookupHandler creates a new LookupHandler.
func NewLookupHandler(svc *service.LookupService) *LookupHandler {
	return &LookupHandler{service: svc}
}

// RegisterRoutes registers lookup routes with the given router group.
func (h *LookupHandler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group(RouteGroupLookups)
	{
		group.GET(SubRouteServerNames, h.serverNames)
		group.GET(SubRouteClientNames, h.clientNames)
		group.GET(SubRoutePersonnel, h.personnel)
		group.GET(SubRouteMaintenanceReason, h.maintenanceReasons)
	}
}

// serverNames returns the known SIP server identifiers.
// @Summary List known server names
// @Tags Lookups
// @Produce json
// @Success 200 {object} render.Response
// @Router /fe-v1/lookups/server-names [get]
func (h *LookupHandler) serverNames(c *gin.Context) {
	names, err := h.service.ServerNames(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	render.Success(c, names)
}

// clientNames returns the known client company names.
// @Summary List known client names
// @Tags Lookups
// @Produce json
// @Success 200 {object} render.Response
// @Router /fe-v1/lookups/client-names [get]
func (h *LookupHandler) clientNames(c *gin.Context) {
	names, err := h.service.ClientNames(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	render.Success(c, names)
}

// personnel returns names that previously appeared as performers or approvers.
// @Summary List known personnel
// @Tags Lookups
// @Produce json
// @Success 200 {object} render.Response
// @Router /fe-v1/lookups/personnel [get]
func (h *LookupHandler) personnel(c *gin.Context) {
	names, err := h.service.Personnel(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	render.Success(c, names)
}

// maintenanceReasons returns the fixed reason options.
// @Summary List maintenance reason options
// @Tags Lookups
// @Produce json
// @Success 200 {object} render.Response
// @Router /fe-v1/lookups/maintenance-reasons [get]
func (h *LookupHandler) maintenanceReasons(c *gin.Context) {
	render.Success(c, h.service.MaintenanceReasons())
}
