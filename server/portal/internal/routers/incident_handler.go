package routers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abdhfz93/sipdesk/pkg/middleware/render"
	"github.com/abdhfz93/sipdesk/server/portal/internal/service"
)

// IncidentHandler handles HTTP requests for incident reports.
type IncidentHandler struct {
	service *service.IncidentService
}

// NewIncidentHandler creates a new IncidentHandler.
func NewIncidentHandler(svc *service.IncidentService) *IncidentHandler {
	return &IncidentHandler{service: svc}
}

// RegisterRoutes registers incident report routes with the given router group.
func (h *IncidentHandler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group(RouteGroupIncidents)
	{
		group.GET("", h.listIncidents)
		group.GET(RouteParamID, h.getIncident)
		group.POST(SubRouteGenerate, h.generateReport)
		group.DELETE(RouteParamID, h.deleteIncident)
	}
}

// generateReport generates an incident report from a pasted conversation.
// @Summary Generate an incident report
// @Description Runs the conversation context through the generative model and stores the result
// @Tags Incidents
// @Accept json
// @Produce json
// @Param data body service.IncidentInput true "Conversation context"
// @Success 200 {object} render.Response
// @Failure 400 {object} render.Response
// @Failure 503 {object} render.Response
// @Router /fe-v1/incidents/generate [post]
func (h *IncidentHandler) generateReport(c *gin.Context) {
	var input service.IncidentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		render.BadRequest(c, MsgInvalidRequestBody+err.Error())
		return
	}

	response, err := h.service.GenerateReport(c.Request.Context(), callerIdentity(c), &input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	render.Success(c, response)
}

// listIncidents returns stored incident reports.
// @Summary List incident reports
// @Tags Incidents
// @Produce json
// @Param page query int false "Page number, defaults to 1"
// @Param size query int false "Page size, defaults to 10"
// @Param search query string false "Free-text search"
// @Success 200 {object} render.Response
// @Failure 400 {object} render.Response
// @Router /fe-v1/incidents [get]
func (h *IncidentHandler) listIncidents(c *gin.Context) {
	var query service.IncidentQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		render.BadRequest(c, MsgInvalidQueryParams+err.Error())
		return
	}

	response, err := h.service.ListIncidents(c.Request.Context(), &query)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	render.Success(c, response)
}

// getIncident returns a single incident report.
// @Summary Get an incident report
// @Tags Incidents
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} render.Response
// @Failure 404 {object} render.Response
// @Router /fe-v1/incidents/{id} [get]
func (h *IncidentHandler) getIncident(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	response, err := h.service.GetIncident(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	render.Success(c, response)
}

// deleteIncident deletes an incident report.
// @Summary Delete an incident report
// @Tags Incidents
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} render.Response
// @Failure 404 {object} render.Response
// @Router /fe-v1/incidents/{id} [delete]
func (h *IncidentHandler) deleteIncident(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteIncident(c.Request.Context(), callerIdentity(c), id); err != nil {
		handleServiceError(c, err)
		return
	}

	render.SuccessWithMessage(c, "incident report deleted", nil)
}

func (h *IncidentHandler) parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(ParamID), Base10, BitSize64)
	if err != nil {
		render.BadRequest(c, MsgInvalidIDFormat)
		return 0, false
	}
	return id, true
}
