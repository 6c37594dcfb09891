package routers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abdhfz93/sipdesk/pkg/middleware/render"
	"github.com/abdhfz93/sipdesk/server/portal/internal/service"
)

// MasterlistHandler handles HTTP requests for the client masterlist.
type MasterlistHandler struct {
	service *service.MasterlistService
}

// NewMasterlistHandler creates a new MasterlistHandler.
func NewMasterlistHandler(svc *service.MasterlistService) *MasterlistHandler {
	return &MasterlistHandler{service: svc}
}

// RegisterRoutes registers masterlist routes with the given router group.
func (h *MasterlistHandler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group(RouteGroupMasterlist)
	{
		group.GET("", h.listMasterlist)
		group.GET(RouteParamID, h.getMasterlist)
		group.POST("", h.createMasterlist)
		group.PUT(RouteParamID, h.updateMasterlist)
		group.DELETE(RouteParamID, h.deleteMasterlist)
	}
}

// listMasterlist returns masterlist entries matching the query.
// @Summary List masterlist entries
// @Tags Masterlist
// @Produce json
// @Param page query int false "Page number, defaults to 1"
// @Param size query int false "Page size, defaults to 10"
// @Param search query string false "Free-text search"
// @Success 200 {object} render.Response
// @Failure 400 {object} render.Response
// @Router /fe-v1/masterlist [get]
func (h *MasterlistHandler) listMasterlist(c *gin.Context) {
	var query service.MasterlistQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		render.BadRequest(c, MsgInvalidQueryParams+err.Error())
		return
	}

	response, err := h.service.ListMasterlist(c.Request.Context(), &query)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	render.Success(c, response)
}

// getMasterlist returns a single masterlist entry.
// @Summary Get a masterlist entry
// @Tags Masterlist
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} render.Response
// @Failure 404 {object} render.Response
// @Router /fe-v1/masterlist/{id} [get]
func (h *MasterlistHandler) getMasterlist(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	response, err := h.service.GetMasterlist(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	render.Success(c, response)
}

// createMasterlist creates a masterlist entry.
// @Summary Create a masterlist entry
// @Tags Masterlist
// @Accept json
// @Produce json
// @Param data body service.MasterlistInput true "Entry content"
// @Success 200 {object} render.Response
// @Failure 400 {object} render.Response
// @Router /fe-v1/masterlist [post]
func (h *MasterlistHandler) createMasterlist(c *gin.Context) {
	var input service.MasterlistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		render.BadRequest(c, MsgInvalidRequestBody+err.Error())
		return
	}

	response, err := h.service.CreateMasterlist(c.Request.Context(), callerIdentity(c), &input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	render.Success(c, response)
}

// updateMasterlist updates a masterlist entry.
// @Summary Update a masterlist entry
// @Tags Masterlist
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param data body service.MasterlistInput true "Entry content"
// @Success 200 {object} render.Response
// @Failure 404 {object} render.Response
// @Router /fe-v1/masterlist/{id} [put]
func (h *MasterlistHandler) updateMasterlist(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var input service.MasterlistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		render.BadRequest(c, MsgInvalidRequestBody+err.Error())
		return
	}

	response, err := h.service.UpdateMasterlist(c.Request.Context(), callerIdentity(c), id, &input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	render.Success(c, response)
}

// deleteMasterlist deletes a masterlist entry.
// @Summary Delete a masterlist entry
// @Tags Masterlist
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} render.Response
// @Failure 404 {object} render.Response
// @Router /fe-v1/masterlist/{id} [delete]
func (h *MasterlistHandler) deleteMasterlist(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteMasterlist(c.Request.Context(), callerIdentity(c), id); err != nil {
		handleServiceError(c, err)
		return
	}

	render.SuccessWithMessage(c, "masterlist entry deleted", nil)
}

func (h *MasterlistHandler) parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(ParamID), Base10, BitSize64)
	if err != nil {
		render.BadRequest(c, MsgInvalidIDFormat)
		return 0, false
	}
	return id, true
}
