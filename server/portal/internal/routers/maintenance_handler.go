// Package routers defines the HTTP routes for the portal module.
package routers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abdhfz93/sipdesk/pkg/middleware/render"
	"github.com/abdhfz93/sipdesk/server/portal/internal/service"
)

// MaintenanceHandler handles HTTP requests for maintenance records.
type MaintenanceHandler struct {
	service *service.MaintenanceService
}

// NewMaintenanceHandler creates a new MaintenanceHandler.
func NewMaintenanceHandler(svc *service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{service: svc}
}

// RegisterRoutes registers maintenance record routes with the given router group.
func (h *MaintenanceHandler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group(RouteGroupMaintenance)
	{
		group.GET("", h.listRecords)
		group.GET(SubRouteExport, h.exportRecords)
		group.GET(RouteParamID, h.getRecord)
		group.POST("", h.createRecord)
		group.PUT(RouteParamID, h.updateRecord)
		group.DELETE(RouteParamID, h.deleteRecord)
		group.POST(RouteParamIDProofs, h.addProofs)
		group.DELETE(RouteParamIDProofsIndex, h.removeProof)
		group.PUT(RouteParamIDProofsIndex, h.setProofComment)
		group.PUT(RouteParamIDChecklist, h.upsertChecklist)
		group.GET(RouteParamIDCopy, h.copyRecord)
	}
}

// listRecords returns maintenance records matching the query.
// @Summary List maintenance records
// @Description Lists maintenance records with optional search, status, server and client filters
// @Tags Maintenance
// @Accept json
// @Produce json
// @Param page query int false "Page number, defaults to 1"
// @Param size query int false "Page size, defaults to 10"
// @Param search query string false "Free-text search"
// @Param status query string false "Status filter"
// @Success 200 {object} render.Response
// @Failure 400 {object} render.Response
// @Failure 500 {object} render.Response
// @Router /fe-v1/maintenance-records [get]
func (h *MaintenanceHandler) listRecords(c *gin.Context) {
	var query service.MaintenanceRecordQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		render.BadRequest(c, MsgInvalidQueryParams+err.Error())
		return
	}

	response, err := h.service.ListRecords(c.Request.Context(), &query)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	render.Success(c, response)
}

// getRecord returns a single maintenance record.
// @Summary Get a maintenance record
// @Tags Maintenance
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} render.Response
// @Failure 404 {object} render.Response
// @Router /fe-v1/maintenance-records/{id} [get]
func (h *MaintenanceHandler) getRecord(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	response, err := h.service.GetRecord(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	render.Success(c, response)
}

// createRecord creates a maintenance record.
// @Summary Create a maintenance record
// @Tags Maintenance
// @Accept json
// @Produce json
// @Param data body service.MaintenanceRecordInput true "Record content"
// @Success 200 {object} render.Response
// @Failure 400 {object} render.Response
// @Router /fe-v1/maintenance-records [post]
func (h *MaintenanceHandler) createRecord(c *gin.Context) {
	var input service.MaintenanceRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		render.BadRequest(c, MsgInvalidRequestBody+err.Error())
		return
	}

	response, err := h.service.CreateRecord(c.Request.Context(), callerIdentity(c), &input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	render.Success(c, response)
}

// updateRecord replaces a maintenance record's fields.
// @Summary Update a maintenance record
// @Tags Maintenance
// @Accept json
// @Produce json
// @Param id path int true "Record ID"
// @Param data body service.MaintenanceRecordInput true "Record content"
// @Success 200 {object} render.Response
// @Failure 400 {object} render.Response
// @Failure 404 {object} render.Response
// @Router /fe-v1/maintenance-records/{id} [put]
func (h *MaintenanceHandler) updateRecord(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var input service.MaintenanceRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		render.BadRequest(c, MsgInvalidRequestBody+err.Error())
		return
	}

	response, err := h.service.UpdateRecord(c.Request.Context(), callerIdentity(c), id, &input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	render.Success(c, response)
}

// deleteRecord deletes a maintenance record and its stored proofs.
// @Summary Delete a maintenance record
// @Tags Maintenance
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} render.Response
// @Failure 404 {object} render.Response
// @Router /fe-v1/maintenance-records/{id} [delete]
func (h *MaintenanceHandler) deleteRecord(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteRecord(c.Request.Context(), callerIdentity(c), id); err != nil {
		handleServiceError(c, err)
		return
	}

	render.SuccessWithMessage(c, "maintenance record deleted", nil)
}

// addProofs uploads proof images and appends them to the record.
// @Summary Upload proof-of-maintenance images
// @Description Accepts up to five images as multipart form files under the "proofs" field
// @Tags Maintenance
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Record ID"
// @Param proofs formData file true "Proof image files"
// @Success 200 {object} render.Response
// @Failure 400 {object} render.Response
// @Failure 503 {object} render.Response
// @Router /fe-v1/maintenance-records/{id}/proofs [post]
func (h *MaintenanceHandler) addProofs(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		render.BadRequest(c, MsgInvalidRequestBody+err.Error())
		return
	}
	files := form.File[FormFieldProofs]
	if len(files) == 0 {
		render.BadRequest(c, MsgNoProofFilesAttached)
		return
	}

	uploads := make([]service.ProofUpload, 0, len(files))
	for _, file := range files {
		reader, err := file.Open()
		if err != nil {
			render.BadRequest(c, MsgInvalidRequestBody+err.Error())
			return
		}
		defer reader.Close()

		uploads = append(uploads, service.ProofUpload{
			Filename:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Body:        reader,
		})
	}

	response, err := h.service.AddProofs(c.Request.Context(), callerIdentity(c), id, uploads)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	render.Success(c, response)
}

// removeProof removes a single proof by its position in the list.
// @Summary Remove a proof image
// @Tags Maintenance
// @Produce json
// @Param id path int true "Record ID"
// @Param index path int true "Proof position"
// @Success 200 {object} render.Response
// @Failure 400 {object} render.Response
// @Router /fe-v1/maintenance-records/{id}/proofs/{index} [delete]
func (h *MaintenanceHandler) removeProof(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	index, ok := h.parseIndex(c)
	if !ok {
		return
	}

	response, err := h.service.RemoveProof(c.Request.Context(), callerIdentity(c), id, index)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	render.Success(c, response)
}

type proofCommentInput struct {
	Comment string `json:"comment"`
}

// setProofComment replaces the comment on a single proof.
// @Summary Set a proof image comment
// @Tags Maintenance
// @Accept json
// @Produce json
// @Param id path int true "Record ID"
// @Param index path int true "Proof position"
// @Param data body proofCommentInput true "Comment content"
// @Success 200 {object} render.Response
// @Failure 400 {object} render.Response
// @Router /fe-v1/maintenance-records/{id}/proofs/{index} [put]
func (h *MaintenanceHandler) setProofComment(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	index, ok := h.parseIndex(c)
	if !ok {
		return
	}

	var input proofCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		render.BadRequest(c, MsgInvalidRequestBody+err.Error())
		return
	}

	response, err := h.service.SetProofComment(c.Request.Context(), callerIdentity(c), id, index, input.Comment)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	render.Success(c, response)
}

type checklistInput struct {
	Items []service.ChecklistItemInput `json:"items"`
}

// upsertChecklist replaces the record's checklist, re-adding default items.
// @Summary Replace a record's checklist
// @Tags Maintenance
// @Accept json
// @Produce json
// @Param id path int true "Record ID"
// @Param data body checklistInput true "Checklist items"
// @Success 200 {object} render.Response
// @Failure 400 {object} render.Response
// @Router /fe-v1/maintenance-records/{id}/checklist [put]
func (h *MaintenanceHandler) upsertChecklist(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var input checklistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		render.BadRequest(c, MsgInvalidRequestBody+err.Error())
		return
	}

	response, err := h.service.UpsertChecklist(c.Request.Context(), callerIdentity(c), id, input.Items)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	render.Success(c, response)
}

// copyRecord returns an unsaved draft prefilled from an existing record.
// @Summary Copy a record as a template
// @Description Returns a draft with remark and proof images cleared; nothing is persisted
// @Tags Maintenance
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} render.Response
// @Failure 404 {object} render.Response
// @Router /fe-v1/maintenance-records/{id}/copy [get]
func (h *MaintenanceHandler) copyRecord(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	draft, err := h.service.CopyRecord(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	render.Success(c, draft)
}

// exportRecords streams matching records as an XLSX workbook.
// @Summary Export maintenance records
// @Tags Maintenance
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 500 {object} render.Response
// @Router /fe-v1/maintenance-records/export [get]
func (h *MaintenanceHandler) exportRecords(c *gin.Context) {
	var query service.MaintenanceRecordQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		render.BadRequest(c, MsgInvalidQueryParams+err.Error())
		return
	}

	data, err := h.service.ExportRecords(c.Request.Context(), &query)
	if err != nil {
		render.InternalServerError(c, fmt.Sprintf(MsgFailedToExportRecords, err.Error()))
		return
	}

	filename := fmt.Sprintf("maintenance_records_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Length", fmt.Sprintf("%d", len(data)))

	c.Data(http.StatusOK, xlsxContentType, data)
}

func (h *MaintenanceHandler) parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(ParamID), Base10, BitSize64)
	if err != nil {
		render.BadRequest(c, MsgInvalidIDFormat)
		return 0, false
	}
	return id, true
}

func (h *MaintenanceHandler) parseIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param(ParamIndex))
	if err != nil {
		render.BadRequest(c, MsgInvalidIndexFormat)
		return 0, false
	}
	return index, true
}
