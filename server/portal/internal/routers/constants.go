package routers

// Route path constants.
const (
	RouteGroupMaintenance = "/maintenance-records"
	RouteGroupMasterlist  = "/masterlist"
	RouteGroupIncidents   = "/incidents"
	RouteGroupLookups     = "/lookups"

	RouteParamID              = "/:id"
	RouteParamIDProofs        = "/:id/proofs"
	RouteParamIDProofsIndex   = "/:id/proofs/:index"
	RouteParamIDChecklist     = "/:id/checklist"
	RouteParamIDCopy          = "/:id/copy"
	SubRouteExport            = "/export"
	SubRouteGenerate          = "/generate"
	SubRouteServerNames       = "/server-names"
	SubRouteClientNames       = "/client-names"
	SubRoutePersonnel         = "/personnel"
	SubRouteMaintenanceReason = "/maintenance-reasons"
)

// Request parameter names.
const (
	ParamID    = "id"
	ParamIndex = "index"

	FormFieldProofs = "proofs"

	Base10    = 10
	BitSize64 = 64
)

// Handler messages.
const (
	MsgInvalidIDFormat       = "invalid id format"
	MsgInvalidIndexFormat    = "invalid proof index format"
	MsgInvalidQueryParams    = "invalid query parameters: "
	MsgInvalidRequestBody    = "invalid request body: "
	MsgNoProofFilesAttached  = "no proof files attached"
	MsgFailedToExportRecords = "failed to export maintenance records: %s"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
