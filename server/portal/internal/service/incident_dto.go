package service

import (
	"time"

	"github.com/abdhfz93/sipdesk/models/portal"
)

// IncidentInput is the report generation payload. Context carries the raw
// support conversation the report is distilled from.
type IncidentInput struct {
	Context      string            `json:"context" binding:"required"`
	SipID        string            `json:"sipId"`
	ClientName   string            `json:"clientName"`
	IncidentDate portal.PortalDate `json:"incidentDate"`
}

// IncidentQuery filters the incident report listing.
type IncidentQuery struct {
	Search string `form:"search"`
	SipID  string `form:"sipId"`
	PaginationRequest
}

// IncidentResponse mirrors one stored incident report.
type IncidentResponse struct {
	ID             int64  `json:"id"`
	IncidentNumber string `json:"incidentNumber"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	SipID          string `json:"sipId"`
	ClientName     string `json:"clientName"`
	IncidentDate   string `json:"incidentDate"`
	CreatedAt      string `json:"createdAt"`
}

// IncidentListResponse is the paginated incident list.
type IncidentListResponse struct {
	List  []*IncidentResponse `json:"list"`
	Page  int                 `json:"page"`
	Size  int                 `json:"size"`
	Total int64               `json:"total"`
}

// GenerateReportResponse carries the generated report text and, when the
// insert succeeded, the stored record. When the insert failed the report is
// still returned together with the store's diagnostics.
type GenerateReportResponse struct {
	Report   string            `json:"report"`
	Record   *IncidentResponse `json:"record,omitempty"`
	DBError  string            `json:"dbError,omitempty"`
	DBDetail string            `json:"dbDetail,omitempty"`
}

func toIncidentResponse(m *portal.IncidentReport) *IncidentResponse {
	if m == nil {
		return nil
	}
	return &IncidentResponse{
		ID:             m.ID,
		IncidentNumber: m.IncidentNumber,
		Title:          m.Title,
		Content:        m.Content,
		SipID:          m.SipID,
		ClientName:     m.ClientName,
		IncidentDate:   m.IncidentDate.String(),
		CreatedAt:      m.CreatedAt.Format(time.RFC3339),
	}
}
