package service

import (
	"time"

	"github.com/abdhfz93/sipdesk/models/portal"
)

// ProofItemInput is one proof attachment in a create/update payload.
type ProofItemInput struct {
	URL     string `json:"url" binding:"required"`
	Comment string `json:"comment"`
}

// ChecklistItemInput is one checklist entry in a payload. An empty status
// defaults to not-tested.
type ChecklistItemInput struct {
	Label  string `json:"label" binding:"required"`
	Status string `json:"status"`
}

// MaintenanceRecordInput is the create payload. On update, nil proof and
// checklist slices mean "leave unchanged"; non-nil slices replace.
type MaintenanceRecordInput struct {
	ServerName         string               `json:"serverName" binding:"required"`
	ClientName         string               `json:"clientName" binding:"required"`
	MaintenanceDate    portal.PortalDate    `json:"maintenanceDate"`
	StartTime          string               `json:"startTime"`
	EndTime            string               `json:"endTime"`
	MaintenanceReason  string               `json:"maintenanceReason"`
	Approver           string               `json:"approver"`
	PerformedBy        []string             `json:"performedBy"`
	Status             string               `json:"status"`
	Remark             string               `json:"remark"`
	ProofOfMaintenance []ProofItemInput     `json:"proofOfMaintenance"`
	Checklist          []ChecklistItemInput `json:"checklist"`
}

// MaintenanceRecordQuery filters the record list. Search is a
// case-insensitive substring match; the remaining predicates are exact.
// Size <= 0 returns the full result set.
type MaintenanceRecordQuery struct {
	Search     string `form:"search"`
	Status     string `form:"status"`
	ServerName string `form:"server"`
	ClientName string `form:"client"`
	PaginationRequest
}

// MaintenanceRecordResponse mirrors one stored record.
type MaintenanceRecordResponse struct {
	ID                 int64                  `json:"id"`
	MaintenanceNumber  string                 `json:"maintenanceNumber"`
	SubmitDate         string                 `json:"submitDate"`
	ServerName         string                 `json:"serverName"`
	ClientName         string                 `json:"clientName"`
	MaintenanceDate    string                 `json:"maintenanceDate"`
	StartTime          string                 `json:"startTime"`
	EndTime            string                 `json:"endTime"`
	MaintenanceReason  string                 `json:"maintenanceReason"`
	Approver           string                 `json:"approver"`
	PerformedBy        []string               `json:"performedBy"`
	Status             string                 `json:"status"`
	ProofOfMaintenance []portal.ProofItem     `json:"proofOfMaintenance"`
	Remark             string                 `json:"remark"`
	Checklist          []portal.ChecklistItem `json:"checklist"`
	CreatedAt          string                 `json:"createdAt"`
	UpdatedAt          string                 `json:"updatedAt"`
}

// MaintenanceRecordListResponse is the paginated list response.
type MaintenanceRecordListResponse struct {
	List  []*MaintenanceRecordResponse `json:"list"`
	Page  int                          `json:"page"`
	Size  int                          `json:"size"`
	Total int64                        `json:"total"`
}

func toMaintenanceRecordResponse(m *portal.MaintenanceRecord) *MaintenanceRecordResponse {
	if m == nil {
		return nil
	}
	return &MaintenanceRecordResponse{
		ID:                 m.ID,
		MaintenanceNumber:  m.MaintenanceNumber,
		SubmitDate:         m.SubmitDate.Format(time.RFC3339),
		ServerName:         m.ServerName,
		ClientName:         m.ClientName,
		MaintenanceDate:    m.MaintenanceDate.String(),
		StartTime:          m.StartTime,
		EndTime:            m.EndTime,
		MaintenanceReason:  m.MaintenanceReason,
		Approver:           m.Approver,
		PerformedBy:        m.PerformedBy,
		Status:             string(m.Status),
		ProofOfMaintenance: m.ProofOfMaintenance,
		Remark:             m.Remark,
		Checklist:          m.Checklist,
		CreatedAt:          m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          m.UpdatedAt.Format(time.RFC3339),
	}
}
