package service

import (
	"time"

	"github.com/abdhfz93/sipdesk/models/portal"
)

// MasterlistInput is the create/update payload for a directory record.
type MasterlistInput struct {
	SipID            string `json:"sipId"`
	CompanyName      string `json:"companyName" binding:"required"`
	Provider         string `json:"provider"`
	CustomFeatures   string `json:"customFeatures"`
	IPAddress        string `json:"ipAddress"`
	ServerURL        string `json:"serverUrl"`
	SubscriptionPlan string `json:"subscriptionPlan"`
	OfficeClose      string `json:"officeClose"`
	TrunksLines      int    `json:"trunksLines"`
	Extensions       int    `json:"extensions"`
	Category         string `json:"category"`
	EndpointClass1   string `json:"endpointClass1"`
	EndpointClass2   string `json:"endpointClass2"`
	Remarks          string `json:"remarks"`
}

// MasterlistQuery filters the directory listing.
type MasterlistQuery struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Provider string `form:"provider"`
	PaginationRequest
}

// MasterlistResponse mirrors one directory row.
type MasterlistResponse struct {
	ID               int64  `json:"id"`
	SipID            string `json:"sipId"`
	CompanyName      string `json:"companyName"`
	Provider         string `json:"provider"`
	CustomFeatures   string `json:"customFeatures"`
	IPAddress        string `json:"ipAddress"`
	ServerURL        string `json:"serverUrl"`
	SubscriptionPlan string `json:"subscriptionPlan"`
	OfficeClose      string `json:"officeClose"`
	TrunksLines      int    `json:"trunksLines"`
	Extensions       int    `json:"extensions"`
	Category         string `json:"category"`
	EndpointClass1   string `json:"endpointClass1"`
	EndpointClass2   string `json:"endpointClass2"`
	Remarks          string `json:"remarks"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

// MasterlistListResponse is the paginated directory list.
type MasterlistListResponse struct {
	List  []*MasterlistResponse `json:"list"`
	Page  int                   `json:"page"`
	Size  int                   `json:"size"`
	Total int64                 `json:"total"`
}

func toMasterlistResponse(m *portal.Masterlist) *MasterlistResponse {
	if m == nil {
		return nil
	}
	return &MasterlistResponse{
		ID:               m.ID,
		SipID:            m.SipID,
		CompanyName:      m.CompanyName,
		Provider:         m.Provider,
		CustomFeatures:   m.CustomFeatures,
		IPAddress:        m.IPAddress,
		ServerURL:        m.ServerURL,
		SubscriptionPlan: m.SubscriptionPlan,
		OfficeClose:      m.OfficeClose,
		TrunksLines:      m.TrunksLines,
		Extensions:       m.Extensions,
		Category:         m.Category,
		EndpointClass1:   m.EndpointClass1,
		EndpointClass2:   m.EndpointClass2,
		Remarks:          m.Remarks,
		CreatedAt:        m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        m.UpdatedAt.Format(time.RFC3339),
	}
}

func fromMasterlistInput(input *MasterlistInput) *portal.Masterlist {
	return &portal.Masterlist{
		SipID:            input.SipID,
		CompanyName:      input.CompanyName,
		Provider:         input.Provider,
		CustomFeatures:   input.CustomFeatures,
		IPAddress:        input.IPAddress,
		ServerURL:        input.ServerURL,
		SubscriptionPlan: input.SubscriptionPlan,
		OfficeClose:      input.OfficeClose,
		TrunksLines:      input.TrunksLines,
		Extensions:       input.Extensions,
		Category:         input.Category,
		EndpointClass1:   input.EndpointClass1,
		EndpointClass2:   input.EndpointClass2,
		Remarks:          input.Remarks,
	}
}
