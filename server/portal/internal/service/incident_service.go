package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/abdhfz93/sipdesk/models/portal"
)

const (
	generativeAPIBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	generativeTimeout    = 60 * time.Second

	// invalidContextSentinel is the exact text the model is instructed to
	// return when the context is not a technical conversation.
	invalidContextSentinel = "INVALID_CONTEXT"

	incidentTitleDateFormat = "02 Jan 2006"
)

const incidentPromptTemplate = `
You are an expert technical support engineer. Your task is to analyze the following WhatsApp conversation context and generate a professional incident report.

### STEP 1: VALIDATION
First, check if the provided "Conversation Context" actually contains a technical support conversation, error logs, or relevant details about a technical issue.
- If the content is purely random characters (e.g. "abc123"), nonsense, or completely unrelated to technical support, output EXACTLY the word "INVALID_CONTEXT" and nothing else.

### STEP 2: REPORT GENERATION (Only if context is valid)
Output Format:
## Incident Summary
[Brief high-level summary of what happened]

## Impact
[Detailed impact on services and users]

## Timeline
- [HH:mm] — [Event description]
...

## Root Cause Analysis
[Technical explanation of the most likely root cause based on the conversation]

## Resolution
[How the issue was resolved]

## Follow-up Actions
- [Action item 1]
- [Action item 2]
...

Rules:
- Today is %d. Use this context if dates are mentioned.
- Be technical and professional.
- If specific details are missing, make logical assumptions based on the technical patterns in the conversation.
- Use the exact headers provided above.

Conversation Context:
%s
`

// IncidentService generates and stores incident reports. Generation is a
// single prompt to the hosted generative model; the model either returns the
// rejection sentinel or the formatted report text.
type IncidentService struct {
	db     *gorm.DB
	client *resty.Client
	apiKey string
	model  string
	logger *zap.Logger
}

// NewIncidentService creates a new IncidentService.
func NewIncidentService(db *gorm.DB, logger *zap.Logger, apiKey, model string) *IncidentService {
	client := resty.New().
		SetBaseURL(generativeAPIBaseURL).
		SetTimeout(generativeTimeout)
	return &IncidentService{db: db, client: client, apiKey: apiKey, model: model, logger: logger}
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig struct {
		Temperature float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type generateResult struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateReport sends the conversation context to the model, validates the
// returned text and persists the report. A failing insert still returns the
// generated text together with the store's diagnostics.
func (s *IncidentService) GenerateReport(ctx context.Context, caller string, input *IncidentInput) (*GenerateReportResponse, error) {
	if strings.TrimSpace(input.Context) == emptyString {
		return nil, NewValidationError("context is required")
	}
	if s.apiKey == emptyString {
		return nil, NewUnavailableError("generative AI API key not configured", nil)
	}

	text, err := s.generate(ctx, input.Context)
	if err != nil {
		return nil, err
	}
	if text == invalidContextSentinel {
		return nil, NewValidationError(
			"the provided content doesn't look like a technical conversation, please provide more context")
	}

	incidentDate := input.IncidentDate
	if time.Time(incidentDate).IsZero() {
		incidentDate = portal.PortalDate(time.Now())
	}

	model := &portal.IncidentReport{
		IncidentNumber: nextIncidentNumber(),
		Title:          incidentTitle(input.ClientName, input.SipID, incidentDate),
		Content:        text,
		SipID:          input.SipID,
		ClientName:     input.ClientName,
		IncidentDate:   incidentDate,
	}

	resp := &GenerateReportResponse{Report: text}
	if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
		// The report was already generated; hand it back with the
		// store's diagnostics instead of discarding it.
		s.logger.Error("failed to persist incident report",
			zap.String("title", model.Title),
			zap.Error(err))
		resp.DBError = "failed to save incident report"
		resp.DBDetail = err.Error()
		return resp, nil
	}

	s.logger.Info("incident report generated",
		zap.Int64("id", model.ID),
		zap.String("number", model.IncidentNumber),
		zap.String("generatedBy", caller))

	resp.Record = toIncidentResponse(model)
	return resp, nil
}

func (s *IncidentService) generate(ctx context.Context, conversation string) (string, error) {
	req := &generateRequest{
		Contents: []generateContent{
			{Parts: []generatePart{{Text: fmt.Sprintf(incidentPromptTemplate, time.Now().Year(), conversation)}}},
		},
	}
	req.GenerationConfig.Temperature = 0.2

	var result generateResult
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("key", s.apiKey).
		SetBody(req).
		SetResult(&result).
		SetError(&result).
		Post(fmt.Sprintf("/models/%s:generateContent", s.model))
	if err != nil {
		return emptyString, NewUnavailableError("report generation request failed", err)
	}
	if httpResp.IsError() {
		return emptyString, NewUnavailableError(
			fmt.Sprintf("report generation failed: %s", result.Error.Message), nil)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return emptyString, NewUnavailableError("report generation returned no candidates", nil)
	}
	return strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text), nil
}

// GetIncident returns a single stored report.
func (s *IncidentService) GetIncident(ctx context.Context, id int64) (*IncidentResponse, error) {
	var model portal.IncidentReport
	if err := s.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, HandleDBError(err, resourceIncidentReport, id)
	}
	return toIncidentResponse(&model), nil
}

// ListIncidents returns stored reports matching the query, newest first.
func (s *IncidentService) ListIncidents(ctx context.Context, query *IncidentQuery) (*IncidentListResponse, error) {
	db := s.db.WithContext(ctx).Model(&portal.IncidentReport{})

	if query.Search != emptyString {
		like := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where(
			"lower(incident_number) LIKE ? OR lower(title) LIKE ? OR lower(client_name) LIKE ?",
			like, like, like)
	}
	if query.SipID != emptyString {
		db = db.Where("sip_id = ?", query.SipID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, NewUnavailableError("failed to count incident reports", err)
	}

	query.AdjustPagination()
	var models []portal.IncidentReport
	err := db.Order("created_at DESC").
		Offset(query.GetOffset()).Limit(query.Size).
		Find(&models).Error
	if err != nil {
		return nil, NewUnavailableError("failed to list incident reports", err)
	}

	list := make([]*IncidentResponse, 0, len(models))
	for i := range models {
		list = append(list, toIncidentResponse(&models[i]))
	}
	return &IncidentListResponse{
		List:  list,
		Page:  query.Page,
		Size:  query.Size,
		Total: total,
	}, nil
}

// DeleteIncident removes a stored report.
func (s *IncidentService) DeleteIncident(ctx context.Context, caller string, id int64) error {
	result := s.db.WithContext(ctx).Delete(&portal.IncidentReport{}, id)
	if result.Error != nil {
		return NewUnavailableError("failed to delete incident report", result.Error)
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError(resourceIncidentReport, id)
	}

	s.logger.Info("incident report deleted",
		zap.Int64("id", id),
		zap.String("deletedBy", caller))
	return nil
}

// incidentTitle composes the display title, e.g.
// "Incident Report for Certis (sip66) - 22 Jan 2026".
func incidentTitle(clientName, sipID string, date portal.PortalDate) string {
	if clientName == emptyString {
		clientName = "N/A"
	}
	if sipID == emptyString {
		sipID = "N/A"
	}
	return fmt.Sprintf("Incident Report for %s (%s) - %s",
		clientName, sipID, time.Time(date).Format(incidentTitleDateFormat))
}

func nextIncidentNumber() string {
	return fmt.Sprintf("INC-%d", time.Now().UnixNano())
}
