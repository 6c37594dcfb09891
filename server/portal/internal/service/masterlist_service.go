package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/abdhfz93/sipdesk/models/portal"
)

// MasterlistService provides CRUD over the customer/server directory.
type MasterlistService struct {
	db      *gorm.DB
	lookups *LookupService
	logger  *zap.Logger
}

// NewMasterlistService creates a new MasterlistService. lookups may be nil;
// when present its caches are invalidated on every directory mutation.
func NewMasterlistService(db *gorm.DB, lookups *LookupService, logger *zap.Logger) *MasterlistService {
	return &MasterlistService{db: db, lookups: lookups, logger: logger}
}

// GetMasterlist returns a single directory row.
func (s *MasterlistService) GetMasterlist(ctx context.Context, id int64) (*MasterlistResponse, error) {
	var model portal.Masterlist
	if err := s.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, HandleDBError(err, resourceMasterlist, id)
	}
	return toMasterlistResponse(&model), nil
}

// ListMasterlist returns directory rows matching the query, company name
// ascending.
func (s *MasterlistService) ListMasterlist(ctx context.Context, query *MasterlistQuery) (*MasterlistListResponse, error) {
	db := s.db.WithContext(ctx).Model(&portal.Masterlist{})

	if query.Search != emptyString {
		like := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where(
			"lower(sip_id) LIKE ? OR lower(company_name) LIKE ? OR lower(provider) LIKE ? OR lower(ip_address) LIKE ?",
			like, like, like, like)
	}
	if query.Category != emptyString {
		db = db.Where("category = ?", query.Category)
	}
	if query.Provider != emptyString {
		db = db.Where("provider = ?", query.Provider)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, NewUnavailableError("failed to count masterlist records", err)
	}

	query.AdjustPagination()
	var models []portal.Masterlist
	err := db.Order("company_name ASC").
		Offset(query.GetOffset()).Limit(query.Size).
		Find(&models).Error
	if err != nil {
		return nil, NewUnavailableError("failed to list masterlist records", err)
	}

	list := make([]*MasterlistResponse, 0, len(models))
	for i := range models {
		list = append(list, toMasterlistResponse(&models[i]))
	}
	return &MasterlistListResponse{
		List:  list,
		Page:  query.Page,
		Size:  query.Size,
		Total: total,
	}, nil
}

// CreateMasterlist inserts a new directory row.
func (s *MasterlistService) CreateMasterlist(ctx context.Context, caller string, input *MasterlistInput) (*MasterlistResponse, error) {
	if strings.TrimSpace(input.CompanyName) == emptyString {
		return nil, NewValidationError("company name is required")
	}

	model := fromMasterlistInput(input)
	if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, NewUnavailableError("failed to create masterlist record", err)
	}

	s.logger.Info("masterlist record created",
		zap.Int64("id", model.ID),
		zap.String("company", model.CompanyName),
		zap.String("createdBy", caller))
	s.invalidateLookups(ctx)

	return toMasterlistResponse(model), nil
}

// UpdateMasterlist updates a directory row in place.
func (s *MasterlistService) UpdateMasterlist(ctx context.Context, caller string, id int64, input *MasterlistInput) (*MasterlistResponse, error) {
	if strings.TrimSpace(input.CompanyName) == emptyString {
		return nil, NewValidationError("company name is required")
	}

	var existing portal.Masterlist
	if err := s.db.WithContext(ctx).First(&existing, id).Error; err != nil {
		return nil, HandleDBError(err, resourceMasterlist, id)
	}

	model := fromMasterlistInput(input)
	result := s.db.WithContext(ctx).Model(&portal.Masterlist{}).Where("id = ?", id).
		Select("SipID", "CompanyName", "Provider", "CustomFeatures", "IPAddress",
			"ServerURL", "SubscriptionPlan", "OfficeClose", "TrunksLines",
			"Extensions", "Category", "EndpointClass1", "EndpointClass2", "Remarks").
		Updates(model)
	if result.Error != nil {
		return nil, NewUnavailableError("failed to update masterlist record", result.Error)
	}

	s.invalidateLookups(ctx)
	return s.GetMasterlist(ctx, id)
}

// DeleteMasterlist removes a directory row.
func (s *MasterlistService) DeleteMasterlist(ctx context.Context, caller string, id int64) error {
	result := s.db.WithContext(ctx).Delete(&portal.Masterlist{}, id)
	if result.Error != nil {
		return NewUnavailableError("failed to delete masterlist record", result.Error)
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError(resourceMasterlist, id)
	}

	s.logger.Info("masterlist record deleted",
		zap.Int64("id", id),
		zap.String("deletedBy", caller))
	s.invalidateLookups(ctx)
	return nil
}

func (s *MasterlistService) invalidateLookups(ctx context.Context) {
	if s.lookups == nil {
		return
	}
	if err := s.lookups.Invalidate(ctx); err != nil {
		s.logger.Warn("failed to invalidate lookup cache", zap.Error(err))
	}
}
