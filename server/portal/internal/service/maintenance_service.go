// Package service provides the business logic for the portal module.
package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/abdhfz93/sipdesk/models/portal"
	"github.com/abdhfz93/sipdesk/pkg/blobstore"
)

// MaintenanceService mediates all reads and writes of maintenance records
// and coordinates the proof attachment lifecycle with the blob store.
type MaintenanceService struct {
	db     *gorm.DB
	blobs  blobstore.Store
	logger *zap.Logger
}

// NewMaintenanceService creates a new MaintenanceService.
func NewMaintenanceService(db *gorm.DB, blobs blobstore.Store, logger *zap.Logger) *MaintenanceService {
	return &MaintenanceService{db: db, blobs: blobs, logger: logger}
}

// ProofUpload is one file in an AddProofs batch.
type ProofUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// ListRecords returns records matching the query, newest submissions first.
func (s *MaintenanceService) ListRecords(ctx context.Context, query *MaintenanceRecordQuery) (*MaintenanceRecordListResponse, error) {
	models, total, err := s.listModels(ctx, query)
	if err != nil {
		return nil, err
	}

	list := make([]*MaintenanceRecordResponse, 0, len(models))
	for i := range models {
		list = append(list, toMaintenanceRecordResponse(&models[i]))
	}

	return &MaintenanceRecordListResponse{
		List:  list,
		Page:  query.Page,
		Size:  query.Size,
		Total: total,
	}, nil
}

// GetRecord returns a single record by id.
func (s *MaintenanceService) GetRecord(ctx context.Context, id int64) (*MaintenanceRecordResponse, error) {
	model, err := s.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	return toMaintenanceRecordResponse(model), nil
}

// CreateRecord validates the input, assigns the maintenance number and
// submit date and inserts the row.
func (s *MaintenanceService) CreateRecord(ctx context.Context, caller string, input *MaintenanceRecordInput) (*MaintenanceRecordResponse, error) {
	performers, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	var checklist portal.Checklist
	if input.Checklist != nil {
		checklist, err = mergeChecklist(input.Checklist)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	model := &portal.MaintenanceRecord{
		BaseModel:          portal.BaseModel{CreatedAt: now, UpdatedAt: now},
		MaintenanceNumber:  nextMaintenanceNumber(),
		SubmitDate:         now,
		ServerName:         input.ServerName,
		ClientName:         input.ClientName,
		MaintenanceDate:    input.MaintenanceDate,
		StartTime:          input.StartTime,
		EndTime:            input.EndTime,
		MaintenanceReason:  input.MaintenanceReason,
		Approver:           input.Approver,
		PerformedBy:        performers,
		Status:             statusOrPending(input.Status),
		ProofOfMaintenance: proofsFromInput(input.ProofOfMaintenance),
		Remark:             input.Remark,
		Checklist:          checklist,
	}

	if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, NewUnavailableError("failed to create maintenance record", err)
	}

	s.logger.Info("maintenance record created",
		zap.Int64("id", model.ID),
		zap.String("number", model.MaintenanceNumber),
		zap.String("createdBy", caller))

	return toMaintenanceRecordResponse(model), nil
}

// UpdateRecord validates the input like create and updates the row in
// place. Nil proof/checklist slices leave the stored value unchanged.
func (s *MaintenanceService) UpdateRecord(ctx context.Context, caller string, id int64, input *MaintenanceRecordInput) (*MaintenanceRecordResponse, error) {
	performers, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	model, err := s.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	model.ServerName = input.ServerName
	model.ClientName = input.ClientName
	model.MaintenanceDate = input.MaintenanceDate
	model.StartTime = input.StartTime
	model.EndTime = input.EndTime
	model.MaintenanceReason = input.MaintenanceReason
	model.Approver = input.Approver
	model.PerformedBy = performers
	model.Status = statusOrPending(input.Status)
	model.Remark = input.Remark
	if input.ProofOfMaintenance != nil {
		model.ProofOfMaintenance = proofsFromInput(input.ProofOfMaintenance)
	}
	if input.Checklist != nil {
		merged, err := mergeChecklist(input.Checklist)
		if err != nil {
			return nil, err
		}
		model.Checklist = merged
	}

	if err := s.save(ctx, model); err != nil {
		return nil, err
	}

	s.logger.Info("maintenance record updated",
		zap.Int64("id", model.ID),
		zap.String("status", string(model.Status)),
		zap.String("updatedBy", caller))

	return toMaintenanceRecordResponse(model), nil
}

// DeleteRecord requests blob deletion for every stored proof URL, then
// removes the row. Blob failures are logged and do not block the deletion.
func (s *MaintenanceService) DeleteRecord(ctx context.Context, caller string, id int64) error {
	model, err := s.getRecord(ctx, id)
	if err != nil {
		return err
	}

	for _, proof := range model.ProofOfMaintenance {
		if err := s.blobs.Delete(ctx, proof.URL); err != nil {
			s.logger.Warn("failed to delete proof object, leaving it dangling",
				zap.Int64("id", id),
				zap.String("url", proof.URL),
				zap.Error(err))
		}
	}

	result := s.db.WithContext(ctx).Delete(&portal.MaintenanceRecord{}, id)
	if result.Error != nil {
		return NewUnavailableError("failed to delete maintenance record", result.Error)
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError(resourceMaintenanceRecord, id)
	}

	s.logger.Info("maintenance record deleted",
		zap.Int64("id", id),
		zap.String("number", model.MaintenanceNumber),
		zap.String("deletedBy", caller))
	return nil
}

// AddProofs uploads a batch of image files and appends the resulting proof
// items in submission order. The whole batch is rejected before any upload
// if a file is not an image or the attachment limit would be exceeded.
func (s *MaintenanceService) AddProofs(ctx context.Context, caller string, id int64, uploads []ProofUpload) (*MaintenanceRecordResponse, error) {
	if len(uploads) == 0 {
		return nil, NewValidationError(msgNoFilesProvided)
	}
	for _, up := range uploads {
		if !strings.HasPrefix(up.ContentType, imageContentTypePrefix) {
			return nil, NewValidationError(msgNotAnImage, up.Filename, up.ContentType)
		}
	}

	model, err := s.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(model.ProofOfMaintenance)+len(uploads) > MaxProofCount {
		return nil, NewValidationError(msgTooManyProofs,
			MaxProofCount, len(model.ProofOfMaintenance), len(uploads))
	}

	// Uploads run concurrently; results are reassembled in submission
	// order. A failure aborts the append, already-uploaded objects are
	// not rolled back.
	urls := make([]string, len(uploads))
	g, gctx := errgroup.WithContext(ctx)
	for i, up := range uploads {
		i, up := i, up
		g.Go(func() error {
			url, err := s.blobs.Upload(gctx, up.Filename, up.ContentType, up.Body)
			if err != nil {
				return fmt.Errorf("upload %s: %w", up.Filename, err)
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, NewUnavailableError("proof upload failed", err)
	}

	for _, url := range urls {
		model.ProofOfMaintenance = append(model.ProofOfMaintenance, portal.ProofItem{URL: url})
	}
	if err := s.save(ctx, model); err != nil {
		return nil, err
	}

	s.logger.Info("proof attachments added",
		zap.Int64("id", id),
		zap.Int("count", len(uploads)),
		zap.String("addedBy", caller))

	return toMaintenanceRecordResponse(model), nil
}

// RemoveProof removes the proof item at the given position. The stored
// object is left in place; cleanup happens on record deletion.
func (s *MaintenanceService) RemoveProof(ctx context.Context, caller string, id int64, index int) (*MaintenanceRecordResponse, error) {
	model, err := s.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(model.ProofOfMaintenance) {
		return nil, NewValidationError(msgProofIndexOutOfRange, index, len(model.ProofOfMaintenance))
	}

	model.ProofOfMaintenance = append(
		model.ProofOfMaintenance[:index],
		model.ProofOfMaintenance[index+1:]...)

	if err := s.save(ctx, model); err != nil {
		return nil, err
	}
	return toMaintenanceRecordResponse(model), nil
}

// SetProofComment replaces the comment on the proof item at index.
func (s *MaintenanceService) SetProofComment(ctx context.Context, caller string, id int64, index int, comment string) (*MaintenanceRecordResponse, error) {
	model, err := s.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(model.ProofOfMaintenance) {
		return nil, NewValidationError(msgProofIndexOutOfRange, index, len(model.ProofOfMaintenance))
	}

	model.ProofOfMaintenance[index].Comment = comment
	if err := s.save(ctx, model); err != nil {
		return nil, err
	}
	return toMaintenanceRecordResponse(model), nil
}

// UpsertChecklist replaces the stored checklist with the merged payload.
// Default items the payload omitted are re-added as not-tested, so they can
// never be silently dropped.
func (s *MaintenanceService) UpsertChecklist(ctx context.Context, caller string, id int64, items []ChecklistItemInput) (*MaintenanceRecordResponse, error) {
	merged, err := mergeChecklist(items)
	if err != nil {
		return nil, err
	}

	model, err := s.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	model.Checklist = merged

	if err := s.save(ctx, model); err != nil {
		return nil, err
	}
	return toMaintenanceRecordResponse(model), nil
}

// CopyRecord prepares a duplicate-as-template draft of the source record:
// remark and proofs cleared, everything else preserved. Nothing is
// persisted; the draft goes back through CreateRecord.
func (s *MaintenanceService) CopyRecord(ctx context.Context, id int64) (*MaintenanceRecordInput, error) {
	model, err := s.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	// A checklist-less source stays checklist-less: the draft's nil slice
	// keeps CreateRecord from materializing the defaults.
	var checklist []ChecklistItemInput
	for _, item := range model.Checklist {
		checklist = append(checklist, ChecklistItemInput{
			Label:  item.Label,
			Status: string(item.Status),
		})
	}

	return &MaintenanceRecordInput{
		ServerName:         model.ServerName,
		ClientName:         model.ClientName,
		MaintenanceDate:    model.MaintenanceDate,
		StartTime:          model.StartTime,
		EndTime:            model.EndTime,
		MaintenanceReason:  model.MaintenanceReason,
		Approver:           model.Approver,
		PerformedBy:        model.PerformedBy,
		Status:             string(model.Status),
		Remark:             emptyString,
		ProofOfMaintenance: []ProofItemInput{},
		Checklist:          checklist,
	}, nil
}

func (s *MaintenanceService) getRecord(ctx context.Context, id int64) (*portal.MaintenanceRecord, error) {
	var model portal.MaintenanceRecord
	if err := s.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, HandleDBError(err, resourceMaintenanceRecord, id)
	}
	return &model, nil
}

func (s *MaintenanceService) listModels(ctx context.Context, query *MaintenanceRecordQuery) ([]portal.MaintenanceRecord, int64, error) {
	db := s.db.WithContext(ctx).Model(&portal.MaintenanceRecord{})

	if query.Search != emptyString {
		like := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where(
			"lower(maintenance_number) LIKE ? OR lower(server_name) LIKE ? OR lower(client_name) LIKE ?"+
				" OR lower(maintenance_reason) LIKE ? OR lower(status) LIKE ? OR lower(performed_by) LIKE ?",
			like, like, like, like, like, like)
	}
	if query.Status != emptyString {
		db = db.Where("status = ?", query.Status)
	}
	if query.ServerName != emptyString {
		db = db.Where("server_name = ?", query.ServerName)
	}
	if query.ClientName != emptyString {
		db = db.Where("client_name = ?", query.ClientName)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, NewUnavailableError("failed to count maintenance records", err)
	}

	db = db.Order("submit_date DESC")
	if query.Size > 0 {
		query.AdjustPagination()
		db = db.Offset(query.GetOffset()).Limit(query.Size)
	}

	var models []portal.MaintenanceRecord
	if err := db.Find(&models).Error; err != nil {
		return nil, 0, NewUnavailableError("failed to list maintenance records", err)
	}
	return models, total, nil
}

func (s *MaintenanceService) save(ctx context.Context, model *portal.MaintenanceRecord) error {
	if err := s.db.WithContext(ctx).Save(model).Error; err != nil {
		return NewUnavailableError("failed to update maintenance record", err)
	}
	return nil
}

// validateInput enforces the create/update invariants and returns the
// normalized performer set.
func validateInput(input *MaintenanceRecordInput) (portal.NameList, error) {
	performers := normalizePerformers(input.PerformedBy)
	if len(performers) == 0 {
		return nil, NewValidationError(msgPerformerRequired)
	}
	if input.Status != emptyString && !portal.MaintenanceStatus(input.Status).Valid() {
		return nil, NewValidationError(msgInvalidStatus, input.Status)
	}
	if len(input.Remark) > MaxRemarkLength {
		return nil, NewValidationError(msgRemarkTooLong, MaxRemarkLength)
	}
	if len(input.ProofOfMaintenance) > MaxProofCount {
		return nil, NewValidationError(msgTooManyProofs,
			MaxProofCount, 0, len(input.ProofOfMaintenance))
	}
	if err := validateWindow(input.StartTime, input.EndTime); err != nil {
		return nil, err
	}
	return performers, nil
}

// validateWindow checks the HH:MM format of both bounds and rejects windows
// that end before they start. Zero-length windows are allowed.
func validateWindow(start, end string) error {
	var startAt, endAt time.Time
	var err error
	if start != emptyString {
		if startAt, err = time.Parse(timeOfDayFormat, start); err != nil {
			return NewValidationError(msgInvalidTimeOfDay, start)
		}
	}
	if end != emptyString {
		if endAt, err = time.Parse(timeOfDayFormat, end); err != nil {
			return NewValidationError(msgInvalidTimeOfDay, end)
		}
	}
	if start != emptyString && end != emptyString && endAt.Before(startAt) {
		return NewValidationError(msgEndBeforeStart, end, start)
	}
	return nil
}

// normalizePerformers trims, drops empties and dedupes case-insensitively,
// keeping first-seen order.
func normalizePerformers(names []string) portal.NameList {
	var out portal.NameList
	seen := make(map[string]bool, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == emptyString {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}

func proofsFromInput(items []ProofItemInput) portal.ProofList {
	if len(items) == 0 {
		return nil
	}
	proofs := make(portal.ProofList, 0, len(items))
	for _, item := range items {
		proofs = append(proofs, portal.ProofItem{URL: item.URL, Comment: item.Comment})
	}
	return proofs
}

func statusOrPending(status string) portal.MaintenanceStatus {
	if status == emptyString {
		return portal.MaintenanceStatusPending
	}
	return portal.MaintenanceStatus(status)
}

// nextMaintenanceNumber produces the repository-assigned record number.
func nextMaintenanceNumber() string {
	return fmt.Sprintf("MR-%d", time.Now().UnixNano())
}
