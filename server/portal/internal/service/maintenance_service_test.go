package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/abdhfz93/sipdesk/models/portal"
)

// fakeBlobStore records Upload/Delete calls and can be told to fail.
type fakeBlobStore struct {
	mu        sync.Mutex
	uploads   []string
	deletes   []string
	uploadErr error
	deleteErr error
}

func (f *fakeBlobStore) Upload(_ context.Context, filename, _ string, body io.Reader) (string, error) {
	if body != nil {
		_, _ = io.Copy(io.Discard, body)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploads = append(f.uploads, filename)
	return "https://blobs.local/maintenance-proofs/" + filename, nil
}

func (f *fakeBlobStore) Delete(_ context.Context, urlOrKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, urlOrKey)
	return f.deleteErr
}

type MaintenanceServiceSuite struct {
	suite.Suite
	db    *gorm.DB
	blobs *fakeBlobStore
	svc   *MaintenanceService
	ctx   context.Context
}

func TestMaintenanceServiceSuite(t *testing.T) {
	suite.Run(t, new(MaintenanceServiceSuite))
}

func (s *MaintenanceServiceSuite) SetupTest() {
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared",
		strings.ReplaceAll(s.T().Name(), "/", "_"), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(&portal.MaintenanceRecord{}))

	s.db = db
	s.blobs = &fakeBlobStore{}
	s.svc = NewMaintenanceService(db, s.blobs, zap.NewNop())
	s.ctx = context.Background()
}

func (s *MaintenanceServiceSuite) validInput() *MaintenanceRecordInput {
	return &MaintenanceRecordInput{
		ServerName:        "sip66",
		ClientName:        "Certis",
		MaintenanceDate:   portal.PortalDate(time.Date(2026, 1, 22, 0, 0, 0, 0, time.UTC)),
		StartTime:         "22:00",
		EndTime:           "23:30",
		MaintenanceReason: "Monthly Maintenance",
		Approver:          "Diana",
		PerformedBy:       []string{"Alice", "Bob"},
	}
}

func (s *MaintenanceServiceSuite) mustCreate(input *MaintenanceRecordInput) *MaintenanceRecordResponse {
	created, err := s.svc.CreateRecord(s.ctx, "tester@sipdesk.local", input)
	s.Require().NoError(err)
	return created
}

func (s *MaintenanceServiceSuite) recordCount() int64 {
	var count int64
	s.Require().NoError(s.db.Model(&portal.MaintenanceRecord{}).Count(&count).Error)
	return count
}

func (s *MaintenanceServiceSuite) TestCreateAndGetRoundTrip() {
	created := s.mustCreate(s.validInput())

	s.True(strings.HasPrefix(created.MaintenanceNumber, "MR-"))
	s.Equal(string(portal.MaintenanceStatusPending), created.Status)
	s.Equal([]string{"Alice", "Bob"}, created.PerformedBy)
	s.NotEmpty(created.SubmitDate)

	fetched, err := s.svc.GetRecord(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created.MaintenanceNumber, fetched.MaintenanceNumber)
	s.Equal("sip66", fetched.ServerName)
	s.Equal("Certis", fetched.ClientName)
	s.Equal("2026-01-22", fetched.MaintenanceDate)
	// A freshly created record has never been touched after submission.
	s.Equal(fetched.SubmitDate, fetched.UpdatedAt)
}

func (s *MaintenanceServiceSuite) TestCreateDedupesPerformers() {
	input := s.validInput()
	input.PerformedBy = []string{" Alice ", "alice", "Bob", ""}

	created := s.mustCreate(input)
	s.Equal([]string{"Alice", "Bob"}, created.PerformedBy)
}

func (s *MaintenanceServiceSuite) TestCreateRejectsEmptyPerformers() {
	input := s.validInput()
	input.PerformedBy = []string{"  ", ""}

	_, err := s.svc.CreateRecord(s.ctx, "tester", input)
	s.Require().Error(err)
	s.True(IsValidation(err))
	s.Contains(err.Error(), "at least one performer")
	s.EqualValues(0, s.recordCount())
}

func (s *MaintenanceServiceSuite) TestCreateRejectsInvalidStatus() {
	input := s.validInput()
	input.Status = "done"

	_, err := s.svc.CreateRecord(s.ctx, "tester", input)
	s.Require().Error(err)
	s.True(IsValidation(err))
}

func (s *MaintenanceServiceSuite) TestCreateRejectsEndBeforeStart() {
	input := s.validInput()
	input.StartTime = "23:00"
	input.EndTime = "01:00"

	_, err := s.svc.CreateRecord(s.ctx, "tester", input)
	s.Require().Error(err)
	s.True(IsValidation(err))
	s.EqualValues(0, s.recordCount())
}

func (s *MaintenanceServiceSuite) TestCreateAllowsZeroLengthWindow() {
	input := s.validInput()
	input.StartTime = "22:00"
	input.EndTime = "22:00"

	created := s.mustCreate(input)
	s.Equal("22:00", created.StartTime)
	s.Equal("22:00", created.EndTime)
}

func (s *MaintenanceServiceSuite) TestUpdateChangesStatusAndTouchesTimestamp() {
	created := s.mustCreate(s.validInput())
	before, err := s.svc.GetRecord(s.ctx, created.ID)
	s.Require().NoError(err)
	time.Sleep(10 * time.Millisecond)

	input := s.validInput()
	input.Status = string(portal.MaintenanceStatusCompleted)
	input.Remark = "all checks passed"

	updated, err := s.svc.UpdateRecord(s.ctx, "tester", created.ID, input)
	s.Require().NoError(err)
	s.Equal(string(portal.MaintenanceStatusCompleted), updated.Status)
	s.Equal("all checks passed", updated.Remark)
	// The submit date marks the original submission and must not move.
	s.Equal(before.SubmitDate, updated.SubmitDate)

	var model portal.MaintenanceRecord
	s.Require().NoError(s.db.First(&model, created.ID).Error)
	s.True(model.UpdatedAt.After(model.SubmitDate))
}

func (s *MaintenanceServiceSuite) TestUpdateKeepsProofsWhenOmitted() {
	input := s.validInput()
	input.ProofOfMaintenance = []ProofItemInput{{URL: "https://blobs.local/a.png", Comment: "before"}}
	created := s.mustCreate(input)

	update := s.validInput()
	update.ProofOfMaintenance = nil
	updated, err := s.svc.UpdateRecord(s.ctx, "tester", created.ID, update)
	s.Require().NoError(err)
	s.Require().Len(updated.ProofOfMaintenance, 1)
	s.Equal("before", updated.ProofOfMaintenance[0].Comment)
}

func (s *MaintenanceServiceSuite) TestUpdateMissingRecord() {
	_, err := s.svc.UpdateRecord(s.ctx, "tester", 9999, s.validInput())
	s.Require().Error(err)
	s.True(IsNotFound(err))
}

func (s *MaintenanceServiceSuite) TestAddProofsAppendsInSubmissionOrder() {
	created := s.mustCreate(s.validInput())

	uploads := []ProofUpload{
		{Filename: "first.png", ContentType: "image/png", Body: strings.NewReader("a")},
		{Filename: "second.jpg", ContentType: "image/jpeg", Body: strings.NewReader("b")},
		{Filename: "third.png", ContentType: "image/png", Body: strings.NewReader("c")},
	}
	updated, err := s.svc.AddProofs(s.ctx, "tester", created.ID, uploads)
	s.Require().NoError(err)
	s.Require().Len(updated.ProofOfMaintenance, 3)
	s.Equal("https://blobs.local/maintenance-proofs/first.png", updated.ProofOfMaintenance[0].URL)
	s.Equal("https://blobs.local/maintenance-proofs/second.jpg", updated.ProofOfMaintenance[1].URL)
	s.Equal("https://blobs.local/maintenance-proofs/third.png", updated.ProofOfMaintenance[2].URL)
}

func (s *MaintenanceServiceSuite) TestAddProofsRejectsNonImageBeforeUploading() {
	created := s.mustCreate(s.validInput())

	uploads := []ProofUpload{
		{Filename: "ok.png", ContentType: "image/png", Body: strings.NewReader("a")},
		{Filename: "report.pdf", ContentType: "application/pdf", Body: strings.NewReader("b")},
	}
	_, err := s.svc.AddProofs(s.ctx, "tester", created.ID, uploads)
	s.Require().Error(err)
	s.True(IsValidation(err))
	s.Empty(s.blobs.uploads)
}

func (s *MaintenanceServiceSuite) TestAddProofsRejectsEmptyBatch() {
	created := s.mustCreate(s.validInput())

	_, err := s.svc.AddProofs(s.ctx, "tester", created.ID, nil)
	s.Require().Error(err)
	s.True(IsValidation(err))
}

func (s *MaintenanceServiceSuite) TestAddProofsEnforcesAttachmentLimit() {
	input := s.validInput()
	for i := 0; i < MaxProofCount; i++ {
		input.ProofOfMaintenance = append(input.ProofOfMaintenance,
			ProofItemInput{URL: fmt.Sprintf("https://blobs.local/p%d.png", i)})
	}
	created := s.mustCreate(input)

	uploads := []ProofUpload{{Filename: "extra.png", ContentType: "image/png", Body: strings.NewReader("x")}}
	_, err := s.svc.AddProofs(s.ctx, "tester", created.ID, uploads)
	s.Require().Error(err)
	s.True(IsValidation(err))
	s.Empty(s.blobs.uploads)

	fetched, err := s.svc.GetRecord(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Len(fetched.ProofOfMaintenance, MaxProofCount)
}

func (s *MaintenanceServiceSuite) TestAddProofsUploadFailureLeavesRecordUnchanged() {
	created := s.mustCreate(s.validInput())
	s.blobs.uploadErr = errors.New("bucket unreachable")

	uploads := []ProofUpload{{Filename: "a.png", ContentType: "image/png", Body: strings.NewReader("a")}}
	_, err := s.svc.AddProofs(s.ctx, "tester", created.ID, uploads)
	s.Require().Error(err)
	s.True(IsUnavailable(err))

	fetched, err := s.svc.GetRecord(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Empty(fetched.ProofOfMaintenance)
}

func (s *MaintenanceServiceSuite) TestRemoveProofBoundsChecked() {
	input := s.validInput()
	input.ProofOfMaintenance = []ProofItemInput{
		{URL: "https://blobs.local/a.png"},
		{URL: "https://blobs.local/b.png"},
	}
	created := s.mustCreate(input)

	_, err := s.svc.RemoveProof(s.ctx, "tester", created.ID, 2)
	s.Require().Error(err)
	s.True(IsValidation(err))

	updated, err := s.svc.RemoveProof(s.ctx, "tester", created.ID, 0)
	s.Require().NoError(err)
	s.Require().Len(updated.ProofOfMaintenance, 1)
	s.Equal("https://blobs.local/b.png", updated.ProofOfMaintenance[0].URL)
	// Removal is metadata-only; the object is cleaned up with the record.
	s.Empty(s.blobs.deletes)
}

func (s *MaintenanceServiceSuite) TestSetProofComment() {
	input := s.validInput()
	input.ProofOfMaintenance = []ProofItemInput{{URL: "https://blobs.local/a.png"}}
	created := s.mustCreate(input)

	updated, err := s.svc.SetProofComment(s.ctx, "tester", created.ID, 0, "router rack, after cleanup")
	s.Require().NoError(err)
	s.Equal("router rack, after cleanup", updated.ProofOfMaintenance[0].Comment)

	_, err = s.svc.SetProofComment(s.ctx, "tester", created.ID, 5, "nope")
	s.Require().Error(err)
	s.True(IsValidation(err))
}

func (s *MaintenanceServiceSuite) TestDeleteRemovesRowAndRequestsBlobCleanup() {
	input := s.validInput()
	input.ProofOfMaintenance = []ProofItemInput{
		{URL: "https://blobs.local/a.png"},
		{URL: "https://blobs.local/b.png"},
	}
	created := s.mustCreate(input)

	s.Require().NoError(s.svc.DeleteRecord(s.ctx, "tester", created.ID))
	s.Equal([]string{"https://blobs.local/a.png", "https://blobs.local/b.png"}, s.blobs.deletes)
	s.EqualValues(0, s.recordCount())
}

func (s *MaintenanceServiceSuite) TestDeleteSurvivesBlobFailures() {
	input := s.validInput()
	input.ProofOfMaintenance = []ProofItemInput{
		{URL: "https://blobs.local/a.png"},
		{URL: "https://blobs.local/b.png"},
	}
	created := s.mustCreate(input)
	s.blobs.deleteErr = errors.New("object store down")

	s.Require().NoError(s.svc.DeleteRecord(s.ctx, "tester", created.ID))
	// Every proof still gets a cleanup attempt.
	s.Len(s.blobs.deletes, 2)
	s.EqualValues(0, s.recordCount())
}

func (s *MaintenanceServiceSuite) TestDeleteMissingRecord() {
	err := s.svc.DeleteRecord(s.ctx, "tester", 404)
	s.Require().Error(err)
	s.True(IsNotFound(err))
}

func (s *MaintenanceServiceSuite) TestUpsertChecklistEmptyPayloadYieldsDefaults() {
	created := s.mustCreate(s.validInput())

	updated, err := s.svc.UpsertChecklist(s.ctx, "tester", created.ID, []ChecklistItemInput{})
	s.Require().NoError(err)
	s.Require().Len(updated.Checklist, len(portal.DefaultChecklistLabels))
	for i, label := range portal.DefaultChecklistLabels {
		s.Equal(label, updated.Checklist[i].Label)
		s.Equal(portal.ChecklistStatusNotTested, updated.Checklist[i].Status)
	}
}

func (s *MaintenanceServiceSuite) TestUpsertChecklistReAddsOmittedDefaults() {
	created := s.mustCreate(s.validInput())

	items := []ChecklistItemInput{
		{Label: portal.DefaultChecklistLabels[0], Status: "pass"},
		{Label: "Voicemail reachable", Status: "fail"},
	}
	updated, err := s.svc.UpsertChecklist(s.ctx, "tester", created.ID, items)
	s.Require().NoError(err)
	s.Require().Len(updated.Checklist, len(portal.DefaultChecklistLabels)+1)
	s.Equal(portal.ChecklistStatusPass, updated.Checklist[0].Status)
	s.Equal(portal.ChecklistStatusNotTested, updated.Checklist[1].Status)
	s.Equal("Voicemail reachable", updated.Checklist[len(portal.DefaultChecklistLabels)].Label)

	// Feeding the merged checklist back must reproduce it.
	again := make([]ChecklistItemInput, 0, len(updated.Checklist))
	for _, item := range updated.Checklist {
		again = append(again, ChecklistItemInput{Label: item.Label, Status: string(item.Status)})
	}
	second, err := s.svc.UpsertChecklist(s.ctx, "tester", created.ID, again)
	s.Require().NoError(err)
	s.Equal(updated.Checklist, second.Checklist)
}

func (s *MaintenanceServiceSuite) TestUpsertChecklistRejectsDuplicates() {
	created := s.mustCreate(s.validInput())

	items := []ChecklistItemInput{
		{Label: "Trunk registration", Status: "pass"},
		{Label: "trunk registration", Status: "fail"},
	}
	_, err := s.svc.UpsertChecklist(s.ctx, "tester", created.ID, items)
	s.Require().Error(err)
	s.True(IsValidation(err))
}

func (s *MaintenanceServiceSuite) TestCopyRecordClearsRemarkAndProofs() {
	input := s.validInput()
	input.Remark = "replaced PSU"
	input.ProofOfMaintenance = []ProofItemInput{{URL: "https://blobs.local/a.png", Comment: "rack"}}
	input.Checklist = []ChecklistItemInput{{Label: "Voicemail reachable", Status: "pass"}}
	created := s.mustCreate(input)
	before := s.recordCount()

	draft, err := s.svc.CopyRecord(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("sip66", draft.ServerName)
	s.Equal([]string{"Alice", "Bob"}, draft.PerformedBy)
	s.Empty(draft.Remark)
	s.Empty(draft.ProofOfMaintenance)
	s.Len(draft.Checklist, len(portal.DefaultChecklistLabels)+1)

	// Copy is a draft only, nothing was persisted.
	s.Equal(before, s.recordCount())
}

func (s *MaintenanceServiceSuite) TestCopyOfChecklistLessRecordStaysChecklistLess() {
	created := s.mustCreate(s.validInput())

	draft, err := s.svc.CopyRecord(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Nil(draft.Checklist)

	// Re-submitting the draft must not conjure up the default items.
	copied, err := s.svc.CreateRecord(s.ctx, "tester", draft)
	s.Require().NoError(err)
	s.Empty(copied.Checklist)

	fetched, err := s.svc.GetRecord(s.ctx, copied.ID)
	s.Require().NoError(err)
	s.Empty(fetched.Checklist)
}

func (s *MaintenanceServiceSuite) TestListFiltersAndPaginates() {
	first := s.validInput()
	s.mustCreate(first)

	second := s.validInput()
	second.ServerName = "sip67"
	second.ClientName = "GetGo"
	second.Status = string(portal.MaintenanceStatusCompleted)
	s.mustCreate(second)

	all, err := s.svc.ListRecords(s.ctx, &MaintenanceRecordQuery{})
	s.Require().NoError(err)
	s.EqualValues(2, all.Total)

	completed, err := s.svc.ListRecords(s.ctx, &MaintenanceRecordQuery{
		Status: string(portal.MaintenanceStatusCompleted),
	})
	s.Require().NoError(err)
	s.EqualValues(1, completed.Total)
	s.Equal("GetGo", completed.List[0].ClientName)

	searched, err := s.svc.ListRecords(s.ctx, &MaintenanceRecordQuery{Search: "getgo"})
	s.Require().NoError(err)
	s.EqualValues(1, searched.Total)

	paged, err := s.svc.ListRecords(s.ctx, &MaintenanceRecordQuery{
		PaginationRequest: PaginationRequest{Page: 1, Size: 1},
	})
	s.Require().NoError(err)
	s.EqualValues(2, paged.Total)
	s.Len(paged.List, 1)
}
