package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/abdhfz93/sipdesk/models/portal"
)

func newMasterlistTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&portal.Masterlist{}, &portal.MaintenanceRecord{}))
	return db
}

func TestMasterlistCRUD(t *testing.T) {
	db := newMasterlistTestDB(t)
	svc := NewMasterlistService(db, nil, zap.NewNop())
	ctx := context.Background()

	created, err := svc.CreateMasterlist(ctx, "tester", &MasterlistInput{
		SipID:       "sip66",
		CompanyName: "Certis",
		Provider:    "Telin",
		IPAddress:   "10.20.30.40",
		Category:    "enterprise",
	})
	require.NoError(t, err)
	assert.Equal(t, "Certis", created.CompanyName)

	updated, err := svc.UpdateMasterlist(ctx, "tester", created.ID, &MasterlistInput{
		SipID:       "sip66",
		CompanyName: "Certis Group",
		Provider:    "Telin",
		Category:    "enterprise",
	})
	require.NoError(t, err)
	assert.Equal(t, "Certis Group", updated.CompanyName)
	// Omitted fields are part of the update set and get cleared.
	assert.Empty(t, updated.IPAddress)

	require.NoError(t, svc.DeleteMasterlist(ctx, "tester", created.ID))
	err = svc.DeleteMasterlist(ctx, "tester", created.ID)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestMasterlistRequiresCompanyName(t *testing.T) {
	db := newMasterlistTestDB(t)
	svc := NewMasterlistService(db, nil, zap.NewNop())

	_, err := svc.CreateMasterlist(context.Background(), "tester", &MasterlistInput{SipID: "sip66"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestMasterlistUpdateMissingRow(t *testing.T) {
	db := newMasterlistTestDB(t)
	svc := NewMasterlistService(db, nil, zap.NewNop())

	_, err := svc.UpdateMasterlist(context.Background(), "tester", 123, &MasterlistInput{CompanyName: "GetGo"})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestMasterlistListFilters(t *testing.T) {
	db := newMasterlistTestDB(t)
	svc := NewMasterlistService(db, nil, zap.NewNop())
	ctx := context.Background()

	rows := []*MasterlistInput{
		{SipID: "sip66", CompanyName: "Certis", Provider: "Telin", Category: "enterprise"},
		{SipID: "sip67", CompanyName: "GetGo", Provider: "Singtel", Category: "enterprise"},
		{SipID: "sip68", CompanyName: "Pegasus", Provider: "Telin", Category: "smb"},
	}
	for _, row := range rows {
		_, err := svc.CreateMasterlist(ctx, "tester", row)
		require.NoError(t, err)
	}

	all, err := svc.ListMasterlist(ctx, &MasterlistQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, all.Total)
	// Ordered by company name.
	assert.Equal(t, "Certis", all.List[0].CompanyName)
	assert.Equal(t, "GetGo", all.List[1].CompanyName)

	telin, err := svc.ListMasterlist(ctx, &MasterlistQuery{Provider: "Telin"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, telin.Total)

	searched, err := svc.ListMasterlist(ctx, &MasterlistQuery{Search: "pega"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, searched.Total)
	assert.Equal(t, "sip68", searched.List[0].SipID)
}

func TestLookupValuesComeFromDirectoryAndRecords(t *testing.T) {
	db := newMasterlistTestDB(t)
	lookups := NewLookupService(db, nil, nil, zap.NewNop())
	masterlist := NewMasterlistService(db, lookups, zap.NewNop())
	records := NewMaintenanceService(db, &fakeBlobStore{}, zap.NewNop())
	ctx := context.Background()

	for _, row := range []*MasterlistInput{
		{SipID: "sip67", CompanyName: "GetGo"},
		{SipID: "sip66", CompanyName: "Certis"},
		{CompanyName: "Hisense"},
	} {
		_, err := masterlist.CreateMasterlist(ctx, "tester", row)
		require.NoError(t, err)
	}

	_, err := records.CreateRecord(ctx, "tester", &MaintenanceRecordInput{
		ServerName:  "sip66",
		ClientName:  "Certis",
		Approver:    "Diana",
		PerformedBy: []string{"Alice", "bob"},
	})
	require.NoError(t, err)

	servers, err := lookups.ServerNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"sip66", "sip67"}, servers)

	clients, err := lookups.ClientNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Certis", "GetGo", "Hisense"}, clients)

	personnel, err := lookups.Personnel(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Diana", "bob"}, personnel)

	reasons := lookups.MaintenanceReasons()
	assert.Equal(t, portal.KnownMaintenanceReasons, reasons)
}
