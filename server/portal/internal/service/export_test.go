package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/abdhfz93/sipdesk/models/portal"
)

func TestExportRecordsProducesWorkbook(t *testing.T) {
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&portal.MaintenanceRecord{}))

	svc := NewMaintenanceService(db, &fakeBlobStore{}, zap.NewNop())
	ctx := context.Background()

	_, err = svc.CreateRecord(ctx, "tester", &MaintenanceRecordInput{
		ServerName:        "sip66",
		ClientName:        "Certis",
		MaintenanceDate:   portal.PortalDate(time.Date(2026, 1, 22, 0, 0, 0, 0, time.UTC)),
		StartTime:         "22:00",
		EndTime:           "23:00",
		MaintenanceReason: "Monthly Maintenance",
		PerformedBy:       []string{"Alice"},
		Status:            string(portal.MaintenanceStatusCompleted),
		ProofOfMaintenance: []ProofItemInput{
			{URL: "https://blobs.local/a.png"},
			{URL: "https://blobs.local/b.png"},
		},
	})
	require.NoError(t, err)

	data, err := svc.ExportRecords(ctx, &MaintenanceRecordQuery{})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, exportColumns, rows[0][:len(exportColumns)])

	assert.True(t, strings.HasPrefix(rows[1][0], "MR-"))
	assert.Equal(t, "sip66", rows[1][2])
	assert.Equal(t, "Certis", rows[1][3])
	assert.Equal(t, "2026-01-22", rows[1][4])
	assert.Equal(t, "completed", rows[1][10])
	assert.Equal(t, "2", rows[1][11])
}

func TestExportRecordsHonorsFilters(t *testing.T) {
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&portal.MaintenanceRecord{}))

	svc := NewMaintenanceService(db, &fakeBlobStore{}, zap.NewNop())
	ctx := context.Background()

	for _, server := range []string{"sip66", "sip67"} {
		_, err := svc.CreateRecord(ctx, "tester", &MaintenanceRecordInput{
			ServerName:  server,
			ClientName:  "Certis",
			PerformedBy: []string{"Alice"},
		})
		require.NoError(t, err)
	}

	data, err := svc.ExportRecords(ctx, &MaintenanceRecordQuery{ServerName: "sip67"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "sip67", rows[1][2])
}
