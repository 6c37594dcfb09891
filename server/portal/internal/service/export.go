package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Maintenance Records"

var exportColumns = []string{
	"Maintenance No.", "Submit Date", "Server", "Client", "Maintenance Date",
	"Start", "End", "Reason", "Approver", "Performed By", "Status",
	"Proof Count", "Remark",
}

// ExportRecords renders the (filtered) record list as an xlsx workbook.
func (s *MaintenanceService) ExportRecords(ctx context.Context, query *MaintenanceRecordQuery) ([]byte, error) {
	models, _, err := s.listModels(ctx, query)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, name := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(exportSheetName, cell, name); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}
	lastHeaderCell, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
	if err := f.SetCellStyle(exportSheetName, "A1", lastHeaderCell, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for row, m := range models {
		values := []interface{}{
			m.MaintenanceNumber,
			m.SubmitDate.Format("2006-01-02 15:04"),
			m.ServerName,
			m.ClientName,
			m.MaintenanceDate.String(),
			m.StartTime,
			m.EndTime,
			m.MaintenanceReason,
			m.Approver,
			strings.Join(m.PerformedBy, ", "),
			string(m.Status),
			len(m.ProofOfMaintenance),
			m.Remark,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(exportSheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row+2, err)
			}
		}
	}

	if err := f.SetColWidth(exportSheetName, "A", "B", 22); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
