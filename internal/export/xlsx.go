package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/cv-extract/internal/entity"
)

const sheetName = "Results"

// XLSX renders the report as a single-sheet workbook.
func (s *Service) XLSX(report *entity.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range entity.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(entity.Columns), 1)
		_ = f.SetCellStyle(sheetName, "A1", last, style)
	}

	for i, rec := range report.Records {
		row := i + 2
		for col, v := range Cells(rec) {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("set %s: %w", cell, err)
			}
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 28) // name
	_ = f.SetColWidth(sheetName, "B", "B", 8)  // gpa
	_ = f.SetColWidth(sheetName, "C", "C", 30) // major
	_ = f.SetColWidth(sheetName, "D", "D", 10) // semester
	_ = f.SetColWidth(sheetName, "E", "E", 60) // skills
	_ = f.SetColWidth(sheetName, "F", "F", 12) // skill_count
	_ = f.SetColWidth(sheetName, "G", "G", 36) // status
	_ = f.SetColWidth(sheetName, "H", "H", 20) // timestamp

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
