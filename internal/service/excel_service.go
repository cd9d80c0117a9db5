package service

import (
	"coa-backend/internal/models"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var ErrNoWorksheet = errors.New("no worksheet found in the Excel file")

// SheetRow is one non-empty worksheet row with its 1-based sheet row number.
type SheetRow struct {
	Number int
	Cells  []string
}

type ExcelService struct{}

func NewExcelService() *ExcelService {
	return &ExcelService{}
}

// ReadRows returns the non-empty rows of the first worksheet, header included.
// Legacy .xls workbooks are read with extrame/xls, everything else with excelize.
func (s *ExcelService) ReadRows(filePath string) ([]SheetRow, error) {
	if strings.EqualFold(filepath.Ext(filePath), ".xls") {
		return s.readXLS(filePath)
	}
	return s.readXLSX(filePath)
}

func (s *ExcelService) readXLSX(filePath string) ([]SheetRow, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoWorksheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	var result []SheetRow
	for i, cells := range rows {
		if isEmptyRow(cells) {
			continue
		}
		result = append(result, SheetRow{Number: i + 1, Cells: cells})
	}
	return result, nil
}

func (s *ExcelService) readXLS(filePath string) ([]SheetRow, error) {
	wb, err := xls.Open(filePath, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, ErrNoWorksheet
	}

	var result []SheetRow
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		cells := make([]string, 0, row.LastCol()+1)
		for c := 0; c <= row.LastCol(); c++ {
			cells = append(cells, row.Col(c))
		}
		if isEmptyRow(cells) {
			continue
		}
		result = append(result, SheetRow{Number: i + 1, Cells: cells})
	}
	return result, nil
}

// BuildWorkbook renders a header row plus data rows for the schema as xlsx.
func (s *ExcelService) BuildWorkbook(schema *models.EntitySchema, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := schema.Label
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}

	headers := schema.Headers()
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle)

	for rowIdx, values := range rows {
		for colIdx, value := range values {
			if value == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i, header := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		width := float64(len(header) + 6)
		if width < 15 {
			width = 15
		}
		f.SetColWidth(sheetName, col, col, width)
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateTemplate returns the import template: headers and one sample row.
func (s *ExcelService) GenerateTemplate(schema *models.EntitySchema) ([]byte, error) {
	sample := schema.SampleRow()
	row := make([]interface{}, len(sample))
	for i, v := range sample {
		row[i] = v
	}
	return s.BuildWorkbook(schema, [][]interface{}{row})
}

// ExportRecords renders stored rows in import column order so the file can be
// edited and imported again.
func (s *ExcelService) ExportRecords(schema *models.EntitySchema, records []models.Record) ([]byte, error) {
	rows := make([][]interface{}, len(records))
	for i, rec := range records {
		rows[i] = schema.RecordValues(rec)
	}
	return s.BuildWorkbook(schema, rows)
}

// WriteFile is a convenience for tools that need the workbook on disk.
func (s *ExcelService) WriteFile(data []byte, path string) error {
	return os.WriteFile(path, data, 0o644)
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
