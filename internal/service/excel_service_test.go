package service

import (
	"coa-backend/internal/models"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func saveBytes(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestGenerateTemplate(t *testing.T) {
	excel := NewExcelService()

	data, err := excel.GenerateTemplate(models.SubGroupSchema)
	require.NoError(t, err)

	rows, err := excel.ReadRows(saveBytes(t, "template.xlsx", data))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].Number)
	assert.Equal(t, models.SubGroupSchema.Headers(), rows[0].Cells)
	assert.Equal(t, models.SubGroupSchema.SampleRow(), rows[1].Cells)
}

func TestTemplateSheetIsNamedAfterEntity(t *testing.T) {
	data, err := NewExcelService().GenerateTemplate(models.LedgerSchema)
	require.NoError(t, err)

	f, err := excelize.OpenFile(saveBytes(t, "ledger.xlsx", data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Ledger"}, f.GetSheetList())
}

func TestExportRecordsCanBeReimported(t *testing.T) {
	excel := NewExcelService()
	records := []models.Record{
		{"id": int64(1), "division_code": "DIV01", "division_name": "Corrugation", "report": nil, "status": "Active"},
		{"id": int64(2), "division_code": "DIV02", "division_name": "Printing", "report": "Manufacturing", "status": "Inactive"},
	}

	data, err := excel.ExportRecords(models.DivisionSchema, records)
	require.NoError(t, err)

	rows, err := excel.ReadRows(saveBytes(t, "export.xlsx", data))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	rec := models.DivisionSchema.MapRow(rows[1].Cells)
	assert.Equal(t, "DIV01", rec["division_code"])
	assert.Nil(t, rec["report"])

	rec = models.DivisionSchema.MapRow(rows[2].Cells)
	assert.Equal(t, "Manufacturing", rec["report"])
	assert.Equal(t, "Inactive", rec["status"])
}

func TestReadRowsRejectsGarbage(t *testing.T) {
	_, err := NewExcelService().ReadRows(saveBytes(t, "bad.xlsx", []byte("plain text")))
	assert.Error(t, err)
}

func copyFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return saveBytes(t, name, data)
}

func TestReadRowsXLS(t *testing.T) {
	rows, err := NewExcelService().ReadRows(copyFixture(t, "divisions.xls"))
	require.NoError(t, err)
	require.Len(t, rows, 12)

	for i, row := range rows {
		assert.Equal(t, i+1, row.Number)
		require.GreaterOrEqual(t, len(row.Cells), 3)
	}
	assert.Equal(t, []string{"Code", "Name", "Description"}, rows[0].Cells[:3])
	assert.Equal(t, []string{"code1", "name1", "description1"}, rows[1].Cells[:3])
	assert.Equal(t, []string{"code11", "name11", "description11"}, rows[11].Cells[:3])
}

func TestReadRowsXLSExtensionIsCaseInsensitive(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "divisions.xls"))
	require.NoError(t, err)

	rows, err := NewExcelService().ReadRows(saveBytes(t, "DIVISIONS.XLS", data))
	require.NoError(t, err)
	assert.Len(t, rows, 12)
}
