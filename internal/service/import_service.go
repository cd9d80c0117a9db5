package service

import (
	"coa-backend/internal/models"
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// RecordStore persists mapped spreadsheet rows.
type RecordStore interface {
	Upsert(ctx context.Context, schema *models.EntitySchema, rec models.Record) error
}

type ImportService struct {
	store      RecordStore
	excel      *ExcelService
	errorLimit int
	logger     *logrus.Logger
}

func NewImportService(store RecordStore, excel *ExcelService, errorLimit int, logger *logrus.Logger) *ImportService {
	return &ImportService{
		store:      store,
		excel:      excel,
		errorLimit: errorLimit,
		logger:     logger,
	}
}

// Import upserts every data row of the workbook at filePath into the schema's
// table. Rows are processed in sheet order; a bad row is counted and reported
// but never stops the batch. The file is removed before returning, whatever
// the outcome.
func (s *ImportService) Import(ctx context.Context, schema *models.EntitySchema, filePath string) (*models.ImportResult, error) {
	defer s.removeFile(filePath)

	rows, err := s.excel.ReadRows(filePath)
	if err != nil {
		return nil, err
	}

	result := &models.ImportResult{
		Message: "Import completed",
		Errors:  []string{},
	}

	for _, row := range rows {
		if row.Number == 1 {
			continue // header
		}

		rec := schema.MapRow(row.Cells)
		if err := schema.Validate(rec); err != nil {
			s.recordFailure(result, row.Number, err)
			continue
		}

		if err := s.store.Upsert(ctx, schema, rec); err != nil {
			s.recordFailure(result, row.Number, err)
			continue
		}
		result.SuccessCount++
	}

	s.logger.WithFields(logrus.Fields{
		"entity":  schema.Kind,
		"success": result.SuccessCount,
		"errors":  result.ErrorCount,
	}).Info("Spreadsheet import completed")

	return result, nil
}

func (s *ImportService) recordFailure(result *models.ImportResult, rowNumber int, err error) {
	result.ErrorCount++
	if len(result.Errors) < s.errorLimit {
		result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", rowNumber, err.Error()))
	}
}

func (s *ImportService) removeFile(filePath string) {
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		s.logger.WithError(err).WithField("path", filePath).Warn("Failed to remove uploaded file")
	}
}
