package handler

import (
	"coa-backend/internal/config"
	"coa-backend/internal/models"
	"coa-backend/internal/service"
	"coa-backend/internal/utils"
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeXLS  = "application/vnd.ms-excel"
)

// Importer runs a spreadsheet import synchronously.
type Importer interface {
	Import(ctx context.Context, schema *models.EntitySchema, filePath string) (*models.ImportResult, error)
}

// ImportQueue hands an import to the background worker.
type ImportQueue interface {
	Enqueue(ctx context.Context, schema *models.EntitySchema, filePath, filename string) (*models.ImportJob, error)
	Get(ctx context.Context, id string) (*models.ImportJob, error)
}

// RecordLister reads whole tables for export.
type RecordLister interface {
	ListRecords(ctx context.Context, schema *models.EntitySchema) ([]models.Record, error)
}

type ImportHandler struct {
	importer Importer
	queue    ImportQueue
	records  RecordLister
	excel    *service.ExcelService
	cfg      *config.Config
	logger   *logrus.Logger
}

// NewImportHandler builds the spreadsheet handler. queue may be nil, in which
// case every import runs inline.
func NewImportHandler(
	importer Importer,
	queue ImportQueue,
	records RecordLister,
	excel *service.ExcelService,
	cfg *config.Config,
	logger *logrus.Logger,
) *ImportHandler {
	return &ImportHandler{
		importer: importer,
		queue:    queue,
		records:  records,
		excel:    excel,
		cfg:      cfg,
		logger:   logger,
	}
}

func (h *ImportHandler) Import(c *fiber.Ctx) error {
	schema, err := models.LookupSchema(c.Params("type"))
	if err != nil {
		return respondError(c, err)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return respondError(c, ErrNoFile)
	}
	if !isExcelUpload(file) {
		return respondError(c, ErrUnsupportedFileType)
	}

	async := c.QueryBool("async") && h.queue != nil
	dir := h.cfg.TempPath
	if async {
		dir = h.cfg.UploadPath
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return respondError(c, err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	filePath := filepath.Join(dir, fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext))
	if err := c.SaveFile(file, filePath); err != nil {
		return respondError(c, fmt.Errorf("failed to save file: %w", err))
	}

	if async {
		job, err := h.queue.Enqueue(c.UserContext(), schema, filePath, file.Filename)
		if err != nil {
			os.Remove(filePath)
			return respondError(c, err)
		}
		return c.Status(fiber.StatusAccepted).JSON(job)
	}

	result, err := h.importer.Import(c.UserContext(), schema, filePath)
	if err != nil {
		h.logger.WithError(err).WithField("entity", schema.Kind).Error("Spreadsheet import failed")
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *ImportHandler) JobStatus(c *fiber.Ctx) error {
	if h.queue == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, fmt.Errorf("background imports are disabled"))
	}
	job, err := h.queue.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(job)
}

func (h *ImportHandler) DownloadTemplate(c *fiber.Ctx) error {
	schema, err := models.LookupSchema(c.Params("type"))
	if err != nil {
		return respondError(c, err)
	}

	data, err := h.excel.GenerateTemplate(schema)
	if err != nil {
		return respondError(c, err)
	}
	return utils.XLSXResponse(c, schema.Resource+"-template.xlsx", data)
}

func (h *ImportHandler) Export(c *fiber.Ctx) error {
	schema, err := models.LookupSchema(c.Params("type"))
	if err != nil {
		return respondError(c, err)
	}

	records, err := h.records.ListRecords(c.UserContext(), schema)
	if err != nil {
		return respondError(c, err)
	}

	data, err := h.excel.ExportRecords(schema, records)
	if err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("%s-%s.xlsx", schema.Resource, time.Now().Format("20060102-150405"))
	return utils.XLSXResponse(c, filename, data)
}

func isExcelUpload(file *multipart.FileHeader) bool {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch file.Header.Get(fiber.HeaderContentType) {
	case mimeXLSX, mimeXLS:
		return true
	case "application/octet-stream":
		return ext == ".xlsx" || ext == ".xls"
	}
	return false
}
