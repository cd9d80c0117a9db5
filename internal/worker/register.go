package worker

import (
	"coa-backend/internal/config"
	"coa-backend/internal/repository"
	"coa-backend/internal/service"
	"coa-backend/internal/utils"

	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

func RegisterHandlers(mux *asynq.ServeMux, db *sqlx.DB, redis *redis.Client, cfg *config.Config) {
	logger := utils.GetLogger()

	importService := service.NewImportService(
		repository.NewEntityRepository(db),
		service.NewExcelService(),
		cfg.ImportErrorLimit,
		logger,
	)
	jobs := repository.NewImportJobRepository(redis, cfg.ImportJobTTL)

	importHandler := NewImportTaskHandler(importService, jobs)

	mux.HandleFunc(service.TypeImportSpreadsheet, importHandler.Handle)
}
